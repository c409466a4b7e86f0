package vecfed

type options struct {
	logger       *Logger
	keyBatchSize int
	pageSize     int
	prefetch     bool
}

// Option configures Connector behavior.
type Option func(*options)

// WithLogger sets the logger used by the connector and everything it
// constructs. If nil is passed, a NoopLogger is used.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithKeyBatchSize sets the number of keys requested per GetVectors call.
// The remote API rejects more than fetcher.MaxKeyBatchSize keys per call,
// so New fails with ErrKeyBatchSize when size is outside the valid range.
// Zero keeps fetcher.DefaultKeyBatchSize.
func WithKeyBatchSize(size int) Option {
	return func(o *options) {
		o.keyBatchSize = size
	}
}

// WithScanPageSize sets the page size requested per ListVectors call.
// Zero lets the service choose. New fails with ErrPageSize when size is
// negative or above fetcher.MaxScanPageSize.
func WithScanPageSize(size int) Option {
	return func(o *options) {
		o.pageSize = size
	}
}

// WithPrefetch enables bounded read-ahead: while one batch is being
// emitted, the next remote call may already be in flight. At most one
// batch is buffered, row limits and emit order are unchanged, and
// cancellation is still honored at every batch boundary.
func WithPrefetch(enabled bool) Option {
	return func(o *options) {
		o.prefetch = enabled
	}
}
