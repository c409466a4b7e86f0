package vecfed

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vecfed/fetcher"
)

var (
	// ErrNilClient is returned when a Connector is constructed without a
	// remote client.
	ErrNilClient = errors.New("remote client must not be nil")
)

// ErrKeyBatchSize indicates a key batch size outside the range the remote
// API accepts.
type ErrKeyBatchSize struct {
	Size int
}

func (e *ErrKeyBatchSize) Error() string {
	return fmt.Sprintf("key batch size out of range [1, %d]: %d", fetcher.MaxKeyBatchSize, e.Size)
}

// ErrPageSize indicates a scan page size outside the range the remote API
// accepts.
type ErrPageSize struct {
	Size int
}

func (e *ErrPageSize) Error() string {
	return fmt.Sprintf("scan page size out of range [0, %d]: %d", fetcher.MaxScanPageSize, e.Size)
}
