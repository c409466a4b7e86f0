// Command vecfed reads rows from an Amazon S3 Vectors index the same way
// a federated query engine would: list buckets and indexes, scan an
// index, or look up specific keys. Configuration comes from VECFED_*
// environment variables or a vecfed.yaml file; see the config package.
//
// Usage:
//
//	vecfed schemas
//	vecfed tables
//	vecfed read
//
// `read` scans the configured index, or performs key lookups when
// VECFED_KEYS is set. Rows are printed as a table, or spilled to
// s3://$VECFED_SPILL_BUCKET/$VECFED_SPILL_PREFIX when a spill bucket is
// configured.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3vectors"
	"github.com/olekukonko/tablewriter"

	"github.com/hupe1980/vecfed"
	"github.com/hupe1980/vecfed/catalog"
	"github.com/hupe1980/vecfed/config"
	"github.com/hupe1980/vecfed/model"
	"github.com/hupe1980/vecfed/s3vec"
	"github.com/hupe1980/vecfed/sink"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "interrupted, shutting down")
		cancel()
	}()

	if err := run(ctx, cfg, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: vecfed <schemas|tables|read>")
	}

	logger := newLogger(cfg)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}
	client := s3vectors.NewFromConfig(awsCfg)

	switch args[0] {
	case "schemas":
		return printSchemas(ctx, catalog.New(client, logger.Logger))
	case "tables":
		return printTables(ctx, catalog.New(client, logger.Logger), cfg.Bucket)
	case "read":
		return read(ctx, cfg, awsCfg, client, logger)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newLogger(cfg *config.Config) *vecfed.Logger {
	level := logLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		return vecfed.NewJSONLogger(level)
	}
	return vecfed.NewTextLogger(level)
}

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func printSchemas(ctx context.Context, cat *catalog.Catalog) error {
	schemas, err := cat.ListSchemas(ctx)
	if err != nil {
		return err
	}
	for _, s := range schemas {
		fmt.Println(s)
	}
	return nil
}

func printTables(ctx context.Context, cat *catalog.Catalog, bucket string) error {
	if bucket == "" {
		return fmt.Errorf("VECFED_BUCKET is required for tables")
	}
	tables, err := cat.ListTables(ctx, bucket)
	if err != nil {
		return err
	}
	for _, tbl := range tables {
		fmt.Println(tbl)
	}
	return nil
}

func read(ctx context.Context, cfg *config.Config, awsCfg aws.Config, client *s3vectors.Client, logger *vecfed.Logger) error {
	if cfg.Bucket == "" || cfg.Index == "" {
		return fmt.Errorf("VECFED_BUCKET and VECFED_INDEX are required for read")
	}

	var dataClient s3vec.Client = client
	if cfg.RateLimit > 0 {
		dataClient = s3vec.NewRateLimited(client, cfg.RateLimit, 1)
	}

	conn, err := vecfed.New(dataClient,
		vecfed.WithLogger(logger),
		vecfed.WithKeyBatchSize(cfg.KeyBatchSize),
		vecfed.WithScanPageSize(cfg.PageSize),
		vecfed.WithPrefetch(cfg.Prefetch),
	)
	if err != nil {
		return err
	}

	req := vecfed.ReadRequest{
		Table:   model.TableRef{Bucket: cfg.Bucket, Index: cfg.Index},
		Columns: cfg.Columns,
		Limit:   cfg.Limit,
	}
	if len(cfg.Keys) > 0 {
		ranges := make([]model.Range, 0, len(cfg.Keys))
		for _, k := range cfg.Keys {
			ranges = append(ranges, model.PointRange(k))
		}
		req.Summary = model.Summary{model.ColVectorID: {Ranges: ranges}}
	}

	active := func() bool { return ctx.Err() == nil }

	if cfg.SpillBucket != "" {
		spill := sink.NewSpill(s3.NewFromConfig(awsCfg), cfg.SpillBucket, cfg.SpillPrefix, func(o *sink.SpillOptions) {
			o.Compression = sink.Compression(cfg.SpillCompression)
			o.Logger = logger.Logger
		})
		rows, err := conn.Read(ctx, req, spill, active)
		if err != nil {
			return err
		}
		if err := spill.Close(ctx); err != nil {
			return err
		}
		fmt.Printf("spilled %d rows to s3://%s/%s\n", rows, cfg.SpillBucket, cfg.SpillPrefix)
		return nil
	}

	buf := sink.NewBuffer()
	rows, err := conn.Read(ctx, req, buf, active)
	if err != nil {
		return err
	}

	printRows(buf.Rows())
	fmt.Printf("%d rows\n", rows)
	return nil
}

func printRows(rows []model.Row) {
	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{model.ColVectorID, model.ColEmbedding, model.ColMetadata})
	for _, r := range rows {
		embedding := ""
		if r.Embedding != nil {
			embedding = fmt.Sprintf("%v", r.Embedding)
		}
		table.Append([]string{r.VectorID, embedding, string(r.Metadata)})
	}
	table.Render()
}
