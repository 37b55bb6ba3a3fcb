// Command benchmark drives synthetic load against the registry indexer
// API and reports ingest and query throughput. It posts unique property
// records, replays a fraction of them to measure duplicate handling,
// and interleaves list queries.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/landledger/registry-indexer/internal/apiclient"
	"github.com/landledger/registry-indexer/internal/domain"
)

const defaultBaseURL = "http://localhost:8080"

type Config struct {
	BaseURL        string
	Records        int           // Number of records to ingest
	Concurrency    int           // Number of concurrent workers
	DuplicateRatio float64       // Fraction of posts that replay an earlier record
	QueryEvery     int           // Issue a list query after this many ingests per worker (0 = never)
	RequestTimeout time.Duration // Timeout for each request
	OutputFile     string        // Output markdown file path (optional)
}

type Stats struct {
	mu sync.Mutex

	ingested      int
	duplicates    int
	failed        int
	queries       int
	queriesFailed int

	ingestLatencies []time.Duration
	queryLatencies  []time.Duration
}

func (s *Stats) recordIngest(latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		s.ingested++
		s.ingestLatencies = append(s.ingestLatencies, latency)
	case isDuplicate(err):
		s.duplicates++
		s.ingestLatencies = append(s.ingestLatencies, latency)
	default:
		s.failed++
	}
}

func (s *Stats) recordQuery(latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries++
	if err != nil {
		s.queriesFailed++
		return
	}
	s.queryLatencies = append(s.queryLatencies, latency)
}

func isDuplicate(err error) bool {
	// apiclient maps 409 responses onto the domain error
	return errors.Is(err, domain.ErrRecordAlreadyExists)
}

func main() {
	cfg := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, finishing in-flight requests...")
		cancel()
	}()

	client := apiclient.New(cfg.BaseURL, cfg.RequestTimeout)

	if err := client.Health(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "API at %s is not healthy: %v\n", cfg.BaseURL, err)
		os.Exit(1)
	}

	fmt.Printf("Benchmarking %s: %d records, %d workers, %.0f%% duplicates\n\n",
		cfg.BaseURL, cfg.Records, cfg.Concurrency, cfg.DuplicateRatio*100)

	stats := &Stats{}
	start := time.Now()
	runLoad(ctx, cfg, client, stats)
	elapsed := time.Since(start)

	report := buildReport(cfg, stats, elapsed)
	fmt.Print(report)

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", cfg.OutputFile)
	}
}

func parseFlags() Config {
	var cfg Config
	var configPath string

	flag.StringVar(&configPath, "config", "", "Path to JSON config file")
	flag.StringVar(&cfg.BaseURL, "url", "", "API base URL")
	flag.IntVar(&cfg.Records, "records", 1000, "Number of records to ingest")
	flag.IntVar(&cfg.Concurrency, "concurrency", 8, "Number of concurrent workers")
	flag.Float64Var(&cfg.DuplicateRatio, "duplicates", 0.1, "Fraction of posts replaying an earlier record")
	flag.IntVar(&cfg.QueryEvery, "query-every", 20, "Issue a list query after this many ingests per worker (0 = never)")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", 30*time.Second, "Per-request timeout")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.Parse()

	if configPath != "" {
		fileCfg, err := LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = fileCfg.BaseURL
		}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return cfg
}

func runLoad(ctx context.Context, cfg Config, client *apiclient.Client, stats *Stats) {
	work := make(chan apiclient.CreateRecordRequest)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sent := 0
			for record := range work {
				begin := time.Now()
				err := client.CreateRecord(ctx, record)
				stats.recordIngest(time.Since(begin), err)

				sent++
				if cfg.QueryEvery > 0 && sent%cfg.QueryEvery == 0 {
					begin = time.Now()
					_, err := client.ListRecords(ctx)
					stats.recordQuery(time.Since(begin), err)
				}
			}
		}()
	}

	var replayable []apiclient.CreateRecordRequest
	duplicateBudget := int(float64(cfg.Records) * cfg.DuplicateRatio)

feed:
	for i := 0; i < cfg.Records; i++ {
		record := syntheticRecord(i)
		if duplicateBudget > 0 && len(replayable) > 0 && i%int(1/maxRatio(cfg.DuplicateRatio)) == 0 {
			record = replayable[i%len(replayable)]
			duplicateBudget--
		} else {
			replayable = append(replayable, record)
		}

		select {
		case work <- record:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()
}

func maxRatio(r float64) float64 {
	if r <= 0 || r > 1 {
		return 1
	}
	return r
}

var recordSeq atomic.Int64

// syntheticRecord builds a unique, well-formed ingest payload
func syntheticRecord(i int) apiclient.CreateRecordRequest {
	seq := recordSeq.Add(1)

	var entropy [8]byte
	_, _ = rand.Read(entropy[:])

	return apiclient.CreateRecordRequest{
		TransactionHash: fmt.Sprintf("0x%048x%s", seq, hex.EncodeToString(entropy[:])),
		BlockNumber:     fmt.Sprintf("%d", 1000000+seq),
		PropertyID:      seq,
		Location:        fmt.Sprintf("%d Benchmark Avenue", i+1),
		Area:            100 + seq%900,
		Owner:           "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

func buildReport(cfg Config, stats *Stats, elapsed time.Duration) string {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	total := stats.ingested + stats.duplicates + stats.failed

	var b strings.Builder
	b.WriteString("# Registry Indexer Benchmark\n\n")
	fmt.Fprintf(&b, "- Target: %s\n", cfg.BaseURL)
	fmt.Fprintf(&b, "- Duration: %s\n", formatDuration(elapsed))
	fmt.Fprintf(&b, "- Workers: %d\n\n", cfg.Concurrency)

	b.WriteString("## Ingest\n\n")
	fmt.Fprintf(&b, "- Requests: %d (%s)\n", total, formatRate(total, elapsed))
	fmt.Fprintf(&b, "- Created: %d (%s)\n", stats.ingested, percentageString(stats.ingested, total))
	fmt.Fprintf(&b, "- Duplicates rejected: %d (%s)\n", stats.duplicates, percentageString(stats.duplicates, total))
	fmt.Fprintf(&b, "- Failed: %d (%s)\n", stats.failed, percentageString(stats.failed, total))
	fmt.Fprintf(&b, "- Latency p50: %s, p95: %s, p99: %s\n\n",
		formatDuration(percentile(stats.ingestLatencies, 50)),
		formatDuration(percentile(stats.ingestLatencies, 95)),
		formatDuration(percentile(stats.ingestLatencies, 99)),
	)

	if stats.queries > 0 {
		b.WriteString("## Queries\n\n")
		fmt.Fprintf(&b, "- Requests: %d\n", stats.queries)
		fmt.Fprintf(&b, "- Failed: %d (%s)\n", stats.queriesFailed, percentageString(stats.queriesFailed, stats.queries))
		fmt.Fprintf(&b, "- Latency p50: %s, p95: %s, p99: %s\n",
			formatDuration(percentile(stats.queryLatencies, 50)),
			formatDuration(percentile(stats.queryLatencies, 95)),
			formatDuration(percentile(stats.queryLatencies, 99)),
		)
	}

	return b.String()
}
