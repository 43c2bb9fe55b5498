// Command stabgo runs a Clifford circuit on a stabilizer tableau, optionally
// snapshotting the result to a blob store, and prints a JSON report.
//
// Usage:
//
//	stabgo -circuit ghz.qasm -store local -store-dir ./data -snapshot snapshots/ghz.stab
//	stabgo -circuit - -qubits 4096 -metrics-addr :9090 < big.qasm
//	stabgo -restore -store s3 -bucket tableaux -ddb-table stabgo-commits -circuit more.qasm
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/stabgo"
	"github.com/hupe1980/stabgo/chunk"
	"github.com/hupe1980/stabgo/circuit"
	"github.com/hupe1980/stabgo/codec"
	"github.com/hupe1980/stabgo/resource"
	"github.com/hupe1980/stabgo/snapshot"
)

type config struct {
	Circuit        string
	Qubits         int
	GeometryWords  int
	MemoryLimit    int64
	IOLimit        int64
	Snapshot       string
	Restore        bool
	Store          string
	StoreDir       string
	Bucket         string
	Prefix         string
	DDBTable       string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioSecure    bool
	Compression    string
	MetricsAddr    string
	ReportCodec    string
	LogJSON        bool
	Verbose        bool
}

func parseFlags(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("stabgo", flag.ContinueOnError)
	fs.StringVar(&cfg.Circuit, "circuit", "", "circuit file in QASM subset, - for stdin")
	fs.IntVar(&cfg.Qubits, "qubits", 0, "qubit count (overrides the circuit's qreg when larger)")
	fs.IntVar(&cfg.GeometryWords, "geometry-words", chunk.DefaultWords, "64-bit words per register")
	fs.Int64Var(&cfg.MemoryLimit, "memory-limit", 0, "tableau memory limit in bytes (0 = unlimited)")
	fs.Int64Var(&cfg.IOLimit, "io-limit", 0, "snapshot IO limit in bytes per second (0 = unlimited)")
	fs.StringVar(&cfg.Snapshot, "snapshot", "", "save a snapshot under this name after the run")
	fs.BoolVar(&cfg.Restore, "restore", false, "start from the latest snapshot in the store")
	fs.StringVar(&cfg.Store, "store", "", "snapshot store: local, s3 or minio")
	fs.StringVar(&cfg.StoreDir, "store-dir", "", "directory for -store local")
	fs.StringVar(&cfg.Bucket, "bucket", "", "bucket for -store s3 or minio")
	fs.StringVar(&cfg.Prefix, "prefix", "", "key prefix inside the bucket")
	fs.StringVar(&cfg.DDBTable, "ddb-table", "", "DynamoDB table for atomic CURRENT commits (s3 only)")
	fs.StringVar(&cfg.MinioEndpoint, "minio-endpoint", "", "MinIO endpoint host:port")
	fs.StringVar(&cfg.MinioAccessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key")
	fs.StringVar(&cfg.MinioSecretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key")
	fs.BoolVar(&cfg.MinioSecure, "minio-secure", false, "use HTTPS for MinIO")
	fs.StringVar(&cfg.Compression, "compression", "lz4", "snapshot compression: none, lz4 or zstd")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.StringVar(&cfg.ReportCodec, "report-codec", codec.Default.Name(), "report encoder: json or go-json")
	fs.BoolVar(&cfg.LogJSON, "log-json", false, "log as JSON")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Circuit == "" && !cfg.Restore {
		return cfg, errors.New("-circuit is required unless -restore is set")
	}
	if _, ok := codec.ByName(cfg.ReportCodec); !ok {
		return cfg, fmt.Errorf("unknown report codec %q", cfg.ReportCodec)
	}
	if (cfg.Snapshot != "" || cfg.Restore) && cfg.Store == "" {
		return cfg, errors.New("-snapshot and -restore need -store")
	}
	return cfg, nil
}

type report struct {
	Qubits      int                  `json:"qubits"`
	Geometry    string               `json:"geometry"`
	Layout      string               `json:"layout"`
	MemoryBytes int                  `json:"memory_bytes"`
	Restored    bool                 `json:"restored,omitempty"`
	Run         *stabgo.RunStats     `json:"run,omitempty"`
	Snapshot    *stabgo.SnapshotInfo `json:"snapshot,omitempty"`
}

func newLogger(cfg config, w io.Writer) *stabgo.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		return stabgo.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return stabgo.NewLogger(slog.NewTextHandler(w, opts))
}

func loadCircuit(path string, stdin io.Reader) (*circuit.Circuit, error) {
	if path == "-" {
		return circuit.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return circuit.Parse(f)
}

func run(ctx context.Context, cfg config, reg prometheus.Registerer, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := newLogger(cfg, stderr)

	geom, err := chunk.NewGeometry(cfg.GeometryWords)
	if err != nil {
		return err
	}
	compression, err := snapshot.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   cfg.MemoryLimit,
		IOLimitBytesPerSec: cfg.IOLimit,
	})

	opts := []stabgo.Option{
		stabgo.WithLogger(logger),
		stabgo.WithGeometry(geom),
		stabgo.WithMemoryBudget(rc),
		stabgo.WithCompression(compression),
	}
	if store != nil {
		opts = append(opts, stabgo.WithBlobStore(store))
	}
	if reg != nil {
		opts = append(opts, stabgo.WithMetricsCollector(NewPrometheusCollector(reg)))
	}

	var c *circuit.Circuit
	if cfg.Circuit != "" {
		if c, err = loadCircuit(cfg.Circuit, stdin); err != nil {
			return fmt.Errorf("load circuit: %w", err)
		}
	}

	var sim *stabgo.Simulator
	if cfg.Restore {
		sim, err = stabgo.RestoreLatest(ctx, opts...)
	} else {
		sim, err = stabgo.New(max(c.Qubits, cfg.Qubits), opts...)
	}
	if err != nil {
		return err
	}
	defer func() { _ = sim.Close() }()

	rep := report{Restored: cfg.Restore}
	if c != nil {
		stats, err := sim.Run(ctx, c)
		if err != nil {
			return err
		}
		rep.Run = &stats
	}

	if cfg.Snapshot != "" {
		info, err := sim.SaveSnapshot(ctx, cfg.Snapshot)
		if err != nil {
			return err
		}
		rep.Snapshot = &info
	}

	tab := sim.Tableau()
	rep.Qubits = tab.QubitCount()
	rep.Geometry = tab.Geometry().String()
	rep.Layout = tab.Layout().String()
	rep.MemoryBytes = tab.MemoryBytes()

	enc, ok := codec.ByName(cfg.ReportCodec)
	if !ok {
		return fmt.Errorf("unknown report codec %q", cfg.ReportCodec)
	}
	b, err := enc.Marshal(rep)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", b)
	return err
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *stabgo.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	return srv
}

// runMain returns the process exit code so deferred cleanup runs before exit.
func runMain(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := newLogger(cfg, stderr)

	var registerer prometheus.Registerer
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		registerer = reg
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := run(ctx, cfg, registerer, stdin, stdout, stderr); err != nil {
		if errors.Is(err, stabgo.ErrNotFound) {
			logger.Error("nothing to restore", "error", err)
		} else {
			logger.Error("run failed", "error", err)
		}
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runMain(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
