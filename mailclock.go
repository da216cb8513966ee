// Mail clock service

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/mailclock/base/zaplog"

	"example.com/mailclock/core/clock"
	"example.com/mailclock/core/config"
	"example.com/mailclock/core/datetime"

	driver "example.com/mailclock/driver/clock"
)

const (
	dateNumPolls = 10

	// Round trip delays are recorded in microseconds, up to 10 s.
	histoMaxRTD     = 10_000_000
	histoSigFigures = 3
)

var (
	log *zap.Logger
)

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		// See https://github.com/scionproto/scion/blob/master/pkg/log/log.go
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
	zaplog.SetLogger(log)
}

func loadConfig(configFile string) config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	return cfg
}

func runMonitor(log *zap.Logger, addr string) {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

// newSynchronizer builds the platform and time source selected by cfg. histo
// may be nil.
func newSynchronizer(log *zap.Logger, cfg config.Config, histo *hdrhistogram.Histogram) *clock.Synchronizer {
	switch cfg.TimeSource {
	case config.TimeSourceSystem:
		p := driver.NewHostClock(nil)
		return clock.New(log, p, clock.PushSynced{Network: p})
	case config.TimeSourceNTP:
		p := driver.NewSystemClock(log, nil)
		p.LocalAddr = cfg.LocalAddr
		p.Timeout = cfg.Timeout()
		p.Client.DSCP = cfg.DSCPValue()
		p.Client.Histo = histo
		return clock.New(log, p, clock.PullSynced{Network: p})
	default:
		panic("unexpected time source")
	}
}

func synchronize(ctx context.Context, s *clock.Synchronizer, cfg config.Config) bool {
	return s.Synchronize(ctx, cfg.GMTOffset, cfg.DaylightOffset, cfg.NTPServers)
}

func runDate(w io.Writer, configFile string) {
	cfg := loadConfig(configFile)
	ctx := context.Background()
	s := newSynchronizer(log, cfg, nil)
	for i := 0; i < dateNumPolls; i++ {
		if synchronize(ctx, s, cfg) {
			break
		}
		log.Debug("clock not ready", zap.Int("poll", i))
		time.Sleep(cfg.Interval())
	}
	if !s.ClockReady() {
		log.Fatal("failed to synchronize clock")
	}
	fmt.Fprintln(w, s.DateTimeString())
}

func runParse(w io.Writer, date string, gmt bool) {
	fmt.Fprintln(w, datetime.Parse(time.UTC, date, gmt))
}

func runFormat(w io.Writer, epoch string, offset float64) error {
	ts, err := strconv.ParseInt(epoch, 10, 64)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, datetime.Format(time.UTC, ts, offset))
	return nil
}

func runService(configFile string) {
	cfg := loadConfig(configFile)

	if cfg.MetricsAddr != "" {
		go runMonitor(log, cfg.MetricsAddr)
	}

	histo := hdrhistogram.New(1, histoMaxRTD, histoSigFigures)
	s := newSynchronizer(log, cfg, histo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()

	ready := false
	for {
		r := synchronize(ctx, s, cfg)
		if r != ready {
			ready = r
			log.Info("clock readiness changed",
				zap.Bool("ready", ready),
				zap.String("date", s.DateTimeString()),
			)
		}
		if ready {
			log.Debug("clock",
				zap.Int64("timestamp", s.CurrentTimestamp()),
				zap.Int64("timestamp_ms", s.CurrentTimestampMillis()),
			)
		}
		if histo.TotalCount() != 0 {
			log.Debug("round trip delays",
				zap.Int64("count", histo.TotalCount()),
				zap.Int64("p50_us", histo.ValueAtQuantile(50)),
				zap.Int64("p99_us", histo.ValueAtQuantile(99)),
			)
		}
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case <-ticker.C:
		}
	}
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
		gmt        bool
		offset     float64
	)

	dateFlags := flag.NewFlagSet("date", flag.ExitOnError)
	parseFlags := flag.NewFlagSet("parse", flag.ExitOnError)
	formatFlags := flag.NewFlagSet("format", flag.ExitOnError)
	runFlags := flag.NewFlagSet("run", flag.ExitOnError)

	dateFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	dateFlags.StringVar(&configFile, "config", "", "Config file")

	parseFlags.BoolVar(&gmt, "gmt", false, "Apply the time zone offset of the date")

	formatFlags.Float64Var(&offset, "offset", 0, "Time zone offset in hours")

	runFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	runFlags.StringVar(&configFile, "config", "", "Config file")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case dateFlags.Name():
		err := dateFlags.Parse(os.Args[2:])
		if err != nil || dateFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runDate(os.Stdout, configFile)
	case parseFlags.Name():
		err := parseFlags.Parse(os.Args[2:])
		if err != nil || parseFlags.NArg() != 1 {
			exitWithUsage()
		}
		runParse(os.Stdout, parseFlags.Arg(0), gmt)
	case formatFlags.Name():
		err := formatFlags.Parse(os.Args[2:])
		if err != nil || formatFlags.NArg() != 1 {
			exitWithUsage()
		}
		err = runFormat(os.Stdout, formatFlags.Arg(0), offset)
		if err != nil {
			exitWithUsage()
		}
	case runFlags.Name():
		err := runFlags.Parse(os.Args[2:])
		if err != nil || runFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runService(configFile)
	default:
		exitWithUsage()
	}
}
