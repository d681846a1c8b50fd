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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/twpayne/go-elevationprofile"
	"github.com/twpayne/go-elevationprofile/coordsys"
)

func run() error {
	configFile := flag.String("config", "", "config file")
	srid := flag.Int("srid", coordsys.WGS84.Code(), "coordinate system of input")
	points := flag.String("points", "", "points as \"x,y x,y ...\"")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}

	logger, closeLogger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	if cfg.MetricsAddress != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddress, mux); err != nil {
				logger.Error("metrics server failed", "address", cfg.MetricsAddress, "error", err)
			}
		}()
	}

	registry := coordsys.DefaultRegistry()
	cs, ok := registry.Lookup(*srid)
	if !ok {
		return fmt.Errorf("%d: unknown coordinate system", *srid)
	}

	var parts [][][]float64
	switch {
	case *points != "" && flag.NArg() == 0:
		part, err := parsePoints(*points)
		if err != nil {
			return err
		}
		parts = [][][]float64{part}
	case *points == "" && flag.NArg() == 1:
		parts, err = readFile(flag.Arg(0))
		if err != nil {
			return err
		}
	default:
		return errNoInput
	}

	querier, err := elevationprofile.NewHTTPQuerier(
		elevationprofile.WithBaseURL(cfg.BackendURL),
		elevationprofile.WithCacheSize(cfg.CacheSize),
		elevationprofile.WithHTTPClient(&http.Client{
			Timeout: cfg.Timeout,
		}),
	)
	if err != nil {
		return err
	}

	reprojector, err := coordsys.NewProjReprojector()
	if err != nil {
		return err
	}
	defer reprojector.Close()

	service, err := elevationprofile.NewService(querier,
		elevationprofile.WithLogger(logger),
		elevationprofile.WithMaxChunkPoints(cfg.MaxChunkPoints),
		elevationprofile.WithReprojector(reprojector),
	)
	if err != nil {
		return err
	}

	profile, err := service.ComputeProfile(context.Background(), parts, cs)
	if err != nil {
		return err
	}
	return printProfile(os.Stdout, profile)
}

// newLogger returns a JSON logger writing to cfg.LogFile, rotated with
// lumberjack, or to stderr if no log file is configured.
func newLogger(cfg *config) (*slog.Logger, func(), error) {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = os.Stderr
	closeFunc := func() {}
	if cfg.LogFile != "" {
		lumberjackLogger := &lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxSize:  128, // megabytes
			MaxAge:   28,  // days
			Compress: true,
		}
		w = lumberjackLogger
		closeFunc = func() {
			_ = lumberjackLogger.Close()
		}
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closeFunc, nil
}

func printProfile(w io.Writer, profile *elevationprofile.Profile) error {
	metadata := profile.Metadata
	if _, err := fmt.Fprintf(w, "# distance %.0fm slope distance %.0fm ascent %.0fm descent %.0fm min %.1fm max %.1fm hiking time %s\n",
		metadata.TotalLinearDistance,
		metadata.SlopeDistance,
		metadata.TotalAscent,
		metadata.TotalDescent,
		metadata.MinElevation,
		metadata.MaxElevation,
		metadata.HikingTime,
	); err != nil {
		return err
	}
	for i, segment := range profile.Segments {
		if _, err := fmt.Fprintf(w, "# segment %d\n", i); err != nil {
			return err
		}
		for _, point := range segment.Points {
			elevation := "-"
			if point.HasElevationData {
				elevation = fmt.Sprintf("%.1f", point.Elevation)
			}
			if _, err := fmt.Fprintf(w, "%.1f %s\n", point.Dist, elevation); err != nil {
				return err
			}
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		var profileErr *elevationprofile.ProfileError
		if errors.As(err, &profileErr) {
			fmt.Println("could not compute profile:", profileErr.Cause)
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
