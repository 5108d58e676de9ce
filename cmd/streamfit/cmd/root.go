// Package cmd implements the streamfit CLI: the root command runs in
// default stdio mode unless --service is given.
package cmd

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/streamfit/streamfit/pkg/telemetry"
	"github.com/streamfit/streamfit/pkg/utils"

	streamfitconfig "github.com/streamfit/streamfit/pkg/config"

	"github.com/streamfit/streamfit/internal/clustering"
	"github.com/streamfit/streamfit/internal/pointsource"
	"github.com/streamfit/streamfit/internal/service"
	"github.com/streamfit/streamfit/internal/space"
	"github.com/streamfit/streamfit/internal/streamer"
)

var (
	serviceMode bool
	port        int
	configPath  string
	verbose     bool
)

type stdoutSink struct {
	w *bufio.Writer
}

func (s *stdoutSink) Send(line []byte) error {
	if _, err := s.w.Write(line); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	return s.w.Flush()
}

var rootCmd = &cobra.Command{
	Use:   "streamfit",
	Short: "Fit an evolving set of weighted balls to a stream of points",
	Long: `streamfit reads an unbounded stream of points and incrementally fits
a small set of weighted balls (cluster centroids with a radius and mass)
to them. Each point is absorbed by the nearest ball or spawns a new one;
balls that drift close together merge, and every ball's mass decays over
time so stale structure is eventually pruned.`,
	Example: `  # Read points from stdin, write model snapshots to stdout
  streamfit < points.ndjson

  # Run as a WebSocket service on the default port (9001, or $PORT)
  streamfit --service

  # Run the service on an explicit port
  streamfit --service --port 9100`,
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVar(&serviceMode, "service", false, "bind a WebSocket service instead of reading stdio")
	rootCmd.Flags().IntVar(&port, "port", 0, "service port (defaults to $PORT, or 9001)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a streamfit config file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and exits the process with a non-zero
// status on any fatal error, per the CLI's error-handling contract.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := utils.LevelInfo
	if verbose {
		level = utils.LevelDebug
	}
	log := utils.NewDefaultLogger(level, os.Stderr)
	timer := utils.NewTimer("startup", utils.WithLogger(log), utils.WithEnabled(verbose))

	phase := timer.Start("telemetry")
	shutdownTelemetry, err := telemetry.Init(context.Background())
	phase.Stop()
	if err != nil {
		log.Warn("telemetry disabled: %v", err)
	}
	defer func() { _ = shutdownTelemetry(context.Background()) }()

	phase = timer.Start("config")
	cfg, err := streamfitconfig.Load(configPath)
	phase.Stop()
	if err != nil {
		log.Error("failed to load configuration: %v", err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Service.Port = port
	}
	timer.PrintSummary()

	constants := clustering.Constants{
		ExtraThreshold: cfg.Algo.ExtraThreshold,
		IntraThreshold: cfg.Algo.IntraThreshold,
		MergeThreshold: cfg.Algo.MergeThreshold,
		DecayFactor:    cfg.Algo.DecayFactor,
		DecayThreshold: cfg.Algo.DecayThreshold,
	}

	if serviceMode {
		return runService(cfg.Service.Port, constants, log)
	}
	return runStdio(constants, log)
}

func runStdio(constants clustering.Constants, log utils.Logger) error {
	m := clustering.NewModel[[]float64](space.Euclidean())
	src := pointsource.NewStdin(os.Stdin)
	sink := &stdoutSink{w: bufio.NewWriter(os.Stdout)}

	err := streamer.Run(m, constants, src, sink)
	if err != nil {
		log.Error("stream halted: %v", err)
		return err
	}
	return nil
}

func runService(servicePort int, constants clustering.Constants, log utils.Logger) error {
	svc := service.New(service.Config{
		Port:      servicePort,
		Constants: constants,
		Log:       log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
	}()

	log.Info("streamfit service listening on port %d", servicePort)
	if err := svc.Run(ctx); err != nil {
		log.Error("service failed: %v", err)
		return err
	}
	return nil
}
