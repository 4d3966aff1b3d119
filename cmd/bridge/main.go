package main

import (
	"context"
	"errors"
	"fibaro-hap-bridge/internal/adapters/input/http"
	"fibaro-hap-bridge/internal/adapters/output/memory"
	"fibaro-hap-bridge/internal/adapters/output/persistence"
	"fibaro-hap-bridge/internal/domain/service"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:          "bridge",
		Short:        "Expose Fibaro Home Center devices as HomeKit-style accessories",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), resolveConfigPath(configPath), verbose)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.json, .yaml); defaults to $CONFIG_PATH")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newConfigCmd(&configPath))
	return cmd
}

func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Validate the config file and rewrite it with defaults filled in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfigPath(*configPath)
			cfg, err := service.NewConfigService(persistence.NewFileConfigRepository(path)).Rewrite(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("%s: %d accessories\n", path, len(cfg.Accessories))
			return nil
		},
	}
}

func resolveConfigPath(path string) string {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "/app/config.json"
	}
	return path
}

func run(ctx context.Context, configPath string, verbose bool) error {
	log := logrus.New()

	configRepo := persistence.NewFileConfigRepository(configPath)
	cfg, err := configRepo.Get(ctx)
	if err != nil {
		return err
	}
	configureLogger(log, cfg.LogLevel, verbose)

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	interval, err := cfg.Interval()
	if err != nil {
		return err
	}

	store := memory.NewStore()
	bridgeService := service.NewBridgeService(store, service.NewConfigService(configRepo), log)
	if err := bridgeService.Load(ctx); err != nil {
		return err
	}

	go func() {
		if err := bridgeService.Run(ctx, interval); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("refresh loop stopped")
		}
	}()

	httpServer := http.NewServer(bridgeService, log)
	log.WithFields(logrus.Fields{
		"addr":   cfg.ListenAddr,
		"config": configPath,
	}).Info("HTTP Server listening")
	return httpServer.ListenAndServe(cfg.ListenAddr)
}

func configureLogger(log *logrus.Logger, level string, verbose bool) {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("log_level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}
