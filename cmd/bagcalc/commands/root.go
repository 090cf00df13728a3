package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bagcalc/internal/config"
	"bagcalc/internal/engine"
	"bagcalc/internal/logging"
	"bagcalc/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
	eng     *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "bagcalc",
	Short: "bagcalc computes soulstone probabilities for repeated bag draws",
	Long: `Calculates the chance that the total soulstones from Bag I and Bag II draws reaches a target,
exactly for small draw counts and by normal approximation for large ones.
Without a subcommand it serves the calculation as MCP tools over stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load()
		if err != nil {
			logging.Init(logging.Options{Verbose: verbose})
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		closeLog, err := logging.Init(logging.Options{Verbose: verbose, Dir: cfg.LogDir})
		if err != nil {
			logging.Init(logging.Options{Verbose: verbose})
			log.Fatal().Err(err).Msg("Failed to initialize logging")
		}
		cobra.OnFinalize(func() { _ = closeLog() })
		log.Debug().Strs("envFiles", cfg.EnvFiles).Str("logDir", cfg.LogDir).Msg("Configuration loaded")

		eng, err = engine.New(cfg.Engine, cfg.Normal)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize engine")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("bag1", cfg.Bags.Bag1.Name()).
			Str("bag2", cfg.Bags.Bag2.Name()).
			Bool("approximation", cfg.Engine.ApproximationAvailable).
			Msg("bagcalc starting")
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as MCP tools over stdio",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	log.Info().Msg("MCP Server starting Stdio loop")
	return mcp.NewServer(cfg, eng, Version).Serve(ctx)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(serveCmd, calcCmd, bagInfoCmd)
}
