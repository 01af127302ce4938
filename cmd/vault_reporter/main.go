package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vault_reporter/internal/app/service"
	"vault_reporter/internal/client"
	"vault_reporter/internal/infrastructure/configloader"
	networkdefinition "vault_reporter/internal/infrastructure/network/definition"
	"vault_reporter/internal/infrastructure/tablerender"
	"vault_reporter/internal/pkg/logger"
	"vault_reporter/internal/pkg/metrics"
)

var (
	// Global flags
	configPath  string
	userAddress string
	logLevel    string

	cfg       *configloader.Config
	zapLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vault_reporter",
	Short: "Vault balances, deposit options and positions from the vaults.fyi API",
	Long: `vault_reporter queries the vaults.fyi API for a wallet and prints its idle
balances, the best deposit options for the allowed assets, a generated deposit
transaction and the wallet's open positions as text tables.

Run without a subcommand to execute the workflow once.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zapLogger != nil {
			_ = zapLogger.Sync()
		}
	},
	RunE: runWorkflow,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the balances -> deposit options -> transaction -> positions workflow once",
	Args:  cobra.NoArgs,
	RunE:  runWorkflow,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yml", "path to the YAML config file (empty for defaults)")
	rootCmd.PersistentFlags().StringVar(&userAddress, "address", "", "wallet address to report on (overrides workflow.userAddress)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides logging.level)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration, initializes logging and resolves the API key.
// A missing key stops the command before any request is made.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = configloader.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if userAddress != "" {
		if err := configloader.ValidateAddress(userAddress); err != nil {
			return fmt.Errorf("--address: %w", err)
		}
		cfg.Workflow.UserAddress = userAddress
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	zapLogger, err = logger.Init(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := cfg.ResolveAPIKey(os.LookupEnv); err != nil {
		return err
	}

	metrics.MustRegisterMetrics()
	logger.Debug("Configuration loaded", "path", configPath, "base_url", cfg.VaultsFyi.BaseURL)
	return nil
}

func newVaultsClient() *client.VaultsFyiClient {
	return client.NewVaultsFyiClient(
		cfg.VaultsFyi.BaseURL,
		cfg.APIKey,
		time.Duration(cfg.VaultsFyi.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
		client.WithRateLimit(cfg.VaultsFyi.RateLimitPerSecond, cfg.VaultsFyi.BurstLimit),
	)
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workflow := service.NewWorkflowService(
		newVaultsClient(),
		tablerender.NewGridRenderer(),
		cfg.Workflow,
		logger.NewSlogAdapter("component", "workflow"),
		cmd.OutOrStdout(),
	).WithNetworks(networkdefinition.NewNetworkDefinitionProvider(logger.NewSlogAdapter("component", "networks")))
	summary := workflow.Run(ctx)

	for _, step := range summary.Steps {
		logger.Info("Step finished", "run_id", summary.RunID, "step", step.Step, "status", step.Status, "message", step.Message)
	}
	if summary.Transaction != nil {
		logger.Warn("Deposit transaction was not generated", "run_id", summary.RunID, "error", summary.Transaction.Error)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
