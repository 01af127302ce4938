package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"vault_reporter/internal/app/port"
	"vault_reporter/internal/app/report"
	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
	"vault_reporter/internal/infrastructure/configloader"
	"vault_reporter/internal/pkg/metrics"
	"vault_reporter/internal/pkg/utils"
)

// Step names used in run summaries and logs.
const (
	StepBalances       = "balances"
	StepDepositOptions = "deposit-options"
	StepTransaction    = "transaction"
	StepPositions      = "positions"
)

const (
	OpeningBanner = "🔷 ===== Vaults.fyi Example Implementation ===== 🔷\n"
	ClosingBanner = "\n🎉 === Example Implementation Complete === 🎉"

	msgTransactionFailed = "Transaction generation failed"
)

// WorkflowService runs the balances -> deposit options -> transaction -> positions pass
// and prints every report to out.
type WorkflowService struct {
	client   port.VaultsClient
	renderer port.TableRenderer
	cfg      configloader.WorkflowConfig
	networks port.NetworkRegistry
	logger   port.Logger
	out      io.Writer
	newRunID func() string
}

// NewWorkflowService creates a new instance of WorkflowService.
func NewWorkflowService(
	client port.VaultsClient,
	renderer port.TableRenderer,
	cfg configloader.WorkflowConfig,
	l port.Logger,
	out io.Writer,
) *WorkflowService {
	return &WorkflowService{
		client:   client,
		renderer: renderer,
		cfg:      cfg,
		logger:   l,
		out:      out,
		newRunID: func() string { return uuid.NewString() },
	}
}

// WithNetworks enables chain lookups for the deposit target. Unknown networks
// are still sent to the API, which knows more chains than the registry.
func (s *WorkflowService) WithNetworks(networks port.NetworkRegistry) *WorkflowService {
	s.networks = networks
	return s
}

var _ port.WorkflowRunner = (*WorkflowService)(nil)

// Run implements port.WorkflowRunner.
func (s *WorkflowService) Run(ctx context.Context) entity.RunSummary {
	summary := entity.RunSummary{RunID: s.newRunID()}
	log := s.logger.With("run_id", summary.RunID, "user", utils.ShortAddress(s.cfg.UserAddress))
	log.Info("Workflow started", "option_index", s.cfg.OptionIndex(), "allowed_assets", s.cfg.AllowedAssets)

	s.println(OpeningBanner)

	s.println("💰 0. Checking user balances...")
	summary.Steps = append(summary.Steps, s.balances(ctx, log))

	s.println("\n📈 1. Finding best deposit options...")
	options, optionsStep := s.depositOptions(ctx, log)
	summary.Steps = append(summary.Steps, optionsStep)

	txStep, failure := s.transaction(ctx, log, options)
	summary.Steps = append(summary.Steps, txStep)
	summary.Transaction = failure

	s.println("\n💼 3. Checking user positions...")
	summary.Steps = append(summary.Steps, s.positions(ctx, log))

	s.println(ClosingBanner)

	log.Info("Workflow finished", "failed_steps", len(summary.Failed()))
	return summary
}

func (s *WorkflowService) balances(ctx context.Context, log port.Logger) entity.StepResult {
	resp, err := s.client.GetIdleAssets(ctx, s.cfg.UserAddress)
	if err != nil {
		log.Error("Failed to fetch idle assets", "error", err)
		s.printf("Error fetching user balances: %v\n", err)
		return failed(StepBalances, err)
	}
	s.println("💰 User balances:")
	rep := report.Balances(resp)
	s.printReport(rep)
	return succeeded(StepBalances, rep)
}

func (s *WorkflowService) depositOptions(ctx context.Context, log port.Logger) (payload.Value, entity.StepResult) {
	resp, err := s.client.GetDepositOptions(ctx, s.cfg.UserAddress, s.cfg.AllowedAssets)
	if err != nil {
		log.Error("Failed to fetch deposit options", "error", err)
		s.printf("Error fetching deposit options: %v\n", err)
		return payload.Value{}, failed(StepDepositOptions, err)
	}
	s.println("📊 Best deposit options (USDC/USDS only):")
	rep := report.DepositOptions(resp)
	s.printReport(rep)
	return resp, succeeded(StepDepositOptions, rep)
}

func (s *WorkflowService) transaction(ctx context.Context, log port.Logger, options payload.Value) (entity.StepResult, *entity.TransactionFailure) {
	target, err := SelectDepositTarget(options, s.cfg.OptionIndex(), s.cfg.DefaultNetwork)
	if err != nil {
		var notEnough *NotEnoughOptionsError
		switch {
		case errors.As(err, &notEnough):
			s.printf("❌ Not enough deposit options available (need at least %d)\n", notEnough.Need)
		default:
			s.println("❌ No deposit options available")
		}
		log.Warn("Skipping deposit transaction", "reason", err)
		return skipped(StepTransaction, err.Error()), nil
	}

	s.printf("\n💳 2. Generating deposit transaction into %s...\n", target.VaultName)

	if !target.Ready() {
		s.println("❌ Could not find vault address or asset address in deposit option")
		s.printf("Vault address: %s\n", orNA(target.VaultAddress, target.HasVault))
		s.printf("Asset address: %s\n", orNA(target.AssetAddress, target.HasAsset))
		log.Warn("Deposit option is missing an address", "vault", target.VaultName)
		return skipped(StepTransaction, "vault or asset address missing"), nil
	}

	req := entity.ActionRequest{
		Action:       s.cfg.Action,
		UserAddress:  s.cfg.UserAddress,
		Network:      target.Network,
		VaultAddress: target.VaultAddress,
		Amount:       s.cfg.DepositAmount,
		AssetAddress: target.AssetAddress,
		Simulate:     s.cfg.Simulate,
	}
	s.logNetwork(log, target)
	log.Info("Requesting deposit transaction",
		"vault", target.VaultName,
		"vault_address", target.VaultAddress,
		"network", target.Network,
		"amount", s.displayAmount(target.Asset))

	blob, err := s.client.GetActions(ctx, req)
	if err != nil {
		log.Error("Transaction generation failed", "error", err)
		s.printf("❌ Transaction generation failed: %v\n", err)
		return failed(StepTransaction, err), &entity.TransactionFailure{
			Success: false,
			Message: msgTransactionFailed,
			Error:   err.Error(),
		}
	}

	rep := report.TransactionBlob(blob)
	s.printReport(rep)
	return succeeded(StepTransaction, rep), nil
}

func (s *WorkflowService) positions(ctx context.Context, log port.Logger) entity.StepResult {
	resp, err := s.client.GetPositions(ctx, s.cfg.UserAddress)
	if err != nil {
		log.Error("Failed to fetch positions", "error", err)
		s.printf("Error fetching user positions: %v\n", err)
		return failed(StepPositions, err)
	}
	s.println("💼 User positions:")
	rep := report.Positions(resp)
	s.printReport(rep)
	return succeeded(StepPositions, rep)
}

func (s *WorkflowService) logNetwork(log port.Logger, target DepositTarget) {
	if s.networks == nil {
		return
	}
	def, ok := s.networks.GetNetworkDefinitionByName(target.Network)
	if !ok {
		log.Warn("Deposit network is not in the registry", "network", target.Network)
		return
	}
	log.Debug("Deposit network resolved",
		"network", def.Name,
		"chain_id", def.ChainID,
		"vault_url", def.AddressURL(target.VaultAddress))
}

// displayAmount renders the configured base-unit amount in token units when
// the asset's decimals are known, e.g. "1 USDC".
func (s *WorkflowService) displayAmount(asset entity.Asset) string {
	decimals, ok := asset.Decimals()
	if !ok {
		return s.cfg.DepositAmount
	}
	amount, err := utils.ParseBaseUnits(s.cfg.DepositAmount)
	if err != nil {
		return s.cfg.DepositAmount
	}
	symbol, _ := asset.Symbol()
	return utils.FormatBaseUnits(amount, decimals) + " " + symbol
}

func (s *WorkflowService) printReport(rep report.Report) {
	metrics.ObserveReport(rep.Name, rep.HasTable())
	s.println(rep.Render(s.renderer))
}

func (s *WorkflowService) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *WorkflowService) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func succeeded(step string, rep report.Report) entity.StepResult {
	return entity.StepResult{Step: step, Status: entity.StepSucceeded, Message: rep.Message}
}

func failed(step string, err error) entity.StepResult {
	return entity.StepResult{Step: step, Status: entity.StepFailed, Message: err.Error()}
}

func skipped(step, reason string) entity.StepResult {
	return entity.StepResult{Step: step, Status: entity.StepSkipped, Message: reason}
}

func orNA(s string, ok bool) string {
	if !ok {
		return report.NotAvailable
	}
	return s
}
