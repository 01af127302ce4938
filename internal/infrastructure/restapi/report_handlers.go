package restapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valyala/fasthttp"

	"vault_reporter/internal/app/port"
	"vault_reporter/internal/app/report"
	"vault_reporter/internal/client"
	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
	"vault_reporter/internal/infrastructure/configloader"
	"vault_reporter/internal/pkg/metrics"
	"vault_reporter/internal/pkg/utils"
)

// APIReportResponse is the JSON form of a report.
type APIReportResponse struct {
	Report  string     `json:"report"`
	Message string     `json:"message,omitempty"`
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// APIErrorResponse is returned for rejected requests and upstream failures.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// ReportHandler serves the vault reports over HTTP.
type ReportHandler struct {
	client   port.VaultsClient
	renderer port.TableRenderer
	networks port.NetworkRegistry
	cfg      configloader.WorkflowConfig
	logger   port.Logger
}

// NewReportHandler creates a new instance of ReportHandler.
func NewReportHandler(
	c port.VaultsClient,
	r port.TableRenderer,
	networks port.NetworkRegistry,
	cfg configloader.WorkflowConfig,
	l port.Logger,
) *ReportHandler {
	return &ReportHandler{client: c, renderer: r, networks: networks, cfg: cfg, logger: l}
}

// GetBalances handles GET /api/v1/reports/balances/:address.
func (h *ReportHandler) GetBalances(c *gin.Context) {
	h.serve(c, report.Balances, func(ctx context.Context, address string) (payload.Value, error) {
		return h.client.GetIdleAssets(ctx, address)
	})
}

// GetDepositOptions handles GET /api/v1/reports/deposit-options/:address.
// Repeated allowedAssets query parameters override the configured allow-list.
func (h *ReportHandler) GetDepositOptions(c *gin.Context) {
	allowed := c.QueryArray("allowedAssets")
	if len(allowed) == 0 {
		allowed = h.cfg.AllowedAssets
	}
	h.serve(c, report.DepositOptions, func(ctx context.Context, address string) (payload.Value, error) {
		return h.client.GetDepositOptions(ctx, address, allowed)
	})
}

// GetPositions handles GET /api/v1/reports/positions/:address.
func (h *ReportHandler) GetPositions(c *gin.Context) {
	h.serve(c, report.Positions, func(ctx context.Context, address string) (payload.Value, error) {
		return h.client.GetPositions(ctx, address)
	})
}

// GetDepositTransaction handles GET /api/v1/reports/transactions/deposit/:address/:network/:vault.
func (h *ReportHandler) GetDepositTransaction(c *gin.Context) {
	network, ok := h.networks.GetNetworkDefinitionByName(c.Param("network"))
	if !ok {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "unknown network: " + c.Param("network")})
		return
	}
	vault := c.Param("vault")
	if err := configloader.ValidateAddress(vault); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "vault: " + err.Error()})
		return
	}
	assetAddress := c.Query("assetAddress")
	if err := configloader.ValidateAddress(assetAddress); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "assetAddress: " + err.Error()})
		return
	}
	amount := c.DefaultQuery("amount", h.cfg.DepositAmount)
	if _, err := utils.ParseBaseUnits(amount); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: err.Error()})
		return
	}

	h.serve(c, report.TransactionBlob, func(ctx context.Context, address string) (payload.Value, error) {
		return h.client.GetActions(ctx, entity.ActionRequest{
			Action:       configloader.DefaultAction,
			UserAddress:  address,
			Network:      network.Identifier,
			VaultAddress: utils.ChecksumAddress(vault),
			Amount:       amount,
			AssetAddress: utils.ChecksumAddress(assetAddress),
			Simulate:     c.Query("simulate") == "true",
		})
	})
}

func (h *ReportHandler) serve(
	c *gin.Context,
	build func(payload.Value) report.Report,
	fetch func(ctx context.Context, address string) (payload.Value, error),
) {
	address := c.Param("address")
	if err := configloader.ValidateAddress(address); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: err.Error()})
		return
	}
	address = utils.ChecksumAddress(address)

	resp, err := fetch(c.Request.Context(), address)
	if err != nil {
		h.logger.Error("Upstream request failed", "path", c.FullPath(), "user", utils.ShortAddress(address), "error", err)
		c.JSON(upstreamStatus(err), APIErrorResponse{Error: err.Error()})
		return
	}

	rep := build(resp)
	metrics.ObserveReport(rep.Name, rep.HasTable())

	if c.Query("format") == "json" {
		out := APIReportResponse{Report: rep.Name, Message: rep.Message}
		if rep.HasTable() {
			out.Headers = rep.Table.Headers
			out.Rows = rep.Table.Rows
		}
		c.JSON(http.StatusOK, out)
		return
	}
	c.String(http.StatusOK, rep.Render(h.renderer))
}

// upstreamStatus maps a client error to the status returned to the caller.
func upstreamStatus(err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, fasthttp.ErrTimeout) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
