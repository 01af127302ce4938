package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vault_reporter/internal/app/port"
	"vault_reporter/internal/client"
	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
	"vault_reporter/internal/infrastructure/configloader"
	networkdefinition "vault_reporter/internal/infrastructure/network/definition"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const user = "0xdB79e7E9e1412457528e40db9fCDBe69f558777d"

type stubLogger struct{}

func (stubLogger) Info(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Warn(string, ...any) {}
func (stubLogger) Error(string, ...any) {}
func (s stubLogger) With(...any) port.Logger { return s }

type csvRenderer struct{}

func (csvRenderer) Render(t entity.Table) string {
	lines := []string{strings.Join(t.Headers, ",")}
	for _, row := range t.Rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

type stubVaults struct {
	body    string
	err     error
	user    string
	allowed []string
	action  entity.ActionRequest
}

func (s *stubVaults) reply() (payload.Value, error) {
	if s.err != nil {
		return payload.Value{}, s.err
	}
	return payload.Parse([]byte(s.body))
}

func (s *stubVaults) GetIdleAssets(_ context.Context, u string) (payload.Value, error) {
	s.user = u
	return s.reply()
}

func (s *stubVaults) GetDepositOptions(_ context.Context, u string, allowed []string) (payload.Value, error) {
	s.user, s.allowed = u, allowed
	return s.reply()
}

func (s *stubVaults) GetPositions(_ context.Context, u string) (payload.Value, error) {
	s.user = u
	return s.reply()
}

func (s *stubVaults) GetActions(_ context.Context, req entity.ActionRequest) (payload.Value, error) {
	s.action = req
	return s.reply()
}

func newRouter(t *testing.T, vaults *stubVaults) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := configloader.Load("")
	require.NoError(t, err)
	networks := networkdefinition.NewNetworkDefinitionProvider(stubLogger{})
	return SetupRouter(NewReportHandler(vaults, csvRenderer{}, networks, cfg.Workflow, stubLogger{}), zap.NewNop())
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetBalancesText(t *testing.T) {
	vaults := &stubVaults{body: `{"data":[{"symbol":"USDC","balanceUsd":"5"}]}`}
	router := newRouter(t, vaults)

	w := get(router, "/api/v1/reports/balances/"+strings.ToLower(user))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asset,Balance,Balance USD,Network\nUSDC,N/A,$5.00,N/A", w.Body.String())
	assert.Equal(t, user, vaults.user, "address is checksummed before the upstream call")
}

func TestGetPositionsJSON(t *testing.T) {
	router := newRouter(t, &stubVaults{body: `{"data":[]}`})

	w := get(router, "/api/v1/reports/positions/"+user+"?format=json")

	require.Equal(t, http.StatusOK, w.Code)
	var resp APIReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, APIReportResponse{Report: "positions", Message: "No active positions found"}, resp)
}

func TestGetDepositOptionsAllowedAssets(t *testing.T) {
	vaults := &stubVaults{body: `{"userBalances":[]}`}
	router := newRouter(t, vaults)

	get(router, "/api/v1/reports/deposit-options/"+user)
	assert.Equal(t, []string{"USDC", "USDS"}, vaults.allowed)

	w := get(router, "/api/v1/reports/deposit-options/"+user+"?allowedAssets=DAI&allowedAssets=USDT")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No deposit options available", w.Body.String())
	assert.Equal(t, []string{"DAI", "USDT"}, vaults.allowed)
}

func TestGetDepositTransaction(t *testing.T) {
	vaults := &stubVaults{body: `{"actions":[{"name":"Deposit","tx":{"to":"0x1"}}]}`}
	router := newRouter(t, vaults)

	vault := "0x3333333333333333333333333333333333333333"
	asset := "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	w := get(router, fmt.Sprintf("/api/v1/reports/transactions/deposit/%s/Base/%s?assetAddress=%s&amount=5000000", user, vault, asset))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Body.String(), "\n🎯 Generated Transaction Blob:\n"))
	assert.Equal(t, entity.ActionRequest{
		Action:       "deposit",
		UserAddress:  user,
		Network:      "base",
		VaultAddress: vault,
		Amount:       "5000000",
		AssetAddress: asset,
	}, vaults.action)
}

func TestGetDepositTransactionRejectsBadInput(t *testing.T) {
	router := newRouter(t, &stubVaults{body: `{}`})
	vault := "0x3333333333333333333333333333333333333333"
	asset := "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

	for _, target := range []string{
		fmt.Sprintf("/api/v1/reports/transactions/deposit/%s/base/not-a-vault?assetAddress=%s", user, asset),
		fmt.Sprintf("/api/v1/reports/transactions/deposit/%s/base/%s", user, vault),
		fmt.Sprintf("/api/v1/reports/transactions/deposit/%s/base/%s?assetAddress=%s&amount=1.5", user, vault, asset),
		fmt.Sprintf("/api/v1/reports/transactions/deposit/0x12/base/%s?assetAddress=%s", vault, asset),
		fmt.Sprintf("/api/v1/reports/transactions/deposit/%s/atlantis/%s?assetAddress=%s", user, vault, asset),
	} {
		assert.Equal(t, http.StatusBadRequest, get(router, target).Code, target)
	}
}

func TestInvalidAddress(t *testing.T) {
	vaults := &stubVaults{body: `{}`}
	w := get(newRouter(t, vaults), "/api/v1/reports/balances/nope")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid address")
	assert.Empty(t, vaults.user)
}

func TestUpstreamErrors(t *testing.T) {
	notFound := &stubVaults{err: fmt.Errorf("wrapped: %w", &client.APIError{StatusCode: http.StatusNotFound, URL: "u", Message: "no such user"})}
	w := get(newRouter(t, notFound), "/api/v1/reports/positions/"+user)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no such user")

	broken := &stubVaults{err: errors.New("connection refused")}
	w = get(newRouter(t, broken), "/api/v1/reports/positions/"+user)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	slow := &stubVaults{err: fmt.Errorf("request: %w", context.DeadlineExceeded)}
	w = get(newRouter(t, slow), "/api/v1/reports/positions/"+user)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router := newRouter(t, &stubVaults{})

	w := get(router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, get(router, "/metrics").Code)
}
