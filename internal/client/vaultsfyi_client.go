package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
	"vault_reporter/internal/pkg/metrics"
)

const apiKeyHeader = "x-api-key"

// Endpoint labels used in logs and metrics.
const (
	EndpointIdleAssets     = "idle-assets"
	EndpointDepositOptions = "best-deposit-options"
	EndpointPositions      = "positions"
	EndpointActions        = "transactions"
)

// APIError is returned when the vaults API answers with a non-200 status.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vaults API request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Message)
}

// VaultsFyiClient talks to the vaults.fyi v2 REST API.
type VaultsFyiClient struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Option customizes a VaultsFyiClient.
type Option func(*VaultsFyiClient)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(c *fasthttp.Client) Option {
	return func(vc *VaultsFyiClient) { vc.client = c }
}

// WithRateLimit caps outgoing requests per second. A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(vc *VaultsFyiClient) {
		if perSecond <= 0 {
			vc.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		vc.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewVaultsFyiClient creates a client authenticated with apiKey.
func NewVaultsFyiClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, opts ...Option) *VaultsFyiClient {
	c := &VaultsFyiClient{
		client:  &fasthttp.Client{Name: "vault_reporter"},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger.Named("VaultsFyiClient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetIdleAssets implements port.VaultsClient.
func (c *VaultsFyiClient) GetIdleAssets(ctx context.Context, userAddress string) (payload.Value, error) {
	return c.get(ctx, EndpointIdleAssets, pathOf("v2", "portfolio", "idle-assets", userAddress), nil)
}

// GetDepositOptions implements port.VaultsClient.
func (c *VaultsFyiClient) GetDepositOptions(ctx context.Context, userAddress string, allowedAssets []string) (payload.Value, error) {
	return c.get(ctx, EndpointDepositOptions, pathOf("v2", "portfolio", "best-deposit-options", userAddress), func(args *fasthttp.Args) {
		for _, asset := range allowedAssets {
			args.Add("allowedAssets", asset)
		}
	})
}

// GetPositions implements port.VaultsClient.
func (c *VaultsFyiClient) GetPositions(ctx context.Context, userAddress string) (payload.Value, error) {
	return c.get(ctx, EndpointPositions, pathOf("v2", "portfolio", "positions", userAddress), nil)
}

// GetActions implements port.VaultsClient.
func (c *VaultsFyiClient) GetActions(ctx context.Context, req entity.ActionRequest) (payload.Value, error) {
	if req.Action == "" {
		return payload.Value{}, errors.New("action cannot be empty")
	}
	path := pathOf("v2", "transactions", req.Action, req.UserAddress, req.Network, req.VaultAddress)
	return c.get(ctx, EndpointActions, path, func(args *fasthttp.Args) {
		args.Add("amount", req.Amount)
		args.Add("assetAddress", req.AssetAddress)
		args.Add("simulate", strconv.FormatBool(req.Simulate))
	})
}

func (c *VaultsFyiClient) get(ctx context.Context, endpoint, path string, query func(*fasthttp.Args)) (payload.Value, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return payload.Value{}, fmt.Errorf("rate limiter wait for %s: %w", endpoint, err)
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.baseURL + path)
	if query != nil {
		query(req.URI().QueryArgs())
	}
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	requestURL := req.URI().String()

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	log := c.logger.With(zap.String("endpoint", endpoint), zap.String("url", requestURL))
	log.Debug("Requesting vaults API")

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.ObserveAPIRequest(endpoint, 0, time.Since(start))
		log.Error("Failed to execute request to vaults API", zap.Error(err))
		return payload.Value{}, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}
	metrics.ObserveAPIRequest(endpoint, resp.StatusCode(), time.Since(start))

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		log.Error("Vaults API request failed",
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return payload.Value{}, &APIError{
			StatusCode: resp.StatusCode(),
			URL:        requestURL,
			Message:    errorMessage(rawBody, resp.StatusCode()),
		}
	}

	body, err := payload.Parse(rawBody)
	if err != nil {
		log.Error("Failed to decode vaults API response", zap.ByteString("responseBody", rawBody), zap.Error(err))
		return payload.Value{}, fmt.Errorf("failed to decode response from %s: %w", requestURL, err)
	}

	log.Debug("Vaults API request succeeded", zap.Int("bytes", len(rawBody)))
	return body, nil
}

// errorMessage pulls a human-readable message out of an error body, falling
// back to the raw text.
func errorMessage(raw []byte, status int) string {
	body, err := payload.Parse(raw)
	if err == nil {
		for _, key := range []string{"message", "error"} {
			if msg, ok := body.Get(key).Scalar(); ok {
				return msg
			}
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fasthttp.StatusMessage(status)
}

func pathOf(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
