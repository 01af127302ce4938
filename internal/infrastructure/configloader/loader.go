package configloader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingAPIKey is returned when the API key environment variable is unset or blank.
	ErrMissingAPIKey = errors.New("vaults API key is not set")
	// ErrInvalidAddress is returned for malformed hex addresses.
	ErrInvalidAddress = errors.New("invalid address")
)

const (
	DefaultBaseURL              = "https://api.vaults.fyi"
	DefaultAPIKeyEnv            = "VAULTS_FYI_API_KEY"
	DefaultRequestTimeoutMillis = 15000
	DefaultRateLimitPerSecond   = 5
	DefaultBurstLimit           = 5

	DefaultUserAddress        = "0xdB79e7E9e1412457528e40db9fCDBe69f558777d"
	DefaultDepositAmount      = "1000000"
	DefaultNetwork            = "mainnet"
	DefaultAction             = "deposit"
	DefaultDepositOptionIndex = 2

	DefaultLogLevel = "info"
	DefaultPort     = "8080"
)

// DefaultAllowedAssets restricts deposit options to the stablecoins the workflow can fund.
var DefaultAllowedAssets = []string{"USDC", "USDS"}

// VaultsFyiConfig holds the API client settings.
type VaultsFyiConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKeyEnv            string  `yaml:"apiKeyEnv"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	BurstLimit           int     `yaml:"burstLimit"`
}

// WorkflowConfig holds the inputs of the example workflow run.
type WorkflowConfig struct {
	UserAddress    string   `yaml:"userAddress"`
	DepositAmount  string   `yaml:"depositAmount"` // base units, e.g. 1000000 == 1 USDC
	AllowedAssets  []string `yaml:"allowedAssets"`
	DefaultNetwork string   `yaml:"defaultNetwork"`
	Action         string   `yaml:"action"`
	// DepositOptionIndex picks the option of the first balance entry; nil means the default.
	DepositOptionIndex *int `yaml:"depositOptionIndex"`
	Simulate           bool `yaml:"simulate"`
}

// OptionIndex returns the configured deposit option index.
func (w WorkflowConfig) OptionIndex() int {
	if w.DepositOptionIndex == nil {
		return DefaultDepositOptionIndex
	}
	return *w.DepositOptionIndex
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ServerConfig holds the report API server settings.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// Config is the top-level configuration structure.
type Config struct {
	VaultsFyi VaultsFyiConfig `yaml:"vaultsFyi"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`

	// APIKey is never read from the file, only from the environment.
	APIKey string `yaml:"-"`
}

// Load reads the YAML configuration at path and applies defaults.
// An empty path yields the defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		logrus.Infof("Loading configuration from path: %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.Errorf("Failed to read config file %s: %v", path, err)
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	} else {
		logrus.Info("No configuration file given, using defaults")
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.VaultsFyi.BaseURL == "" {
		cfg.VaultsFyi.BaseURL = DefaultBaseURL
		logrus.Infof("VaultsFyi.BaseURL not set, defaulting to %s", cfg.VaultsFyi.BaseURL)
	}
	if cfg.VaultsFyi.APIKeyEnv == "" {
		cfg.VaultsFyi.APIKeyEnv = DefaultAPIKeyEnv
	}
	if cfg.VaultsFyi.RequestTimeoutMillis <= 0 {
		cfg.VaultsFyi.RequestTimeoutMillis = DefaultRequestTimeoutMillis
		logrus.Infof("VaultsFyi.RequestTimeoutMillis not set, defaulting to %d ms", cfg.VaultsFyi.RequestTimeoutMillis)
	}
	if cfg.VaultsFyi.RateLimitPerSecond == 0 {
		cfg.VaultsFyi.RateLimitPerSecond = DefaultRateLimitPerSecond
	}
	if cfg.VaultsFyi.BurstLimit <= 0 {
		cfg.VaultsFyi.BurstLimit = DefaultBurstLimit
	}

	if cfg.Workflow.UserAddress == "" {
		cfg.Workflow.UserAddress = DefaultUserAddress
		logrus.Infof("Workflow.UserAddress not set, defaulting to %s", cfg.Workflow.UserAddress)
	}
	if cfg.Workflow.DepositAmount == "" {
		cfg.Workflow.DepositAmount = DefaultDepositAmount
	}
	if len(cfg.Workflow.AllowedAssets) == 0 {
		cfg.Workflow.AllowedAssets = append([]string(nil), DefaultAllowedAssets...)
	}
	if cfg.Workflow.DefaultNetwork == "" {
		cfg.Workflow.DefaultNetwork = DefaultNetwork
	}
	if cfg.Workflow.Action == "" {
		cfg.Workflow.Action = DefaultAction
	}
	if cfg.Workflow.DepositOptionIndex == nil {
		index := DefaultDepositOptionIndex
		cfg.Workflow.DepositOptionIndex = &index
		logrus.Infof("Workflow.DepositOptionIndex not set, defaulting to %d", index)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	if err := ValidateAddress(c.Workflow.UserAddress); err != nil {
		return fmt.Errorf("workflow.userAddress: %w", err)
	}
	amount, ok := math.ParseBig256(c.Workflow.DepositAmount)
	if !ok || amount.Sign() <= 0 {
		return fmt.Errorf("workflow.depositAmount %q is not a positive integer amount", c.Workflow.DepositAmount)
	}
	if c.Workflow.OptionIndex() < 0 {
		return fmt.Errorf("workflow.depositOptionIndex must not be negative, got %d", c.Workflow.OptionIndex())
	}
	return nil
}

// ResolveAPIKey reads the API key from the environment variable named in the config.
// lookup is usually os.LookupEnv.
func (c *Config) ResolveAPIKey(lookup func(string) (string, bool)) error {
	key, ok := lookup(c.VaultsFyi.APIKeyEnv)
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("%w: set %s", ErrMissingAPIKey, c.VaultsFyi.APIKeyEnv)
	}
	c.APIKey = key
	return nil
}

// ValidateAddress checks that address is a 20-byte hex address.
func ValidateAddress(address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return nil
}
