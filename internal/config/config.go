// =============================================================================
// Order Form Builder - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration: directories, the purchase form template, generation limits,
// the requester profile and the project presets.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. Main Config (config.yaml)
//   3. A ".env" file next to the working directory, when present
//   4. ORDERFORM_* environment variables
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvOutputDir       = "ORDERFORM_OUTPUT_DIR"
	EnvErrorLogDir     = "ORDERFORM_ERROR_LOG_DIR"
	EnvTemplate        = "ORDERFORM_PURCHASE_FORM_TEMPLATE"
	EnvLogLevel        = "ORDERFORM_LOG_LEVEL"
	EnvMaxConcurrency  = "ORDERFORM_MAX_CONCURRENCY"
	EnvOrderItemLimit  = "ORDERFORM_ORDER_ITEM_LIMIT"
	EnvSidecarPath     = "ORDERFORM_SIDECAR_PATH"
	EnvContactEmail    = "ORDERFORM_CONTACT_EMAIL"
	EnvContactPhone    = "ORDERFORM_CONTACT_PHONE"
	EnvNetID           = "ORDERFORM_NET_ID"
	DefaultItemLimit   = 20
	DefaultConcurrency = 4
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// OutputDir is where generated purchase orders and remaining-items
	// spreadsheets are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ErrorLogDir is where diagnostics and per-vendor failures are logged.
	// Default: "./logs"
	ErrorLogDir string `yaml:"error_log_dir"`

	// PurchaseFormTemplate is the path of the fillable purchase request PDF.
	// Default: "./templates/purchase-form.pdf"
	PurchaseFormTemplate string `yaml:"purchase_form_template"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of vendor documents assembled at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// OrderItemLimit is the number of line items the online order form
	// accepts. Items past the limit go to the remaining-items spreadsheet.
	// Default: 20
	OrderItemLimit int `yaml:"order_item_limit"`

	// SidecarPath is the form-automation executable used by "submit".
	SidecarPath string `yaml:"sidecar_path"`

	// =========================================================================
	// REQUESTER SETTINGS
	// =========================================================================

	// Profile identifies the requester and their organization.
	Profile Profile `yaml:"profile"`

	// Projects are the selectable project presets. When empty and the club is
	// Comet Robotics, the built-in presets are used.
	Projects []Project `yaml:"projects"`

	// JustificationMode decides how a project's justification combines with
	// a typed-in one: "replace" or "append".
	// Default: "replace"
	JustificationMode JustificationMode `yaml:"justification_mode"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file. A missing file is
//                 not an error; defaults and the environment still apply.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be parsed or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	applyMainConfigDefaults(&config)
	config.loadEnv()

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &config, nil
}

// Default returns a configuration built only from defaults.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ErrorLogDir == "" {
		config.ErrorLogDir = "./logs"
	}
	if config.PurchaseFormTemplate == "" {
		config.PurchaseFormTemplate = "./templates/purchase-form.pdf"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = DefaultConcurrency
	}
	if config.OrderItemLimit == 0 {
		config.OrderItemLimit = DefaultItemLimit
	}
	if config.JustificationMode == "" {
		config.JustificationMode = JustificationReplace
	}
	if config.Profile.Club.Type == "" {
		config.Profile.Club.Type = ClubCometRobotics
	}
	if len(config.Projects) == 0 && config.Profile.Club.Type == ClubCometRobotics {
		config.Projects = CometRoboticsProjects()
	}
}

// loadEnv applies ORDERFORM_* overrides. Unparseable numbers are ignored
// and the YAML or default value stays.
func (c *MainConfig) loadEnv() {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvErrorLogDir); v != "" {
		c.ErrorLogDir = v
	}
	if v := os.Getenv(EnvTemplate); v != "" {
		c.PurchaseFormTemplate = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvMaxConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrency = n
		}
	}
	if v := os.Getenv(EnvOrderItemLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.OrderItemLimit = n
		}
	}
	if v := os.Getenv(EnvSidecarPath); v != "" {
		c.SidecarPath = v
	}
	if v := os.Getenv(EnvContactEmail); v != "" {
		c.Profile.User.Email = v
	}
	if v := os.Getenv(EnvContactPhone); v != "" {
		c.Profile.User.Phone = v
	}
	if v := os.Getenv(EnvNetID); v != "" {
		c.Profile.User.NetID = v
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}
	if config.OrderItemLimit < 1 {
		return fmt.Errorf("order_item_limit must be at least 1, got %d", config.OrderItemLimit)
	}
	switch config.JustificationMode {
	case JustificationReplace, JustificationAppend:
	default:
		return fmt.Errorf("unknown justification_mode %q", config.JustificationMode)
	}
	switch config.Profile.Club.Type {
	case ClubCometRobotics, ClubOther:
	default:
		return fmt.Errorf("unknown club type %q", config.Profile.Club.Type)
	}

	seen := make(map[string]bool, len(config.Projects))
	for _, p := range config.Projects {
		if p.Key == "" {
			return errors.New("project preset without key")
		}
		if seen[p.Key] {
			return fmt.Errorf("duplicate project preset %q", p.Key)
		}
		seen[p.Key] = true
	}

	return nil
}
