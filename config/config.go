// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minPasswordLength = 8
)

// StorageConfig holds flat-file persistence settings. Each collection lives
// in its own JSON document under DataDir.
type StorageConfig struct {
	DataDir        string `mapstructure:"DATA_DIR" yaml:"data_dir"`
	UsersFile      string `mapstructure:"USERS_FILE" yaml:"users_file"`
	TravellersFile string `mapstructure:"TRAVELLERS_FILE" yaml:"travellers_file"`
	TripsFile      string `mapstructure:"TRIPS_FILE" yaml:"trips_file"`
	InvoicesFile   string `mapstructure:"INVOICES_FILE" yaml:"invoices_file"`
}

// AuthConfig holds authentication settings, including the credential used to
// seed the initial administrator account. The password has no built-in
// default: seeding refuses to run without an explicit value.
type AuthConfig struct {
	DefaultAdminUsername string `mapstructure:"DEFAULT_ADMIN_USERNAME" yaml:"default_admin_username"`
	DefaultAdminPassword string `mapstructure:"DEFAULT_ADMIN_PASSWORD" yaml:"default_admin_password"`
	DefaultAdminName     string `mapstructure:"DEFAULT_ADMIN_NAME" yaml:"default_admin_name"`
	// GenericLoginErrors collapses the distinct "username not found" and
	// "incorrect password" login messages into one generic failure message.
	GenericLoginErrors bool `mapstructure:"GENERIC_LOGIN_ERRORS" yaml:"generic_login_errors"`
}

// ReportsConfig holds settings for the report output directory.
type ReportsConfig struct {
	OutputDir string `mapstructure:"OUTPUT_DIR" yaml:"output_dir"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Environment Environment   `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Storage     StorageConfig `mapstructure:"STORAGE" yaml:"storage"`
	Auth        AuthConfig    `mapstructure:"AUTH" yaml:"auth"`
	Reports     ReportsConfig `mapstructure:"REPORTS" yaml:"reports"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("STORAGE.DATA_DIR", "data")
	v.SetDefault("STORAGE.USERS_FILE", "users.json")
	v.SetDefault("STORAGE.TRAVELLERS_FILE", "travellers.json")
	v.SetDefault("STORAGE.TRIPS_FILE", "trips.json")
	v.SetDefault("STORAGE.INVOICES_FILE", "invoices.json")
	v.SetDefault("AUTH.DEFAULT_ADMIN_USERNAME", "admin")
	v.SetDefault("AUTH.DEFAULT_ADMIN_PASSWORD", "")
	v.SetDefault("AUTH.DEFAULT_ADMIN_NAME", "System Administrator")
	v.SetDefault("AUTH.GENERIC_LOGIN_ERRORS", false)
	v.SetDefault("REPORTS.OUTPUT_DIR", "reports")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"ENVIRONMENT", "ENVIRONMENT"},
		// Storage config
		{"STORAGE.DATA_DIR", "DATA_DIR"},
		{"STORAGE.USERS_FILE", "USERS_FILE"},
		{"STORAGE.TRAVELLERS_FILE", "TRAVELLERS_FILE"},
		{"STORAGE.TRIPS_FILE", "TRIPS_FILE"},
		{"STORAGE.INVOICES_FILE", "INVOICES_FILE"},
		// Auth config
		{"AUTH.DEFAULT_ADMIN_USERNAME", "AUTH_DEFAULT_ADMIN_USERNAME"},
		{"AUTH.DEFAULT_ADMIN_PASSWORD", "AUTH_DEFAULT_ADMIN_PASSWORD"},
		{"AUTH.DEFAULT_ADMIN_NAME", "AUTH_DEFAULT_ADMIN_NAME"},
		{"AUTH.GENERIC_LOGIN_ERRORS", "AUTH_GENERIC_LOGIN_ERRORS"},
		// Reports config
		{"REPORTS.OUTPUT_DIR", "REPORTS_OUTPUT_DIR"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("ENVIRONMENT"),
		"data_dir", v.GetString("STORAGE.DATA_DIR"),
		"reports_dir", v.GetString("REPORTS.OUTPUT_DIR"),
		"default_admin_username", v.GetString("AUTH.DEFAULT_ADMIN_USERNAME"),
		"generic_login_errors", v.GetBool("AUTH.GENERIC_LOGIN_ERRORS"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Storage.DataDir == "" {
		return fmt.Errorf("storage data dir is required")
	}
	if cfg.Storage.UsersFile == "" || cfg.Storage.TravellersFile == "" ||
		cfg.Storage.TripsFile == "" || cfg.Storage.InvoicesFile == "" {
		return fmt.Errorf("all four collection file names are required")
	}

	if cfg.Auth.DefaultAdminUsername == "" {
		return fmt.Errorf("default admin username is required")
	}
	if cfg.Auth.DefaultAdminPassword == "" {
		return fmt.Errorf("default admin password is required (set AUTH_DEFAULT_ADMIN_PASSWORD)")
	}
	if len(cfg.Auth.DefaultAdminPassword) < minPasswordLength {
		return fmt.Errorf("default admin password must be at least %d characters long", minPasswordLength)
	}

	if cfg.Reports.OutputDir == "" {
		return fmt.Errorf("reports output dir is required")
	}

	return nil
}
