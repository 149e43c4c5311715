// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	migrateOnly    = pflag.Bool("migrate-only", false, "Runs database migrations and exits")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers = []string{"postgres", "sqlite"}
)

// MigrateOnly reports whether the process should stop after migrations.
func MigrateOnly() bool {
	return *migrateOnly
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")

	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")
	v.BindEnv("host.ssl.certificate_path", "host_ssl_certificate_path")
	v.BindEnv("host.ssl.certificate_key_path", "host_ssl_certificate_key_path")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("mail.enabled", "mail_enabled")
	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")
	v.BindEnv("mail.app_url", "mail_app_url")
	v.BindEnv("mail.site_name", "mail_site_name")

	v.BindEnv("storage.avatars.enabled", "storage_avatars_enabled")
	v.BindEnv("storage.avatars.endpoint", "storage_avatars_endpoint")
	v.BindEnv("storage.avatars.region", "storage_avatars_region")
	v.BindEnv("storage.avatars.access_key_id", "storage_avatars_access_key_id")
	v.BindEnv("storage.avatars.secret_access_key", "storage_avatars_secret_access_key")
	v.BindEnv("storage.avatars.bucket", "storage_avatars_bucket")
	v.BindEnv("storage.avatars.public_url", "storage_avatars_public_url")

	v.BindEnv("ratelimit.requests_per_second", "ratelimit_requests_per_second")
	v.BindEnv("ratelimit.burst", "ratelimit_burst")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("mail.enabled", true)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.site_name", "Uni School")

	v.SetDefault("storage.avatars.enabled", false)
	v.SetDefault("storage.avatars.region", "auto")

	v.SetDefault("ratelimit.requests_per_second", 10)
	v.SetDefault("ratelimit.burst", 20)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetBool("host.ssl.enabled") {
		if v.GetString("host.ssl.certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl.certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if !slices.Contains(validDBDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("no database dsn provided")
	}

	if v.GetBool("mail.enabled") {
		if v.GetString("mail.host") == "" {
			return errors.New("no mail host provided")
		}

		if v.GetString("mail.sender") == "" {
			return errors.New("no mail sender address provided")
		}

		if v.GetString("mail.app_url") == "" {
			return errors.New("no mail app_url provided, links in emails would be broken")
		}
	} else {
		fmt.Println("[WARNING]: Mail sending is disabled. Verification, reset and notification emails won't be delivered")
	}

	if v.GetBool("storage.avatars.enabled") {
		if v.GetString("storage.avatars.access_key_id") == "" {
			return errors.New("avatar storage access key id can't be empty")
		}
		if v.GetString("storage.avatars.secret_access_key") == "" {
			return errors.New("avatar storage secret access key can't be empty")
		}
		if v.GetString("storage.avatars.bucket") == "" {
			return errors.New("avatar storage bucket can't be empty")
		}
		if v.GetString("storage.avatars.public_url") == "" {
			return errors.New("avatar storage public url can't be empty")
		}
	}

	if v.GetInt("ratelimit.requests_per_second") <= 0 {
		return errors.New("ratelimit.requests_per_second must be bigger than 0")
	}

	return nil
}
