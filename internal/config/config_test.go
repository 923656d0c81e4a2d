package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		MongoDB: MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "bizpulse"},
		Auth:    AuthConfig{JWTSecret: "secret"},
		Digest:  DigestConfig{CronSchedule: "0 8 1 * *", Timezone: "Africa/Nairobi"},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
		{"uri", func(c *Config) { c.MongoDB.URI = "" }, "MONGODB_URI"},
		{"dbname", func(c *Config) { c.MongoDB.DBName = "" }, "MONGODB_DB_NAME"},
		{"jwt", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET"},
		{"cron", func(c *Config) { c.Digest.CronSchedule = "" }, "DIGEST_CRON_SCHEDULE"},
		{"timezone", func(c *Config) { c.Digest.Timezone = "" }, "TIMEZONE"},
	}
	for _, c := range cases {
		cfg := validConfig()
		c.mutate(cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: Validate = %v, want error mentioning %s", c.name, err, c.want)
		}
	}
}

func TestValidateSheetsPairing(t *testing.T) {
	cfg := validConfig()
	cfg.Sheets.SpreadsheetID = "sheet-id"
	if err := cfg.Validate(); err == nil {
		t.Error("spreadsheet id without credentials path must fail validation")
	}

	cfg.Sheets.CredentialsPath = "/etc/creds.json"
	if err := cfg.Validate(); err != nil {
		t.Errorf("paired sheet settings must validate: %v", err)
	}
}

func TestLoadUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DB_NAME", "")
	t.Setenv("DIGEST_CRON_SCHEDULE", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.MongoDB.DBName != "bizpulse" {
		t.Errorf("DBName = %q, want bizpulse", cfg.MongoDB.DBName)
	}
	if cfg.Digest.CronSchedule != "0 8 1 * *" {
		t.Errorf("CronSchedule = %q", cfg.Digest.CronSchedule)
	}
	if cfg.Digest.Timezone != "Africa/Nairobi" {
		t.Errorf("Timezone = %q", cfg.Digest.Timezone)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("Load = %v, want JWT_SECRET error", err)
	}
}
