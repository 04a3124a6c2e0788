package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	ExecURL           string        `mapstructure:"exec_url" yaml:"exec_url"`
	ExecTimeout       time.Duration `mapstructure:"exec_timeout" yaml:"exec_timeout"`
	KeepaliveURL      string        `mapstructure:"keepalive_url" yaml:"keepalive_url"`
	KeepaliveInterval time.Duration `mapstructure:"keepalive_interval" yaml:"keepalive_interval"`
	HistoryLimit      int           `mapstructure:"history_limit" yaml:"history_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":5000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		DatabasePath:      "codeshare.db",
		ExecURL:           "https://emkc.org/api/v2/piston/execute",
		ExecTimeout:       15 * time.Second,
		KeepaliveURL:      "",
		KeepaliveInterval: 30 * time.Second,
		HistoryLimit:      50,
	}
}
