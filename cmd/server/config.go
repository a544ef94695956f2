package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
	"github.com/utecoffee/warehouse-gateway/internal/app/gateway"
	"github.com/utecoffee/warehouse-gateway/internal/backend"
)

type config struct {
	Port        string   `mapstructure:"port" json:"port"`
	LogLevel    logLevel `mapstructure:"log_level" json:"log_level"`
	MaxBodySize int64    `mapstructure:"max_body_size" json:"max_body_size"`
	StaticDir   string   `mapstructure:"static_dir" json:"static_dir"`

	Backend backend.Config     `mapstructure:"backend" json:"backend"`
	Cookies auth.CookieConfig  `mapstructure:"cookies" json:"cookies"`
	Gate    gateway.GateConfig `mapstructure:"gate" json:"gate"`
}

func loadConfig() config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	var Cfg config
	if err := viper.Unmarshal(&Cfg); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	return Cfg
}

type logLevel string

const (
	logLevelDebug logLevel = "debug"
	logLevelInfo  logLevel = "info"
	logLevelWarn  logLevel = "warn"
	logLevelError logLevel = "error"
)

func (l logLevel) zeroLog() zerolog.Level {
	switch l {
	case logLevelDebug:
		return zerolog.DebugLevel
	case logLevelInfo:
		return zerolog.InfoLevel
	case logLevelWarn:
		return zerolog.WarnLevel
	case logLevelError:
		return zerolog.ErrorLevel

	default:
		return zerolog.InfoLevel
	}
}
