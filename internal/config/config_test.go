package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/logger"
)

func TestLoggerConfig_LogLevel(t *testing.T) {
	cases := map[string]logger.Level{
		"debug": logger.DebugLevel,
		"info":  logger.InfoLevel,
		"warn":  logger.WarnLevel,
		"error": logger.ErrorLevel,
		"":      logger.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, LoggerConfig{Level: in}.LogLevel(), in)
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "db",
		Port:     5432,
		User:     "radar",
		Password: "secret",
		Database: "eventradar",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=radar password=secret dbname=eventradar sslmode=disable", p.DSN())
}
