package logger

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Service: "appwms-api", Output: &buf})

	l.Info().Msg("no debe salir")
	l.Warn().Str("picking", "WH/IN/1").Msg("exceso")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "appwms-api", entry["service"])
	assert.Equal(t, "WH/IN/1", entry["picking"])
}

func TestNew_RedirigeLoggerGlobal(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: "debug", Output: &buf})

	log.Debug().Msg("global")
	assert.Contains(t, buf.String(), `"message":"global"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruidoso"))
}
