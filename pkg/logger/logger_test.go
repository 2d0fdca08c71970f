package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JahongirOfficial/climart-sub004/pkg/logger"
)

// Cada evento sale con el nombre del servicio como campo fijo.
func TestNew_AnexaElCampoService(t *testing.T) {
	l := logger.New(logger.Config{Service: "climart-core", Env: "production", Level: "info"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("arranque")

	assert.Contains(t, buf.String(), `"service":"climart-core"`)
	assert.Contains(t, buf.String(), `"message":"arranque"`)
}

// Un nivel desconocido cae en info: debug queda suprimido.
func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	l := logger.New(logger.Config{Level: "verboso"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Debug().Msg("no debería salir")

	assert.Empty(t, buf.String())
}
