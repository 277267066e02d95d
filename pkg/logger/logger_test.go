package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_ParsesLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New(Config{Level: "debug"}).GetLevel())
	assert.Equal(t, zerolog.WarnLevel, New(Config{Level: "warn"}).GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, New(Config{Level: "error"}).GetLevel())
}

func TestNew_LevelIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New(Config{Level: "DEBUG"}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(Config{Level: " Info "}).GetLevel())
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, New(Config{Level: "verbose"}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(Config{}).GetLevel())
}
