package httpclientkind

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/systemic/internal/ctxlog"
)

func TestInit_DefaultsTimeoutWhenAbsent(t *testing.T) {
	value, err := Init(ctxlog.Discard(), map[string]any{})
	require.NoError(t, err)

	client, ok := value.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, client.Timeout)
}

func TestInit_ParsesConfiguredTimeout(t *testing.T) {
	value, err := Init(ctxlog.Discard(), map[string]any{"timeout": "5s"})
	require.NoError(t, err)

	client := value.(*http.Client)
	assert.Equal(t, 5*time.Second, client.Timeout)
}

func TestInit_RejectsMalformedTimeout(t *testing.T) {
	_, err := Init(ctxlog.Discard(), map[string]any{"timeout": "not-a-duration"})
	assert.Error(t, err)
}

func TestHalt_ClosesIdleConnectionsAndReturnsSameClient(t *testing.T) {
	client := &http.Client{}
	value, err := Halt(ctxlog.Discard(), map[string]any{"value": client})
	require.NoError(t, err)
	assert.Same(t, client, value)
}

func TestHalt_NilValueIsANoop(t *testing.T) {
	value, err := Halt(ctxlog.Discard(), map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, value)
}
