package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTimeouts(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.RejectEmptyTitle)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default().UserAgent, cfg.UserAgent)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uri-title.yml")
	content := `
connect_timeout: 1s
request_timeout: 2500ms
user_agent: test-agent
reject_empty_title: true
log:
  level: debug
tracing:
  otlp_endpoint: collector:4318
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.True(t, cfg.RejectEmptyTitle)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "collector:4318", cfg.Tracing.OTLPEndpoint)
	assert.Equal(t, DefaultServiceName, cfg.Tracing.ServiceName)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uri-title.yml")
	require.NoError(t, os.WriteFile(path, []byte("request_timeout: 10s\n"), 0o600))

	t.Setenv(EnvRequestTimeout, "750ms")
	t.Setenv(EnvRejectEmptyTitle, "true")
	t.Setenv(EnvUserAgent, "env-agent")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, cfg.RequestTimeout)
	assert.True(t, cfg.RejectEmptyTitle)
	assert.Equal(t, "env-agent", cfg.UserAgent)
}

func TestEnvFileIsLoaded(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte(EnvConnectTimeout+"=2s\n"), 0o600))

	t.Setenv(EnvFile, envPath)
	// godotenv never overrides variables that are already set, so make sure
	// the key is unset and restored after the test.
	t.Setenv(EnvConnectTimeout, "")
	require.NoError(t, os.Unsetenv(EnvConnectTimeout))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		err   error
	}{
		{"bad duration", EnvConnectTimeout, "soon", nil},
		{"zero timeout", EnvRequestTimeout, "0s", ErrNonPositiveTimeout},
		{"negative timeout", EnvConnectTimeout, "-1s", ErrNonPositiveTimeout},
		{"bad bool", EnvRejectEmptyTitle, "maybe", nil},
		{"empty agent", EnvUserAgent, "", ErrEmptyUserAgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
