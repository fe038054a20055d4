package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
bus: 3
transport: devfs
danger: true
capture: /var/log/edidflash/session.elog
log-level: debug
tools-paths:
  i2cget: /opt/i2c-tools/bin/i2cget
  i2cset: /opt/i2c-tools/bin/i2cset
`)

	f, err := Parse(data)
	require.NoError(t, err)

	require.NotNil(t, f.Bus)
	assert.Equal(t, 3, *f.Bus)
	assert.Equal(t, TransportDevfs, f.Transport)
	assert.True(t, f.Danger)
	assert.Equal(t, "/var/log/edidflash/session.elog", f.Capture)
	assert.Equal(t, "debug", f.LogLevel)
	assert.Equal(t, "/opt/i2c-tools/bin/i2cget", f.Tools.I2CGet)
	assert.Equal(t, "/opt/i2c-tools/bin/i2cset", f.Tools.I2CSet)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse([]byte("{}\n"))
	require.NoError(t, err)

	assert.Nil(t, f.Bus)
	assert.Empty(t, f.Transport)
	assert.False(t, f.Danger)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("buss: 3\n"))
	require.Error(t, err)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown transport", yaml: "transport: spi\n"},
		{name: "negative bus", yaml: "bus: -1\n"},
		{name: "unknown log level", yaml: "log-level: loud\n"},
		{name: "not yaml", yaml: ": : :\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edidflash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bus: 7\ntransport: tools\n"), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, f.Bus)
	assert.Equal(t, 7, *f.Bus)
	assert.Equal(t, TransportTools, f.Transport)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
