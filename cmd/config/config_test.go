package configcmd

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/fintrack/cmd/internal/clitest"
	"fjacquet/fintrack/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunInit(t *testing.T) {
	clitest.Setup(t)
	root.AppConfig.Display.Currency = "EUR"
	target := filepath.Join(t.TempDir(), "fintrack", "config.yaml")
	path, force = target, false
	t.Cleanup(func() { path, force = "", false })

	cmd, out := clitest.Command(t)
	require.NoError(t, runInit(cmd, nil))
	assert.Equal(t, "Wrote configuration to "+target+"\n", out.String())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var doc struct {
		Display struct {
			Currency string `yaml:"currency"`
		} `yaml:"display"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "EUR", doc.Display.Currency)

	assert.ErrorContains(t, runInit(cmd, nil), "already exists")

	force = true
	assert.NoError(t, runInit(cmd, nil))
}

func TestRunInit_DefaultPath(t *testing.T) {
	clitest.Setup(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	path, force = "", false

	cmd, _ := clitest.Command(t)
	require.NoError(t, runInit(cmd, nil))
	assert.FileExists(t, filepath.Join(home, ".fintrack", "config.yaml"))
}
