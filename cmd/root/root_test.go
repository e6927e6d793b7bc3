package root_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/fintrack/cmd/internal/clitest"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	root.Init()
	os.Exit(m.Run())
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "fintrack", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "personal finance tracker")
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "data-dir", "backend", "user", "password", "quiet"} {
		assert.NotNil(t, root.Cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "u", root.Cmd.PersistentFlags().Lookup("user").Shorthand)
	assert.Equal(t, "p", root.Cmd.PersistentFlags().Lookup("password").Shorthand)
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	root.ApplyFlags(cfg, root.CommonFlags{LogLevel: "DEBUG", DataDir: "/tmp/ft", Backend: "SQLite"})

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "/tmp/ft", cfg.Data.Directory)
	assert.Equal(t, "sqlite", cfg.Data.Backend)
}

func TestPassword_FallsBackToEnvironment(t *testing.T) {
	t.Cleanup(func() { root.SharedFlags = root.CommonFlags{} })
	t.Setenv(root.PasswordEnv, "from-env")

	root.SharedFlags.Password = ""
	assert.Equal(t, "from-env", root.Password())

	root.SharedFlags.Password = "from-flag"
	assert.Equal(t, "from-flag", root.Password())
}

func TestOpenSession(t *testing.T) {
	clitest.Setup(t)
	ctx := context.Background()

	s, err := root.OpenSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, clitest.UserName, s.User().Name)

	root.SharedFlags.Password = "nope"
	_, err = root.OpenSession(ctx)
	var authErr *fterrors.AuthenticationError
	assert.ErrorAs(t, err, &authErr)

	root.SharedFlags.User = ""
	_, err = root.OpenSession(ctx)
	assert.ErrorContains(t, err, "--user is required")
}

func TestSetup_BuildsContainerFromFlags(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	t.Setenv("FINTRACK_DATA_BACKEND", "")
	t.Setenv("FINTRACK_DATA_DIRECTORY", "")
	t.Cleanup(func() { root.SharedFlags = root.CommonFlags{} })

	dataDir := filepath.Join(home, "data")
	var backend string
	inspect := &cobra.Command{
		Use: "inspect",
		RunE: func(cmd *cobra.Command, args []string) error {
			require.NotNil(t, root.AppContainer)
			backend = root.AppConfig.Data.Backend
			return nil
		},
	}
	root.Cmd.AddCommand(inspect)
	t.Cleanup(func() { root.Cmd.RemoveCommand(inspect) })

	root.Cmd.SetArgs([]string{"--data-dir", dataDir, "--backend", "sqlite", "--quiet", "inspect"})
	require.NoError(t, root.Cmd.Execute())

	assert.Equal(t, "sqlite", backend)
	assert.FileExists(t, filepath.Join(dataDir, "fintrack.db"))
	assert.Nil(t, root.AppContainer, "container is closed after the command")
}

func TestSetup_WarnsAboutMalformedEnvFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	t.Setenv("FINTRACK_DATA_BACKEND", "")
	t.Setenv("FINTRACK_DATA_DIRECTORY", "")
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("FINTRACK_BROKEN=\"unterminated\n"), 0600))

	previous := root.Log
	mock := logging.NewMockLogger()
	root.Log = mock
	t.Cleanup(func() {
		root.Log = previous
		root.SharedFlags = root.CommonFlags{}
	})

	noop := &cobra.Command{Use: "noop", RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	root.Cmd.AddCommand(noop)
	t.Cleanup(func() { root.Cmd.RemoveCommand(noop) })

	root.Cmd.SetArgs([]string{"--data-dir", filepath.Join(home, "data"), "--quiet", "noop"})
	require.NoError(t, root.Cmd.Execute())

	assert.True(t, mock.HasEntry("WARN", "Error loading .env file"))
}
