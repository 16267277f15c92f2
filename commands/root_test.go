package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-step-monitor/internal/config"
	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/data/kv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected func(string) string
	}{
		{
			name:  "home directory expansion",
			input: "~/test/path",
			expected: func(home string) string {
				return filepath.Join(home, "test/path")
			},
		},
		{
			name:  "absolute path unchanged",
			input: "/absolute/path",
			expected: func(home string) string {
				return "/absolute/path"
			},
		},
		{
			name:  "relative path converted to absolute",
			input: "relative/path",
			expected: func(home string) string {
				abs, _ := filepath.Abs("relative/path")
				return abs
			},
		},
	}

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected(home), expandPath(tt.input))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "test", "nested", "dir")

	require.NoError(t, ensureDir(testDir))
	info, err := os.Stat(testDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, ensureDir(testDir))
}

func TestRootCommandFlags(t *testing.T) {
	tests := []struct {
		flag         string
		defaultValue string
	}{
		{"dir", config.DefaultDir},
		{"backend", kv.BackendFile},
		{"timezone", "Local"},
		{"config", config.DefaultConfigFile},
		{"env-file", ".env"},
		{"debug", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defaultValue, flag.DefValue)
		})
	}

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"run", "history", "record", "reset"})
}

// resetFlags puts every flag back to its default so commands can run
// several times in one test binary
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// sandbox keeps config, logs and the store inside a temp dir
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STEPMON_LOG_FILE", filepath.Join(dir, "logs", "app.log"))
	t.Setenv("STEPMON_DIR", filepath.Join(dir, "store"))
	t.Setenv("STEPMON_TIMEZONE", "")
	t.Setenv("STEPMON_BACKEND", "")
	return dir
}

func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	base := []string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--env-file", filepath.Join(dir, ".env"),
	}
	rootCmd.SetArgs(append(base, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRecordThenHistory(t *testing.T) {
	for _, backend := range []string{kv.BackendFile, kv.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir := sandbox(t)

			out, err := execute(t, dir, "--backend", backend, "record", "1000")
			require.NoError(t, err)
			assert.Contains(t, out, "Today: 0 steps")

			out, err = execute(t, dir, "--backend", backend, "record", "1250")
			require.NoError(t, err)
			assert.Contains(t, out, "Today: 250 steps")

			out, err = execute(t, dir, "--backend", backend, "history", "-o", "json")
			require.NoError(t, err)

			var doc struct {
				History []struct {
					Date  string `json:"date"`
					Steps int    `json:"steps"`
				} `json:"history"`
				Total int `json:"total"`
			}
			require.NoError(t, sonic.Unmarshal([]byte(out), &doc))
			require.Len(t, doc.History, constants.HistoryRetentionDays)
			assert.Equal(t, 250, doc.History[0].Steps)
			assert.Equal(t, 250, doc.Total)
		})
	}
}

func TestRecordRejectsBadValue(t *testing.T) {
	dir := sandbox(t)

	_, err := execute(t, dir, "record", "-5")
	assert.Error(t, err)

	_, err = execute(t, dir, "record", "lots")
	assert.Error(t, err)
}

func TestHistoryFormats(t *testing.T) {
	dir := sandbox(t)
	_, err := execute(t, dir, "record", "10")
	require.NoError(t, err)

	out, err := execute(t, dir, "history", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Date,Steps")

	out, err = execute(t, dir, "history", "-o", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Step History Summary")

	_, err = execute(t, dir, "history", "-o", "xml")
	assert.Error(t, err)
}

func TestResetNeedsConfirmation(t *testing.T) {
	dir := sandbox(t)
	_, err := execute(t, dir, "record", "100")
	require.NoError(t, err)
	_, err = execute(t, dir, "record", "400")
	require.NoError(t, err)

	_, err = execute(t, dir, "reset")
	require.Error(t, err)

	out, err := execute(t, dir, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All step data cleared")

	// the baseline went with the rest, so the next reading starts the day
	out, err = execute(t, dir, "record", "900")
	require.NoError(t, err)
	assert.Contains(t, out, "Today: 0 steps")
}

func TestInvalidBackend(t *testing.T) {
	dir := sandbox(t)

	_, err := execute(t, dir, "--backend", "etcd", "history")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigFileSetsBackend(t *testing.T) {
	dir := sandbox(t)
	store := filepath.Join(dir, "from-file")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("backend: sqlite\ndir: "+store+"\n"), 0644))
	t.Setenv("STEPMON_DIR", "")

	_, err := execute(t, dir, "record", "5")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(store, "prefs.db"))
	assert.NoError(t, err)
}
