package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskdash/internal/filter"
	"github.com/tgienger/taskdash/internal/ui/styles"
)

var testBuild = BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2025-08-20"}

// execute runs the root command with a config path that does not exist, so
// the developer's own config never leaks into the tests.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { styles.Current = styles.TokyoNight })

	cmd := NewRootCommand(testBuild)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	full := append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...)
	cmd.SetArgs(full)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(testBuild)
	require.NotNil(t, cmd)
	assert.Equal(t, "taskdash", cmd.Use)
	assert.Contains(t, cmd.Version, "1.2.3")

	for _, name := range []string{"list", "stats"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(testBuild)

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	for flag, def := range map[string]string{"format": "text", "config": "", "today": ""} {
		f := cmd.PersistentFlags().Lookup(flag)
		require.NotNil(t, f, flag)
		assert.Equal(t, def, f.DefValue, flag)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "taskdash 1.2.3 (commit: abc123, built: 2025-08-20)\n", out)
}

func TestListJSON_Golden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"list_incomplete_overdue", []string{"list", "--status", "incomplete", "--due", "overdue"}},
		{"list_high_charlie", []string{"list", "--priority", "HIGH", "--user", "Charlie Brown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--today", "2025-08-20", "--format", "json"}, tt.args...)
			out, _, err := execute(t, args...)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestStatsJSON_Golden(t *testing.T) {
	out, _, err := execute(t, "--today", "2025-08-20", "--format", "json", "stats")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "stats_json", []byte(out))
}

func TestListText(t *testing.T) {
	out, _, err := execute(t, "--today", "2025-08-20", "list", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Design dashboard wireframes")
	assert.Contains(t, out, "Update documentation")
	assert.NotContains(t, out, "Write unit tests")
	assert.Contains(t, out, "2 of 6 tasks (filter: status=Completed)")
}

func TestListText_NoMatches(t *testing.T) {
	out, _, err := execute(t, "--today", "2025-08-20", "list", "--category", "Design", "--status", "incomplete")
	require.NoError(t, err)
	assert.Equal(t, "No tasks match (filter: status=Incomplete category=Design)\n", out)
}

func TestStatsText(t *testing.T) {
	out, _, err := execute(t, "--today", "2025-08-20", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "As of 2025-08-20")
	assert.Contains(t, out, "Overdue:          4")
	assert.Contains(t, out, "Completion rate:  33%")
	assert.Contains(t, out, "Documentation")
	assert.Contains(t, out, "Bob Smith")
}

func TestInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"--format", "xml", "stats"}},
		{"bad today", []string{"--today", "someday", "stats"}},
		{"bad status", []string{"list", "--status", "pending"}},
		{"bad priority", []string{"list", "--priority", "urgent"}},
		{"bad due", []string{"list", "--due", "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestInvalidFilterWrapsSentinel(t *testing.T) {
	_, _, err := execute(t, "list", "--status", "pending")
	assert.ErrorIs(t, err, filter.ErrInvalidValue)
}

func TestConfigFile(t *testing.T) {
	t.Cleanup(func() { styles.Current = styles.TokyoNight })
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("today: 2025-08-09\nseed: true\ntheme: gruvbox\n"), 0644))

	cmd := NewRootCommand(testBuild)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "--format", "json", "stats"})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Today     string `json:"today"`
			Dashboard struct {
				Overdue  int `json:"overdue"`
				DueToday int `json:"dueToday"`
			} `json:"dashboard"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "2025-08-09", resp.Data.Today)
	// Only task 3 (due 08-03) is past due; task 6 is due that day
	assert.Equal(t, 1, resp.Data.Dashboard.Overdue)
	assert.Equal(t, 1, resp.Data.Dashboard.DueToday)
	assert.Equal(t, "Gruvbox", styles.Current.Name)
}

func TestConfigWithoutSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: false\n"), 0644))

	cmd := NewRootCommand(testBuild)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "list"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No tasks match (filter: All)\n", out.String())
}

func TestBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colour: red\n"), 0644))

	cmd := NewRootCommand(testBuild)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "stats"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "--verbose", "--today", "2025-08-20", "--format", "json", "list")
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "msg=\"listed tasks\"")
	assert.True(t, json.Valid([]byte(out)), "stdout stays valid JSON")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := WrapExitError(ExitFailure, "outer", errors.New("inner"))
	assert.Equal(t, "outer: inner", wrapped.Error())
}

func TestRun_ErrorsFollowFormat(t *testing.T) {
	t.Cleanup(func() { styles.Current = styles.TokyoNight })
	config := filepath.Join(t.TempDir(), "missing.yaml")

	var out, errOut bytes.Buffer
	code := Run(testBuild, []string{"--config", config, "list", "--format", "json", "--status", "bogus"}, &out, &errOut)
	assert.Equal(t, ExitCommandError, code)

	var resp struct {
		Status string    `json:"status"`
		Error  *CLIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp), out.String())
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ExitCommandError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "invalid filter")
	assert.NotContains(t, errOut.String(), "Error:")

	out.Reset()
	errOut.Reset()
	code = Run(testBuild, []string{"--config", config, "list", "--status", "bogus"}, &out, &errOut)
	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error: invalid filter")
}

func TestRun_InvalidFormatReportsAsText(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run(testBuild, []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--format", "xml", "stats"}, &out, &errOut)
	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `invalid format "xml"`)
}

func TestRun_Success(t *testing.T) {
	t.Cleanup(func() { styles.Current = styles.TokyoNight })
	var out, errOut bytes.Buffer
	code := Run(testBuild, []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "stats", "--format", "json"}, &out, &errOut)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out.String(), `"status": "ok"`)
}

func TestOutputFormatter_Error(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out}
	require.NoError(t, f.Error(NewExitError(ExitCommandError, "invalid filter")))
	assert.JSONEq(t, `{"status":"error","error":{"code":2,"message":"invalid filter"}}`, out.String())

	var text, errText bytes.Buffer
	f = &OutputFormatter{Format: "text", Writer: &text, ErrWriter: &errText}
	require.NoError(t, f.Error(errors.New("boom")))
	assert.Empty(t, text.String())
	assert.Equal(t, "Error: boom\n", errText.String())
}
