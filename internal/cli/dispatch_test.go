package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskpad/internal/cli"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/state"
	"taskpad/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return svc, nil
	}
}

func errFactory(err error) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return nil, err
	}
}

// run dispatches args with an isolated config directory.
func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv(config.EnvDataFile, "")
	t.Setenv(config.EnvLogLevel, "")

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	var outBuf, errBuf bytes.Buffer
	if len(args) > 0 {
		args = append(args[:1:1], append([]string{"--config", t.TempDir()}, args[1:]...)...)
	}
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService()), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskpad 0.1.0\n" {
		t.Errorf("expected 'taskpad 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "add", "--title")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -title\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvDataFile, "")
	t.Setenv(config.EnvLogLevel, "")

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if stdout.String() != "   1  [ ] Buy milk\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	svc := testutil.NewFakeService()
	factory := testFactory(svc)

	if _, stderr, code := run(t, factory, "add", "--title", "Milk", "buy", "milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	stdout, _, code := run(t, factory, "ls")
	if code != exitcode.Success {
		t.Fatalf("ls failed: %d", code)
	}
	if stdout != "   1  [ ] Milk\n" {
		t.Errorf("unexpected list output %q", stdout)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"corrupt state", fmt.Errorf("%w x: bad", state.ErrCorrupt), exitcode.ConfigError},
		{"invalid config", fmt.Errorf("%w: theme", config.ErrInvalid), exitcode.ConfigError},
		{"io", errors.New("permission denied"), exitcode.StorageError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, code := run(t, errFactory(tc.err), "list")
			if code != tc.code {
				t.Errorf("expected exit code %d, got %d", tc.code, code)
			}
			if !strings.HasPrefix(stderr, "error: ") {
				t.Errorf("expected error message, got %q", stderr)
			}
		})
	}
}

func TestDispatcher_StoreNotNeeded(t *testing.T) {
	// validate never opens the store, so a failing factory does not matter.
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}
	stdout, stderr, code := run(t, errFactory(errors.New("boom")), "validate", path)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (%q)", code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
}

func TestDispatcher_BadConfigFile(t *testing.T) {
	t.Setenv(config.EnvDataFile, "")
	t.Setenv(config.EnvLogLevel, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(`theme = "pink"`), 0600); err != nil {
		t.Fatal(err)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))
	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", dir}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.Contains(stderr.String(), "invalid config") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	_, stderr, code := run(t, nil, "version", "--debug")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(stderr, "msg=dispatch") || !strings.Contains(stderr, "app=taskpad") {
		t.Errorf("expected debug log line, got %q", stderr)
	}
}
