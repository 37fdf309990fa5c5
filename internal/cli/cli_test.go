package cli

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

func newTestEnv(t *testing.T) (Env, *bytes.Buffer) {
	t.Helper()

	var stdout bytes.Buffer
	return Env{
		DBPath:   filepath.Join(t.TempDir(), "herflow.db"),
		Location: time.UTC,
		Logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Stdout:   &stdout,
		Now: func() time.Time {
			return time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC)
		},
	}, &stdout
}

func seedStore(t *testing.T, env Env) {
	t.Helper()

	store, closeStore, err := openStore(env.withDefaults())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	profile := models.NewUserProfile("Maya")
	if err := store.SetProfile(&profile); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	start, _ := models.ParseDate("2026-01-20")
	if err := store.AddPeriod(models.PeriodEntry{StartDate: start, EndDate: start.AddDays(4)}); err != nil {
		t.Fatalf("add period: %v", err)
	}
	if err := closeStore(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}

func decline(string) (bool, error) {
	return false, nil
}

func TestRunStatusCommand(t *testing.T) {
	env, stdout := newTestEnv(t)
	seedStore(t, env)

	if err := RunStatusCommand(env); err != nil {
		t.Fatalf("RunStatusCommand() unexpected error: %v", err)
	}

	output := stdout.String()
	for _, want := range []string{"Day 22 of your cycle", "Next period: 2026-02-17", "Cycle day: 22"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got %q", want, output)
		}
	}
}

func TestRunStatusCommandOnEmptyDatabase(t *testing.T) {
	env, stdout := newTestEnv(t)

	if err := RunStatusCommand(env); err != nil {
		t.Fatalf("RunStatusCommand() unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Add your period to get started") {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Setup incomplete") {
		t.Fatalf("expected setup reminder, got %q", stdout.String())
	}
}

func TestBackupAndRestoreCommands(t *testing.T) {
	env, stdout := newTestEnv(t)
	seedStore(t, env)

	backupDir := t.TempDir()
	if err := RunBackupCommand(env, backupDir); err != nil {
		t.Fatalf("RunBackupCommand() unexpected error: %v", err)
	}
	matches, err := filepath.Glob(filepath.Join(backupDir, "herflow-backup-*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one backup file, got %v (%v)", matches, err)
	}

	target, _ := newTestEnv(t)
	if err := RunRestoreCommand(target, matches[0], AssumeYes); err != nil {
		t.Fatalf("RunRestoreCommand() unexpected error: %v", err)
	}

	store, closeStore, err := openStore(target.withDefaults())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer closeStore()
	if profile := store.Profile(); profile == nil || profile.Name != "Maya" {
		t.Fatalf("expected restored profile, got %+v", profile)
	}
	if len(store.Periods()) != 1 || !store.OnboardingComplete() {
		t.Fatalf("expected restored periods and onboarding flag")
	}
	if !strings.Contains(stdout.String(), "Backup written to") {
		t.Fatalf("unexpected backup output: %q", stdout.String())
	}
}

func TestRunBackupCommandToStdout(t *testing.T) {
	env, stdout := newTestEnv(t)
	seedStore(t, env)

	if err := RunBackupCommand(env, ""); err != nil {
		t.Fatalf("RunBackupCommand() unexpected error: %v", err)
	}
	if _, err := services.DecodeBackup(stdout.Bytes()); err != nil {
		t.Fatalf("stdout is not a valid backup: %v", err)
	}
}

func TestRunRestoreCommandRejectsMalformedBackup(t *testing.T) {
	env, _ := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`[1,2,3]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := RunRestoreCommand(env, path, AssumeYes)
	if !errors.Is(err, services.ErrMalformedBackup) {
		t.Fatalf("expected ErrMalformedBackup, got %v", err)
	}
	if err := RunRestoreCommand(env, "", AssumeYes); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestRunClearDataCommand(t *testing.T) {
	env, _ := newTestEnv(t)
	seedStore(t, env)

	if err := RunClearDataCommand(env, decline); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	if err := RunClearDataCommand(env, AssumeYes); err != nil {
		t.Fatalf("RunClearDataCommand() unexpected error: %v", err)
	}
	store, closeStore, err := openStore(env.withDefaults())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer closeStore()
	if store.Profile() != nil || len(store.Periods()) != 0 {
		t.Fatal("expected empty store after clear")
	}
}

func failClosingStore(t *testing.T, closeErr error) {
	t.Helper()
	open := openStore
	openStore = func(env Env) (*services.DomainStore, func() error, error) {
		store, closeFn, err := open(env)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return errors.Join(closeFn(), closeErr) }, nil
	}
	t.Cleanup(func() { openStore = open })
}

func TestCommandsReportCloseErrors(t *testing.T) {
	closeErr := errors.New("disk gone")

	env, stdout := newTestEnv(t)
	seedStore(t, env)
	failClosingStore(t, closeErr)

	if err := RunStatusCommand(env); !errors.Is(err, closeErr) {
		t.Fatalf("status: expected close error, got %v", err)
	}
	if !strings.Contains(stdout.String(), "Cycle day: 22") {
		t.Fatalf("expected status printed before close, got %q", stdout.String())
	}

	if err := RunBackupCommand(env, ""); !errors.Is(err, closeErr) {
		t.Fatalf("backup: expected close error, got %v", err)
	}
	if err := RunClearDataCommand(env, AssumeYes); !errors.Is(err, closeErr) {
		t.Fatalf("clear-data: expected close error, got %v", err)
	}
}

func TestPromptYes(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "yes\n", want: true},
		{input: " Y \n", want: true},
		{input: "no\n", want: false},
		{input: "", want: false},
	}
	for _, tt := range tests {
		var output bytes.Buffer
		got, err := promptYes(strings.NewReader(tt.input), &output, "Continue?")
		if err != nil {
			t.Fatalf("promptYes(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("promptYes(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if output.String() != "Continue? [y/N]: " {
			t.Fatalf("unexpected prompt %q", output.String())
		}
	}
}

func TestTerminalConfirmerRefusesNonInteractiveInput(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer file.Close()

	confirm := TerminalConfirmer(file, io.Discard)
	if _, err := confirm("Continue?"); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
}
