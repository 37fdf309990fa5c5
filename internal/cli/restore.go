package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/terraincognita07/herflow/internal/services"
)

var ErrAborted = errors.New("aborted by user")

// RunRestoreCommand applies the backup at inputPath. A malformed document
// leaves the database untouched.
func RunRestoreCommand(env Env, inputPath string, confirm Confirmer) (err error) {
	env = env.withDefaults()

	inputPath = strings.TrimSpace(inputPath)
	if inputPath == "" {
		return errors.New("backup path is required")
	}
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if _, err := services.DecodeBackup(raw); err != nil {
		return err
	}

	ok, err := confirm("Restoring replaces the sections present in the backup. Continue?")
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	store, closeStore, err := openStore(env)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeStore())
	}()

	if err := services.NewBackupService(store, env.Logger).Restore(raw); err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, "Backup restored")
	return nil
}

// RunClearDataCommand wipes every tracked value after confirmation.
func RunClearDataCommand(env Env, confirm Confirmer) (err error) {
	env = env.withDefaults()

	ok, err := confirm("This deletes your profile, periods and daily logs. Continue?")
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	store, closeStore, err := openStore(env)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeStore())
	}()

	service := services.NewSettingsService(store, env.Logger, env.Now)
	if err := service.ClearAllData(); err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, "All data cleared")
	return nil
}
