package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/terraincognita07/herflow/internal/services"
)

// RunBackupCommand writes the backup document to outputPath, or to stdout
// when outputPath is empty. A directory path receives the default filename.
func RunBackupCommand(env Env, outputPath string) (err error) {
	env = env.withDefaults()

	store, closeStore, err := openStore(env)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeStore())
	}()

	service := services.NewBackupService(store, env.Logger)
	payload, filename, err := service.Export()
	if err != nil {
		return fmt.Errorf("build backup: %w", err)
	}

	outputPath = strings.TrimSpace(outputPath)
	if outputPath == "" || outputPath == "-" {
		_, err := env.Stdout.Write(append(payload, '\n'))
		return err
	}

	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		outputPath = filepath.Join(outputPath, filename)
	}
	if err := os.WriteFile(outputPath, payload, 0o600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	fmt.Fprintf(env.Stdout, "Backup written to %s\n", outputPath)
	return nil
}
