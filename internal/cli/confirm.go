package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrConfirmationRequired = errors.New("confirmation required: rerun with --yes")

// Confirmer asks the user to approve a destructive command.
type Confirmer func(prompt string) (bool, error)

func AssumeYes(string) (bool, error) {
	return true, nil
}

// TerminalConfirmer prompts on stdin when it is a terminal. Non-interactive
// input is refused so scripts must pass --yes explicitly.
func TerminalConfirmer(stdin *os.File, stdout io.Writer) Confirmer {
	return func(prompt string) (bool, error) {
		if !isTerminal(stdin) {
			return false, ErrConfirmationRequired
		}
		return promptYes(stdin, stdout, prompt)
	}
}

func promptYes(input io.Reader, output io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(output, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
