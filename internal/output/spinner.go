package output

import (
	"context"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
)

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether stdin is an interactive terminal, i.e. whether
// prompting is possible.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Replaced in tests.
var (
	stdoutIsTTY = IsTTY
	showSpinner = func(title string, wait func()) error {
		return spinner.New().Title(title).Action(wait).Run()
	}
)

// RunWithSpinner executes action while showing a spinner titled title.
// Without a TTY the action simply runs. If the spinner itself fails the
// action is still awaited and its result returned.
func RunWithSpinner(ctx context.Context, title string, action func() error) error {
	if !stdoutIsTTY() {
		return action()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action()
	}()

	// The spinner forwards the action's result here once it has seen it.
	result := make(chan error, 1)
	spinnerErr := showSpinner(title, func() {
		select {
		case err := <-errCh:
			result <- err
		case <-ctx.Done():
		}
	})
	if spinnerErr != nil {
		Debug("spinner failed", "title", title, "err", spinnerErr)
		select {
		case err := <-result:
			return err
		case err := <-errCh:
			return err
		}
	}

	select {
	case err := <-result:
		return err
	default:
	}
	select {
	case err := <-result:
		return err
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
