package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// Token asks for a bearer token on the terminal without echoing it. It
// returns syscall.ENOTTY when stdout is not a terminal.
func Token(stdin terminal.FileReader, stdout terminal.FileWriter) (string, error) {
	if !isatty.IsTerminal(stdout.Fd()) {
		return "", syscall.ENOTTY
	}

	var token string
	prompt := &survey.Password{ //nolint:exhaustruct
		Message: "Enter catalog access token:",
	}
	askOpts := []survey.AskOpt{
		survey.WithValidator(ValidateToken),
		survey.WithHideCharacter('*'),
		survey.WithStdio(stdin, stdout, os.Stderr),
		survey.WithShowCursor(true),
	}
	if err := survey.AskOne(prompt, &token, askOpts...); nil != err {
		return "", fmt.Errorf("failed to ask for access token: %w", err)
	}

	return strings.TrimSpace(token), nil
}

// ValidateToken rejects answers that are empty once surrounding whitespace is
// trimmed.
func ValidateToken(ans any) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("unexpected answer type: %T", ans)
	}

	if strings.TrimSpace(s) == "" {
		return errors.New("access token is required")
	}

	return nil
}
