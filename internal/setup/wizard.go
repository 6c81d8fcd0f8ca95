package setup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"igdm/internal/credentials"
	"igdm/internal/logging"
)

// ErrNoInput is returned when stdin closes before a required answer.
var ErrNoInput = errors.New("setup: input closed before all answers were given")

// Wizard prompts for credentials on the diagnostic stream. It implements
// credentials.Prompter.
type Wizard struct {
	reader *bufio.Reader
	out    io.Writer
	// fd is the terminal descriptor used for hidden input, or -1.
	fd int
	// Secret input is read without echo when stdin is a terminal.
	MaskSecrets bool
}

// NewWizard reads answers from in and writes questions to out. Secret fields
// are read without echo when in is a terminal.
func NewWizard(in io.Reader, out io.Writer) *Wizard {
	w := &Wizard{
		reader:      bufio.NewReader(in),
		out:         out,
		fd:          -1,
		MaskSecrets: true,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		w.fd = int(f.Fd())
	}
	return w
}

type question struct {
	label  string
	secret bool
	dst    *string
}

// PromptCredentials asks for each field in turn, repeating a question until
// it gets a non-empty answer. It waits indefinitely for input.
func (w *Wizard) PromptCredentials(ctx context.Context) (credentials.Set, error) {
	var set credentials.Set
	questions := []question{
		{"Instagram Session ID:", true, &set.SessionID},
		{"Instagram CSRF Token:", true, &set.CSRFToken},
		{"Instagram DS User ID:", false, &set.DSUserID},
	}

	for _, q := range questions {
		for {
			if err := ctx.Err(); err != nil {
				return credentials.Set{}, err
			}
			answer, err := w.ask(q.label, q.secret)
			if err != nil {
				return credentials.Set{}, err
			}
			if answer != "" {
				*q.dst = answer
				break
			}
			fmt.Fprintf(w.out, "%s\n", logging.PromptStyle().Render("  A value is required."))
		}
	}
	return set, nil
}

// Confirm asks a yes/no question. An empty answer selects defaultYes.
func (w *Wizard) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	answer, err := w.ask(question+" "+hint, false)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (w *Wizard) ask(label string, secret bool) (string, error) {
	fmt.Fprint(w.out, logging.PromptStyle().Render(label)+" ")

	if secret && w.MaskSecrets && w.fd >= 0 {
		b, err := term.ReadPassword(w.fd)
		fmt.Fprintln(w.out)
		if err != nil {
			return "", fmt.Errorf("read hidden input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := w.reader.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
