package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"igdm/internal/config"
	"igdm/internal/fileutil"
	"igdm/internal/logging"
)

// Prompter asks the user for credentials. Implementations write to the
// diagnostic stream only.
type Prompter interface {
	PromptCredentials(ctx context.Context) (Set, error)
	Confirm(ctx context.Context, question string, defaultYes bool) (bool, error)
}

// Options controls a single resolution.
type Options struct {
	// Flags holds values from --session-id/--csrf-token/--ds-user-id.
	Flags Set
	// FromFile is the --from-file value.
	FromFile string
	// UseDefaultFile consults DefaultFile in the working directory when
	// FromFile is empty.
	UseDefaultFile bool
	DefaultFile    string
	// SourceErrorsFatal makes a broken credentials file or a failed prompt
	// abort resolution instead of falling through to the next source.
	SourceErrorsFatal bool
	Interactive     bool
	// OfferSave asks whether prompted credentials should be written to
	// DefaultFile.
	OfferSave bool
}

// Resolver walks the credential sources in fixed precedence.
type Resolver struct {
	Getenv   func(string) string
	WorkDir  string
	Prompter Prompter
}

// NewResolver returns a Resolver reading the process environment.
func NewResolver(workDir string, prompter Prompter) *Resolver {
	return &Resolver{
		Getenv:   os.Getenv,
		WorkDir:  workDir,
		Prompter: prompter,
	}
}

type sourceFunc func(ctx context.Context, opts Options) (Set, error)

// Resolve returns the first complete Set in the order environment, flags,
// file, prompt. When no source is complete it returns an empty Set with
// SourceNone and a nil error.
func (r *Resolver) Resolve(ctx context.Context, opts Options) (Set, Source, error) {
	chain := []struct {
		source Source
		fn     sourceFunc
	}{
		{SourceEnvironment, r.fromEnvironment},
		{SourceFlags, r.fromFlags},
		{SourceFile, r.fromFile},
		{SourcePrompt, r.fromPrompt},
	}

	for _, step := range chain {
		set, err := step.fn(ctx, opts)
		if err != nil {
			return Set{}, SourceNone, err
		}
		if set.Complete() {
			logging.Debug("credentials resolved", "source", step.source.String())
			return set, step.source, nil
		}
	}
	return Set{}, SourceNone, nil
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv == nil {
		return os.Getenv(key)
	}
	return r.Getenv(key)
}

func (r *Resolver) fromEnvironment(context.Context, Options) (Set, error) {
	set := Set{
		SessionID: r.getenv(config.EnvSessionID),
		CSRFToken: r.getenv(config.EnvCSRFToken),
		DSUserID:  r.getenv(config.EnvDSUserID),
	}
	if set.Complete() {
		logging.Success("Using Instagram credentials from environment variables")
	}
	return set, nil
}

func (r *Resolver) fromFlags(_ context.Context, opts Options) (Set, error) {
	if opts.Flags.Complete() {
		logging.Success("Using Instagram credentials from command-line arguments")
	}
	return opts.Flags, nil
}

func (r *Resolver) fromFile(_ context.Context, opts Options) (Set, error) {
	path := r.filePath(opts)
	if path == "" {
		return Set{}, nil
	}

	logging.Status("Loading credentials from %s", path)
	set, err := LoadFile(path)
	if err != nil {
		if opts.SourceErrorsFatal {
			return Set{}, err
		}
		logging.Failure("Error loading credentials from file: %v", err)
		logging.Warning("Continuing with the next credential source...")
		return Set{}, nil
	}
	if !set.Complete() {
		logging.Warning("Credentials file %s is missing fields; ignoring it", path)
	}
	return set, nil
}

// filePath picks the explicit file, else the default file when it exists.
func (r *Resolver) filePath(opts Options) string {
	if opts.FromFile != "" {
		return r.abs(opts.FromFile)
	}
	if !opts.UseDefaultFile || opts.DefaultFile == "" {
		return ""
	}
	candidate := r.abs(opts.DefaultFile)
	if !fileutil.Exists(candidate) {
		return ""
	}
	return candidate
}

func (r *Resolver) abs(path string) string {
	return config.ResolvePath(path, r.WorkDir)
}

func (r *Resolver) fromPrompt(ctx context.Context, opts Options) (Set, error) {
	if !opts.Interactive || r.Prompter == nil {
		return Set{}, nil
	}

	logging.Warning("Instagram credentials not found, please enter them manually:")
	set, err := r.Prompter.PromptCredentials(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Set{}, err
		}
		if opts.SourceErrorsFatal {
			return Set{}, fmt.Errorf("prompt for credentials: %w", err)
		}
		logging.Failure("Error getting credentials: %v", err)
		logging.Warning("You can add them later in the Claude Desktop config file.")
		return Set{}, nil
	}
	if !set.Complete() {
		return set, nil
	}

	if opts.OfferSave && opts.DefaultFile != "" {
		save, err := r.Prompter.Confirm(ctx, fmt.Sprintf("Save credentials to %s?", filepath.Base(opts.DefaultFile)), false)
		if err != nil {
			logging.Warn("save confirmation failed", "error", err)
		} else if save {
			path := r.abs(opts.DefaultFile)
			if err := SaveFile(path, set); err != nil {
				logging.Failure("Error saving credentials: %v", err)
			} else {
				logging.Success("Credentials saved to %s", path)
			}
		}
	}
	return set, nil
}
