// Package prompt is the embeddable surface of the fuzzy picker. Host
// applications hand it choices and options and get back the selected
// value(s); the interactive loop, filtering, and selection state all
// live in the internal packages.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/pickx/internal/config"
	"github.com/oakwood-commons/pickx/internal/picker"
	"github.com/oakwood-commons/pickx/internal/ui"
	"github.com/oakwood-commons/pickx/pkg/logger"
)

// ErrCanceled is returned when the user aborts the prompt.
var ErrCanceled = errors.New("prompt canceled")

// Choice is one selectable item: display text plus an opaque value the
// caller gets back on commit.
type Choice struct {
	Name  string
	Value any
}

// Separator is accepted by other prompt kinds to divide choice groups.
// The fuzzy prompt rejects it at construction; it exists here so hosts
// share one choice vocabulary across prompt kinds.
type Separator struct {
	Line string
}

// Result is the outcome of a committed prompt.
type Result struct {
	// Multi reports which of Value/Values is meaningful.
	Multi  bool
	Value  any
	Values []any
	Names  []string
}

// Validator gates commit. Return nil to accept, or an error whose
// message is displayed while the user keeps editing.
type Validator func(Result) error

// Options configures one prompt run.
type Options struct {
	Message      string
	Choices      []Choice
	Multiselect  bool
	Default      any
	InitialQuery string

	// Validate is a Go predicate; ValidateExpr is a CEL expression over
	// values/names/count/multi. Set at most one.
	Validate       Validator
	ValidateExpr   string
	InvalidMessage string

	// ConfigPath overlays a user config file on the embedded defaults.
	ConfigPath string
	Theme      string
	Height     int
	NoColor    bool

	// Input/Output override the terminal streams, primarily for tests
	// and for callers that draw on stderr while stdout carries data.
	Input  io.Reader
	Output io.Writer
}

// buildSession resolves Options into a configured session plus the
// merged config. Split from Run so the resolution logic is testable
// without a terminal.
func buildSession(opts Options) (*picker.Session, config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, cfg, err
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if opts.Height > 0 {
		cfg.Behavior.Height = opts.Height
	}
	if opts.Multiselect {
		cfg.Behavior.Multiselect = true
	}
	if opts.InvalidMessage == "" {
		opts.InvalidMessage = cfg.Messages.Invalid
	}

	validate, err := resolveValidator(opts)
	if err != nil {
		return nil, cfg, err
	}

	choices := make([]picker.Choice, len(opts.Choices))
	for i, c := range opts.Choices {
		v := c.Value
		switch sep := v.(type) {
		case Separator:
			v = picker.Separator{Line: sep.Line}
		case *Separator:
			v = &picker.Separator{Line: sep.Line}
		}
		choices[i] = picker.Choice{Name: c.Name, Value: v}
	}

	session, err := picker.NewSession(picker.Config{
		Choices:     choices,
		Multiselect: cfg.Behavior.Multiselect,
		Default:     opts.Default,
		Validate:    validate,
	})
	if err != nil {
		return nil, cfg, err
	}
	return session, cfg, nil
}

// resolveValidator collapses the callable-or-expression configuration
// into the single resolved form the session consumes.
func resolveValidator(opts Options) (picker.Validator, error) {
	if opts.Validate != nil && opts.ValidateExpr != "" {
		return nil, errors.New("set either Validate or ValidateExpr, not both")
	}
	if opts.Validate != nil {
		v := opts.Validate
		return func(r picker.Result) error {
			return v(fromPickerResult(r))
		}, nil
	}
	if opts.ValidateExpr != "" {
		return picker.NewCELValidator(opts.ValidateExpr, opts.InvalidMessage)
	}
	return nil, nil
}

func fromPickerResult(r picker.Result) Result {
	out := Result{Multi: r.Multi, Value: r.Value, Values: r.Values, Names: r.Names}
	if !r.Multi && r.Name != "" {
		out.Names = []string{r.Name}
	}
	return out
}

// Run executes the prompt and returns the committed result. It blocks
// until the user commits or cancels; ctx cancellation aborts the run.
func Run(ctx context.Context, opts Options) (Result, error) {
	session, cfg, err := buildSession(opts)
	if err != nil {
		return Result{}, fmt.Errorf("configure prompt: %w", err)
	}

	log := logger.FromContext(ctx)
	model := ui.NewModel(session, opts.Message, opts.InitialQuery, cfg, opts.NoColor, *log)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	out := opts.Output
	if out == nil {
		// The UI draws on stderr so stdout stays clean for the result,
		// the way interactive filters are expected to compose in pipes.
		out = os.Stderr
	}
	progOpts = append(progOpts, tea.WithOutput(out))

	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(ui.Model)
	if !ok {
		return Result{}, errors.New("unexpected final model type")
	}
	if m.Canceled() || !m.Done() {
		return Result{}, ErrCanceled
	}
	return fromPickerResult(m.Result()), nil
}
