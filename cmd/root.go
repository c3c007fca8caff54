// Package cmd implements the pickx command line interface: candidate
// loading from files or stdin, flag handling, and result printing
// around the interactive prompt.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/pickx/internal/limiter"
	"github.com/oakwood-commons/pickx/pkg/logger"
	"github.com/oakwood-commons/pickx/pkg/prompt"
	"github.com/oakwood-commons/pickx/pkg/settings"
)

// ErrEmptyResult is returned when the prompt committed nothing (an
// empty filtered view). Mapped to exit code 1, like other filters.
var ErrEmptyResult = errors.New("empty result")

var (
	flagMessage        string
	flagMulti          bool
	flagQuery          string
	flagDefault        string
	flagHeight         int
	flagTheme          string
	flagNoColor        bool
	flagConfig         string
	flagValidate       string
	flagInvalidMessage string
	flagJSON           bool
	flagLogLevel       int8
	flagLimit          limiter.Config
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [choices-file]",
	Short: "Fuzzy-filter a list of candidates interactively",
	Long: `pickx narrows a candidate list as you type, fzf-style, and prints the
selection to stdout. Candidates come from a yaml/json choices file or
from stdin, one per line. In multi-select mode (tab to toggle) every
enabled candidate is printed, in input order.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagMessage, "message", "p", "Select", "prompt message shown above the input")
	f.BoolVarP(&flagMulti, "multi", "m", false, "enable multi-select (tab toggles, alt+a/alt+d/alt+r select all/none/invert)")
	f.StringVarP(&flagQuery, "query", "q", "", "initial query text")
	f.StringVar(&flagDefault, "default", "", "value to place the cursor on initially")
	f.IntVar(&flagHeight, "height", 0, "maximum visible candidate rows (0 uses the config default)")
	f.StringVar(&flagTheme, "theme", "", "theme name from the config file")
	f.BoolVar(&flagNoColor, "no-color", false, "disable colors")
	f.StringVar(&flagConfig, "config", "", "path to a config file overlaying the built-in defaults")
	f.StringVar(&flagValidate, "validate", "", "CEL expression the selection must satisfy (e.g. 'count >= 2')")
	f.StringVar(&flagInvalidMessage, "invalid-message", "", "message shown when validation fails")
	f.BoolVar(&flagJSON, "json", false, "print the result as JSON")
	f.Int8Var(&flagLogLevel, "log-level", 2, "minimum zap log level (2 = error)")
	f.IntVar(&flagLimit.Limit, "limit", 0, "keep only the first N candidates (after --offset)")
	f.IntVar(&flagLimit.Offset, "offset", 0, "skip the first N candidates")
	f.IntVar(&flagLimit.Tail, "tail", 0, "keep only the last N candidates")

	rootCmd.Version = settings.VersionInformation.BuildVersion
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an Execute error to the process exit code: 130 for a
// canceled prompt, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, prompt.ErrCanceled) {
		return 130
	}
	return 1
}

func runRoot(cmd *cobra.Command, args []string) error {
	params := settings.NewCliParams()
	params.MinLogLevel = flagLogLevel
	params.NoColor = flagNoColor
	log := logger.Get(params.MinLogLevel)

	if err := flagLimit.Validate(); err != nil {
		return err
	}

	choices, input, err := gatherChoices(args)
	if err != nil {
		return err
	}
	choices = limiter.Apply(flagLimit, choices)
	if len(choices) == 0 {
		return errors.New("no candidates left after applying --limit/--offset/--tail")
	}

	opts := prompt.Options{
		Message:        flagMessage,
		Choices:        choices,
		Multiselect:    flagMulti,
		InitialQuery:   flagQuery,
		ValidateExpr:   flagValidate,
		InvalidMessage: flagInvalidMessage,
		ConfigPath:     flagConfig,
		Theme:          flagTheme,
		Height:         clampHeight(flagHeight),
		NoColor:        flagNoColor,
		Input:          input,
	}
	if flagDefault != "" {
		opts.Default = flagDefault
	}

	ctx := logger.WithLogger(context.Background(), log)
	ctx = settings.IntoContext(ctx, params)

	res, err := prompt.Run(ctx, opts)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res)
}

// gatherChoices loads candidates from the file argument or stdin. When
// candidates were piped in, stdin is no longer a terminal, so the
// prompt reads keys from /dev/tty instead.
func gatherChoices(args []string) ([]prompt.Choice, io.Reader, error) {
	if len(args) == 1 {
		choices, err := loadChoicesFile(args[0])
		return choices, nil, err
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, nil, errors.New("no choices file given and stdin is a terminal; pipe candidates in or pass a file")
	}
	choices, err := readChoiceLines(os.Stdin)
	if err != nil {
		return nil, nil, err
	}
	tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("stdin carries candidates and no terminal is available: %w", err)
	}
	return choices, tty, nil
}

// clampHeight caps an explicit --height at the terminal height, leaving
// room for the input line and borders. Stdout may be a pipe, so stderr
// and stdin are probed too.
func clampHeight(height int) int {
	if height <= 0 {
		return height
	}
	for _, fd := range []uintptr{os.Stderr.Fd(), os.Stdout.Fd(), os.Stdin.Fd()} {
		if _, h, err := term.GetSize(int(fd)); err == nil && h > 0 {
			if max := h - 5; height > max && max > 0 {
				return max
			}
			break
		}
	}
	return height
}

// printResult writes the committed selection to stdout: one value per
// line, or a JSON document with --json. An empty selection is an
// ErrEmptyResult so the exit code distinguishes it.
func printResult(w io.Writer, res prompt.Result) error {
	empty := res.Value == nil
	if res.Multi {
		empty = len(res.Values) == 0
	}

	if flagJSON {
		if empty {
			return ErrEmptyResult
		}
		payload := any(res.Value)
		if res.Multi {
			payload = res.Values
		}
		enc := json.NewEncoder(w)
		return enc.Encode(payload)
	}

	if res.Multi {
		if empty {
			return ErrEmptyResult
		}
		for _, v := range res.Values {
			fmt.Fprintln(w, formatValue(v))
		}
		return nil
	}
	if empty {
		return ErrEmptyResult
	}
	fmt.Fprintln(w, formatValue(res.Value))
	return nil
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
