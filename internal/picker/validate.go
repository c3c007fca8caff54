package picker

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"
)

// Validator gates Commit. It inspects the would-be result and returns
// nil to accept it or an error whose message is shown to the user.
// Callers hand the session the resolved form only: either a plain Go
// predicate or a CEL program already compiled by NewCELValidator.
type Validator func(Result) error

// MinSelected returns a validator that requires at least n values in
// the result.
func MinSelected(n int) Validator {
	return func(r Result) error {
		count := len(r.Values)
		if !r.Multi {
			count = 0
			if r.Value != nil {
				count = 1
			}
		}
		if count < n {
			return fmt.Errorf("select at least %d item(s)", n)
		}
		return nil
	}
}

// NewCELValidator compiles expr into a Validator. The expression is
// evaluated against the would-be result with these bindings:
//
//	values  list of selected values (single-select wraps its one value)
//	names   list of selected display names
//	count   number of selected values
//	multi   whether the session is multi-select
//
// It must evaluate to a bool; false fails validation with invalidMsg.
// Compilation happens once, here, not at commit time.
func NewCELValidator(expr, invalidMsg string) (Validator, error) {
	if invalidMsg == "" {
		invalidMsg = "invalid selection"
	}
	env, err := cel.NewEnv(
		cel.Variable("values", cel.ListType(cel.DynType)),
		cel.Variable("names", cel.ListType(cel.StringType)),
		cel.Variable("count", cel.IntType),
		cel.Variable("multi", cel.BoolType),
		celext.Strings(),
		celext.Lists(),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile validator %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build validator program: %w", err)
	}

	return func(r Result) error {
		values := r.Values
		names := r.Names
		if !r.Multi {
			values = nil
			names = nil
			if r.Value != nil {
				values = []any{r.Value}
				names = []string{r.Name}
			}
		}
		if names == nil {
			names = []string{}
		}
		if values == nil {
			values = []any{}
		}
		out, _, err := prg.Eval(map[string]any{
			"values": values,
			"names":  names,
			"count":  len(values),
			"multi":  r.Multi,
		})
		if err != nil {
			return fmt.Errorf("validator: %w", err)
		}
		ok, isBool := out.Value().(bool)
		if !isBool {
			return fmt.Errorf("validator %q returned %T, want bool", expr, out.Value())
		}
		if !ok {
			return errors.New(invalidMsg)
		}
		return nil
	}, nil
}
