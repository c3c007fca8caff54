package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/pickx/pkg/prompt"
)

// choiceEntry is one item of a choices file. Scalar entries are both
// name and value; mapping entries separate display text from the value
// handed back on selection.
type choiceEntry struct {
	Name  string `yaml:"name" json:"name"`
	Value any    `yaml:"value" json:"value"`
}

func (e *choiceEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Name = node.Value
		e.Value = node.Value
		return nil
	}
	type raw choiceEntry
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	if r.Name == "" {
		return fmt.Errorf("choice entry missing name")
	}
	if r.Value == nil {
		r.Value = r.Name
	}
	*e = choiceEntry(r)
	return nil
}

// loadChoicesFile parses a yaml (or json, which yaml subsumes) list of
// choices from path.
func loadChoicesFile(path string) ([]prompt.Choice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read choices %s: %w", path, err)
	}
	var entries []choiceEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode choices %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("choices file %s is empty", path)
	}
	out := make([]prompt.Choice, len(entries))
	for i, e := range entries {
		out[i] = prompt.Choice{Name: e.Name, Value: e.Value}
	}
	return out, nil
}

// readChoiceLines reads newline-delimited candidates, fzf-style. Blank
// lines are dropped; each surviving line is both name and value.
func readChoiceLines(r io.Reader) ([]prompt.Choice, error) {
	var out []prompt.Choice
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		out = append(out, prompt.Choice{Name: line, Value: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no candidates on stdin")
	}
	return out, nil
}
