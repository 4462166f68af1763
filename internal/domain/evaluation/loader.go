package evaluation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type promptLine struct {
	Prompt string `json:"prompt"`
}

// LoadPrompts reads JSON lines of the form {"prompt": "..."}. Blank lines are
// skipped; a line without a prompt is an error.
func LoadPrompts(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var prompts []string
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var pl promptLine
		if err := json.Unmarshal([]byte(line), &pl); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if strings.TrimSpace(pl.Prompt) == "" {
			return nil, fmt.Errorf("line %d: missing prompt", n)
		}
		prompts = append(prompts, pl.Prompt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}
	return prompts, nil
}
