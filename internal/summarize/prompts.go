package summarize

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v2"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

type summaryPromptFields struct {
	Text string
}

type combinePromptFields struct {
	Summaries []string
}

type Prompts struct {
	summary *template.Template
	combine *template.Template
}

// DefaultPrompts returns the embedded templates.
func DefaultPrompts() (*Prompts, error) {
	return parsePrompts(defaultPromptsYAML, nil)
}

// LoadPrompts reads templates from a YAML file. Keys missing from the file
// keep their embedded default. An empty path returns the defaults.
func LoadPrompts(path string) (*Prompts, error) {
	defaults, err := DefaultPrompts()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading prompts file '%s': %w", path, err)
	}

	return parsePrompts(data, defaults)
}

func parsePrompts(data []byte, fallback *Prompts) (*Prompts, error) {
	raw := struct {
		Summary string `yaml:"summary"`
		Combine string `yaml:"combine"`
	}{}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing prompts: %w", err)
	}

	prompts := &Prompts{}
	if fallback != nil {
		*prompts = *fallback
	}

	if strings.TrimSpace(raw.Summary) != "" {
		tmpl, err := template.New("summary").Parse(raw.Summary)
		if err != nil {
			return nil, fmt.Errorf("error parsing summary prompt: %w", err)
		}
		prompts.summary = tmpl
	}
	if strings.TrimSpace(raw.Combine) != "" {
		tmpl, err := template.New("combine").Parse(raw.Combine)
		if err != nil {
			return nil, fmt.Errorf("error parsing combine prompt: %w", err)
		}
		prompts.combine = tmpl
	}

	if prompts.summary == nil || prompts.combine == nil {
		return nil, fmt.Errorf("prompts must define both 'summary' and 'combine'")
	}

	return prompts, nil
}

func (p *Prompts) Summary(text string) (string, error) {
	var b strings.Builder
	if err := p.summary.Execute(&b, summaryPromptFields{Text: text}); err != nil {
		return "", fmt.Errorf("error rendering summary prompt: %w", err)
	}
	return b.String(), nil
}

func (p *Prompts) Combine(summaries []string) (string, error) {
	var b strings.Builder
	if err := p.combine.Execute(&b, combinePromptFields{Summaries: summaries}); err != nil {
		return "", fmt.Errorf("error rendering combine prompt: %w", err)
	}
	return b.String(), nil
}
