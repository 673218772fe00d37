package prompts

import (
	"fmt"
	"os"
	"strings"

	"github.com/aven-ai/support-agent/internal/models"
)

// Manager loads the support prompt template once at startup and formats it
// per request. A missing or unreadable template is a configuration failure:
// the service refuses to start rather than answer without grounding rules.
type Manager struct {
	template string
}

func NewManager() (*Manager, error) {
	path := os.Getenv("PROMPT_TEMPLATE_PATH")
	if path == "" {
		path = "prompts/support_prompt.txt"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template %s: %w", path, err)
	}

	return &Manager{template: string(data)}, nil
}

// Format substitutes the retrieved context, the question, and the formatted
// source list into the template.
func (m *Manager) Format(context string, question string, sources []models.SourceInfo) string {
	prompt := strings.ReplaceAll(m.template, "{context}", context)
	prompt = strings.ReplaceAll(prompt, "{question}", question)
	prompt = strings.ReplaceAll(prompt, "{sources}", formatSources(sources))
	return prompt
}

func formatSources(sources []models.SourceInfo) string {
	if len(sources) == 0 {
		return "No sources available."
	}

	lines := make([]string, 0, len(sources))
	for i, source := range sources {
		lines = append(lines, fmt.Sprintf("%d. **%s** (Reference: %s)", i+1, source.Title, source.SourceReference))
	}
	return strings.Join(lines, "\n")
}
