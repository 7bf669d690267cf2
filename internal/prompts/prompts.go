package prompts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"grammarbot/internal/domain"
)

// ErrUnknownMode indicates a lookup for a mode that has no loaded template.
// Startup validation makes this unreachable in practice.
var ErrUnknownMode = errors.New("unknown prompt mode")

// Set maps completion modes to their system prompt templates.
// Immutable after Load.
type Set struct {
	templates map[domain.Mode]string
}

// Load reads one template file per mode from dir.
// Any missing or empty template is a startup failure.
func Load(dir string) (*Set, error) {
	templates := make(map[domain.Mode]string, len(domain.Modes()))

	for _, mode := range domain.Modes() {
		path := filepath.Join(dir, string(mode)+".txt")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompt for mode %q: %w", mode, err)
		}

		text := strings.TrimSpace(string(data))
		if text == "" {
			return nil, fmt.Errorf("prompt file %s is empty", path)
		}
		templates[mode] = text
	}

	return &Set{templates: templates}, nil
}

// Get returns the template for mode
func (s *Set) Get(mode domain.Mode) (string, error) {
	text, ok := s.templates[mode]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	return text, nil
}
