// Package character manages the chat persona registry: the set of AI
// characters a user can talk to, each with its own system prompt. Personas
// load from a YAML file, falling back to a built-in trio, and the registry
// can hot-reload the file on change.
package character

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Character is one chat persona.
type Character struct {
	Name         string `yaml:"name"`
	Emoji        string `yaml:"emoji"`
	Description  string `yaml:"description"`
	SystemPrompt string `yaml:"system_prompt"`
}

// charactersFile is the YAML document shape.
type charactersFile struct {
	Characters []Character `yaml:"characters"`
}

// Defaults returns the built-in personas used when no characters file is
// configured.
func Defaults() []Character {
	return []Character{
		{
			Name:        "Aria",
			Emoji:       "🌸",
			Description: "A cheerful companion who loves hearing about your day",
			SystemPrompt: "You are Aria, a warm and cheerful companion. You are upbeat without " +
				"being exhausting, you ask about the small things in the user's day, and you " +
				"remember what matters to them. Keep replies conversational and short.",
		},
		{
			Name:        "Ren",
			Emoji:       "🌙",
			Description: "A calm listener who thinks before speaking",
			SystemPrompt: "You are Ren, a calm and thoughtful listener. You speak plainly, " +
				"never rush the user, and offer perspective rather than advice unless asked. " +
				"Comfortable with silence; your replies are brief and considered.",
		},
		{
			Name:        "Yuki",
			Emoji:       "⛄",
			Description: "A playful friend with a dry sense of humor",
			SystemPrompt: "You are Yuki, a playful friend with a dry sense of humor. You tease " +
				"gently, never meanly, and you know when to drop the jokes and just listen. " +
				"Keep replies light and conversational.",
		},
	}
}

// Registry holds the active persona set. Lookups are safe to use
// concurrently with a reload from the file watcher.
type Registry struct {
	mu    sync.RWMutex
	chars map[string]Character
	order []string
}

// NewRegistry builds a registry from the given personas.
func NewRegistry(chars []Character) *Registry {
	r := &Registry{}
	r.replace(chars)
	return r
}

// Load reads personas from a YAML file. An empty path returns the built-in
// defaults.
func Load(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(Defaults()), nil
	}

	chars, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(chars), nil
}

func readFile(path string) ([]Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("character: failed to read %s: %w", path, err)
	}

	var doc charactersFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("character: failed to parse %s: %w", path, err)
	}
	if len(doc.Characters) == 0 {
		return nil, fmt.Errorf("character: %s defines no characters", path)
	}
	for i, c := range doc.Characters {
		if c.Name == "" {
			return nil, fmt.Errorf("character: %s: character %d has no name", path, i)
		}
	}
	return doc.Characters, nil
}

func (r *Registry) replace(chars []Character) {
	m := make(map[string]Character, len(chars))
	order := make([]string, 0, len(chars))
	for _, c := range chars {
		if _, seen := m[c.Name]; !seen {
			order = append(order, c.Name)
		}
		m[c.Name] = c
	}

	r.mu.Lock()
	r.chars = m
	r.order = order
	r.mu.Unlock()
}

// Get returns the persona by name.
func (r *Registry) Get(name string) (Character, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.chars[name]
	return c, ok
}

// Names returns persona names in definition order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// All returns the personas in definition order.
func (r *Registry) All() []Character {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Character, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.chars[name])
	}
	return out
}
