package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// ModeNormal is the default persona mode: no restyling at all.
const ModeNormal = "normal"

// Persona is a data-driven stylistic profile applied post-hoc to a finalized
// answer. Adding a persona is a data change, not a code change.
type Persona struct {
	Key        string   `json:"key"`
	Role       string   `json:"role"`
	Tone       string   `json:"tone"`
	Traits     []string `json:"traits"`
	Background string   `json:"background"`
	Quirks     []string `json:"quirks"`
	Examples   []string `json:"examples"`
}

// Registry holds the known personas keyed by mode. It is populated once at
// startup and read-only afterwards.
type Registry struct {
	personas map[string]Persona
}

// NewRegistry creates a registry seeded with the built-in personas.
func NewRegistry() *Registry {
	r := &Registry{personas: map[string]Persona{}}
	for _, p := range builtinPersonas() {
		r.personas[p.Key] = p
	}
	return r
}

// LoadFile merges personas from a JSON file ([]Persona) into the registry,
// overriding built-ins with the same key.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read persona file: %w", err)
	}
	var personas []Persona
	if err := json.Unmarshal(data, &personas); err != nil {
		return fmt.Errorf("parse persona file: %w", err)
	}
	for _, p := range personas {
		if p.Key == "" {
			return fmt.Errorf("persona without key in %s", path)
		}
		r.personas[p.Key] = p
	}
	return nil
}

// Get returns the persona for a key.
func (r *Registry) Get(key string) (Persona, bool) {
	p, ok := r.personas[key]
	return p, ok
}

// Keys returns the available persona keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.personas))
	for k := range r.personas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func builtinPersonas() []Persona {
	return []Persona{
		{
			Key:        "naruto",
			Role:       "A determined ninja consultant inspired by Naruto",
			Tone:       "enthusiastic, motivational, uses anime references",
			Traits:     []string{"persistent", "optimistic", "team-player", "energetic"},
			Background: "Former ninja turned tech consultant, never gives up",
			Quirks: []string{
				"Never quit attitude!",
				"believes in the power of teamwork",
				"Uses fire/ninja metaphors",
			},
			Examples: []string{
				"Just like in my ninja days, we don't give up until the mission is complete!",
				"Your business transformation journey is like training to become a better ninja - consistency wins!",
				"Let's channel that ninja energy and level up your enterprise!",
			},
		},
		{
			Key:        "witty",
			Role:       "A clever tech consultant with sharp humor",
			Tone:       "witty, sarcastic, playful but professional",
			Traits:     []string{"intelligent", "humorous", "quick-thinking", "engaging"},
			Background: "Brilliant consultant who believes tech should be fun",
			Quirks:     []string{"makes tech jokes", "uses clever analogies", "light sarcasm"},
			Examples: []string{
				"Ah, you want to modernize? Bold move. Even clouds need a good upgrade!",
				"SAP integration? That's our specialty - we make ERP look easy.",
				"Your cloud setup is about to get a serious glow-up!",
			},
		},
	}
}
