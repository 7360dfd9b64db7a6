package vocabulary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownVocabulary is returned when a provider has no vocabulary for a
// name.
var ErrUnknownVocabulary = errors.New("vocabulary: unknown vocabulary")

// Provider resolves named vocabularies for widgets.
type Provider interface {
	Vocabulary(name string) (*Vocabulary, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(name string) (*Vocabulary, error)

// Vocabulary calls the underlying function.
func (fn ProviderFunc) Vocabulary(name string) (*Vocabulary, error) {
	return fn(name)
}

// Registry stores vocabularies by name and implements Provider.
type Registry struct {
	mu           sync.RWMutex
	vocabularies map[string]*Vocabulary
}

var _ Provider = (*Registry)(nil)

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		vocabularies: make(map[string]*Vocabulary),
	}
}

// Register adds a vocabulary by name. Duplicate names return an error.
func (r *Registry) Register(name string, v *Vocabulary) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("vocabulary: name is required")
	}
	if v == nil {
		return fmt.Errorf("vocabulary: vocabulary %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.vocabularies[name]; exists {
		return fmt.Errorf("vocabulary: %q already registered", name)
	}
	r.vocabularies[name] = v
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, v *Vocabulary) {
	if err := r.Register(name, v); err != nil {
		panic(err)
	}
}

// Vocabulary retrieves a vocabulary by name.
func (r *Registry) Vocabulary(name string) (*Vocabulary, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVocabulary, name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vocabularies[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVocabulary, name)
	}
	return v, nil
}

// Names returns the registered vocabulary names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.vocabularies))
	for name := range r.vocabularies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
