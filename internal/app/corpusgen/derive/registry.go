package derive

import "maps"

// Registry is a set of headwords in use.
type Registry struct {
	words map[string]struct{}
}

// NewRegistry returns a registry seeded with words.
func NewRegistry(words map[string]struct{}) *Registry {
	r := &Registry{words: make(map[string]struct{}, len(words))}
	maps.Copy(r.words, words)
	return r
}

// Has reports whether word is registered.
func (r *Registry) Has(word string) bool {
	_, ok := r.words[word]
	return ok
}

// Add registers word.
func (r *Registry) Add(word string) {
	r.words[word] = struct{}{}
}

// Len returns the number of registered words.
func (r *Registry) Len() int {
	return len(r.words)
}

// Clone returns an independent copy.
func (r *Registry) Clone() *Registry {
	return NewRegistry(r.words)
}
