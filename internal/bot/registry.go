package bot

import "sort"

// Registry is an explicit map of named learner instances. The component
// orchestrating training or play owns it and passes it where needed; there
// is deliberately no package-level instance.
type Registry struct {
	seed     int64
	learners map[string]*Learner
}

// NewRegistry creates an empty registry. The seed derives the exploration
// RNG of learners the registry creates on demand.
func NewRegistry(seed int64) *Registry {
	return &Registry{
		seed:     seed,
		learners: make(map[string]*Learner),
	}
}

// Get returns the learner registered under name, creating one with the
// default configuration if none exists. A requested-but-unknown agent must
// never block game progress.
func (r *Registry) Get(name string) *Learner {
	if l, ok := r.learners[name]; ok {
		return l
	}
	l := NewLearner(DefaultConfig(name), r.seed+int64(len(r.learners)))
	r.learners[name] = l
	return l
}

// Put registers (or replaces) a learner under its own name.
func (r *Registry) Put(l *Learner) {
	r.learners[l.Name()] = l
}

// Names returns the registered agent names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.learners))
	for name := range r.learners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
