package ctfe

import (
	"sort"
	"sync"
)

// Descriptor describes a component: the tag it registers, the module that
// registers it and the export bound to it.
type Descriptor struct {
	Tag    string
	Module string
	Export string
}

// Registry tracks component descriptors by tag.
type Registry struct {
	mu sync.RWMutex
	// tag -> descriptor
	tags map[string]*Descriptor
	// module path -> tags registered by that module
	modules map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tags:    make(map[string]*Descriptor),
		modules: make(map[string][]string),
	}
}

// Register adds d. If another module already registered the same tag the
// registry is unchanged and the existing descriptor is returned with
// ok false.
func (r *Registry) Register(d Descriptor) (existing *Descriptor, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, found := r.tags[d.Tag]; found {
		if prev.Module != d.Module {
			return prev, false
		}
		return prev, true
	}
	r.tags[d.Tag] = &d
	r.modules[d.Module] = append(r.modules[d.Module], d.Tag)
	return &d, true
}

// Remove drops every tag registered by module.
func (r *Registry) Remove(module string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tag := range r.modules[module] {
		delete(r.tags, tag)
	}
	delete(r.modules, module)
}

// Lookup finds a descriptor by tag.
func (r *Registry) Lookup(tag string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.tags[tag]
	return d, ok
}

// Tags returns all registered tags, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tags)
}
