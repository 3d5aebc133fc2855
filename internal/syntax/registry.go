package syntax

// Registry is an ordered, immutable list of profiles. The first profile
// whose patterns match a filename wins.
type Registry struct {
	profiles []*Profile
	byName   map[string]*Profile
}

// NewRegistry creates a registry from profiles in priority order.
// Nil profiles are skipped. When two profiles share a name, Lookup returns
// the first one.
func NewRegistry(profiles ...*Profile) *Registry {
	r := &Registry{
		profiles: make([]*Profile, 0, len(profiles)),
		byName:   make(map[string]*Profile, len(profiles)),
	}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		r.profiles = append(r.profiles, p)
		if _, ok := r.byName[p.Name()]; !ok {
			r.byName[p.Name()] = p
		}
	}
	return r
}

// DefaultRegistry returns a registry holding only the built-in profiles.
func DefaultRegistry() *Registry {
	return NewRegistry(Builtins()...)
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.profiles)
}

// Profiles returns the profiles in priority order.
func (r *Registry) Profiles() []*Profile {
	if r == nil {
		return nil
	}
	return append([]*Profile(nil), r.profiles...)
}

// Lookup returns the profile registered under name.
func (r *Registry) Lookup(name string) (*Profile, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byName[name]
	return p, ok
}

// Match returns the first profile matching filename, or nil when the
// filename is empty or nothing matches.
func (r *Registry) Match(filename string) *Profile {
	if r == nil || filename == "" {
		return nil
	}
	for _, p := range r.profiles {
		if p.Matches(filename) {
			return p
		}
	}
	return nil
}

// With returns a new registry with extra profiles placed ahead of the
// existing ones.
func (r *Registry) With(first ...*Profile) *Registry {
	all := make([]*Profile, 0, len(first)+r.Len())
	all = append(all, first...)
	all = append(all, r.Profiles()...)
	return NewRegistry(all...)
}
