package fixture

import (
	"fmt"
)

// Case is a single registered test case
type Case struct {
	Group string
	Name  string
	Body  func(t *T)
}

// Group is a named, ordered collection of cases sharing setup and teardown
type Group struct {
	Name string

	// Setup runs immediately before every case in the group
	Setup func(t *T)
	// TearDown runs immediately after every case in the group
	TearDown func(t *T)

	cases []*Case
	names map[string]bool
}

// Case appends a case to the group. Registration order is execution order.
func (g *Group) Case(name string, body func(t *T)) error {
	if name == "" {
		return fmt.Errorf("group %s: case name is empty", g.Name)
	}
	if body == nil {
		return fmt.Errorf("case %s.%s: body is nil", g.Name, name)
	}
	if g.names == nil {
		g.names = make(map[string]bool)
	}
	if g.names[name] {
		return fmt.Errorf("case %s.%s: already registered", g.Name, name)
	}
	g.names[name] = true
	g.cases = append(g.cases, &Case{Group: g.Name, Name: name, Body: body})
	return nil
}

// Cases returns the registered cases in order
func (g *Group) Cases() []*Case {
	return g.cases
}

// Registry holds every registered group in registration order
type Registry struct {
	groups []*Group
	index  map[string]*Group
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*Group)}
}

// Group registers a new group with the given name
func (r *Registry) Group(name string) (*Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is empty")
	}
	if _, ok := r.index[name]; ok {
		return nil, fmt.Errorf("group %s: already registered", name)
	}
	g := &Group{Name: name, names: make(map[string]bool)}
	r.groups = append(r.groups, g)
	r.index[name] = g
	return g, nil
}

// Lookup returns the group registered under name
func (r *Registry) Lookup(name string) (*Group, bool) {
	g, ok := r.index[name]
	return g, ok
}

// Groups returns the registered groups in order
func (r *Registry) Groups() []*Group {
	return r.groups
}

// CaseCount returns the number of registered cases across all groups
func (r *Registry) CaseCount() int {
	var n int
	for _, g := range r.groups {
		n += len(g.cases)
	}
	return n
}

// RegisterFunc populates a registry with groups, in a fixed order
type RegisterFunc func(r *Registry) error

// Build creates a registry and populates it with register
func Build(register RegisterFunc) (*Registry, error) {
	r := NewRegistry()
	if register == nil {
		return r, nil
	}
	if err := register(r); err != nil {
		return nil, fmt.Errorf("register groups: %w", err)
	}
	return r, nil
}
