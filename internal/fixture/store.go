package fixture

import "github.com/yrrapt/yaaade/internal/domain"

// componentStore is a two-level keyed store: type -> name -> component.
// Both levels keep first-insertion order. Putting an existing (type, name)
// pair replaces the component in place without an error.
type componentStore struct {
	types  []domain.ComponentType
	groups map[domain.ComponentType]*componentGroup
}

type componentGroup struct {
	names  []string
	byName map[string]domain.Component
}

func newComponentStore() componentStore {
	return componentStore{groups: map[domain.ComponentType]*componentGroup{}}
}

// put stores c and reports whether it replaced an existing entry.
func (s *componentStore) put(c domain.Component) bool {
	g, ok := s.groups[c.Type()]
	if !ok {
		g = &componentGroup{byName: map[string]domain.Component{}}
		s.groups[c.Type()] = g
		s.types = append(s.types, c.Type())
	}

	_, replaced := g.byName[c.Name()]
	if !replaced {
		g.names = append(g.names, c.Name())
	}
	g.byName[c.Name()] = c
	return replaced
}

func (s *componentStore) get(t domain.ComponentType, name string) (domain.Component, bool) {
	g, ok := s.groups[t]
	if !ok {
		return nil, false
	}
	c, ok := g.byName[name]
	return c, ok
}

// group returns the components of one type in insertion order; ok is false
// when the type was never registered.
func (s *componentStore) group(t domain.ComponentType) ([]domain.Component, bool) {
	g, ok := s.groups[t]
	if !ok {
		return nil, false
	}
	out := make([]domain.Component, 0, len(g.names))
	for _, n := range g.names {
		out = append(out, g.byName[n])
	}
	return out, true
}

// all walks every component, grouped by type then by name.
func (s *componentStore) all() []domain.Component {
	var out []domain.Component
	for _, t := range s.types {
		cs, _ := s.group(t)
		out = append(out, cs...)
	}
	return out
}

// powerDomains is a name-keyed map that remembers insertion order;
// overwriting keeps the original position.
type powerDomains struct {
	names  []string
	byName map[string]*domain.PowerDomain
}

func newPowerDomains() powerDomains {
	return powerDomains{byName: map[string]*domain.PowerDomain{}}
}

func (p *powerDomains) put(d *domain.PowerDomain) {
	if _, ok := p.byName[d.Name]; !ok {
		p.names = append(p.names, d.Name)
	}
	p.byName[d.Name] = d
}

func (p *powerDomains) get(name string) (*domain.PowerDomain, bool) {
	d, ok := p.byName[name]
	return d, ok
}

func (p *powerDomains) ordered() []*domain.PowerDomain {
	out := make([]*domain.PowerDomain, 0, len(p.names))
	for _, n := range p.names {
		out = append(out, p.byName[n])
	}
	return out
}
