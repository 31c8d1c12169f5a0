package turn

import (
	"sort"

	"github.com/lvaldes/statecraft/internal/domain/market"
)

// resourceRegistry is the turn-scoped working set of the global resource
// market: every known resource plus any placeholder created while applying
// actions. Loaded once per turn and written back as a whole so the shared
// price state is read and saved exactly once.
type resourceRegistry struct {
	byName map[string]*market.Resource
}

func newResourceRegistry(resources []*market.Resource) *resourceRegistry {
	reg := &resourceRegistry{byName: make(map[string]*market.Resource, len(resources))}
	for _, r := range resources {
		reg.byName[r.Name()] = r
	}
	return reg
}

// Lookup returns a resource by name, or nil when unknown
func (reg *resourceRegistry) Lookup(name string) *market.Resource {
	return reg.byName[name]
}

// Ensure returns the named resource, creating a zero-parameter placeholder
// the first time an action payload names an unpriced resource. Placeholders
// stay untradeable until the market-setup collaborator initializes them.
func (reg *resourceRegistry) Ensure(name string) (*market.Resource, error) {
	if r, ok := reg.byName[name]; ok {
		return r, nil
	}
	r, err := market.NewPlaceholderResource(name)
	if err != nil {
		return nil, err
	}
	reg.byName[name] = r
	return r, nil
}

// All returns every resource in ascending name order
func (reg *resourceRegistry) All() []*market.Resource {
	out := make([]*market.Resource, 0, len(reg.byName))
	for _, r := range reg.byName {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
