package rollup

import "fmt"

// Names of the built-in rollups.
const (
	DailySales      = "daily_sales"
	TopProducts     = "top_products"
	CategoryRevenue = "category_revenue"
	UserEngagement  = "user_engagement"
)

// Builtins returns the four storefront rollups with default settings.
func Builtins() []Definition {
	return []Definition{
		dailySalesDefinition(),
		topProductsDefinition(),
		categoryRevenueDefinition(),
		userEngagementDefinition(),
	}
}

// Registry is an ordered, name-indexed set of definitions.
type Registry struct {
	defs   []Definition
	byName map[string]int
}

// NewRegistry indexes defs by name. Names must be unique and non-empty.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:   make([]Definition, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
	}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("rollup definition without a name")
		}
		if def.Compute == nil || def.Less == nil {
			return nil, fmt.Errorf("rollup %q: compute and ordering are required", def.Name)
		}
		if _, exists := r.byName[def.Name]; exists {
			return nil, fmt.Errorf("rollup %q: duplicate definition", def.Name)
		}
		r.byName[def.Name] = len(r.defs)
		r.defs = append(r.defs, def)
	}
	return r, nil
}

// Get returns the named definition or an error wrapping ErrUnknownRollup.
func (r *Registry) Get(name string) (Definition, error) {
	idx, ok := r.byName[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownRollup, name)
	}
	return r.defs[idx], nil
}

// All returns the definitions in registration order.
func (r *Registry) All() []Definition {
	return append([]Definition(nil), r.defs...)
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.defs))
	for i, def := range r.defs {
		names[i] = def.Name
	}
	return names
}
