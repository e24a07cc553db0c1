package engine

import (
	"fmt"
	"sync"

	"window-quote/core/types"
)

// Registry maps categories to calculators
type Registry struct {
	mu          sync.RWMutex
	calculators map[types.Category]Calculator
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		calculators: make(map[types.Category]Calculator),
	}
}

// Register adds a calculator. Panics on duplicates (fail fast).
func (r *Registry) Register(calc Calculator) {
	if err := r.RegisterSafe(calc); err != nil {
		panic(err.Error())
	}
}

// RegisterSafe adds a calculator returning error instead of panic
func (r *Registry) RegisterSafe(calc Calculator) error {
	category := calc.Category()
	if !category.IsValid() {
		return fmt.Errorf("unknown category: %s", category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calculators[category]; exists {
		return fmt.Errorf("calculator already registered: %s", category)
	}
	r.calculators[category] = calc
	return nil
}

// Get returns the calculator for a category
func (r *Registry) Get(category types.Category) (Calculator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calc, ok := r.calculators[category]
	return calc, ok
}

// Categories returns the registered categories in display order
func (r *Registry) Categories() []types.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.Category
	for _, c := range types.AllCategories() {
		if _, ok := r.calculators[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// DefaultRegistry returns a registry holding all eight calculators
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(HorizontalBlinds{})
	r.Register(RollerBlinds{})
	r.Register(MosquitoNet{})
	r.Register(GlassUnit{})
	r.Register(Windowsill{})
	r.Register(Drip{})
	r.Register(SecurityFilm{})
	r.Register(OSB{})
	return r
}
