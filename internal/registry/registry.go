package registry

import (
	"sync"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/providers"
)

// Location is where a registered property is.
type Location struct {
	City        string             `json:"city"`
	Country     string             `json:"country"`
	Coordinates *hotel.Coordinates `json:"coordinates,omitempty"`
}

// Property is a property registration: the internal id plus what is needed
// to address the property at its supplier.
type Property struct {
	ID        string       `json:"id"`
	Provider  providers.ID `json:"provider,omitempty"`
	AccountID string       `json:"hrId"`
	Token     string       `json:"token"`
	Name      string       `json:"name"`
	Currency  string       `json:"currency"`
	Timezone  string       `json:"timezone"`
	Location  Location     `json:"location"`
}

// Registry holds property registrations in memory. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	properties map[string]Property
	order      []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		properties: make(map[string]Property),
	}
}

// Register adds or replaces a registration. The last write wins.
func (r *Registry) Register(p Property) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.properties[p.ID] = p
}

// Lookup returns the registration for id.
func (r *Registry) Lookup(id string) (Property, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.properties[id]
	return p, ok
}

// List returns every registration in first-registration order.
func (r *Registry) List() []Property {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Property, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.properties[id])
	}
	return out
}

// ListByProvider returns the registrations served by provider.
func (r *Registry) ListByProvider(provider providers.ID) []Property {
	var out []Property
	for _, p := range r.List() {
		if p.Provider == provider {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.properties)
}
