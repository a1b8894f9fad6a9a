// Package locator is a client for the public VFC provider locator endpoint.
// The endpoint answers a GET with lat/lng/radius query parameters and returns
// an XML document of self-closing marker elements, one per provider. Responses
// are frequently preceded by PHP warnings and are sometimes malformed, so the
// parser carries a tolerant salvage path alongside the strict one.
package locator

// Provider is a single vaccine provider as emitted by the locator endpoint.
// The source supplies no identifier; two records are the same provider exactly
// when their (Name, Address) pair is textually identical.
type Provider struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Type     string  `json:"type"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Distance float64 `json:"distance"`
}

// Key returns the identity key used for deduplication.
func (p Provider) Key() string {
	return p.Name + "|" + p.Address
}

// Set accumulates providers across query points, keeping the first record seen
// for each identity key.
type Set struct {
	seen map[string]Provider
}

// NewSet returns an empty provider set.
func NewSet() *Set {
	return &Set{seen: make(map[string]Provider)}
}

// Add inserts p unless a provider with the same identity key is already
// present. It reports whether p was new.
func (s *Set) Add(p Provider) bool {
	key := p.Key()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = p
	return true
}

// Len returns the number of unique providers in the set.
func (s *Set) Len() int {
	return len(s.seen)
}

// Providers returns the unique providers. Order is unspecified.
func (s *Set) Providers() []Provider {
	out := make([]Provider, 0, len(s.seen))
	for _, p := range s.seen {
		out = append(out, p)
	}
	return out
}
