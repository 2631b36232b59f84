package calltrace

import (
	"sort"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Registration describes one instrumented operation.
type Registration struct {
	Identity     string
	Description  string
	RegisteredAt time.Time
}

// Registry tracks which identities are instrumented. Identities are claimed
// exactly once; a second claim for the same identity fails, which catches two
// operations accidentally sharing a counter and history.
//
// Registry is safe for concurrent use.
type Registry struct {
	entries *xsync.MapOf[string, Registration]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: xsync.NewMapOf[string, Registration]()}
}

// Register claims identity, recording a human-readable description alongside
// it. The identity must pass ValidateIdentity and must not already be
// registered.
func (r *Registry) Register(identity, description string) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}

	reg := Registration{
		Identity:     identity,
		Description:  description,
		RegisteredAt: time.Now(),
	}
	if _, loaded := r.entries.LoadOrStore(identity, reg); loaded {
		return &IdentityError{Identity: identity, Message: "already registered"}
	}
	return nil
}

// Lookup returns the registration for identity, if any.
func (r *Registry) Lookup(identity string) (Registration, bool) {
	return r.entries.Load(identity)
}

// Identities returns all registered identities in lexical order.
func (r *Registry) Identities() []string {
	out := make([]string, 0, r.entries.Size())
	r.entries.Range(func(identity string, _ Registration) bool {
		out = append(out, identity)
		return true
	})
	sort.Strings(out)
	return out
}

// Len reports the number of registered identities.
func (r *Registry) Len() int {
	return r.entries.Size()
}
