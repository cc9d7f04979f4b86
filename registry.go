package aspect

import (
	"fmt"
	"strings"
)

// entry is one registered advice, bound to a selector and a phase.
// Exactly one of advice or around is set, depending on the phase.
type entry struct {
	name     string
	selector string
	phase    Phase
	advice   Advice
	around   AroundAdvice
}

// Registry holds advice registrations. It is populated once at startup and
// treated as read-only afterwards, so concurrent resolution during dispatch
// needs no synchronization.
type Registry struct {
	entries []entry
	seen    map[registrationKey]struct{}
}

type registrationKey struct {
	name  string
	phase Phase
}

// NewRegistry creates an empty advice registry.
func NewRegistry() *Registry {
	return &Registry{
		seen: make(map[registrationKey]struct{}),
	}
}

// Register adds advice for the given phase bound to operations matched by
// selector. Registering the same advice name for the same phase again is a
// no-op. The Around phase must be registered via RegisterAround.
//
// A selector is an exact operation name, a trailing wildcard over a dotted
// namespace such as "user.*", or "*" to match every operation.
func (r *Registry) Register(name, selector string, phase Phase, adv Advice) error {
	if phase == Around {
		return fmt.Errorf("around advice %q must be registered via RegisterAround", name)
	}
	if adv == nil {
		return fmt.Errorf("advice %q is nil", name)
	}
	return r.add(entry{name: name, selector: selector, phase: phase, advice: adv})
}

// RegisterAround adds around advice bound to operations matched by selector.
// Registering the same advice name again is a no-op.
func (r *Registry) RegisterAround(name, selector string, adv AroundAdvice) error {
	if adv == nil {
		return fmt.Errorf("around advice %q is nil", name)
	}
	return r.add(entry{name: name, selector: selector, phase: Around, around: adv})
}

func (r *Registry) add(e entry) error {
	if e.name == "" {
		return fmt.Errorf("advice name must not be empty")
	}
	if err := validateSelector(e.selector); err != nil {
		return fmt.Errorf("advice %q: %w", e.name, err)
	}
	key := registrationKey{name: e.name, phase: e.phase}
	if _, dup := r.seen[key]; dup {
		return nil
	}
	r.seen[key] = struct{}{}
	r.entries = append(r.entries, e)
	return nil
}

// Names returns the registered advice names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	return names
}

// Len returns the number of registered advice entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// plan is the phase-grouped advice resolved for one operation name. Each
// slice preserves registration order. An empty plan is valid: the operation
// simply runs unadvised.
type plan struct {
	around       []entry
	before       []entry
	afterSuccess []entry
	afterFailure []entry
}

// resolve returns all advice whose selector matches the operation name,
// grouped by phase, in registration order.
func (r *Registry) resolve(operation string) plan {
	var p plan
	for _, e := range r.entries {
		if !selectorMatches(e.selector, operation) {
			continue
		}
		switch e.phase {
		case Around:
			p.around = append(p.around, e)
		case Before:
			p.before = append(p.before, e)
		case AfterSuccess:
			p.afterSuccess = append(p.afterSuccess, e)
		case AfterFailure:
			p.afterFailure = append(p.afterFailure, e)
		}
	}
	return p
}

func validateSelector(selector string) error {
	switch {
	case selector == "":
		return fmt.Errorf("selector must not be empty")
	case selector == "*":
		return nil
	case strings.Contains(selector, "*") && !strings.HasSuffix(selector, ".*"):
		return fmt.Errorf("invalid selector %q: wildcard is only allowed as a trailing \".*\"", selector)
	case strings.Count(selector, "*") > 1:
		return fmt.Errorf("invalid selector %q: at most one wildcard", selector)
	}
	return nil
}

// selectorMatches reports whether the selector applies to the operation
// name. "user.*" matches "user.logIn" but not "user" itself.
func selectorMatches(selector, operation string) bool {
	if selector == "*" {
		return true
	}
	if strings.HasSuffix(selector, ".*") {
		return strings.HasPrefix(operation, strings.TrimSuffix(selector, "*"))
	}
	return selector == operation
}
