package predicate

// Group tokens accepted in Only/Except lists; they expand to their member
// predicate names before filtering.
const (
	GroupBasic     = "basic"
	GroupComposite = "composite"
)

// Filter restricts the effective predicate set for one request. Only and
// Except are mutually exclusive; entries may be predicate names or the
// group tokens basic/composite. The zero value applies no restriction.
type Filter struct {
	Only   []string
	Except []string
}

// Validate checks the filter for conflicting settings
func (f Filter) Validate() error {
	if len(f.Only) > 0 && len(f.Except) > 0 {
		return ErrConflictingFilter
	}
	return nil
}

// apply filters the full name set down to the effective set
func (f Filter) apply(r *Registry, all []string) ([]string, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	switch {
	case len(f.Only) > 0:
		keep := f.expand(r, f.Only)
		names := make([]string, 0, len(all))
		for _, name := range all {
			if keep[name] {
				names = append(names, name)
			}
		}
		return names, nil

	case len(f.Except) > 0:
		drop := f.expand(r, f.Except)
		names := make([]string, 0, len(all))
		for _, name := range all {
			if !drop[name] {
				names = append(names, name)
			}
		}
		return names, nil

	default:
		return all, nil
	}
}

// expand resolves group tokens into member predicate names
func (f Filter) expand(r *Registry, entries []string) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, entry := range entries {
		switch entry {
		case GroupBasic:
			for _, name := range r.BasicNames() {
				set[name] = true
			}
		case GroupComposite:
			for _, name := range r.CompositeNames() {
				set[name] = true
			}
		default:
			set[entry] = true
		}
	}
	return set
}
