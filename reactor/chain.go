package reactor

import "slices"

// chainCandidate is one (base reference, target member) pair a stacked
// resolution may attempt.
type chainCandidate struct {
	BaseRef string
	Target  string
}

func (c chainCandidate) String() string { return c.BaseRef + "." + c.Target }

// chainBinding is the resolution chain installed when multiple stacked
// forwarding declarations could satisfy one slot. Candidates are recorded in
// application order; resolution consults them most recently applied first.
type chainBinding struct {
	typeName   string
	slot       string
	candidates []chainCandidate
}

// resolve walks the candidates, most recently applied first, reading the
// base reference and then the target member; any failure moves on to the
// next candidate. If every candidate fails, the first-applied declaration is
// retried once verbatim, unless that exact pair was already attempted.
// Exactly one successful branch is used per access, and failed branches
// mutate nothing. Exhaustion reports each attempted pair once.
func (b *chainBinding) resolve(owner *Instance) (any, error) {
	if owner == nil {
		return nil, ErrNilInstance
	}

	attempted := make([]string, 0, len(b.candidates)+1)
	for i := len(b.candidates) - 1; i >= 0; i-- {
		v, ok := b.attempt(owner, b.candidates[i])
		if ok {
			return v, nil
		}
		attempted = append(attempted, b.candidates[i].String())
	}

	primary := b.candidates[0]
	if !slices.Contains(attempted, primary.String()) {
		if v, ok := b.attempt(owner, primary); ok {
			return v, nil
		}
		attempted = append(attempted, primary.String())
	}

	return nil, &ResolutionError{
		Type:      b.typeName,
		Slot:      b.slot,
		Attempted: attempted,
	}
}

// attempt tries one candidate branch.
func (b *chainBinding) attempt(owner *Instance, c chainCandidate) (any, bool) {
	base, err := owner.Get(c.BaseRef)
	if err != nil || base == nil {
		return nil, false
	}
	return readMember(base, c.Target)
}
