package reactor

import "strings"

// verdict is the outcome of a resolvability query.
//
// The delegation synthesizer consumes verdicts with a reluctant, best-effort
// policy: verdictNo means the slot is silently left for another mechanism,
// never an error. The factory synthesizer applies the strict policy to its
// own constructibility check instead; both share the contract and
// compatibility machinery underneath.
type verdict uint8

const (
	// verdictNo: static evidence proves (or strongly suggests) the member
	// cannot be forwarded. Never produced spuriously for private targets.
	verdictNo verdict = iota

	// verdictDeferred: evidence is inconclusive; install a deferred binding
	// and recompute at first access.
	verdictDeferred

	// verdictProven: the target member is statically known to exist on the
	// base reference's declared type.
	verdictProven
)

// forwardable reports whether the target member can be read through the
// base reference slot of the owner type, using static evidence only.
//
//  1. The base reference's type comes from the owner contract, or failing
//     that from the declared constructor parameter list (exact name, then
//     private-marker-stripped alternative). A parameter without a declared
//     type defers to runtime, and so does a base reference found in neither
//     place: the caller explicitly named it, so trust that a value will be
//     supplied at runtime.
//  2. A private target member is always a No, before any other evidence is
//     considered. Only public members may be forwarded.
//  3. An unresolved forward reference or a non-nominal base type defers to
//     runtime: it cannot be proven, but cannot be disproven either.
//  4. The target is proven if the base type's contract contains it or the
//     base type's Init hook declares it via Provides.
//
// False negatives are acceptable here; false positives for rule 2 are not.
func (r *Registry) forwardable(owner *Definition, baseRef, target string) (verdict, TypeRef) {
	if strings.HasPrefix(target, DefaultPrefix) {
		return verdictNo, TypeRef{}
	}

	var baseType TypeRef
	contract := r.contractOf(owner)
	if s, ok := contract.Slot(baseRef); ok {
		baseType = s.Type
	} else if p, ok := owner.param(baseRef); ok {
		if !p.HasType {
			return verdictDeferred, TypeRef{}
		}
		baseType = p.Type
	} else {
		// The declaration names a base reference the static model knows
		// nothing about; a value may still be injected at runtime.
		return verdictDeferred, TypeRef{}
	}

	switch baseType.Kind {
	case KindNamed:
		// fall through to member inspection below
	case KindAny, KindParameterized:
		return verdictDeferred, TypeRef{}
	default:
		// Primitives and containers expose no named members.
		return verdictNo, TypeRef{}
	}

	baseDef, ok := r.Lookup(baseType.TypeName)
	if !ok {
		return verdictDeferred, TypeRef{}
	}

	baseContract := r.contractOf(baseDef)
	if s, ok := baseContract.Slot(target); ok {
		return verdictProven, s.Type
	}
	if baseDef.provides(target) {
		return verdictProven, TypeRef{}
	}
	return verdictNo, TypeRef{}
}
