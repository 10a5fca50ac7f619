package reactor

// synthesizeModule is the factory/cache synthesizer. For every unimplemented
// contract slot with a constructible declared type it installs a factory
// accessor applying the configured caching strategy. Unlike the delegation
// synthesizer this one is greedy: a slot whose declared type is neither
// primitive nor constructible is a hard configuration error, surfaced at
// registration time before any instance exists.
func (r *Registry) synthesizeModule(def *Definition) error {
	cfg := def.Module
	if cfg == nil {
		return nil
	}
	switch cfg.Caching {
	case CachingDisabled, CachingMemoized:
	default:
		return &StrategyError{Type: def.Name, Strategy: cfg.Caching}
	}

	contract := r.contractOf(def)
	for _, name := range contract.names {
		slot := contract.slots[name]
		if def.implemented(slot) {
			continue
		}
		ok, primitiveLike := r.constructible(slot.Type)
		if !ok {
			if primitiveLike {
				// Presumed supplied by another mechanism (direct injection
				// or a forwarding layer); skip silently.
				continue
			}
			return &UnsatisfiedDependencyError{
				Type:     def.Name,
				Slot:     slot.Name,
				Declared: slot.Type.String(),
			}
		}
		def.accessors[slot.Name] = r.factoryAccessor(slot.Name, slot.Type.TypeName, cfg.Caching)
	}
	return nil
}

// constructible decides whether the factory may instantiate the declared
// type: it must be a nominal, registered, non-foreign type exposing a
// nullary constructor. The second result reports whether a non-constructible
// type is primitive-like (primitives, containers, the open type, and
// parameterized containers), which downgrades the greedy error to a silent
// skip.
func (r *Registry) constructible(t TypeRef) (ok, primitiveLike bool) {
	switch t.Kind {
	case KindAny:
		return false, true
	case KindNamed:
		def, found := r.Lookup(t.TypeName)
		if !found || def.Foreign || len(def.Params) > 0 {
			return false, false
		}
		return true, false
	case KindParameterized:
		if t.Base != nil && t.Base.IsPrimitive() {
			return false, true
		}
		return false, false
	default:
		return false, t.IsPrimitive()
	}
}

// factoryAccessor builds the accessor that instantiates the dependency. On
// invocation it constructs the declared type with no arguments, attaches the
// owner back-reference, computes the one-shot dependency map, and applies
// the caching strategy. Under CachingMemoized the constructed instance is
// stored on the owner, so the value-store hit short-circuits every later
// access; under CachingDisabled every access constructs afresh.
func (r *Registry) factoryAccessor(slotName, typeName string, caching CachingStrategy) accessor {
	return func(owner *Instance) (any, error) {
		if owner == nil {
			return nil, ErrNilInstance
		}
		dep, err := r.New(typeName)
		if err != nil {
			return nil, err
		}
		dep.owner = owner
		if m := r.dependencyMap(dep.def, owner.def); len(m) > 0 {
			dep.depMap = m
			dep.wire = wireUnwired
		}
		if caching == CachingMemoized {
			owner.values[slotName] = dep
		}
		return dep, nil
	}
}

// dependencyMap intersects the dependency's contract names against the
// owner's: an exact name match first, then the private-marker-stripped
// alternative. The map drives the dependency's one-shot back-wiring from the
// owner and is consumed by its single application.
func (r *Registry) dependencyMap(dep, owner *Definition) map[string]string {
	depContract := r.contractOf(dep)
	ownerContract := r.contractOf(owner)

	m := map[string]string{}
	for _, name := range depContract.names {
		if ownerContract.Has(name) {
			m[name] = name
			continue
		}
		if alt, ok := stripPrefix(name, DefaultPrefix); ok && ownerContract.Has(alt) {
			m[name] = alt
		}
	}
	return m
}
