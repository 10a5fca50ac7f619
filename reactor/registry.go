package reactor

// Registry holds type definitions by name and runs synthesis against them.
// Nominal references resolve lazily through the registry, so definitions may
// reference types registered later; the analyzer treats those as forward
// references and defers to runtime.
//
// A Registry is not safe for concurrent mutation. The engine is
// single-threaded and synchronous by design.
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]*Definition{}}
}

// Register validates the definition and synthesizes its accessors
// immediately, so every synthesis-time error — an unsatisfied module
// dependency, a provable forwarding type conflict, an unknown caching
// strategy — surfaces here, before any instance of the type can exist. A
// failed registration leaves the registry unchanged.
//
// The definition is retained (and annotated) by the registry; do not reuse
// one Definition value across registries.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return ErrNilDefinition
	}
	if def.Name == "" {
		return &DefinitionError{Type: def.Name, Detail: "empty type name"}
	}
	if _, exists := r.defs[def.Name]; exists {
		return &DuplicateTypeError{Name: def.Name}
	}
	for _, s := range def.Slots {
		if s.Name == "" {
			return &DefinitionError{Type: def.Name, Detail: "slot with empty name"}
		}
	}
	for _, fd := range def.Forwards {
		if fd.BaseRef == "" {
			return &DefinitionError{Type: def.Name, Detail: "forwarding declaration with empty base reference"}
		}
	}

	def.registry = r
	def.accessors = map[string]accessor{}
	r.defs[def.Name] = def

	if err := r.synthesizeForwarding(def); err != nil {
		r.unregister(def.Name)
		return err
	}
	if err := r.synthesizeModule(def); err != nil {
		r.unregister(def.Name)
		return err
	}

	r.order = append(r.order, def.Name)
	return nil
}

// MustRegister registers the definition or panics, and returns the registry
// for chaining.
func (r *Registry) MustRegister(def *Definition) *Registry {
	if err := r.Register(def); err != nil {
		panic(err)
	}
	return r
}

// unregister removes a definition whose synthesis failed.
func (r *Registry) unregister(name string) {
	delete(r.defs, name)
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	if r == nil {
		return nil, false
	}
	def, ok := r.defs[name]
	return def, ok
}

// MustLookup returns the definition or panics.
func (r *Registry) MustLookup(name string) *Definition {
	def, ok := r.Lookup(name)
	if !ok {
		panic(&UnknownTypeError{Name: name})
	}
	return def
}

// TypeNames returns the registered type names in registration order.
func (r *Registry) TypeNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
