package reactor

// DefaultPrefix is the private-marker prefix assumed by forwarding
// declarations and by the dependency-map name intersection.
const DefaultPrefix = "_"

// Slot is one named, typed member a type declares but may not implement.
// Slots without a value are synthesis targets for the delegation and factory
// synthesizers.
type Slot struct {
	Name string
	Type TypeRef

	// Default, when HasDefault is set, is seeded into every new instance at
	// construction. A slot with a default counts as implemented and is never
	// synthesized.
	Default    any
	HasDefault bool

	// Placeholder marks a bare type-level sentinel ("must be synthesized").
	// Placeholder declarations never override a concrete ancestor
	// declaration during contract collection.
	Placeholder bool
}

// NewSlot declares a slot with the given name and type.
func NewSlot(name string, t TypeRef) Slot {
	return Slot{Name: name, Type: t}
}

// WithDefault returns a copy of the slot carrying a default value.
func (s Slot) WithDefault(v any) Slot {
	s.Default = v
	s.HasDefault = true
	return s
}

// AsPlaceholder returns a copy of the slot marked as a bare placeholder.
func (s Slot) AsPlaceholder() Slot {
	s.Placeholder = true
	return s
}

// Param is one declared constructor parameter. The resolvability analyzer
// consults parameters to infer the type of a base reference that is absent
// from the contract; the factory synthesizer treats any parameter as proof
// that the constructor is not nullary.
type Param struct {
	Name    string
	Type    TypeRef
	HasType bool
}

// NewParam declares a typed constructor parameter.
func NewParam(name string, t TypeRef) Param {
	return Param{Name: name, Type: t, HasType: true}
}

// NewUntypedParam declares a constructor parameter without a declared type.
func NewUntypedParam(name string) Param {
	return Param{Name: name}
}

// ForwardDecl configures one layer of delegation synthesis: slots matching
// Prefix are satisfied by reading the prefix-stripped member off the value of
// the BaseRef slot.
//
// A type may carry several declarations. They are recorded in application
// order; when more than one could satisfy a slot the resolution chain
// consults the most recently applied declaration first and finally retries
// the first-applied declaration's base reference verbatim.
type ForwardDecl struct {
	BaseRef string
	Prefix  string
}

// NewForward declares forwarding through baseRef with the default "_" prefix.
func NewForward(baseRef string) ForwardDecl {
	return ForwardDecl{BaseRef: baseRef, Prefix: DefaultPrefix}
}

// WithPrefix returns a copy of the declaration using the given prefix. An
// empty prefix forwards without renaming and handles public slots only.
func (d ForwardDecl) WithPrefix(prefix string) ForwardDecl {
	d.Prefix = prefix
	return d
}

// CachingStrategy selects how a synthesized factory accessor caches the
// instances it constructs. The set is closed; any other value is a
// configuration error raised at registration time.
type CachingStrategy uint8

const (
	// CachingDisabled re-invokes the factory on every access, producing a
	// fresh instance each time.
	CachingDisabled CachingStrategy = iota

	// CachingMemoized invokes the factory once per owner instance and
	// returns the identical instance afterwards. Memoized state is scoped to
	// one owner; it is not safe under concurrent first access, which is a
	// documented policy of this engine rather than a defect.
	CachingMemoized
)

// String renders the strategy in the form declarative files accept.
func (s CachingStrategy) String() string {
	switch s {
	case CachingDisabled:
		return "disabled"
	case CachingMemoized:
		return "memoized"
	}
	return "unknown"
}

// ModuleConfig enables factory/cache synthesis for a type's unimplemented
// constructible slots.
type ModuleConfig struct {
	Caching CachingStrategy
}

// Module is a convenience constructor for a module configuration.
func Module(caching CachingStrategy) *ModuleConfig {
	return &ModuleConfig{Caching: caching}
}

// InitFunc is an optional constructor-body hook run while an instance is
// being built. It may seed member values via Set; members it creates must be
// listed in the definition's Provides so the analyzer can see them as static
// evidence. An InitFunc must not access synthesized slots: construction
// performs no resolution.
type InitFunc func(*Instance)

// accessor is synthesized access logic installed on a definition at
// registration time and invoked at first (or every) explicit slot access.
type accessor func(owner *Instance) (any, error)

// Definition is a registered type: its identity, ancestry link, declared
// contract contribution, and synthesis configuration. Definitions are built
// as literals, handed to Registry.Register, and immutable afterwards.
type Definition struct {
	// Name is the nominal identity. Required, unique per registry.
	Name string

	// Extends names the parent type whose contract this one inherits and may
	// override. Optional; the parent may be registered later, in which case
	// its contribution is skipped until it resolves.
	Extends string

	// Slots is the contract contribution of this type, in declaration order.
	Slots []Slot

	// Params is the declared constructor parameter list. A type with
	// parameters has no nullary constructor and is not constructible by the
	// factory synthesizer.
	Params []Param

	// Provides lists members the Init hook creates on every instance. It is
	// the explicit replacement for inferring constructor-created members,
	// and is consulted by the resolvability analyzer as static evidence.
	Provides []string

	// Forwards are the delegation declarations, in application order.
	Forwards []ForwardDecl

	// Module, when non-nil, enables factory/cache synthesis.
	Module *ModuleConfig

	// Init is the optional constructor-body hook.
	Init InitFunc

	// Foreign marks a type the factory synthesizer must never construct,
	// the equivalent of a builtin or out-of-engine type.
	Foreign bool

	// Filled at registration.
	registry  *Registry
	accessors map[string]accessor
}

// Contract returns the full collected contract of this definition,
// ancestry included. Valid after registration; before that it is empty.
func (d *Definition) Contract() Contract {
	if d.registry == nil {
		return Contract{slots: map[string]Slot{}}
	}
	return d.registry.contractOf(d)
}

// provides reports whether name is listed in the definition's Provides.
func (d *Definition) provides(name string) bool {
	for _, p := range d.Provides {
		if p == name {
			return true
		}
	}
	return false
}

// param returns the declared constructor parameter matching name exactly, or
// matching the name with the private marker stripped.
func (d *Definition) param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	if alt, ok := stripPrefix(name, DefaultPrefix); ok {
		for _, p := range d.Params {
			if p.Name == alt {
				return p, true
			}
		}
	}
	return Param{}, false
}

// implemented reports whether a contract slot needs no synthesis: it carries
// a default value, an accessor is installed here or on an ancestor, or the
// Init hook declares it via Provides.
func (d *Definition) implemented(s Slot) bool {
	if s.HasDefault {
		return true
	}
	if _, ok := d.accessor(s.Name); ok {
		return true
	}
	return d.provides(s.Name)
}

// accessor resolves a synthesized accessor for name, walking the Extends
// chain so descendants inherit their ancestors' synthesized slots.
func (d *Definition) accessor(name string) (accessor, bool) {
	seen := map[string]bool{}
	for cur := d; cur != nil && !seen[cur.Name]; {
		if acc, ok := cur.accessors[name]; ok {
			return acc, true
		}
		seen[cur.Name] = true
		if cur.Extends == "" || cur.registry == nil {
			break
		}
		parent, ok := cur.registry.Lookup(cur.Extends)
		if !ok {
			break
		}
		cur = parent
	}
	return nil, false
}

// stripPrefix removes prefix from name, reporting whether it was present and
// left a non-empty remainder.
func stripPrefix(name, prefix string) (string, bool) {
	if prefix == "" || len(name) <= len(prefix) {
		return "", false
	}
	if name[:len(prefix)] != prefix {
		return "", false
	}
	return name[len(prefix):], true
}
