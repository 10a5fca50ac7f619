package reactor

import "reflect"

// wireState tracks the one-shot dependency-wiring step of a factory-created
// instance. The explicit state machine (Unwired → Wiring → Wired) guarantees
// the step runs at most once and that re-entrant access during wiring does
// not re-trigger it.
type wireState uint8

const (
	wireUnwired wireState = iota
	wireWiring
	wireWired
)

// Instance is one constructed value of a registered type: a per-instance
// slot store plus the synthesized accessors installed on its definition.
//
// Construction does zero resolution work. Declared defaults are seeded, the
// optional Init hook runs, and nothing else happens: no slot access, no
// factory invocation, no forwarding read, no dependency wiring until the
// first explicit Get of a dependent slot.
type Instance struct {
	def    *Definition
	reg    *Registry
	values map[string]any

	// owner is the back-reference attached by a factory accessor.
	owner *Instance

	// depMap is the one-shot wiring map computed by the factory accessor.
	// It is consumed and discarded by its single application.
	depMap map[string]string
	wire   wireState
}

// New constructs an instance of the named type with no arguments.
func (r *Registry) New(name string) (*Instance, error) {
	return r.NewWith(name, nil)
}

// NewWith constructs an instance and seeds values verbatim — the direct
// injection path. Seeded values override declared defaults; the Init hook
// runs last and may place or rename members via Set.
func (r *Registry) NewWith(name string, values map[string]any) (*Instance, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	inst := &Instance{
		def:    def,
		reg:    r,
		values: map[string]any{},
		wire:   wireWired,
	}
	contract := r.contractOf(def)
	for _, n := range contract.names {
		if s := contract.slots[n]; s.HasDefault {
			inst.values[n] = s.Default
		}
	}
	for k, v := range values {
		inst.values[k] = v
	}
	if def.Init != nil {
		def.Init(inst)
	}
	return inst, nil
}

// TypeName returns the name of the instance's definition.
func (i *Instance) TypeName() string {
	if i == nil {
		return ""
	}
	return i.def.Name
}

// Contract returns the collected contract of the instance's type.
func (i *Instance) Contract() Contract {
	if i == nil {
		return Contract{slots: map[string]Slot{}}
	}
	return i.reg.contractOf(i.def)
}

// Owner returns the owning instance attached by a factory accessor, or nil.
func (i *Instance) Owner() *Instance {
	if i == nil {
		return nil
	}
	return i.owner
}

// Has reports whether the slot currently holds a value or has a synthesized
// accessor. It never triggers resolution.
func (i *Instance) Has(name string) bool {
	if i == nil {
		return false
	}
	if _, ok := i.values[name]; ok {
		return true
	}
	_, ok := i.def.accessor(name)
	return ok
}

// Set assigns a slot value directly, overriding any synthesized accessor for
// subsequent reads.
func (i *Instance) Set(name string, v any) {
	if i == nil {
		return
	}
	i.values[name] = v
}

// Get resolves a slot: pending one-shot wiring first when the slot is
// mapped, then the value store, then the synthesized accessor. A slot with
// neither is a MissingSlotError — an ordinary access failure, recoverable by
// the caller.
func (i *Instance) Get(name string) (any, error) {
	if i == nil {
		return nil, ErrNilInstance
	}
	i.maybeWire(name)
	if v, ok := i.values[name]; ok {
		return v, nil
	}
	if acc, ok := i.def.accessor(name); ok {
		return acc(i)
	}
	return nil, &MissingSlotError{Type: i.def.Name, Slot: name}
}

// maybeWire applies the one-shot dependency map if name is mapped and the
// step has not run. Individual slots the owner cannot resolve are skipped,
// not raised: wiring is best-effort. The map is cleared immediately after
// application so the step is idempotent, and the Wiring state shields
// re-entrant access (an owner read during wiring that loops back into this
// instance) from re-triggering it.
func (i *Instance) maybeWire(name string) {
	if i.wire != wireUnwired {
		return
	}
	if _, mapped := i.depMap[name]; !mapped {
		return
	}
	i.wire = wireWiring
	depMap := i.depMap
	i.depMap = nil
	for slot, ownerAttr := range depMap {
		v, err := i.owner.Get(ownerAttr)
		if err != nil {
			continue
		}
		i.values[slot] = v
	}
	i.wire = wireWired
}

// As returns the slot value typed as T. ok is false if resolution fails or
// the value is not a T.
func As[T any](i *Instance, name string) (T, bool) {
	var zero T
	v, err := i.Get(name)
	if err != nil {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// TryAs returns the slot value typed as T, distinguishing resolution
// failures (the Get error, unmodified) from type mismatches
// (WrongTypeSlotError).
func TryAs[T any](i *Instance, name string) (T, error) {
	var zero T
	v, err := i.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		got := "<nil>"
		if rt := reflect.TypeOf(v); rt != nil {
			got = rt.String()
		}
		return zero, &WrongTypeSlotError{
			Slot:    name,
			GotType: got,
		}
	}
	return t, nil
}

// MustAs returns the slot value typed as T or panics.
func MustAs[T any](i *Instance, name string) T {
	t, err := TryAs[T](i, name)
	if err != nil {
		panic(err)
	}
	return t
}
