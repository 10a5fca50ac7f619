package reactor

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNilDefinition is returned when Register is given a nil definition.
	ErrNilDefinition = errors.New("reactor: nil definition")

	// ErrNilInstance is returned by accessors applied to a nil instance.
	ErrNilInstance = errors.New("reactor: nil instance")
)

// TypeSyntaxError is returned by ParseTypeRef for malformed type text.
type TypeSyntaxError struct{ Input string }

// Error implements the error interface.
func (e *TypeSyntaxError) Error() string {
	// Example: reactor: malformed type "list["
	return "reactor: malformed type " + strconv.Quote(e.Input)
}

// UnknownTypeError is returned when a nominal reference names a type that is
// not registered.
type UnknownTypeError struct{ Name string }

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	// Example: reactor: unknown type "Config"
	return "reactor: unknown type " + strconv.Quote(e.Name)
}

// DuplicateTypeError is returned when Register is called twice for one name.
type DuplicateTypeError struct{ Name string }

// Error implements the error interface.
func (e *DuplicateTypeError) Error() string {
	// Example: reactor: duplicate type "Config"
	return "reactor: duplicate type " + strconv.Quote(e.Name)
}

// DefinitionError is returned when a definition fails structural validation
// before any synthesis runs.
type DefinitionError struct {
	Type   string
	Detail string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	// Example: reactor: invalid definition "Config": slot with empty name
	return "reactor: invalid definition " + strconv.Quote(e.Type) + ": " + e.Detail
}

// StrategyError is returned when a module configuration carries a caching
// strategy outside the closed {CachingDisabled, CachingMemoized} set.
type StrategyError struct {
	Type     string
	Strategy CachingStrategy
}

// Error implements the error interface.
func (e *StrategyError) Error() string {
	// Example: reactor: type "AppModule": unknown caching strategy 7
	return "reactor: type " + strconv.Quote(e.Type) +
		": unknown caching strategy " + strconv.Itoa(int(e.Strategy))
}

// UnsatisfiedDependencyError is raised at registration time when a module
// slot's declared type is neither primitive nor constructible. This is the
// greedy failure mode of the factory synthesizer: misconfiguration surfaces
// before any instance exists.
type UnsatisfiedDependencyError struct {
	Type     string
	Slot     string
	Declared string
}

// Error implements the error interface.
func (e *UnsatisfiedDependencyError) Error() string {
	// Example: reactor: type "AppModule": unsatisfied dependency "service" (Service)
	return "reactor: type " + strconv.Quote(e.Type) +
		": unsatisfied dependency " + strconv.Quote(e.Slot) +
		" (" + e.Declared + ")"
}

// IncompatibleTypesError is raised at registration time when a forwarding
// target's declared type provably conflicts with the consuming slot's type.
type IncompatibleTypesError struct {
	Type     string
	Slot     string
	Required string
	Provided string
}

// Error implements the error interface.
func (e *IncompatibleTypesError) Error() string {
	// Example: reactor: type "Service": cannot forward "_timeout": need int, base provides string
	return "reactor: type " + strconv.Quote(e.Type) +
		": cannot forward " + strconv.Quote(e.Slot) +
		": need " + e.Required + ", base provides " + e.Provided
}

// ResolutionError is returned at access time when a forwarding accessor or a
// resolution chain exhausts every candidate base reference. Attempted lists
// the "base.member" pairs that were tried, in order, for diagnosability.
type ResolutionError struct {
	Type      string
	Slot      string
	Attempted []string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	// Example: reactor: type "Service": cannot resolve "_timeout" (tried _module.timeout, _config.timeout)
	return "reactor: type " + strconv.Quote(e.Type) +
		": cannot resolve " + strconv.Quote(e.Slot) +
		" (tried " + strings.Join(e.Attempted, ", ") + ")"
}

// MissingSlotError is returned when a slot has no value and no synthesized
// accessor.
type MissingSlotError struct {
	Type string
	Slot string
}

// Error implements the error interface.
func (e *MissingSlotError) Error() string {
	// Example: reactor: type "Service" has no value for slot "_secret"
	return "reactor: type " + strconv.Quote(e.Type) +
		" has no value for slot " + strconv.Quote(e.Slot)
}

// WrongTypeSlotError is returned by TryAs when a slot resolves to a value of
// an unexpected Go type.
type WrongTypeSlotError struct {
	Slot string

	// GotType is the %T rendering of the resolved value.
	GotType string
}

// Error implements the error interface.
func (e *WrongTypeSlotError) Error() string {
	// Example: reactor: slot "timeout" has wrong type (string)
	return "reactor: slot " + strconv.Quote(e.Slot) +
		" has wrong type (" + e.GotType + ")"
}
