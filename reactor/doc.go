// Package reactor is a contract-resolution and accessor-synthesis engine for
// composing object graphs declaratively.
//
// A type is registered as a Definition: a named, ordered list of typed slots
// plus zero or more forwarding declarations and an optional module
// configuration. At registration the engine decides, per slot, how access
// will be satisfied:
//
//   - Delegation synthesis installs a forwarding accessor that reads a
//     prefix-stripped member off a named base reference's value on each
//     access. The resolvability analyzer runs a multi-layer static check
//     first; slots it cannot prove are silently left for another mechanism
//     (reluctant policy), and inconclusive evidence defers the decision to
//     first access.
//
//   - Factory synthesis installs an accessor that constructs the slot's
//     declared type with no arguments, attaches an owner back-reference,
//     computes a one-shot dependency map for back-wiring, and applies the
//     configured caching strategy (CachingDisabled or CachingMemoized). A
//     slot that is neither primitive nor constructible fails registration
//     immediately (greedy policy).
//
// When several forwarding declarations stack on one type, a resolution chain
// tries each base reference, most recently applied first, then retries the
// first-applied one verbatim, and reports the full attempted chain on
// exhaustion.
//
// Invariants
//
// Registration performs all synthesis, so misconfiguration errors never
// reach access time. Construction performs zero resolution: no slot access,
// factory call, or dependency wiring happens until the first explicit Get.
// Forwarding accessors never cache; factory accessors cache only under
// CachingMemoized, scoped to one owner instance. Memoization is not safe
// under concurrent first access from multiple goroutines; the engine is
// single-threaded by design.
//
// Import
//
//	"github.com/christian-schlichtherle/reactor-di-go/reactor"
package reactor
