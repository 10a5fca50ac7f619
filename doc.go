// Package reactor is a declarative dependency-injection engine built around
// contract resolution and accessor synthesis.
//
// A type declares a set of named, typed slots; the engine decides, per slot,
// whether it must be constructed (module synthesis, with a configurable
// caching strategy) or forwarded from a referenced base object (delegation
// synthesis), and installs the corresponding access logic at registration
// time. All resolution is deferred to first explicit access; construction
// does zero work.
//
// See subpackages:
//   - reactor: the resolution engine (registry, contracts, synthesizers)
//   - schema: declarative JSONC/YAML type-definition files feeding reactor
package reactor
