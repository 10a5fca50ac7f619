package reactor

// Contract is the merged, ancestry-aware slot table of a type: every slot the
// type declares or inherits, in base-before-derived declaration order, with
// the most derived declaration winning on name collisions.
//
// Contracts are ordered and read-only. They are collected once per type at
// registration time; ancestry is fixed after definition, so the collected
// value never goes stale for registered ancestors. Types whose parent chain
// contains a forward reference are re-collected on demand.
type Contract struct {
	names []string
	slots map[string]Slot
}

// Len returns the number of slots in the contract.
func (c Contract) Len() int { return len(c.names) }

// Names returns the slot names in declaration order. The returned slice is a
// copy.
func (c Contract) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Slot returns the declaration for name, if present.
func (c Contract) Slot(name string) (Slot, bool) {
	s, ok := c.slots[name]
	return s, ok
}

// Has reports whether the contract contains name.
func (c Contract) Has(name string) bool {
	_, ok := c.slots[name]
	return ok
}

// put merges one declaration into the contract. A placeholder never
// overrides a concrete declaration: the placeholder is a sentinel for "must
// be synthesized", so a descendant's (or ancestor's) concrete type always
// wins over it.
func (c *Contract) put(s Slot) {
	if have, ok := c.slots[s.Name]; ok {
		if s.Placeholder && !have.Placeholder {
			return
		}
		c.slots[s.Name] = s
		return
	}
	c.names = append(c.names, s.Name)
	c.slots[s.Name] = s
}

// ContractOf collects the full contract of the named type. An unknown type
// yields an empty contract.
func (r *Registry) ContractOf(name string) Contract {
	def, ok := r.Lookup(name)
	if !ok {
		return Contract{slots: map[string]Slot{}}
	}
	return r.contractOf(def)
}

// contractOf walks the Extends chain from the most derived definition up,
// then merges contributions base-first so later (more derived) declarations
// overwrite earlier ones. An ancestor that cannot be resolved ends the walk:
// its contribution (and anything above it) is skipped rather than aborting
// collection.
func (r *Registry) contractOf(def *Definition) Contract {
	chain := []*Definition{def}
	seen := map[string]bool{def.Name: true}
	for cur := def; cur.Extends != ""; {
		parent, ok := r.Lookup(cur.Extends)
		if !ok || seen[parent.Name] {
			break
		}
		seen[parent.Name] = true
		chain = append(chain, parent)
		cur = parent
	}

	c := Contract{slots: map[string]Slot{}}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, s := range chain[i].Slots {
			c.put(s)
		}
	}
	return c
}
