package reactor

// eligible decides whether a forwarding declaration handles the named slot
// and, if so, derives the target member name. An empty prefix handles public
// slots without renaming; a non-empty prefix handles exactly the slots it
// prefixes, stripping it off.
func eligible(slotName string, d ForwardDecl) (string, bool) {
	if d.Prefix == "" {
		if len(slotName) > 0 && slotName[:1] == DefaultPrefix {
			return "", false
		}
		return slotName, true
	}
	return stripPrefix(slotName, d.Prefix)
}

// synthesizeForwarding is the delegation synthesizer. For every
// unimplemented contract slot matched by a forwarding declaration it installs
// a forwarding accessor (single declaration) or a chained accessor (stacked
// declarations). Slots the analyzer rejects are silently skipped — the
// reluctant policy — so another mechanism, typically direct injection, can
// satisfy them. A provable type conflict between the slot and the target
// member is fatal at registration.
func (r *Registry) synthesizeForwarding(def *Definition) error {
	if len(def.Forwards) == 0 {
		return nil
	}
	contract := r.contractOf(def)
	for _, name := range contract.names {
		slot := contract.slots[name]
		if def.implemented(slot) {
			continue
		}

		var cands []chainCandidate
		for _, fd := range def.Forwards {
			target, ok := eligible(slot.Name, fd)
			if !ok {
				continue
			}
			// The base reference itself is supplied by direct injection,
			// never by forwarding through itself.
			if slot.Name == fd.BaseRef {
				continue
			}
			cands = append(cands, chainCandidate{BaseRef: fd.BaseRef, Target: target})
		}
		if len(cands) == 0 {
			continue
		}

		usable := false
		for _, c := range cands {
			v, memberType := r.forwardable(def, c.BaseRef, c.Target)
			if v == verdictNo {
				continue
			}
			usable = true
			if v == verdictProven && !r.Compatible(slot.Type, memberType) {
				return &IncompatibleTypesError{
					Type:     def.Name,
					Slot:     slot.Name,
					Required: slot.Type.String(),
					Provided: memberType.String(),
				}
			}
		}
		if !usable {
			continue
		}

		if len(cands) == 1 {
			def.accessors[slot.Name] = forwardAccessor(def.Name, slot.Name, cands[0])
		} else {
			def.accessors[slot.Name] = (&chainBinding{
				typeName:   def.Name,
				slot:       slot.Name,
				candidates: cands,
			}).resolve
		}
	}
	return nil
}

// forwardAccessor builds the accessor for a single forwarding binding. Each
// access re-reads through the base reference; no caching happens at this
// layer, so side effects on the base reference repeat per access.
func forwardAccessor(typeName, slotName string, c chainCandidate) accessor {
	return func(owner *Instance) (any, error) {
		if owner == nil {
			return nil, ErrNilInstance
		}
		base, err := owner.Get(c.BaseRef)
		if err != nil || base == nil {
			return nil, &ResolutionError{
				Type:      typeName,
				Slot:      slotName,
				Attempted: []string{c.String()},
			}
		}
		v, ok := readMember(base, c.Target)
		if !ok {
			return nil, &ResolutionError{
				Type:      typeName,
				Slot:      slotName,
				Attempted: []string{c.String()},
			}
		}
		return v, nil
	}
}

// readMember reads a named member off a resolved base reference value.
// Engine instances resolve through their own access path (which may trigger
// their pending one-shot wiring); plain map bags are read directly.
func readMember(base any, name string) (any, bool) {
	switch b := base.(type) {
	case *Instance:
		v, err := b.Get(name)
		if err != nil {
			return nil, false
		}
		return v, true
	case map[string]any:
		v, ok := b[name]
		return v, ok
	}
	return nil, false
}
