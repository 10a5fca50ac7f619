package reactor

// Compatible decides whether a value of the provided type may satisfy a slot
// of the required type. The rules, in order:
//
//  1. Either side open (any) or undeclared: compatible.
//  2. Structurally equal: compatible.
//  3. Either side an unresolved forward reference or a parameterized type:
//     conservatively compatible, no structural check is attempted.
//  4. Both concrete nominal types: compatible iff provided is required or a
//     descendant of required.
//  5. Anything else (distinct primitives, primitive vs nominal): not
//     compatible.
//
// The checker is intentionally permissive beyond simple nominal subtyping:
// precision here trades against false rejections of legitimate dynamic
// wiring, and the only hard guarantee callers rely on is that a "not
// compatible" answer is provable.
func (r *Registry) Compatible(required, provided TypeRef) bool {
	if required.Kind == KindAny || provided.Kind == KindAny {
		return true
	}
	if required.Equal(provided) {
		return true
	}
	if required.Kind == KindParameterized || provided.Kind == KindParameterized {
		return true
	}
	if required.Kind == KindNamed || provided.Kind == KindNamed {
		reqDef, reqOK := r.lookupRef(required)
		provDef, provOK := r.lookupRef(provided)
		if !reqOK || !provOK {
			// At least one side is an unresolved forward reference (or a
			// primitive paired with one); cannot disprove, accept.
			if required.Kind == KindNamed && !reqOK {
				return true
			}
			if provided.Kind == KindNamed && !provOK {
				return true
			}
			// One side is a resolved nominal, the other a primitive.
			return false
		}
		return r.descends(provDef, reqDef)
	}
	return false
}

// lookupRef resolves a nominal reference to its definition.
func (r *Registry) lookupRef(t TypeRef) (*Definition, bool) {
	if t.Kind != KindNamed {
		return nil, false
	}
	return r.Lookup(t.TypeName)
}

// descends reports whether def is ancestor or one of its descendants.
func (r *Registry) descends(def, ancestor *Definition) bool {
	seen := map[string]bool{}
	for cur := def; cur != nil && !seen[cur.Name]; {
		if cur.Name == ancestor.Name {
			return true
		}
		seen[cur.Name] = true
		if cur.Extends == "" {
			return false
		}
		parent, ok := r.Lookup(cur.Extends)
		if !ok {
			return false
		}
		cur = parent
	}
	return false
}
