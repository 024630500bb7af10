package params

// FindFirst searches the tree for a key using a pre-order, depth-first
// walk: an object's own fields are checked before its children, children
// in insertion order, array elements in index order. The first match wins,
// which gives duplicate keys at different depths a deterministic
// tie-break.
func (v Value) FindFirst(key string) (Value, bool) {
	switch v.kind {
	case KindObject:
		if got, ok := v.Get(key); ok {
			return got, true
		}
		for _, f := range v.obj {
			if got, ok := f.Val.FindFirst(key); ok {
				return got, true
			}
		}
	case KindArray:
		for _, item := range v.arr {
			if got, ok := item.FindFirst(key); ok {
				return got, true
			}
		}
	}
	return Value{}, false
}

// LookupNode addresses one node input directly: tree[id].inputs[input].
// It returns false when the id is missing, the entry is not an object, or
// its inputs object lacks the key.
func (v Value) LookupNode(id, input string) (Value, bool) {
	node, ok := v.Get(id)
	if !ok {
		return Value{}, false
	}
	inputs, ok := node.Get("inputs")
	if !ok {
		return Value{}, false
	}
	return inputs.Get(input)
}

// Keys collects every object key in the tree in document order, without
// duplicates. Used to rank "did you mean" suggestions for unresolved
// template tokens.
func (v Value) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string

	var walk func(Value)
	walk = func(val Value) {
		switch val.kind {
		case KindObject:
			for _, f := range val.obj {
				if _, ok := seen[f.Key]; !ok {
					seen[f.Key] = struct{}{}
					keys = append(keys, f.Key)
				}
			}
			for _, f := range val.obj {
				walk(f.Val)
			}
		case KindArray:
			for _, item := range val.arr {
				walk(item)
			}
		}
	}
	walk(v)

	return keys
}
