package proto

// Cell values arrive either as raw JSON scalars or as externally tagged
// single-key objects such as {"Integer": 42} or {"String": "x"}. The NULL
// variant carries no payload and serializes as the bare string "Null".

// Unwrap reduces a single-key tagged value to its inner scalar. Plain
// scalars pass through unchanged, as do objects with two or more keys --
// those are data, not wrappers.
func Unwrap(v any) any {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return v
	}
	for _, inner := range m {
		return inner
	}
	return v
}

// Tag reports the wrapper tag and inner value of a single-key tagged value.
// ok is false for anything that is not a wrapper.
func Tag(v any) (tag string, inner any, ok bool) {
	m, mok := v.(map[string]any)
	if !mok || len(m) != 1 {
		return "", nil, false
	}
	for k, val := range m {
		return k, val, true
	}
	return "", nil, false
}

// IsNull reports whether a raw, not-yet-unwrapped value is the null marker.
// It must be applied before Unwrap: {"String": "Null"} unwraps to a genuine
// "Null" string, while a bare "Null" at the top level is NULL.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == "Null"
}
