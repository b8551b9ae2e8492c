package typespec

// CallbackList returns the declared callbacks in declaration order, as
// the pairs a behaviour module exposes at runtime: macro callback names
// keep the MACRO- marker while their arity is reported external
// (unshifted).
func (m *ModuleSpecs) CallbackList() []FA {
	out := make([]FA, len(m.Callbacks))
	for i, cb := range m.Callbacks {
		out[i] = externalFA(cb.FA(), cb.Macro)
	}
	return out
}

// OptionalCallbackList returns the validated optional callbacks in
// declaration order, in the same external form as CallbackList.
func (m *ModuleSpecs) OptionalCallbackList() []FA {
	macro := make(map[FA]bool, len(m.Callbacks))
	for _, cb := range m.Callbacks {
		macro[cb.FA()] = cb.Macro
	}
	out := make([]FA, len(m.OptionalCallbacks))
	for i, fa := range m.OptionalCallbacks {
		out[i] = externalFA(fa, macro[fa])
	}
	return out
}
