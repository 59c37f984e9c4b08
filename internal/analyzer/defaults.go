package analyzer

// DefaultRegistry returns a Registry pre-loaded with all built-in rules, in
// their fixed dispatch order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(DeprecatedImport{})
	r.MustRegister(FunctionLength{})
	r.MustRegister(ParamCount{})
	r.MustRegister(NestingDepth{})
	r.MustRegister(FileSize{})
	return r
}
