package linkvalidate

// CompileOption configures schema compilation.
type CompileOption interface{ apply(*compileOptions) }

type compileOptions struct {
	format OriginFormat
}

type compileOptionFunc func(*compileOptions)

func (f compileOptionFunc) apply(cfg *compileOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithFormat forces the schema to be read as the given format, skipping
// detection. The detection heuristic resolves ambiguous inputs in favor of
// rule syntax; callers compiling canonical schemas that lack $schema or
// root type markers should force FormatJSONSchema instead of relying on it.
func WithFormat(f OriginFormat) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.format = f
	})
}

func applyCompileOptions(opts []CompileOption) compileOptions {
	cfg := compileOptions{format: FormatAuto}
	for _, o := range opts {
		if o != nil {
			o.apply(&cfg)
		}
	}
	return cfg
}
