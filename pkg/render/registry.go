package render

// Registry holds the available backends. The engine backend is optional.
type Registry struct {
	direct Renderer
	engine Renderer
}

func NewRegistry(direct, engine Renderer) *Registry {
	return &Registry{direct: direct, engine: engine}
}

// Select returns the engine backend for enhanced requests when one is
// configured, and the direct backend otherwise.
func (r *Registry) Select(enhanced bool) Renderer {
	if enhanced && r.engine != nil {
		return r.engine
	}
	return r.direct
}
