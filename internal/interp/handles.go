package interp

// CodeFn is host code exposed to chirp files through a 'code(name)'
// statement. It runs against the enclosing entity, or NoParent at the
// root.
type CodeFn func(sb SceneBuilder, parent EntityID) error

// NoParent is the parent passed to a CodeFn running at the scene root.
const NoParent = EntityID(1<<64 - 1)

// Handles is the host-side registry shared across one interpretation:
// code functions and opaque asset handles, both addressed by name.
type Handles struct {
	code   map[string]CodeFn
	assets map[string]any
}

func NewHandles() *Handles {
	return &Handles{
		code:   make(map[string]CodeFn),
		assets: make(map[string]any),
	}
}

func (h *Handles) RegisterCode(name string, fn CodeFn) {
	h.code[name] = fn
}

func (h *Handles) Code(name string) (CodeFn, bool) {
	fn, ok := h.code[name]
	return fn, ok
}

func (h *Handles) RegisterAsset(name string, asset any) {
	h.assets[name] = asset
}

func (h *Handles) Asset(name string) (any, bool) {
	a, ok := h.assets[name]
	return a, ok
}
