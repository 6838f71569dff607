package tool

// Registry is the ordered tool list for one interface version. Order matters
// only for presentation.
type Registry struct {
	name  string
	tools []Tool
}

// NewRegistry creates a registry with the given interface name and tools.
func NewRegistry(name string, tools ...Tool) *Registry {
	return &Registry{name: name, tools: tools}
}

// Name returns the interface version name, e.g. "interface_1".
func (r *Registry) Name() string { return r.name }

// Tools returns the registry's tools in presentation order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	for _, t := range r.tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Describe returns every tool's schema in presentation order.
func (r *Registry) Describe() []Schema {
	out := make([]Schema, len(r.tools))
	for i, t := range r.tools {
		out[i] = t.Describe()
	}
	return out
}

// Derive builds a new interface version that shares this registry's tool
// bodies under renamed tool names. The renaming is purely lexical: semantics,
// arguments, validation and errors are identical. Tools absent from the
// rename table keep their names.
func (r *Registry) Derive(name string, renames map[string]string) *Registry {
	tools := make([]Tool, len(r.tools))
	for i, t := range r.tools {
		if alias, ok := renames[t.Name()]; ok {
			tools[i] = &renamedTool{Tool: t, alias: alias}
		} else {
			tools[i] = t
		}
	}
	return &Registry{name: name, tools: tools}
}

// renamedTool presents an existing tool under an interface-specific name.
type renamedTool struct {
	Tool
	alias string
}

func (t *renamedTool) Name() string { return t.alias }

func (t *renamedTool) Describe() Schema {
	s := t.Tool.Describe()
	s.Function.Name = t.alias
	return s
}
