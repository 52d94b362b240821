package rsrc

type readConfig struct {
	limits   Limits
	codePage int
	registry *Registry
	strict   bool
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithCodePage sets the text code page used when block payloads are
// decoded to tree form. Defaults to code page 1252.
func WithCodePage(cp int) ReadOption {
	return func(c *readConfig) { c.codePage = cp }
}

// WithRegistry overrides the block codec registry used by DecodeTree.
func WithRegistry(r *Registry) ReadOption {
	return func(c *readConfig) { c.registry = r }
}

// WithStrict turns decode warnings into errors.
func WithStrict(v bool) ReadOption {
	return func(c *readConfig) { c.strict = v }
}

type writeConfig struct {
	limits   Limits
	codePage int
	registry *Registry
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

// WithWriteCodePage sets the text code page used when tree nodes are
// encoded back to block payloads. Defaults to code page 1252.
func WithWriteCodePage(cp int) WriteOption {
	return func(c *writeConfig) { c.codePage = cp }
}

// WithWriteRegistry overrides the block codec registry used by EncodeTree.
func WithWriteRegistry(r *Registry) WriteOption {
	return func(c *writeConfig) { c.registry = r }
}
