package cache

// Keyer builds cache keys. Implementations must return equal keys for equal
// inputs and different keys whenever the cached value could differ.
type Keyer interface {
	// GraphKey returns the key of a graph generated from the dump with the
	// given hash.
	GraphKey(dumpHash string, opts GraphKeyOpts) string
}

// GraphKeyOpts are the generation options that change the generated graph.
type GraphKeyOpts struct {
	Start    int32 `json:"start"`
	MaxDepth int   `json:"max_depth"`
	MaxNodes int   `json:"max_nodes,omitempty"`
}

// DefaultKeyer produces keys of the form "graph:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey hashes the dump hash together with the options.
func (DefaultKeyer) GraphKey(dumpHash string, opts GraphKeyOpts) string {
	return hashKey("graph", dumpHash, opts)
}

var _ Keyer = DefaultKeyer{}
