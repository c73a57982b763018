package cache

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout of the snapshot with the
	// given content hash.
	LayoutKey(snapshotHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the snapshot that determine a layout.
type LayoutKeyOpts struct {
	Engine string `json:"engine"`
	Params any    `json:"params,omitempty"` // Sizing and separation constants
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256 of hash and opts>".
func (DefaultKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotHash, opts)
}
