package cache

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scale      float64 `json:"scale,omitempty"`
	Background string  `json:"background,omitempty"`
	Title      string  `json:"title,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a document rendered with opts.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes docHash together with opts.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
