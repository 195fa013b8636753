package cache

// Keyer builds cache keys. Swapping the Keyer (see [ScopedKeyer]) changes the
// namespace without touching the callers.
type Keyer interface {
	// HTTPKey keys a raw HTTP response body.
	HTTPKey(namespace, key string) string
	// DatasetKey keys a decoded dataset loaded from source.
	DatasetKey(source string) string
	// ArtifactKey keys a rendered output for a dataset hash.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every input besides the dataset that changes the
// rendered bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	ConfigHash string  `json:"config_hash"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Scale      float64 `json:"scale,omitempty"`
	Title      string  `json:"title,omitempty"`
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// DatasetKey returns "dataset:<sha256(source)>".
func (DefaultKeyer) DatasetKey(source string) string {
	return hashKey("dataset", source)
}

// ArtifactKey returns "artifact:<sha256(hash, opts)>".
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}

var _ Keyer = DefaultKeyer{}
