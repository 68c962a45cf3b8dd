package cache

// Keyer builds cache keys. Swapping the keyer changes the namespace without
// touching the callers.
type Keyer interface {
	// PointsKey identifies a generated point cloud.
	PointsKey(setHash string, opts PointsKeyOpts) string

	// ArtifactKey identifies one rendered output of a point cloud.
	ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string
}

// PointsKeyOpts holds the generation inputs besides the map set.
type PointsKeyOpts struct {
	Iterations int    `json:"iterations"`
	Seed       string `json:"seed"`
}

// ArtifactKeyOpts holds every option that changes rendered bytes.
type ArtifactKeyOpts struct {
	Format     string     `json:"format"`
	Width      int        `json:"width,omitempty"`
	Height     int        `json:"height,omitempty"`
	Radius     float64    `json:"radius,omitempty"`
	Bounds     [4]float32 `json:"bounds,omitempty"`
	AutoBounds bool       `json:"auto_bounds,omitempty"`
	Colors     string     `json:"colors,omitempty"`

	// Source fields are written into JSON output alongside the points.
	Preset     string `json:"preset,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
	Seed       string `json:"seed,omitempty"`
	MapsHash   string `json:"maps_hash,omitempty"`
}

// DefaultKeyer produces "points:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PointsKey implements Keyer.
func (DefaultKeyer) PointsKey(setHash string, opts PointsKeyOpts) string {
	return hashKey("points", setHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pointsHash, opts)
}

var _ Keyer = DefaultKeyer{}
