package types

// Config holds backend selection and parameters for Store.Attach and the
// serve loop.
type Config struct {
	Backend   string  `json:"backend" yaml:"backend"`
	DataDir   string  `json:"data_dir" yaml:"data_dir"`
	BlobDir   string  `json:"blob_dir" yaml:"blob_dir"`
	Listen    string  `json:"listen" yaml:"listen"`
	JWTSecret string  `json:"jwt_secret" yaml:"jwt_secret"`
	Default   Viewset `json:"default_view" yaml:"default_view"`
}

// Viewset is a map viewport target: center plus zoom.
type Viewset struct {
	Lat  float64 `json:"lat" yaml:"lat"`
	Lon  float64 `json:"lon" yaml:"lon"`
	Zoom int     `json:"zoom" yaml:"zoom"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Startup view used before any pin is selected: the Abbey Road crossing.
const (
	DefaultViewLat  = 51.53205203427031
	DefaultViewLon  = -0.17733518220901687
	DefaultViewZoom = 17
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Default.Zoom < 0 || c.Default.Zoom > 19 {
		return ErrZoomOutOfRange
	}
	return nil
}

// WithDefaults fills zero-valued fields with their defaults and returns
// the result.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	if c.Listen == "" {
		c.Listen = ":8473"
	}
	if c.Default == (Viewset{}) {
		c.Default = Viewset{Lat: DefaultViewLat, Lon: DefaultViewLon, Zoom: DefaultViewZoom}
	}
	return c
}
