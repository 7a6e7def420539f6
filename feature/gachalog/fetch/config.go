package fetch

import "time"

// Regions with a known gacha log endpoint.
const (
	RegionCN     = "cn"
	RegionGlobal = "global"
)

var regionEndpoints = map[string]string{
	RegionCN:     "https://hk4e-api.mihoyo.com/event/gacha_info/api/getGachaLog",
	RegionGlobal: "https://hk4e-api-os.hoyoverse.com/event/gacha_info/api/getGachaLog",
}

// Languages the records are requested in. Only these produce item_type tags
// that catalog.ParseItemType recognizes.
const (
	LangZhCN = "zh-cn"
	LangEnUS = "en-us"
)

// MaxPageSize is the largest page the gacha log API serves.
const MaxPageSize = 20

var supportedLangs = map[string]bool{
	LangZhCN: true,
	LangEnUS: true,
}

// Config holds configuration for the gacha log API client.
type Config struct {
	// Region selects the default endpoint (cn, global).
	Region string `mapstructure:"region" default:"cn"`
	// Endpoint overrides the region's endpoint when set.
	Endpoint string `mapstructure:"endpoint" default:""`
	// Lang replaces the lang parameter of every auth query (zh-cn, en-us).
	Lang string `mapstructure:"lang" default:"zh-cn"`
	// PageSize is the number of records requested per page, at most 20.
	PageSize int `mapstructure:"page_size" default:"20"`
	// DelayBaseMillis is the fixed part of the wait between requests.
	DelayBaseMillis int `mapstructure:"delay_base_ms" default:"1000"`
	// DelayJitterMillis is the upper bound of the random part of the wait.
	DelayJitterMillis int `mapstructure:"delay_jitter_ms" default:"1000"`
	// TimeoutSeconds bounds a single page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UTCOffsetHours is the zone the API's record timestamps are written in.
	UTCOffsetHours int `mapstructure:"utc_offset_hours" default:"8"`
}

// IsValidRegion reports whether Region names a known endpoint.
func (c Config) IsValidRegion() bool {
	_, ok := regionEndpoints[c.Region]
	return ok
}

// IsValidLang reports whether Lang is a supported request language.
func (c Config) IsValidLang() bool {
	return supportedLangs[c.Lang]
}

// ResolveEndpoint returns the configured endpoint, falling back to the region's.
func (c Config) ResolveEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return regionEndpoints[c.Region]
}

// Location returns the fixed zone of record timestamps.
func (c Config) Location() *time.Location {
	return time.FixedZone("", c.UTCOffsetHours*3600)
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Delay returns the inter-request wait policy.
func (c Config) Delay() Delay {
	return Delay{
		Base:   time.Duration(c.DelayBaseMillis) * time.Millisecond,
		Jitter: time.Duration(c.DelayJitterMillis) * time.Millisecond,
	}
}

// Size returns the page size, defaulting to and capped at MaxPageSize.
// A larger page would always come back short and end every type early.
func (c Config) Size() int {
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return c.PageSize
}
