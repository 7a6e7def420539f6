package statistics

// Config holds configuration for the statistics aggregator.
type Config struct {
	// PoolsFile is an optional YAML file overriding the pool definitions.
	PoolsFile string `mapstructure:"pools_file" default:""`
}
