package reconcile

// Config holds configuration for the reconciliation pass.
type Config struct {
	// Workers is the number of mappings counted concurrently.
	Workers int `mapstructure:"workers" default:"1"`
	// TimeoutSeconds bounds each individual store call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Mappings is an optional path to a JSON mappings file. Empty uses the
	// built-in books dataset mappings.
	Mappings string `mapstructure:"mappings" default:""`
}
