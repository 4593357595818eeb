package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSONFormat emits events and states as JSON lines instead of text
	JSONFormat bool

	// ShowBoard prints the board diagram after every accepted move
	ShowBoard bool

	// ShowCoordinates labels the diagram with files and ranks
	ShowCoordinates bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ShowBoard:       true,
		ShowCoordinates: true,
	}
}
