package core

// RuntimeConfig contains per-viewer settings supplied by the platform layer.
// Simulation settings live in the config package.
type RuntimeConfig struct {
	ScreenW   int // Screen width in characters
	ScreenH   int // Screen height in characters
	RenderFPS int // Frames per second requested from the platform loop
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		RenderFPS: 30,
	}
}
