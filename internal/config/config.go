// Package config enumerates the export-time configuration surface (§6.4).
package config

// Config holds the knobs that affect how a library is exported. Everything
// here is either consumed directly by this module (SkipBPM, SkipKey,
// MaxParallelAnalyses) or passed through verbatim to external collaborators
// (MinBPM, MaxBPM, CacheTags), per §6.4.
type Config struct {
	// SkipBPM, if true, writes tempo=0 for every track and emits a
	// header-only PQTZ section (beat count 0).
	SkipBPM bool
	// SkipKey, if true, writes key_id=0 for every track.
	SkipKey bool
	// MinBPM and MaxBPM are passed to the external BPM analyzer only; this
	// module never filters on them.
	MinBPM, MaxBPM float64
	// MaxParallelAnalyses bounds the ANLZ worker pool (§5, §8). A value <= 0
	// means unbounded (one goroutine per track).
	MaxParallelAnalyses int
	// CacheTags controls whether detected tempo/key are written back to
	// source files; implemented entirely by an external collaborator. Stored
	// here only so it threads through the same Config value.
	CacheTags bool
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		MaxParallelAnalyses: 4,
	}
}
