// ABOUTME: Batch processing modes governing how audio chunks become one transcript
// ABOUTME: Unknown or absent modes normalize to sequential in exactly one place
package models

// ProcessingMode is the policy for combining multiple audio chunks.
type ProcessingMode string

const (
	// ProcessingSequential transcribes chunks one at a time, in order.
	ProcessingSequential ProcessingMode = "sequential"

	// ProcessingParallel transcribes chunks concurrently and reassembles
	// results by original chunk index.
	ProcessingParallel ProcessingMode = "parallel"

	// ProcessingMerged concatenates all chunk bytes and transcribes once.
	ProcessingMerged ProcessingMode = "merged"
)

// IsValid reports whether the mode is one of the defined policies.
func (m ProcessingMode) IsValid() bool {
	switch m {
	case ProcessingSequential, ProcessingParallel, ProcessingMerged:
		return true
	}
	return false
}

// ParseProcessingMode normalizes a raw mode string. Empty or unrecognized
// values fall back to sequential, the default policy.
func ParseProcessingMode(s string) ProcessingMode {
	m := ProcessingMode(s)
	if !m.IsValid() {
		return ProcessingSequential
	}
	return m
}
