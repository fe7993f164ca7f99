// ABOUTME: Explicit batch builder for callers assembling chunked audio uploads
// ABOUTME: Starting a batch while one is open is a typed error, never a silent merge
package agent

import (
	"sync"

	"github.com/harper/voicerelay/internal/models"
)

// BatchBuilder accumulates audio chunks for one batch at a time. A second
// Start before Commit or Abort fails with BATCH_IN_PROGRESS; interleaving two
// batches through one builder is an illegal state, not a merge.
type BatchBuilder struct {
	mu     sync.Mutex
	active bool
	mode   models.ProcessingMode
	chunks []models.AudioChunk
}

// NewBatchBuilder creates an idle builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{}
}

// Start opens a new batch under the given mode.
func (b *BatchBuilder) Start(mode models.ProcessingMode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		return newError(CodeBatchInProgress, "a batch is already being assembled", nil)
	}
	b.active = true
	b.mode = mode
	b.chunks = nil
	return nil
}

// Append adds one chunk to the open batch, preserving insertion order.
func (b *BatchBuilder) Append(chunk models.AudioChunk) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return newError(CodeBatchInProgress, "no batch has been started", nil)
	}
	b.chunks = append(b.chunks, chunk)
	return nil
}

// Commit closes the batch and returns its chunks and mode. The builder is
// idle again afterwards.
func (b *BatchBuilder) Commit() ([]models.AudioChunk, models.ProcessingMode, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return nil, "", newError(CodeBatchInProgress, "no batch has been started", nil)
	}
	chunks, mode := b.chunks, b.mode
	b.active = false
	b.chunks = nil
	return chunks, mode, nil
}

// Abort discards the open batch, if any.
func (b *BatchBuilder) Abort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = false
	b.chunks = nil
}
