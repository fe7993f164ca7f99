// ABOUTME: Tests for the batch builder's single-open-batch invariant
package agent

import (
	"testing"

	"github.com/harper/voicerelay/internal/models"
)

func TestBuilderLifecycle(t *testing.T) {
	b := NewBatchBuilder()

	if err := b.Start(models.ProcessingParallel); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := b.Append(chunk("a")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := b.Append(chunk("b")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	chunks, mode, err := b.Commit()
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(chunks) != 2 || mode != models.ProcessingParallel {
		t.Errorf("commit = %d chunks, mode %s", len(chunks), mode)
	}
	if string(chunks[0].Data) != "a" || string(chunks[1].Data) != "b" {
		t.Error("chunks not in insertion order")
	}

	// Builder is reusable after commit.
	if err := b.Start(models.ProcessingSequential); err != nil {
		t.Errorf("Start after Commit failed: %v", err)
	}
}

func TestBuilderRejectsSecondStart(t *testing.T) {
	b := NewBatchBuilder()
	if err := b.Start(models.ProcessingSequential); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	err := b.Start(models.ProcessingSequential)
	if CodeOf(err) != CodeBatchInProgress {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeBatchInProgress)
	}
}

func TestBuilderRequiresOpenBatch(t *testing.T) {
	b := NewBatchBuilder()

	if err := b.Append(chunk("a")); CodeOf(err) != CodeBatchInProgress {
		t.Errorf("Append code = %q, want %q", CodeOf(err), CodeBatchInProgress)
	}
	if _, _, err := b.Commit(); CodeOf(err) != CodeBatchInProgress {
		t.Errorf("Commit code = %q, want %q", CodeOf(err), CodeBatchInProgress)
	}
}

func TestBuilderAbort(t *testing.T) {
	b := NewBatchBuilder()
	if err := b.Start(models.ProcessingMerged); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	_ = b.Append(chunk("a"))
	b.Abort()

	if err := b.Start(models.ProcessingSequential); err != nil {
		t.Errorf("Start after Abort failed: %v", err)
	}
	chunks, _, err := b.Commit()
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("aborted chunks leaked into the next batch: %d", len(chunks))
	}
}
