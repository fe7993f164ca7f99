// ABOUTME: Tests for word-window chunking
// ABOUTME: Verifies window sizes, overlap, and degenerate inputs

package store

import (
	"strconv"
	"strings"
	"testing"
)

func TestChunkText_Empty(t *testing.T) {
	c := NewChunker()

	if got := c.ChunkText(""); got != nil {
		t.Errorf("ChunkText(\"\") = %v, want nil", got)
	}
	if got := c.ChunkText("   \n\t  "); got != nil {
		t.Errorf("ChunkText(whitespace) = %v, want nil", got)
	}
}

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	c := NewChunker()

	got := c.ChunkText("one  two\nthree")
	if len(got) != 1 {
		t.Fatalf("chunks = %d, want 1", len(got))
	}
	if got[0] != "one two three" {
		t.Errorf("chunk = %q, want normalized text", got[0])
	}
}

func TestChunkText_WindowsAndOverlap(t *testing.T) {
	c := &Chunker{chunkWords: 10, overlapWords: 2}

	words := make([]string, 25)
	for i := range words {
		words[i] = "w" + strconv.Itoa(i)
	}
	chunks := c.ChunkText(strings.Join(words, " "))

	// Step is 8, so windows start at 0, 8, 16, 24.
	if len(chunks) != 4 {
		t.Fatalf("chunks = %d, want 4", len(chunks))
	}

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	if len(first) != 10 {
		t.Errorf("first window = %d words, want 10", len(first))
	}
	// Overlap: last 2 words of window 1 are the first 2 of window 2.
	if first[8] != second[0] || first[9] != second[1] {
		t.Errorf("windows do not overlap: %v vs %v", first[8:], second[:2])
	}

	last := strings.Fields(chunks[3])
	if last[len(last)-1] != words[24] {
		t.Errorf("last chunk must end at final word, got %q", last[len(last)-1])
	}
}
