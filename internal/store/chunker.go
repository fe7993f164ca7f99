// ABOUTME: Word-window chunking of documents before embedding
// ABOUTME: Overlapping windows keep context at chunk boundaries searchable
package store

import "strings"

const (
	defaultChunkWords   = 200
	defaultOverlapWords = 40
)

// Chunker splits document text into overlapping word windows.
type Chunker struct {
	chunkWords   int
	overlapWords int
}

// NewChunker creates a chunker with the default window sizes.
func NewChunker() *Chunker {
	return &Chunker{chunkWords: defaultChunkWords, overlapWords: defaultOverlapWords}
}

// ChunkText splits text into chunks of roughly chunkWords words, each window
// overlapping the previous by overlapWords. Whitespace-only text yields nil.
func (c *Chunker) ChunkText(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= c.chunkWords {
		return []string{strings.Join(words, " ")}
	}

	step := c.chunkWords - c.overlapWords
	if step <= 0 {
		step = c.chunkWords
	}

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + c.chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
