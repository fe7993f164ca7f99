// ABOUTME: Audio batch processor combining chunk transcripts under a processing mode
// ABOUTME: Output order is always original chunk order, never completion order
package agent

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"

	"github.com/harper/voicerelay/internal/models"
)

// BatchProcessor turns an ordered sequence of audio chunks into one transcript.
type BatchProcessor struct {
	transcriber Transcriber
}

// NewBatchProcessor creates a batch processor over the given transcriber.
func NewBatchProcessor(t Transcriber) *BatchProcessor {
	return &BatchProcessor{transcriber: t}
}

// Process transcribes the chunks under the given mode and joins the usable
// transcripts with single spaces. It fails with NO_CHUNKS_TRANSCRIBED when
// nothing usable survives.
func (p *BatchProcessor) Process(ctx context.Context, chunks []models.AudioChunk, mode models.ProcessingMode) (string, error) {
	switch mode {
	case models.ProcessingParallel:
		return p.processParallel(ctx, chunks)
	case models.ProcessingMerged:
		return p.processMerged(ctx, chunks)
	default:
		return p.processSequential(ctx, chunks)
	}
}

// processSequential transcribes chunks one at a time, in order. A chunk whose
// call errors or yields whitespace-only text is skipped, not retried.
func (p *BatchProcessor) processSequential(ctx context.Context, chunks []models.AudioChunk) (string, error) {
	var parts []string
	for i, chunk := range chunks {
		text, err := p.transcriber.Transcribe(ctx, chunk.Data, chunk.MIMEType)
		if err != nil {
			log.Printf("[batch] chunk %d transcription failed, skipping: %v", i, err)
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			parts = append(parts, t)
		}
	}
	return joinTranscripts(parts)
}

// processParallel issues one transcription call per chunk concurrently.
// Failures map to empty placeholders; results are reassembled by original
// chunk index so concurrency never affects output order.
func (p *BatchProcessor) processParallel(ctx context.Context, chunks []models.AudioChunk) (string, error) {
	results := make([]string, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk models.AudioChunk) {
			defer wg.Done()
			text, err := p.transcriber.Transcribe(ctx, chunk.Data, chunk.MIMEType)
			if err != nil {
				log.Printf("[batch] chunk %d transcription failed, skipping: %v", i, err)
				return
			}
			results[i] = strings.TrimSpace(text)
		}(i, chunk)
	}
	wg.Wait()

	var parts []string
	for _, r := range results {
		if r != "" {
			parts = append(parts, r)
		}
	}
	return joinTranscripts(parts)
}

// processMerged concatenates all chunk bytes in order and transcribes once,
// using the first chunk's declared MIME type.
func (p *BatchProcessor) processMerged(ctx context.Context, chunks []models.AudioChunk) (string, error) {
	if len(chunks) == 0 {
		return "", newError(CodeNoChunksTranscribed, "merged mode requires at least one chunk", nil)
	}

	var buf bytes.Buffer
	for _, chunk := range chunks {
		buf.Write(chunk.Data)
	}

	text, err := p.transcriber.Transcribe(ctx, buf.Bytes(), chunks[0].MIMEType)
	if err != nil {
		return "", newError(CodeTranscriptionFailed, "merged batch transcription failed", err)
	}
	return joinTranscripts([]string{strings.TrimSpace(text)})
}

func joinTranscripts(parts []string) (string, error) {
	joined := strings.TrimSpace(strings.Join(parts, " "))
	if joined == "" {
		return "", newError(CodeNoChunksTranscribed, "no chunk produced usable text", nil)
	}
	return joined, nil
}
