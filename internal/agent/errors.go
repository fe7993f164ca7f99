// ABOUTME: Typed error taxonomy for the routing core
// ABOUTME: Codes distinguish caller mistakes, upstream failures, and invariant violations
package agent

import (
	"errors"
	"fmt"
)

// Code classifies a core failure.
type Code string

const (
	// CodeUnsupportedInput marks an input shape the supervisor does not recognize.
	CodeUnsupportedInput Code = "UNSUPPORTED_INPUT_TYPE"
	// CodeEmptyTranscript marks single-audio input that transcribed to nothing.
	CodeEmptyTranscript Code = "EMPTY_TRANSCRIPT"
	// CodeNoChunksTranscribed marks a batch where no chunk yielded usable text.
	CodeNoChunksTranscribed Code = "NO_CHUNKS_TRANSCRIBED"
	// CodeTranscriptionFailed marks a transport or provider error during transcription.
	CodeTranscriptionFailed Code = "TRANSCRIPTION_FAILED"
	// CodeMissingVectorStores marks a retrieval agent call without store ids.
	CodeMissingVectorStores Code = "MISSING_VECTOR_STORES"
	// CodeInvalidInputType marks non-text input reaching a sub-agent. This is
	// an invariant violation, not a user-facing condition.
	CodeInvalidInputType Code = "INVALID_INPUT_TYPE"
	// CodeBatchInProgress marks a batch builder start while one is open.
	CodeBatchInProgress Code = "BATCH_IN_PROGRESS"
	// CodeUpstream marks a model provider failure.
	CodeUpstream Code = "UPSTREAM_ERROR"
)

// Error is a typed core failure with a stable code for callers to branch on.
type Error struct {
	Code   Code
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("agent: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("agent: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code Code, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// CodeOf extracts the code from a core error, or "" for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
