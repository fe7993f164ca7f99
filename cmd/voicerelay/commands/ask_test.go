// ABOUTME: Tests for ask command input construction
package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/voicerelay/internal/models"
)

func TestAskInputText(t *testing.T) {
	input, err := askInput("hello", "", "")
	if err != nil {
		t.Fatalf("askInput failed: %v", err)
	}
	text, ok := input.(models.TextInput)
	if !ok || text.Text != "hello" {
		t.Errorf("input = %#v", input)
	}
}

func TestAskInputRequiresMessageOrAudio(t *testing.T) {
	if _, err := askInput("   ", "", ""); err == nil {
		t.Error("expected error for empty message")
	}
}

func TestAskInputAudioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("wavdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	input, err := askInput("", path, "")
	if err != nil {
		t.Fatalf("askInput failed: %v", err)
	}
	audio, ok := input.(models.SingleAudioInput)
	if !ok {
		t.Fatalf("input = %#v", input)
	}
	if string(audio.Data) != "wavdata" || audio.MIMEType != "audio/wav" {
		t.Errorf("audio = %#v", audio)
	}
}

func TestAskInputMissingAudioFile(t *testing.T) {
	if _, err := askInput("", "/does/not/exist.mp3", ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMimeFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.wav", "audio/wav"},
		{"a.webm", "audio/webm"},
		{"a.ogg", "audio/ogg"},
		{"a.m4a", "audio/mp4"},
		{"a.flac", "audio/flac"},
		{"a.mp3", "audio/mpeg"},
		{"noext", "audio/mpeg"},
	}
	for _, tt := range tests {
		if got := mimeFromFilename(tt.name); got != tt.want {
			t.Errorf("mimeFromFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
