package ai

import (
	"strings"
	"testing"
)

func TestChunkResponse(t *testing.T) {
	text := "Hello, world! This is a test."
	chunks := ChunkResponse(text, 10)

	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Errorf("expected chunks to reassemble the text, got %q", got)
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		if len([]rune(chunk)) != 10 {
			t.Errorf("chunk %d: expected 10 runes, got %d", i, len([]rune(chunk)))
		}
	}
}

func TestChunkResponse_Multibyte(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 5)
	chunks := ChunkResponse(text, 7)

	if got := strings.Join(chunks, ""); got != text {
		t.Errorf("expected chunks to reassemble the text, got %q", got)
	}
	for i, chunk := range chunks {
		if !strings.Contains(text, chunk) {
			t.Errorf("chunk %d: %q splits a multibyte character", i, chunk)
		}
	}
}

func TestChunkResponse_Degenerate(t *testing.T) {
	if got := ChunkResponse("", 10); got != nil {
		t.Errorf("expected nil for empty text, got %v", got)
	}
	if got := ChunkResponse("text", 0); got != nil {
		t.Errorf("expected nil for zero chunk size, got %v", got)
	}
	if got := ChunkResponse("ab", 10); len(got) != 1 || got[0] != "ab" {
		t.Errorf("expected a single short chunk, got %v", got)
	}
}
