package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 10)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("SplitText = %v, want the input unsplit", chunks)
	}
}

func TestSplitTextChunking(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := SplitText(text, 40, 10)

	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 40 {
			t.Errorf("chunk %d length = %d, want <= 40", i, len(c))
		}
	}

	// Consecutive chunks share the overlap region.
	if chunks[0][30:] != chunks[1][:10] {
		t.Error("chunks do not overlap as configured")
	}

	// Nothing is lost: the last chunk reaches the end of the text.
	if !strings.HasSuffix(text, chunks[len(chunks)-1]) {
		t.Error("final chunk does not cover the end of the input")
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 10)

	// Degenerate overlap falls back to non-overlapping steps instead of
	// looping forever.
	if len(chunks) != 5 {
		t.Errorf("len(chunks) = %d, want 5", len(chunks))
	}
}
