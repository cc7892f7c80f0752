package ids

import (
	"strings"
	"testing"
	"time"
)

func TestNewFormat(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := New("ORD", now)

	if !strings.HasPrefix(id, "ORD1700000000000") {
		t.Fatalf("unexpected id %s", id)
	}
	suffix := strings.TrimPrefix(id, "ORD1700000000000")
	if len(suffix) != 9 {
		t.Fatalf("expected 9-char suffix, got %q", suffix)
	}
	if suffix != strings.ToUpper(suffix) {
		t.Fatalf("expected uppercase suffix, got %q", suffix)
	}
}

func TestNewIsUniquePerCall(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := New("PRD", now)
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestSuffixCharset(t *testing.T) {
	suffix := Suffix(64)
	for _, r := range suffix {
		if !strings.ContainsRune(alphabet, r) {
			t.Fatalf("unexpected character %q in %s", r, suffix)
		}
	}
}
