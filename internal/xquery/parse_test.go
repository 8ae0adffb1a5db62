package xquery

import (
	"net/url"
	"testing"
)

func TestParse(t *testing.T) {
	query := url.Values{
		"limit":  {"500"},
		"bad":    {"abc"},
		"master": {"sim"},
		"search": {"  an "},
	}

	if got := ParseInt(query, "limit", 20, 1, 100); got != 100 {
		t.Fatalf("clamped int: got %d, want 100", got)
	}
	if got := ParseInt(query, "bad", 20, 1, 100); got != 20 {
		t.Fatalf("invalid int: got %d, want 20", got)
	}
	if got := ParseInt(query, "missing", 20, 1, 100); got != 20 {
		t.Fatalf("missing int: got %d, want 20", got)
	}
	if !ParseBool(query, "master", false) {
		t.Fatal("expected master to be true")
	}
	if got := ParseString(query, "search", ""); got != "an" {
		t.Fatalf("string: got %q, want %q", got, "an")
	}
	if got := ParseString(query, "type", "all"); got != "all" {
		t.Fatalf("default string: got %q, want %q", got, "all")
	}
}
