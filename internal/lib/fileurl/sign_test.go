package fileurl

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func parse(t *testing.T, raw string) (string, url.Values) {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return strings.TrimPrefix(u.Path, pathPrefix), u.Query()
}

func TestSignedURLVerifies(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	id, q := parse(t, s.URL("665f1c2e9b1d4a0012345678"))
	if id != "665f1c2e9b1d4a0012345678" {
		t.Fatalf("unexpected id %q", id)
	}
	if !s.Verify(id, q.Get("expires"), q.Get("sig")) {
		t.Fatal("expected signature to verify")
	}
}

func TestVerifyRejectsTamperingAndExpiry(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	id, q := parse(t, s.URL("a"))

	if s.Verify("b", q.Get("expires"), q.Get("sig")) {
		t.Fatal("signature must not verify for another file")
	}
	if NewSigner("other", time.Hour).Verify(id, q.Get("expires"), q.Get("sig")) {
		t.Fatal("signature must not verify with another secret")
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if s.Verify(id, q.Get("expires"), q.Get("sig")) {
		t.Fatal("expired URL must not verify")
	}
}

func TestURLEmptyForMissingFile(t *testing.T) {
	if got := NewSigner("secret", time.Hour).URL(""); got != "" {
		t.Fatalf("expected empty URL, got %q", got)
	}
}
