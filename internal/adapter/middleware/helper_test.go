package middleware

import (
	"testing"
	"time"
)

func TestParseAxRequestAt(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{"epoch seconds", "1736123456", time.Unix(1736123456, 0).UTC(), true},
		{"epoch millis", "1736123456789", time.UnixMilli(1736123456789).UTC(), true},
		{"rfc3339 zulu", "2025-09-05T10:00:00Z", time.Date(2025, 9, 5, 10, 0, 0, 0, time.UTC), true},
		{"rfc3339 offset", "2025-09-05T10:00:00+07:00", time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC), true},
		{"rfc3339 nano", "2025-09-05T10:00:00.123456789Z", time.Date(2025, 9, 5, 10, 0, 0, 123456789, time.UTC), true},
		{"naive without zone", "2025-09-05T10:00:00", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
	}
	for _, tc := range cases {
		got, err := parseAxRequestAt(tc.raw)
		if tc.ok != (err == nil) {
			t.Fatalf("%s: err = %v", tc.name, err)
		}
		if tc.ok && !got.Equal(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValidReqID(t *testing.T) {
	valid := []string{
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000", // case-insensitive
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"  aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa  ", // trimmed
	}
	for _, id := range valid {
		if !validReqID(id) {
			t.Fatalf("%q should be valid", id)
		}
	}
	invalid := []string{
		"",
		"short",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",                // not hex
		"123e4567-e89b-62d3-a456-426614174000",            // bad version nibble
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", // wrong length
	}
	for _, id := range invalid {
		if validReqID(id) {
			t.Fatalf("%q should be invalid", id)
		}
	}
}

func TestBuildKey(t *testing.T) {
	got := buildKey("POST", "/api/admin/loans/:id/approve", "admin@edfund.test", "abc")
	want := "idemp:admin:post:/api/admin/loans/:id/approve:admin@edfund.test:abc"
	if got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
}

func TestBodyHash_StableAndDistinct(t *testing.T) {
	a := bodyHash([]byte(`{"x":1}`))
	if a != bodyHash([]byte(`{"x":1}`)) {
		t.Fatal("hash not stable")
	}
	if a == bodyHash([]byte(`{"x":2}`)) {
		t.Fatal("distinct bodies collided")
	}
	if len(a) != 64 {
		t.Fatalf("hex sha256 length = %d", len(a))
	}
}
