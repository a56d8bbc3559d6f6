package keys

import (
	"strings"
	"testing"
)

func TestMakeKnownDigest(t *testing.T) {
	cases := []struct {
		raw, prefix, suffix string
		n                   int
		want                string
	}{
		{"abc", "", "", 10, "ungWv48Bz-"},
		{"abc", "films:list:all", "", 10, "films:list:all:ungWv48Bz-"},
		{"abc", "films:list:all:", "", 10, "films:list:all:ungWv48Bz-"},
		{"abc", "", ":v2", 10, "ungWv48Bz-:v2"},
		{"abc", "p", "s", 4, "p:ungW:s"},
		{"", "", "", 0, "47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU="},
		{"page%5Bsize%5D=10", "persons:search", "", 10, "persons:search:BNakz7okEY"},
	}
	for _, tc := range cases {
		got := Make(tc.raw, tc.n, tc.prefix, tc.suffix)
		if got != tc.want {
			t.Fatalf("Make(%q,%d,%q,%q) = %q want %q", tc.raw, tc.n, tc.prefix, tc.suffix, got, tc.want)
		}
	}
}

func TestMakeDeterministic(t *testing.T) {
	a := Make("page[number]=2&page[size]=10", 10, "films:search", "")
	b := Make("page[number]=2&page[size]=10", 10, "films:search", "")
	if a != b {
		t.Fatalf("not deterministic: %q vs %q", a, b)
	}
	c := Make("page[number]=3&page[size]=10", 10, "films:search", "")
	if a == c {
		t.Fatalf("different inputs produced the same key %q", a)
	}
}

func TestMakeClampsLength(t *testing.T) {
	full := Make("x", 0, "", "")
	if len(full) != 44 {
		t.Fatalf("full digest length = %d", len(full))
	}
	if got := Make("x", 500, "", ""); got != full {
		t.Fatalf("oversized length should keep full digest, got %q", got)
	}
	if strings.ContainsAny(full, "+/") {
		t.Fatalf("digest must use url-safe alphabet: %q", full)
	}
}

func TestHashed(t *testing.T) {
	f := Hashed{Namespace: "films", HashLength: 10}

	if got := f.Key(Params{DocID: "42"}); got != "films:42" {
		t.Fatalf("point key = %q", got)
	}
	if got := f.Key(Params{Base: "abc", Prefix: "films:search"}); got != "films:search:ungWv48Bz-" {
		t.Fatalf("collection key = %q", got)
	}
	if got := f.Key(Params{Base: "abc"}); got != "films:ungWv48Bz-" {
		t.Fatalf("namespace fallback = %q", got)
	}
	if got := (Hashed{Namespace: "x"}).Key(Params{Base: "abc"}); len(got) != len("x:")+DefaultHashLength {
		t.Fatalf("default hash length not applied: %q", got)
	}
}

func TestJoin(t *testing.T) {
	if got := Join("persons", "", "1", "films"); got != "persons:1:films" {
		t.Fatalf("Join = %q", got)
	}
}
