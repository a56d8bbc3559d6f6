// Package keys derives cache keys for point and collection reads.
//
// A collection key is a truncated SHA-256 digest of the request's distinguishing
// parameters (usually the raw URL query string), wrapped with an optional prefix
// and suffix:
//
//	films:list:all:Xk3_9aQ0bW
//	persons:search:7Yp2Lm-0cd
//
// Point keys are built from the namespace and the document id and are not hashed.
package keys

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// DefaultHashLength is the number of digest characters kept in a hashed key.
const DefaultHashLength = 10

// Make hashes raw with SHA-256, encodes the digest with the url-safe base64
// alphabet and keeps the first minLength characters. A non-empty prefix is
// joined with ":" (one trailing colon on prefix is dropped), a non-empty suffix
// the same way (one leading colon dropped). minLength <= 0 or larger than the
// encoded digest keeps the whole digest.
func Make(raw string, minLength int, prefix, suffix string) string {
	sum := sha256.Sum256([]byte(raw))
	enc := base64.URLEncoding.EncodeToString(sum[:])
	if minLength > 0 && minLength < len(enc) {
		enc = enc[:minLength]
	}

	var b strings.Builder
	b.Grow(len(prefix) + len(enc) + len(suffix) + 2)
	if prefix != "" {
		b.WriteString(strings.TrimSuffix(prefix, ":"))
		b.WriteByte(':')
	}
	b.WriteString(enc)
	if suffix != "" {
		b.WriteByte(':')
		b.WriteString(strings.TrimPrefix(suffix, ":"))
	}
	return b.String()
}

// Params carries what a Factory needs to build a key.
// Point reads set DocID (and Schema); collection reads set Base and affixes.
type Params struct {
	DocID  string
	Schema string

	Base   string
	Prefix string
	Suffix string
}

// Point reports whether p addresses a single document.
func (p Params) Point() bool { return p.DocID != "" }

// Factory builds the cache key for a read.
type Factory interface {
	Key(p Params) string
}

// Hashed is the default Factory: "<namespace>:<id>" for point reads and
// Make(Base, HashLength, Prefix, Suffix) for collection reads. An empty Prefix
// falls back to Namespace.
type Hashed struct {
	Namespace  string
	HashLength int
}

var _ Factory = Hashed{}

func (h Hashed) Key(p Params) string {
	if p.Point() {
		return Join(h.Namespace, p.DocID)
	}
	prefix := p.Prefix
	if prefix == "" {
		prefix = h.Namespace
	}
	return Make(p.Base, h.length(), prefix, p.Suffix)
}

func (h Hashed) length() int {
	if h.HashLength <= 0 {
		return DefaultHashLength
	}
	return h.HashLength
}

// Join concatenates non-empty parts with ":".
func Join(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ":")
}
