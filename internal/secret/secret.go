// Package secret holds credential material behind an opaque handle so that
// plaintext cannot leak through logging, printing, or serialization by
// accident. Plaintext extraction is explicit: callers invoke Reveal at the
// request-signing or client-construction site and nowhere else.
package secret

import "encoding/base64"

// Redacted is the placeholder emitted everywhere a Secret would otherwise
// print its plaintext.
const Redacted = "****"

// Secret wraps a sensitive string. The zero value is the empty secret.
type Secret struct {
	value string
}

// New wraps plaintext in a Secret.
func New(plaintext string) Secret {
	return Secret{value: plaintext}
}

// Reveal returns the plaintext. Call sites are the audit surface: keep them
// confined to request signing and provider client construction.
func (s Secret) Reveal() string {
	return s.value
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool {
	return s.value == ""
}

// String implements fmt.Stringer with a redacted placeholder.
func (s Secret) String() string {
	if s.IsZero() {
		return ""
	}
	return Redacted
}

// GoString keeps %#v output redacted as well.
func (s Secret) GoString() string {
	return "secret.Secret(" + s.String() + ")"
}

// MarshalText redacts, so any text-based encoder (JSON, YAML, log fields)
// that reaches a Secret directly cannot emit plaintext. Persisting a secret
// goes through Encode instead.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Encode returns the at-rest form for the persisted configuration record.
// The host's settings store treats the value as opaque; base64 keeps it
// out of casual view and round-trips exactly.
func (s Secret) Encode() string {
	if s.IsZero() {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(s.value))
}

// Decode rebuilds a Secret from its at-rest form. Values that do not decode
// are treated as plaintext from a pre-encoding record.
func Decode(encoded string) Secret {
	if encoded == "" {
		return Secret{}
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Secret{value: encoded}
	}
	return Secret{value: string(raw)}
}
