package calltrace

import (
	"strconv"
	"strings"
	"unicode"
)

// IdentityError reports an identity that cannot be used for instrumentation.
type IdentityError struct {
	Identity string
	Message  string
}

// Error implements the error interface.
func (e *IdentityError) Error() string {
	return "invalid identity " + strconv.Quote(e.Identity) + ": " + e.Message
}

// ValidateIdentity checks that identity is usable as a counter key and as the
// stem of history keys. Colons are reserved for the history key suffixes and
// whitespace would corrupt replay transcripts, so both are rejected.
func ValidateIdentity(identity string) error {
	if identity == "" {
		return &IdentityError{Identity: identity, Message: "must not be empty"}
	}

	if strings.ContainsRune(identity, ':') {
		return &IdentityError{Identity: identity, Message: "must not contain ':'"}
	}

	for _, r := range identity {
		if unicode.IsSpace(r) {
			return &IdentityError{Identity: identity, Message: "must not contain whitespace"}
		}
	}

	return nil
}

// SanitizeIdentity converts an arbitrary name to a valid identity using
// ASCII-aware snake_case rules. We keep this implementation local so we can
// aggressively fold punctuation (e.g. pointers, generic suffixes, method
// dots) that can show up in reflected names; colons or spaces surviving into
// an identity would collide with the history key suffixes that ValidateIdentity
// guards.
func SanitizeIdentity(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	lastUnderscore := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case unicode.IsUpper(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if (unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower) && !lastUnderscore {
					b.WriteByte('_')
					lastUnderscore = true
				}
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false

		case unicode.IsLower(r):
			b.WriteRune(r)
			lastUnderscore = false

		case unicode.IsDigit(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				if !unicode.IsDigit(prev) && prev != '_' && !lastUnderscore {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r)
			lastUnderscore = false

		case r == '_':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}

		case r == '-' || unicode.IsSpace(r):
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}

		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}
