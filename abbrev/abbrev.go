package abbrev

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/oas2mcp/oas2mcp/oaserr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxNameLen   = 64
	truncatedLen = maxNameLen - 5 // leaves room for "-" + 4 hex chars
)

var lowerCaser = cases.Lower(language.Und)

// Abbreviate derives a tool display name from operationID.
//
// With abbreviation enabled (the default), filler removal and dictionary
// substitution (steps 2-3) always run; vowel stripping (step 4) runs only
// if the joined result is longer than 64 characters, and truncate-and-hash
// (step 5) runs if it is still too long or operationID itself is longer
// than 64 characters. The safety net (truncate-and-hash, replacement of
// characters outside [a-z0-9_-], empty fallback, final normalisation)
// means Abbreviate never returns a name violating the ≤64-char /
// ^[a-z0-9_-]+$ constraint in this mode.
//
// With disableAbbreviation true, steps 2-5 are skipped entirely: only
// sanitisation (step 1) and final normalisation (step 7) run. Abbreviate
// does not silently truncate or hash the name to force it to fit in this
// mode — a result that still violates the length/charset constraint is
// reported as a *oaserr.NameConstraintError instead.
func Abbreviate(operationID string, disableAbbreviation bool) (string, error) {
	tokens := tokenize(operationID)

	if disableAbbreviation {
		name := normalize(joinTokens(tokens))
		if err := validateConstraint(operationID, name); err != nil {
			return "", err
		}
		return name, nil
	}

	tokens = dropFillers(tokens)
	tokens = applyDictionary(tokens)
	name := joinTokens(tokens)

	if !fits(name) {
		tokens = stripVowels(tokens)
		name = joinTokens(tokens)
	}

	if !fits(name) || len(operationID) > maxNameLen {
		name = truncateAndHash(name, operationID)
	}

	name = strings.Map(func(r rune) rune {
		if validCharset(string(r)) {
			return r
		}
		return '-'
	}, name)
	name = normalize(name)
	if name == "" {
		name = fallbackName(operationID)
	}
	return name, nil
}

func fits(name string) bool {
	return len(name) <= maxNameLen
}

// validCharset reports whether name matches ^[a-z0-9_-]+$.
func validCharset(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

func validateConstraint(operationID, name string) error {
	if name == "" {
		return &oaserr.NameConstraintError{OperationID: operationID, Message: "sanitised name is empty with abbreviation disabled"}
	}
	if !fits(name) {
		return &oaserr.NameConstraintError{OperationID: operationID, Name: name, Message: "exceeds 64 characters with abbreviation disabled"}
	}
	if !validCharset(name) {
		return &oaserr.NameConstraintError{OperationID: operationID, Name: name, Message: "contains characters outside [a-z0-9_-] with abbreviation disabled"}
	}
	return nil
}

func joinTokens(tokens []string) string {
	return strings.Join(tokens, "-")
}

func dropFillers(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if fillerTokens[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func applyDictionary(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		if abbr, ok := abbreviations[t]; ok {
			out[i] = abbr
		} else {
			out[i] = t
		}
	}
	return out
}

const vowels = "aeiou"

func stripVowels(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		if len(t) <= 4 {
			out[i] = t
			continue
		}
		runes := []rune(t)
		var sb strings.Builder
		for j, r := range runes {
			if j == 0 || j == len(runes)-1 || !strings.ContainsRune(vowels, r) {
				sb.WriteRune(r)
			}
		}
		out[i] = sb.String()
	}
	return out
}

func truncateAndHash(name, operationID string) string {
	if len(name) > truncatedLen {
		name = name[:truncatedLen]
	}
	return name + "-" + digest(operationID, 4)
}

func fallbackName(operationID string) string {
	return "tool-" + digest(operationID, 8)
}

func digest(s string, hexChars int) string {
	sum := sha256.Sum256([]byte(s))
	full := hex.EncodeToString(sum[:])
	if hexChars > len(full) {
		hexChars = len(full)
	}
	return full[:hexChars]
}

// normalize collapses runs of "-" into one and trims leading/trailing "-".
func normalize(name string) string {
	var sb strings.Builder
	prevDash := false
	for _, r := range name {
		if r == '-' {
			if prevDash {
				continue
			}
			prevDash = true
		} else {
			prevDash = false
		}
		sb.WriteRune(r)
	}
	return strings.Trim(sb.String(), "-")
}

// tokenize splits on camelCase boundaries, digit runs, underscores, and
// hyphens, lowercasing every token with Unicode-aware case folding.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	runes := []rune(s)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, lowerCaser.String(cur.String()))
			cur.Reset()
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r):
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			prevUpperNextLower := i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || prevUpperNextLower {
				flush()
			}
			cur.WriteRune(r)
		case unicode.IsDigit(r):
			if i > 0 && !unicode.IsDigit(runes[i-1]) && runes[i-1] != '_' && runes[i-1] != '-' {
				flush()
			}
			cur.WriteRune(r)
		default:
			if i > 0 && unicode.IsDigit(runes[i-1]) {
				flush()
			}
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}
