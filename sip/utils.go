package sip

import (
	"crypto/rand"
	"strconv"
	"strings"
)

// parseUint16 parses a 1-5 digit decimal port number.
func parseUint16(s string) (uint16, error) {
	if len(s) == 0 || len(s) > 5 {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}

// abnfWs is the whitespace set recognised by the ABNF grammar SIP uses
// (RFC 3261 S.25).
const abnfWs = " \t"

const letterBytes = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randToken returns n cryptographically random characters from
// letterBytes. Used to mint opaque Via branch values.
func randToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	var sb strings.Builder
	sb.Grow(n)
	l := len(letterBytes)
	for _, b := range buf {
		sb.WriteByte(letterBytes[int(b)%l])
	}
	return sb.String()
}

// asciiToLower is faster than strings.ToLower for the common all-ASCII
// case because it avoids an allocation when nothing needs changing.
func asciiToLower(s string) string {
	nonLowInd := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		nonLowInd = i
		break
	}
	if nonLowInd < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:nonLowInd])
	for i := nonLowInd; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// headerNameLower folds a header field-name to its canonical lowercase
// key, expanding nothing here: compact-form expansion happens in the
// header dispatch table, not here.
func headerNameLower(s string) string {
	switch s {
	case "Via", "via":
		return "via"
	case "From", "from":
		return "from"
	case "To", "to":
		return "to"
	case "Call-ID", "call-id", "Call-Id":
		return "call-id"
	case "Contact", "contact":
		return "contact"
	case "CSeq", "CSEQ", "cseq":
		return "cseq"
	case "Content-Type", "content-type":
		return "content-type"
	case "Content-Length", "content-length":
		return "content-length"
	case "Max-Forwards", "max-forwards":
		return "max-forwards"
	case "Route", "route":
		return "route"
	case "Record-Route", "record-route":
		return "record-route"
	case "Expires", "expires":
		return "expires"
	case "Authorization", "authorization":
		return "authorization"
	case "WWW-Authenticate", "www-authenticate":
		return "www-authenticate"
	}
	return asciiToLower(s)
}

// compactHeaderNames expands RFC 3261 S.7.3.3 compact header letters to
// their canonical lowercase long names.
var compactHeaderNames = map[string]string{
	"f": "from",
	"t": "to",
	"v": "via",
	"m": "contact",
	"i": "call-id",
	"l": "content-length",
	"c": "content-type",
	"s": "subject",
	"k": "supported",
	"e": "content-encoding",
}

// delimiter is a pair of characters used to bracket escaped text, so that
// a target byte occurring inside the bracket is not treated as a
// delimiter itself.
type delimiter struct {
	start, end byte
}

var (
	quotesDelim  = delimiter{'"', '"'}
	bracketDelim = delimiter{'[', ']'}
	angleDelim   = delimiter{'<', '>'}
)

// findUnescaped returns the index of the first occurrence of target in
// text that is not enclosed by any of the given delimiter pairs, or -1.
func findUnescaped(text string, target byte, delims ...delimiter) int {
	return findAnyUnescaped(text, string(target), delims...)
}

// findAnyUnescaped returns the index of the first occurrence of any byte
// in targets that is not enclosed by any of the given delimiter pairs, or
// -1 if none is found outside of bracketing.
func findAnyUnescaped(text string, targets string, delims ...delimiter) int {
	endChars := make(map[byte]byte, len(delims))
	for _, d := range delims {
		endChars[d.start] = d.end
	}

	escaped := false
	var endEscape byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !escaped && strings.IndexByte(targets, c) >= 0 {
			return i
		}
		if escaped {
			if c == endEscape {
				escaped = false
			}
			continue
		}
		if end, ok := endChars[c]; ok {
			endEscape = end
			escaped = true
		}
	}
	return -1
}

// splitTopLevel splits s at every occurrence of sep that is not enclosed
// by any of delims, preserving empty trailing segments.
func splitTopLevel(s string, sep byte, delims ...delimiter) []string {
	var out []string
	for {
		idx := findAnyUnescaped(s, string(sep), delims...)
		if idx < 0 {
			out = append(out, s)
			return out
		}
		out = append(out, s[:idx])
		s = s[idx+1:]
	}
}

// containsSpecial reports whether v contains whitespace, ';', ',' or '"'.
// The param and header renderers do not call it: values are written
// as stored, never quoted.
func containsSpecial(v string) bool {
	return strings.ContainsAny(v, " \t;,\"")
}
