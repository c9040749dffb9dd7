package sip

import (
	"github.com/google/uuid"
)

// RFC3261BranchMagicCookie prefixes every branch value this package
// generates, marking the transaction id as RFC 3261 style.
const RFC3261BranchMagicCookie = "z9hG4bK"

// GenerateBranch returns a random unique branch ID.
func GenerateBranch() string {
	return GenerateBranchN(16)
}

// GenerateBranchN returns a random unique branch ID in the format
// MagicCookie.<n chars>.
func GenerateBranchN(n int) string {
	return RFC3261BranchMagicCookie + "." + randToken(n)
}

// GenerateTag mints an opaque tag value for a From/To header.
func GenerateTag() string {
	return uuid.NewString()
}

// GenerateCallID returns a fresh Call-ID header value.
func GenerateCallID() CallIDHeader {
	return CallIDHeader(uuid.NewString())
}

// MessageShortString dumps the short version of msg. Used only for
// logging.
func MessageShortString(msg SipMessage) string {
	switch m := msg.(type) {
	case *Request:
		return m.Short()
	case *Response:
		return m.Short()
	}
	return "Unknown message type"
}
