package sip

import (
	"io"
	"strings"
)

// AuthorizationHeader is the SIP 'Authorization' header: an auth scheme
// followed by credential text. The credential text is carried byte for
// byte, because deployed endpoints emit digest parameter lists with
// inconsistent comma/space separators and the wire form must survive a
// round trip. AuthParam gives structured access to individual
// parameters.
type AuthorizationHeader struct {
	AuthScheme  string
	Credentials string
}

func (h *AuthorizationHeader) Name() string { return "Authorization" }
func (h *AuthorizationHeader) Value() string {
	if h.Credentials == "" {
		return h.AuthScheme
	}
	return h.AuthScheme + " " + h.Credentials
}
func (h *AuthorizationHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *AuthorizationHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Authorization: ")
	w.WriteString(h.Value())
}
func (h *AuthorizationHeader) Clone() Header {
	return &AuthorizationHeader{AuthScheme: h.AuthScheme, Credentials: h.Credentials}
}

// AuthParam returns the (unquoted) value of the named credential
// parameter, matched case-insensitively.
func (h *AuthorizationHeader) AuthParam(name string) (string, bool) {
	return scanAuthParam(h.Credentials, name)
}

func (h *AuthorizationHeader) Username() (string, bool) { return h.AuthParam("username") }
func (h *AuthorizationHeader) Realm() (string, bool)    { return h.AuthParam("realm") }
func (h *AuthorizationHeader) Nonce() (string, bool)    { return h.AuthParam("nonce") }
func (h *AuthorizationHeader) Response() (string, bool) { return h.AuthParam("response") }

// WWWAuthenticateHeader is the SIP 'WWW-Authenticate' header: an auth
// scheme followed by challenge text, carried verbatim like
// AuthorizationHeader's credentials.
type WWWAuthenticateHeader struct {
	AuthScheme string
	Challenge  string
}

func (h *WWWAuthenticateHeader) Name() string { return "WWW-Authenticate" }
func (h *WWWAuthenticateHeader) Value() string {
	if h.Challenge == "" {
		return h.AuthScheme
	}
	return h.AuthScheme + " " + h.Challenge
}
func (h *WWWAuthenticateHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *WWWAuthenticateHeader) StringWrite(w io.StringWriter) {
	w.WriteString("WWW-Authenticate: ")
	w.WriteString(h.Value())
}
func (h *WWWAuthenticateHeader) Clone() Header {
	return &WWWAuthenticateHeader{AuthScheme: h.AuthScheme, Challenge: h.Challenge}
}

func (h *WWWAuthenticateHeader) AuthParam(name string) (string, bool) {
	return scanAuthParam(h.Challenge, name)
}

func (h *WWWAuthenticateHeader) Realm() (string, bool) { return h.AuthParam("realm") }
func (h *WWWAuthenticateHeader) Nonce() (string, bool) { return h.AuthParam("nonce") }

// scanAuthParam scans digest-style "name=value" pairs separated by
// commas or whitespace. Values may be quoted strings or bare tokens.
func scanAuthParam(text, name string) (string, bool) {
	lower := strings.ToLower(name)
	s := text
	for len(s) > 0 {
		s = strings.TrimLeft(s, " \t,")
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			return "", false
		}
		key := strings.ToLower(strings.TrimSpace(s[:eq]))
		s = s[eq+1:]

		var value string
		if len(s) > 0 && s[0] == '"' {
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				value, s = s[1:], ""
			} else {
				value, s = s[1:1+end], s[end+2:]
			}
		} else {
			end := strings.IndexAny(s, " \t,")
			if end < 0 {
				value, s = s, ""
			} else {
				value, s = s[:end], s[end:]
			}
		}
		if key == lower {
			return value, true
		}
	}
	return "", false
}

func headerParserAuthorization(name string, text string) ([]Header, error) {
	scheme, credentials, err := splitAuthScheme(text)
	if err != nil {
		return nil, err
	}
	return []Header{&AuthorizationHeader{AuthScheme: scheme, Credentials: credentials}}, nil
}

func headerParserWWWAuthenticate(name string, text string) ([]Header, error) {
	scheme, challenge, err := splitAuthScheme(text)
	if err != nil {
		return nil, err
	}
	return []Header{&WWWAuthenticateHeader{AuthScheme: scheme, Challenge: challenge}}, nil
}

func splitAuthScheme(text string) (scheme, rest string, err error) {
	if text == "" {
		return "", "", tokenizeErrorf("failed to tokenize auth scheme: empty value")
	}
	idx := strings.IndexAny(text, abnfWs)
	if idx < 0 {
		return text, "", nil
	}
	return text[:idx], strings.TrimLeft(text[idx+1:], abnfWs), nil
}
