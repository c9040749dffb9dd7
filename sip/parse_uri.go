package sip

import (
	"strconv"
	"strings"
)

// uriDefaultTerminators bounds where a bare (non-bracketed) URI ends when
// embedded in a larger context: whitespace, CR, the closing angle
// bracket of an address-form header, or a list separator.
const uriDefaultTerminators = " \t\r>,"

type uriFSM func(uri *Uri, s string) (uriFSM, string, error)

// ParseUri parses s as a complete URI; any trailing bytes after the URI
// grammar is an error. Use ParseUriPrefix to parse a URI embedded in a
// larger buffer and recover the unconsumed remainder.
func ParseUri(s string) (Uri, error) {
	uri, rest, err := ParseUriPrefix(s, "")
	if err != nil {
		return Uri{}, err
	}
	if rest != "" {
		return Uri{}, tokenizeErrorf("failed to tokenize uri: trailing data %q", rest)
	}
	return uri, nil
}

// ParseUriPrefix parses a URI from the front of s, stopping at the first
// unbracketed/unquoted byte in terminators (uriDefaultTerminators is used
// when terminators is empty), and returns the unconsumed remainder.
func ParseUriPrefix(s string, terminators string) (Uri, string, error) {
	if terminators == "" {
		terminators = uriDefaultTerminators
	}
	if len(s) == 0 {
		return Uri{}, "", tokenizeErrorf("failed to tokenize uri: empty input")
	}

	limit := findAnyUnescaped(s, terminators, quotesDelim, bracketDelim)
	var working, remainder string
	if limit < 0 {
		working = s
	} else {
		working = s[:limit]
		remainder = s[limit:]
	}

	if working == "*" {
		return Uri{Wildcard: true}, remainder, nil
	}

	var uri Uri
	state := uriStateScheme
	str := working
	var err error
	for state != nil {
		state, str, err = state(&uri, str)
		if err != nil {
			return Uri{}, "", err
		}
	}
	if str != "" {
		return Uri{}, "", tokenizeErrorf("failed to tokenize uri: unconsumed %q", str)
	}
	return uri, remainder, nil
}

func uriStateScheme(uri *Uri, s string) (uriFSM, string, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return uriStateAuth, s, nil
	}

	candidate := s[:colon]
	scheme, ok := schemeFromString(candidate)
	if !ok {
		return uriStateAuth, s, nil
	}

	uri.Scheme = scheme
	s = s[colon+1:]
	if scheme == SchemeTel {
		return uriStateTelSubscriber, s, nil
	}
	if strings.HasPrefix(s, "//") {
		uri.HierarchicalSlashes = true
		s = s[2:]
	}
	return uriStateAuth, s, nil
}

func uriStateTelSubscriber(uri *Uri, s string) (uriFSM, string, error) {
	// The subscriber string runs up to the first ';' (params) or end.
	semi := strings.IndexByte(s, ';')
	if semi < 0 {
		uri.Host = Host{Kind: HostDomain, Domain: s}
		return nil, "", nil
	}
	uri.Host = Host{Kind: HostDomain, Domain: s[:semi]}
	return uriStateParams, s[semi:], nil
}

func uriStateAuth(uri *Uri, s string) (uriFSM, string, error) {
	at := findUnescaped(s, '@', quotesDelim, bracketDelim)
	if at < 0 {
		return uriStateHost, s, nil
	}

	userinfo := s[:at]
	colon := strings.IndexByte(userinfo, ':')
	if colon < 0 {
		uri.HasAuth = true
		uri.Auth = Auth{User: userinfo}
		return uriStateHost, s[at+1:], nil
	}

	if colon+1 < len(userinfo) && userinfo[colon+1] == ':' {
		return nil, "", tokenizeErrorf("failed to tokenize auth user: %q", userinfo)
	}
	password := userinfo[colon+1:]
	if password == "" {
		return nil, "", tokenizeErrorf("failed to tokenize auth user: %q", userinfo)
	}

	uri.HasAuth = true
	uri.Auth = Auth{User: userinfo[:colon], Password: password, HasPassword: true}
	return uriStateHost, s[at+1:], nil
}

func uriStateHost(uri *Uri, s string) (uriFSM, string, error) {
	if len(s) == 0 {
		return nil, "", tokenizeErrorf("failed to tokenize uri: missing host")
	}

	if s[0] == '[' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, "", tokenizeErrorf("failed to tokenize uri: unterminated ipv6 literal %q", s)
		}
		uri.Host = ParseHost(s[1:end])
		s = s[end+1:]
		return uriStateAfterHost, s, nil
	}

	end := strings.IndexAny(s, ":;?")
	if end < 0 {
		end = len(s)
	}

	uri.Host = ParseHost(s[:end])
	return uriStateAfterHost, s[end:], nil
}

func uriStateAfterHost(uri *Uri, s string) (uriFSM, string, error) {
	if len(s) == 0 {
		return nil, "", nil
	}
	switch s[0] {
	case ':':
		return uriStatePort, s[1:], nil
	case ';':
		return uriStateParams, s, nil
	case '?':
		return uriStateHeaders, s, nil
	default:
		return nil, "", tokenizeErrorf("failed to tokenize uri: unexpected byte after host %q", s)
	}
}

func uriStatePort(uri *Uri, s string) (uriFSM, string, error) {
	end := len(s)
	for i := 0; i < len(s); i++ {
		if s[i] == ';' || s[i] == '?' {
			end = i
			break
		}
	}
	digits := s[:end]
	if len(digits) == 0 || len(digits) > 5 {
		return nil, "", tokenizeErrorf("failed to tokenize uri: invalid port %q", digits)
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return nil, "", tokenizeErrorf("failed to tokenize uri: invalid port %q", digits)
	}
	uri.HasPort = true
	uri.Port = uint16(n)
	return uriStateParams, s[end:], nil
}

func uriStateParams(uri *Uri, s string) (uriFSM, string, error) {
	params, rest, err := parseParams(s, "?")
	if err != nil {
		return nil, "", err
	}
	uri.Params = params
	if len(rest) > 0 && rest[0] == '?' {
		return uriStateHeaders, rest, nil
	}
	return nil, rest, nil
}

func uriStateHeaders(uri *Uri, s string) (uriFSM, string, error) {
	headers, err := parseURIHeaders(s[1:])
	if err != nil {
		return nil, "", err
	}
	uri.Headers = headers
	return nil, "", nil
}
