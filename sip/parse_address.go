package sip

import "strings"

// parseAddressValue parses one "[display-name] <uri> ;params" (or bare
// "uri;params") address-header value. It does not handle a
// comma-separated list; splitAddressList peels that apart first.
func parseAddressValue(s string) (addressValue, error) {
	s = strings.TrimSpace(s)
	if s == "*" {
		return addressValue{Address: Uri{Wildcard: true}}, nil
	}

	if lt := findUnescaped(s, '<', quotesDelim); lt >= 0 {
		displayRaw := strings.TrimSpace(s[:lt])
		av := addressValue{}
		if displayRaw != "" {
			av.HasDisplay = true
			av.QuotedDisplay = strings.HasPrefix(displayRaw, "\"")
			av.DisplayName = unquote(displayRaw)
		}

		rest := s[lt+1:]
		gt := findUnescaped(rest, '>', quotesDelim, bracketDelim)
		if gt < 0 {
			return addressValue{}, tokenizeErrorf("failed to tokenize address: missing '>' in %q", s)
		}
		uri, err := ParseUri(rest[:gt])
		if err != nil {
			return addressValue{}, err
		}
		params, _, err := parseParams(strings.TrimLeft(rest[gt+1:], abnfWs), "")
		if err != nil {
			return addressValue{}, err
		}
		av.Address = uri
		av.Params = params
		return av, nil
	}

	// No brackets: the uri runs to the first unescaped ';' (or end); the
	// rest becomes header params rather than uri params.
	var uriPart, tail string
	if semi := findUnescaped(s, ';', quotesDelim, bracketDelim); semi < 0 {
		uriPart = s
	} else {
		uriPart = s[:semi]
		tail = s[semi:]
	}
	uri, err := ParseUri(uriPart)
	if err != nil {
		return addressValue{}, err
	}
	params, _, err := parseParams(tail, "")
	if err != nil {
		return addressValue{}, err
	}
	return addressValue{NoBrackets: true, Address: uri, Params: params}, nil
}

// splitAddressList splits a comma-separated list of address values
// (Contact, Route, Record-Route) at top-level commas, ignoring commas
// nested inside quotes, an IPv6 literal, or an address's <...> brackets.
func splitAddressList(s string) []string {
	return splitTopLevel(s, ',', quotesDelim, bracketDelim, angleDelim)
}

func headerParserTo(name string, text string) ([]Header, error) {
	av, err := parseAddressValue(text)
	if err != nil {
		return nil, err
	}
	if av.Address.Wildcard {
		return nil, parseErrorf("wildcard uri not permitted in To header: %q", text)
	}
	return []Header{&ToHeader{addressValue: av}}, nil
}

func headerParserFrom(name string, text string) ([]Header, error) {
	av, err := parseAddressValue(text)
	if err != nil {
		return nil, err
	}
	if av.Address.Wildcard {
		return nil, parseErrorf("wildcard uri not permitted in From header: %q", text)
	}
	return []Header{&FromHeader{addressValue: av}}, nil
}

func headerParserContact(name string, text string) ([]Header, error) {
	var out []Header
	for _, seg := range splitAddressList(text) {
		av, err := parseAddressValue(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, &ContactHeader{addressValue: av})
	}
	return out, nil
}

func headerParserRoute(name string, text string) ([]Header, error) {
	var out []Header
	for _, seg := range splitAddressList(text) {
		av, err := parseAddressValue(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, &RouteHeader{addressValue: av})
	}
	return out, nil
}

func headerParserRecordRoute(name string, text string) ([]Header, error) {
	var out []Header
	for _, seg := range splitAddressList(text) {
		av, err := parseAddressValue(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, &RecordRouteHeader{addressValue: av})
	}
	return out, nil
}
