package sip

import "strings"

// headerParserVia parses a Via header line. Although the grammar allows a
// comma-separated list of hops on a single wire line, each hop
// becomes its own ViaHeader entry in this package's model rather than a
// linked chain, so that Via is treated the same as every other
// multi-valued header.
func headerParserVia(name string, text string) ([]Header, error) {
	var out []Header
	for _, seg := range splitTopLevel(text, ',', quotesDelim, bracketDelim) {
		v, err := parseViaHop(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type viaFSM func(h *ViaHeader, s string) (viaFSM, string, error)

func parseViaHop(s string) (*ViaHeader, error) {
	s = strings.TrimSpace(s)
	h := &ViaHeader{}
	state := viaStateProtocolName
	var err error
	for state != nil {
		state, s, err = state(h, s)
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

func viaStateProtocolName(h *ViaHeader, s string) (viaFSM, string, error) {
	idx := strings.IndexByte(s, '/')
	if idx < 0 {
		return nil, "", tokenizeErrorf("failed to tokenize via protocol name: %q", s)
	}
	h.ProtocolName = strings.TrimSpace(s[:idx])
	return viaStateProtocolVersion, s[idx+1:], nil
}

func viaStateProtocolVersion(h *ViaHeader, s string) (viaFSM, string, error) {
	idx := strings.IndexByte(s, '/')
	if idx < 0 {
		return nil, "", tokenizeErrorf("failed to tokenize via protocol version: %q", s)
	}
	h.ProtocolVersion = strings.TrimSpace(s[:idx])
	return viaStateTransport, s[idx+1:], nil
}

func viaStateTransport(h *ViaHeader, s string) (viaFSM, string, error) {
	idx := strings.IndexAny(s, abnfWs)
	if idx < 0 {
		return nil, "", tokenizeErrorf("failed to tokenize via transport: %q", s)
	}
	h.Transport = strings.ToUpper(strings.TrimSpace(s[:idx]))
	return viaStateHost, strings.TrimLeft(s[idx+1:], abnfWs), nil
}

func viaStateHost(h *ViaHeader, s string) (viaFSM, string, error) {
	end := strings.IndexByte(s, ';')
	var hostPort string
	var rest string
	if end < 0 {
		hostPort, rest = s, ""
	} else {
		hostPort, rest = s[:end], s[end:]
	}

	if strings.HasPrefix(hostPort, "[") {
		close := strings.IndexByte(hostPort, ']')
		if close < 0 {
			return nil, "", tokenizeErrorf("failed to tokenize via host: %q", hostPort)
		}
		h.Host = ParseHost(hostPort[1:close])
		return viaStatePort, hostPort[close+1:] + rest, nil
	}

	colon := strings.IndexByte(hostPort, ':')
	if colon < 0 {
		h.Host = ParseHost(hostPort)
		return viaStateParams, rest, nil
	}
	h.Host = ParseHost(hostPort[:colon])
	return viaStatePort, hostPort[colon:] + rest, nil
}

func viaStatePort(h *ViaHeader, s string) (viaFSM, string, error) {
	if len(s) == 0 || s[0] != ':' {
		return viaStateParams, s, nil
	}
	s = s[1:]
	end := strings.IndexByte(s, ';')
	var digits, rest string
	if end < 0 {
		digits, rest = s, ""
	} else {
		digits, rest = s[:end], s[end:]
	}
	n, err := parseUint16(digits)
	if err != nil {
		return nil, "", tokenizeErrorf("failed to tokenize via port: %q", digits)
	}
	h.HasPort = true
	h.Port = n
	return viaStateParams, rest, nil
}

func viaStateParams(h *ViaHeader, s string) (viaFSM, string, error) {
	if s == "" {
		return nil, "", nil
	}
	params, rest, err := parseParams(s, "")
	if err != nil {
		return nil, "", err
	}
	h.Params = params
	return nil, rest, nil
}
