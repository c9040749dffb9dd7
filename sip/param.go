package sip

import (
	"io"
	"strconv"
	"strings"
)

// ParamKind identifies a recognised URI parameter. ParamOther is the
// catch-all for anything not in the closed set.
type ParamKind int

const (
	ParamTransport ParamKind = iota
	ParamUser
	ParamMethod
	ParamTtl
	ParamMaddr
	ParamLr
	ParamBranch
	ParamReceived
	ParamTag
	ParamExpires
	ParamQ
	ParamOther
)

var paramKeyNames = map[ParamKind]string{
	ParamTransport: "transport",
	ParamUser:      "user",
	ParamMethod:    "method",
	ParamTtl:       "ttl",
	ParamMaddr:     "maddr",
	ParamLr:        "lr",
	ParamBranch:    "branch",
	ParamReceived:  "received",
	ParamTag:       "tag",
	ParamExpires:   "expires",
	ParamQ:         "q",
}

var paramNameKinds = map[string]ParamKind{
	"transport": ParamTransport,
	"user":      ParamUser,
	"method":    ParamMethod,
	"ttl":       ParamTtl,
	"maddr":     ParamMaddr,
	"lr":        ParamLr,
	"branch":    ParamBranch,
	"received":  ParamReceived,
	"tag":       ParamTag,
	"expires":   ParamExpires,
	"q":         ParamQ,
}

var validTransports = map[string]bool{
	"UDP": true, "TCP": true, "TLS": true, "SCTP": true, "WS": true, "WSS": true,
}

// Param is one URI (or header) parameter: a closed set of recognised
// kinds plus an Other catch-all that preserves the original key case.
type Param struct {
	Kind ParamKind
	// Name holds the original-case key, meaningful only for ParamOther.
	Name string
	// Value holds the canonical rendered value. Empty and HasValue=false
	// means the parameter has no value (e.g. ";lr").
	Value    string
	HasValue bool
}

// NewParam builds a typed Param from a parsed key/value pair. value is
// nil when the source had no "=..." part (e.g. a bare ";lr").
func NewParam(name string, value *string) (Param, error) {
	lower := strings.ToLower(name)
	kind, known := paramNameKinds[lower]
	if !known {
		p := Param{Kind: ParamOther, Name: name}
		if value != nil {
			p.Value = *value
			p.HasValue = true
		}
		return p, nil
	}

	switch kind {
	case ParamLr:
		if value != nil && *value != "" {
			return Param{}, parseErrorf("lr param must not carry a value, got %q", *value)
		}
		return Param{Kind: ParamLr}, nil
	case ParamTransport:
		if value == nil {
			return Param{}, parseErrorf("transport param requires a value")
		}
		up := strings.ToUpper(*value)
		if !validTransports[up] {
			return Param{}, parseErrorf("invalid transport: %q", *value)
		}
		return Param{Kind: ParamTransport, Value: up, HasValue: true}, nil
	case ParamTtl:
		if value == nil {
			return Param{}, parseErrorf("ttl param requires a value")
		}
		n, err := strconv.ParseUint(*value, 10, 8)
		if err != nil {
			return Param{}, parseErrorf("invalid ttl: %q", *value)
		}
		return Param{Kind: ParamTtl, Value: strconv.FormatUint(n, 10), HasValue: true}, nil
	case ParamExpires:
		if value == nil {
			return Param{}, parseErrorf("expires param requires a value")
		}
		n, err := strconv.ParseUint(*value, 10, 32)
		if err != nil {
			return Param{}, parseErrorf("invalid expires: %q", *value)
		}
		return Param{Kind: ParamExpires, Value: strconv.FormatUint(n, 10), HasValue: true}, nil
	case ParamQ:
		if value == nil {
			return Param{}, parseErrorf("q param requires a value")
		}
		f, err := strconv.ParseFloat(*value, 64)
		if err != nil || f < 0.0 || f > 1.0 {
			return Param{}, parseErrorf("invalid q value: %q", *value)
		}
		return Param{Kind: ParamQ, Value: *value, HasValue: true}, nil
	default:
		// User, Method, Maddr, Branch, Received, Tag: opaque tokens.
		if value == nil {
			return Param{Kind: kind}, nil
		}
		return Param{Kind: kind, Value: *value, HasValue: true}, nil
	}
}

// String renders the parameter with its leading ";".
func (p Param) String() string {
	var sb strings.Builder
	p.StringWrite(&sb)
	return sb.String()
}

func (p Param) StringWrite(w io.StringWriter) {
	w.WriteString(";")
	if p.Kind == ParamOther {
		w.WriteString(p.Name)
		if p.HasValue {
			w.WriteString("=")
			w.WriteString(p.Value)
		}
		return
	}

	w.WriteString(paramKeyNames[p.Kind])
	if p.Kind == ParamLr || !p.HasValue {
		return
	}
	w.WriteString("=")
	w.WriteString(p.Value)
}

// Key returns the rendered key (original case for Other, canonical
// lowercase name otherwise).
func (p Param) Key() string {
	if p.Kind == ParamOther {
		return p.Name
	}
	return paramKeyNames[p.Kind]
}

// ParamList is an ordered sequence of Param values. Duplicates are
// permitted; insertion order is preserved and is never re-sorted.
type ParamList []Param

// Get returns the first parameter of the given kind, if present.
func (pl ParamList) Get(kind ParamKind) (Param, bool) {
	for _, p := range pl {
		if p.Kind == kind {
			return p, true
		}
	}
	return Param{}, false
}

// GetOther returns the first Other parameter matching name
// case-insensitively.
func (pl ParamList) GetOther(name string) (Param, bool) {
	lower := strings.ToLower(name)
	for _, p := range pl {
		if p.Kind == ParamOther && strings.ToLower(p.Name) == lower {
			return p, true
		}
	}
	return Param{}, false
}

// Has reports whether a parameter of the given kind is present.
func (pl ParamList) Has(kind ParamKind) bool {
	_, ok := pl.Get(kind)
	return ok
}

// Add appends a new parameter, preserving insertion order even for
// duplicate keys. Duplicates are permitted though discouraged.
func (pl *ParamList) Add(p Param) {
	*pl = append(*pl, p)
}

// Clone returns a shallow copy backed by a new slice.
func (pl ParamList) Clone() ParamList {
	if pl == nil {
		return nil
	}
	c := make(ParamList, len(pl))
	copy(c, pl)
	return c
}

func (pl ParamList) String() string {
	var sb strings.Builder
	pl.StringWrite(&sb)
	return sb.String()
}

func (pl ParamList) StringWrite(w io.StringWriter) {
	for _, p := range pl {
		p.StringWrite(w)
	}
}

// parseParams scans a leading run of ";name[=value]" parameters out of s,
// stopping at the first byte in stopAt that is not inside a bracketed or
// quoted span, or at end of string. It returns the parsed params and the
// unconsumed remainder of s.
func parseParams(s string, stopAt string) (ParamList, string, error) {
	var params ParamList
	for len(s) > 0 {
		if s[0] != ';' {
			break
		}
		s = s[1:]

		end := findAnyUnescaped(s, stopAt+";", quotesDelim, bracketDelim)
		var field string
		if end < 0 {
			field = s
			s = ""
		} else {
			field = s[:end]
			s = s[end:]
		}

		eq := findUnescaped(field, '=', quotesDelim, bracketDelim)
		var name string
		var value *string
		if eq < 0 {
			name = field
		} else {
			name = field[:eq]
			v := unquote(field[eq+1:])
			value = &v
		}
		if name == "" {
			return nil, "", tokenizeErrorf("failed to tokenize uri param: %q", ";"+field)
		}

		p, err := NewParam(name, value)
		if err != nil {
			return nil, "", err
		}
		params.Add(p)
	}
	return params, s, nil
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
