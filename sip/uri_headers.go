package sip

import (
	"io"
	"strings"
)

// URIHeader is one key/value pair embedded in a URI's "?key=val&..."
// section. These are distinct from message headers.
type URIHeader struct {
	Name  string
	Value string
}

// URIHeaderList is an ordered sequence of URIHeader, insertion order
// preserved.
type URIHeaderList []URIHeader

func (hl URIHeaderList) String() string {
	var sb strings.Builder
	hl.StringWrite(&sb)
	return sb.String()
}

func (hl URIHeaderList) StringWrite(w io.StringWriter) {
	for i, h := range hl {
		if i > 0 {
			w.WriteString("&")
		}
		w.WriteString(h.Name)
		w.WriteString("=")
		w.WriteString(h.Value)
	}
}

func (hl URIHeaderList) Clone() URIHeaderList {
	if hl == nil {
		return nil
	}
	c := make(URIHeaderList, len(hl))
	copy(c, hl)
	return c
}

// parseURIHeaders parses a "key=val&key2=val2" run (the part after a
// URI's "?") with no further terminator: URI headers always run to the
// end of the URI production.
func parseURIHeaders(s string) (URIHeaderList, error) {
	if s == "" {
		return nil, nil
	}
	var out URIHeaderList
	for _, kv := range strings.Split(s, "&") {
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			return nil, tokenizeErrorf("failed to tokenize uri headers: %q", kv)
		}
		out = append(out, URIHeader{Name: kv[:eq], Value: kv[eq+1:]})
	}
	return out, nil
}
