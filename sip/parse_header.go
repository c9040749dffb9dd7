package sip

import (
	"strconv"
	"strings"
)

// HeaderParser turns the raw text after "Name:" into one or more typed
// Header values. Headers that can appear as a comma-separated list on one
// wire line (Via, Contact, Route, Record-Route) return one Header per
// list entry.
type HeaderParser func(name string, text string) ([]Header, error)

// headerParsers maps canonical lowercase header names to their parser.
// Compact letters are expanded before the lookup.
var headerParsers = map[string]HeaderParser{
	"to":               headerParserTo,
	"from":             headerParserFrom,
	"contact":          headerParserContact,
	"call-id":          headerParserCallID,
	"cseq":             headerParserCSeq,
	"via":              headerParserVia,
	"max-forwards":     headerParserMaxForwards,
	"expires":          headerParserExpires,
	"content-length":   headerParserContentLength,
	"content-type":     headerParserContentType,
	"route":            headerParserRoute,
	"record-route":     headerParserRecordRoute,
	"authorization":    headerParserAuthorization,
	"www-authenticate": headerParserWWWAuthenticate,
	"allow":            headerParserAllow,
	"supported":        headerParserSupported,
	"user-agent":       headerParserUserAgent,
	"server":           headerParserServer,
	"subject":          headerParserSubject,
	"content-encoding": headerParserContentEncoding,
}

// canonicalHeaderNames maps lowercase keys to the long-form field names
// used for canonical rendering.
var canonicalHeaderNames = map[string]string{
	"via":              "Via",
	"from":             "From",
	"to":               "To",
	"call-id":          "Call-ID",
	"contact":          "Contact",
	"cseq":             "CSeq",
	"max-forwards":     "Max-Forwards",
	"expires":          "Expires",
	"content-length":   "Content-Length",
	"content-type":     "Content-Type",
	"route":            "Route",
	"record-route":     "Record-Route",
	"authorization":    "Authorization",
	"www-authenticate": "WWW-Authenticate",
	"allow":            "Allow",
	"supported":        "Supported",
	"user-agent":       "User-Agent",
	"server":           "Server",
	"subject":          "Subject",
	"content-encoding": "Content-Encoding",
}

// splitHeaderLine splits one unfolded header line at its first colon.
// A line lacking the colon is a hard tokenizer error.
func splitHeaderLine(line string) (name, value string, err error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "", "", tokenizeErrorf("failed to tokenize headers: missing colon in %q", line)
	}
	name = strings.TrimSpace(line[:colon])
	if name == "" {
		return "", "", tokenizeErrorf("failed to tokenize headers: empty field name in %q", line)
	}
	value = strings.TrimSpace(line[colon+1:])
	return name, value, nil
}

// resolveHeaderName folds rawName to its lowercase dispatch key,
// expanding an RFC 3261 S.7.3.3 compact letter, and returns the name to
// render with: the canonical long form for recognised headers, the
// original bytes for everything else.
func resolveHeaderName(rawName string) (lower string, display string) {
	if len(rawName) == 1 {
		if expanded, ok := compactHeaderNames[strings.ToLower(rawName)]; ok {
			return expanded, canonicalHeaderNames[expanded]
		}
	}
	lower = headerNameLower(rawName)
	if canonical, ok := canonicalHeaderNames[lower]; ok {
		return lower, canonical
	}
	return lower, rawName
}

// parseHeaderValue dispatches a header value to its typed parser.
// Unrecognised names become GenericHeader with the field name preserved
// verbatim.
func parseHeaderValue(rawName string, value string) ([]Header, error) {
	lower, display := resolveHeaderName(rawName)
	parser, ok := headerParsers[lower]
	if !ok {
		return []Header{&GenericHeader{HeaderName: display, Contents: value}}, nil
	}
	return parser(lower, value)
}

// parseHeaderLine parses one unfolded "Name: value" line and appends the
// resulting Header(s) to out.
func parseHeaderLine(out []Header, line string) ([]Header, error) {
	name, value, err := splitHeaderLine(line)
	if err != nil {
		return out, err
	}
	parsed, err := parseHeaderValue(name, value)
	if err != nil {
		return out, err
	}
	return append(out, parsed...), nil
}

func headerParserCallID(name string, text string) ([]Header, error) {
	if text == "" {
		return nil, tokenizeErrorf("failed to tokenize Call-ID: empty value")
	}
	h := CallIDHeader(text)
	return []Header{&h}, nil
}

func headerParserCSeq(name string, text string) ([]Header, error) {
	idx := strings.IndexAny(text, abnfWs)
	if idx < 1 || idx+1 >= len(text) {
		return nil, tokenizeErrorf("failed to tokenize CSeq: %q", text)
	}
	seqNo, err := strconv.ParseUint(text[:idx], 10, 32)
	if err != nil || seqNo > maxCseq {
		return nil, tokenizeErrorf("failed to tokenize CSeq sequence number: %q", text[:idx])
	}
	method := strings.TrimSpace(text[idx+1:])
	return []Header{&CSeqHeader{SeqNo: uint32(seqNo), Method: RequestMethod(method)}}, nil
}

func headerParserMaxForwards(name string, text string) ([]Header, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return nil, tokenizeErrorf("failed to tokenize Max-Forwards: %q", text)
	}
	h := MaxForwardsHeader(n)
	return []Header{&h}, nil
}

func headerParserExpires(name string, text string) ([]Header, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return nil, tokenizeErrorf("failed to tokenize Expires: %q", text)
	}
	h := ExpiresHeader(n)
	return []Header{&h}, nil
}

func headerParserContentLength(name string, text string) ([]Header, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return nil, tokenizeErrorf("failed to tokenize Content-Length: %q", text)
	}
	h := ContentLengthHeader(n)
	return []Header{&h}, nil
}

func headerParserContentType(name string, text string) ([]Header, error) {
	if text == "" {
		return nil, tokenizeErrorf("failed to tokenize Content-Type: empty value")
	}
	h := ContentTypeHeader(text)
	return []Header{&h}, nil
}

func headerParserAllow(name string, text string) ([]Header, error) {
	h := AllowHeader(text)
	return []Header{&h}, nil
}

func headerParserSupported(name string, text string) ([]Header, error) {
	h := SupportedHeader(text)
	return []Header{&h}, nil
}

func headerParserUserAgent(name string, text string) ([]Header, error) {
	h := UserAgentHeader(text)
	return []Header{&h}, nil
}

func headerParserServer(name string, text string) ([]Header, error) {
	h := ServerHeader(text)
	return []Header{&h}, nil
}

func headerParserSubject(name string, text string) ([]Header, error) {
	h := SubjectHeader(text)
	return []Header{&h}, nil
}

func headerParserContentEncoding(name string, text string) ([]Header, error) {
	h := ContentEncodingHeader(text)
	return []Header{&h}, nil
}
