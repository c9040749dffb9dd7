package sip

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// crlf terminates the start-line, every header line, and the header
// block itself (RFC 3261 S.7).
const crlf = "\r\n"

// Parser converts complete SIP message buffers into typed messages.
// It holds only a read-only dispatch table and a logger handle, so a
// single Parser may be shared across goroutines.
type Parser struct {
	log zerolog.Logger
	// headersParsers uses the default list of headers to be parsed. A
	// smaller list makes the parser faster.
	headersParsers map[string]HeaderParser
}

// ParserOption is an additional option for NewParser. Check WithParser...
type ParserOption func(p *Parser)

// NewParser creates a new Parser.
func NewParser(options ...ParserOption) *Parser {
	p := &Parser{
		log:            defaultLogger,
		headersParsers: headerParsers,
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// WithParserLogger allows customizing the parser logger.
func WithParserLogger(logger zerolog.Logger) ParserOption {
	return func(p *Parser) {
		p.log = logger
	}
}

// WithHeadersParsers allows customizing header parsers.
// Consider performance when adding a custom parser: add only headers
// that appear in almost every message. Check headerParsers as a
// starting point.
func WithHeadersParsers(m map[string]HeaderParser) ParserOption {
	return func(p *Parser) {
		p.headersParsers = m
	}
}

// ParseMessage parses data as one complete SIP message using a default
// Parser.
func ParseMessage(data []byte) (SipMessage, error) {
	return NewParser().ParseMessage(data)
}

// ParseRequest parses data as one complete SIP request.
func ParseRequest(data []byte) (*Request, error) {
	return NewParser().ParseRequest(data)
}

// ParseResponse parses data as one complete SIP response.
func ParseResponse(data []byte) (*Response, error) {
	return NewParser().ParseResponse(data)
}

// ParseMessageString is ParseMessage for string input.
func ParseMessageString(data string) (SipMessage, error) {
	return ParseMessage([]byte(data))
}

// ParseRequestString is ParseRequest for string input.
func ParseRequestString(data string) (*Request, error) {
	return ParseRequest([]byte(data))
}

// ParseResponseString is ParseResponse for string input.
func ParseResponseString(data string) (*Response, error) {
	return ParseResponse([]byte(data))
}

// ParseMessage converts data to a sip message. The buffer must contain
// one full sip message: the entire parse succeeds or fails, there are no
// partial results.
func (p *Parser) ParseMessage(data []byte) (SipMessage, error) {
	msg, err := p.parseSIP(data)
	if err != nil {
		return nil, wrapBoundary(err)
	}
	return msg, nil
}

// ParseRequest converts data to a sip Request.
func (p *Parser) ParseRequest(data []byte) (*Request, error) {
	msg, err := p.parseSIP(data)
	if err != nil {
		return nil, wrapBoundary(err)
	}
	req, err := msg.AsRequest()
	if err != nil {
		return nil, wrapBoundary(err)
	}
	return req, nil
}

// ParseResponse converts data to a sip Response.
func (p *Parser) ParseResponse(data []byte) (*Response, error) {
	msg, err := p.parseSIP(data)
	if err != nil {
		return nil, wrapBoundary(err)
	}
	res, err := msg.AsResponse()
	if err != nil {
		return nil, wrapBoundary(err)
	}
	return res, nil
}

func (p *Parser) parseSIP(data []byte) (SipMessage, error) {
	idx := bytes.Index(data, []byte(crlf+crlf))
	if idx < 0 {
		return nil, tokenizeErrorf("failed to tokenize headers: message lacks CRLF CRLF terminator")
	}
	head := string(data[:idx])
	bodyAvail := data[idx+4:]

	lines := strings.Split(head, crlf)
	msg, err := parseStartLine(lines[0])
	if err != nil {
		return nil, err
	}

	for _, line := range unfoldLines(lines[1:]) {
		name, value, err := splitHeaderLine(line)
		if err != nil {
			return nil, err
		}
		hdrs, err := p.parseHeaderValue(name, value)
		if err != nil {
			// A recognised header with an unparseable value keeps its
			// raw form instead of aborting the whole message.
			p.log.Info().Err(err).Str("line", line).Msg("keeping header as generic after parse failure")
			_, display := resolveHeaderName(name)
			hdrs = []Header{&GenericHeader{HeaderName: display, Contents: value}}
		}
		for _, h := range hdrs {
			msg.AppendHeader(h)
		}
	}

	// RFC 3261 - 18.3: Content-Length bounds the body; under-read is
	// tolerated, the parser takes what is available.
	body := bodyAvail
	if cl, ok := msg.ContentLength(); ok {
		if n := int(*cl); n < len(body) {
			body = body[:n]
		}
	}
	if len(body) > 0 {
		msg.setBodyRaw(append([]byte(nil), body...))
	}
	return msg, nil
}

func (p *Parser) parseHeaderValue(rawName string, value string) ([]Header, error) {
	lower, display := resolveHeaderName(rawName)
	parser, ok := p.headersParsers[lower]
	if !ok {
		return []Header{&GenericHeader{HeaderName: display, Contents: value}}, nil
	}
	return parser(lower, value)
}

// unfoldLines joins folded continuation lines (leading SP/HT) into the
// preceding header value with a single SP (RFC 3261 S.7.3.1).
func unfoldLines(lines []string) []string {
	out := lines[:0]
	for _, line := range lines {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(out) > 0 {
			out[len(out)-1] = out[len(out)-1] + " " + strings.Trim(line, abnfWs)
			continue
		}
		out = append(out, line)
	}
	return out
}

// parseStartLine parses the first line of a message. Responses are
// recognised by their leading version token; everything else must be a
// request line.
func parseStartLine(line string) (SipMessage, error) {
	if strings.HasPrefix(line, "SIP/") {
		return parseStatusLine(line)
	}
	return parseRequestLine(line)
}

// parseRequestLine parses the first line of a SIP request, e.g:
//
//	INVITE sip:bob@example.com SIP/2.0
//	REGISTER sip:jane@telco.com SIP/1.0
func parseRequestLine(line string) (*Request, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return nil, tokenizeErrorf("failed to tokenize request line: %q", line)
	}

	method, err := parseRequestMethod(parts[0])
	if err != nil {
		return nil, err
	}
	uri, err := ParseUri(parts[1])
	if err != nil {
		return nil, err
	}
	if uri.Wildcard {
		return nil, parseErrorf("wildcard uri not permitted in request line: %q", line)
	}
	version, err := parseSIPVersion(parts[2])
	if err != nil {
		return nil, err
	}

	req := NewRequest(method, uri)
	req.SipVersion = version
	return req, nil
}

// parseStatusLine parses the first line of a SIP response, e.g:
//
//	SIP/2.0 200 OK
//	SIP/1.0 403 Forbidden
func parseStatusLine(line string) (*Response, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return nil, tokenizeErrorf("failed to tokenize status line: %q", line)
	}

	version, err := parseSIPVersion(parts[0])
	if err != nil {
		return nil, err
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, parseErrorf("invalid status code: %q", parts[1])
	}
	if code < 100 || code > 699 {
		return nil, parseErrorf("invalid status code: %d", code)
	}

	res := NewResponse(StatusCode(code), parts[2])
	res.SipVersion = version
	return res, nil
}
