package sip

import (
	"io"
	"strings"
)

// RequestMethod is a SIP request method name in canonical upper case.
type RequestMethod string

func (r RequestMethod) String() string { return string(r) }

// method names are defined here as constants for convenience.
const (
	INVITE    RequestMethod = "INVITE"
	ACK       RequestMethod = "ACK"
	CANCEL    RequestMethod = "CANCEL"
	BYE       RequestMethod = "BYE"
	REGISTER  RequestMethod = "REGISTER"
	OPTIONS   RequestMethod = "OPTIONS"
	SUBSCRIBE RequestMethod = "SUBSCRIBE"
	NOTIFY    RequestMethod = "NOTIFY"
	REFER     RequestMethod = "REFER"
	INFO      RequestMethod = "INFO"
	MESSAGE   RequestMethod = "MESSAGE"
	PRACK     RequestMethod = "PRACK"
	UPDATE    RequestMethod = "UPDATE"
	PUBLISH   RequestMethod = "PUBLISH"
)

var requestMethods = map[RequestMethod]bool{
	INVITE: true, ACK: true, CANCEL: true, BYE: true, REGISTER: true,
	OPTIONS: true, SUBSCRIBE: true, NOTIFY: true, REFER: true, INFO: true,
	MESSAGE: true, PRACK: true, UPDATE: true, PUBLISH: true,
}

// parseRequestMethod matches name against the closed method set,
// case-insensitively. Canonical form is upper case.
func parseRequestMethod(name string) (RequestMethod, error) {
	m := RequestMethod(strings.ToUpper(name))
	if !requestMethods[m] {
		return "", parseErrorf("invalid method: %s", name)
	}
	return m, nil
}

// StatusCode - response status code: 1xx - 6xx.
type StatusCode int

// The maximum permissible CSeq number in a SIP message (2**31 - 1).
// C.f. RFC 3261 S. 8.1.1.5.
const maxCseq = 2147483647

const (
	SIPVersion1 = "SIP/1.0"
	SIPVersion2 = "SIP/2.0"
)

func parseSIPVersion(s string) (string, error) {
	switch s {
	case SIPVersion2, SIPVersion1:
		return s, nil
	}
	return "", parseErrorf("invalid sip version: %q", s)
}

// SipMessage is the Request | Response union, used only at the API
// boundary. The unexported body setter keeps the union closed to this
// package.
type SipMessage interface {
	// StartLine returns the message start line without its CRLF.
	StartLine() string
	StartLineWrite(io.StringWriter)
	// String returns the RFC 3261 wire form of the message.
	String() string
	// StringWrite is same as String but lets you provide the writer and
	// reduce allocations.
	StringWrite(io.StringWriter)
	// Bytes returns the wire form as a byte slice.
	Bytes() []byte
	// Short returns short string info about message. Used for logging.
	Short() string

	// Headers returns all message headers in insertion order.
	Headers() []Header
	// GetHeaders returns all headers matching name, case-insensitively.
	GetHeaders(name string) []Header
	// GetHeader returns the first header matching name, or nil.
	GetHeader(name string) Header
	AppendHeader(header Header)
	PrependHeader(headers ...Header)
	RemoveHeader(name string)
	ReplaceHeader(header Header)

	/* Helper getters for common headers */
	CallID() (*CallIDHeader, bool)
	Via() (*ViaHeader, bool)
	From() (*FromHeader, bool)
	To() (*ToHeader, bool)
	CSeq() (*CSeqHeader, bool)
	Contact() (*ContactHeader, bool)
	MaxForwards() (*MaxForwardsHeader, bool)
	ContentLength() (*ContentLengthHeader, bool)
	ContentType() (*ContentTypeHeader, bool)
	Route() (*RouteHeader, bool)
	RecordRoute() (*RecordRouteHeader, bool)

	// Body returns message body.
	Body() []byte
	// SetBody sets message body and maintains the Content-Length header.
	SetBody(body []byte)

	// AsRequest returns the underlying request, or an error if the
	// message is a response.
	AsRequest() (*Request, error)
	// AsResponse returns the underlying response, or an error if the
	// message is a request.
	AsResponse() (*Response, error)

	setBodyRaw(body []byte)
}

// MessageData carries the parts shared by Request and Response: the
// header block, protocol version and body.
type MessageData struct {
	headers
	SipVersion string
	body       []byte
}

func (msg *MessageData) Body() []byte {
	return msg.body
}

// SetBody sets message body, calculates its length and maintains the
// 'Content-Length' header.
func (msg *MessageData) SetBody(body []byte) {
	msg.body = body
	length := ContentLengthHeader(len(body))

	if hdr, exists := msg.ContentLength(); exists {
		if length == *hdr {
			return
		}
		msg.ReplaceHeader(&length)
		return
	}
	msg.AppendHeader(&length)
}

// setBodyRaw stores body bytes without touching Content-Length, so that
// a parsed message round-trips byte for byte even when the header was
// absent on the wire.
func (msg *MessageData) setBodyRaw(body []byte) {
	msg.body = body
}
