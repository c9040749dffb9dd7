package sip

import (
	"fmt"
	"io"
	"strings"
)

// Request RFC 3261 - 7.1.
type Request struct {
	MessageData
	Method    RequestMethod
	Recipient Uri
}

// NewRequest creates the base for building a sip Request.
// A Request-Line contains a method name, a Request-URI, and SIP/2.0 as
// version. No headers are added; AppendHeader should be called to add
// them, and SetBody to set the body with a proper Content-Length header.
func NewRequest(method RequestMethod, recipient Uri) *Request {
	req := &Request{}
	req.SipVersion = SIPVersion2
	req.headers = headers{
		headerOrder: make([]Header, 0, 10),
	}
	req.Method = method
	req.Recipient = recipient.Clone()
	return req
}

func (req *Request) Short() string {
	if req == nil {
		return "<nil>"
	}
	return fmt.Sprintf("request method=%s recipient=%s", req.Method, req.Recipient.String())
}

// StartLine returns the Request Line - RFC 3261 7.1.
func (req *Request) StartLine() string {
	var buffer strings.Builder
	req.StartLineWrite(&buffer)
	return buffer.String()
}

func (req *Request) StartLineWrite(buffer io.StringWriter) {
	buffer.WriteString(string(req.Method))
	buffer.WriteString(" ")
	req.Recipient.StringWrite(buffer)
	buffer.WriteString(" ")
	buffer.WriteString(req.SipVersion)
}

func (req *Request) String() string {
	var buffer strings.Builder
	req.StringWrite(&buffer)
	return buffer.String()
}

func (req *Request) StringWrite(buffer io.StringWriter) {
	// The start-line, each message-header line, and the empty line MUST
	// be terminated by CRLF, present even if the message-body is not.
	req.StartLineWrite(buffer)
	buffer.WriteString("\r\n")
	req.headers.StringWrite(buffer)
	buffer.WriteString("\r\n")
	if len(req.body) > 0 {
		buffer.WriteString(string(req.body))
	}
}

func (req *Request) Bytes() []byte {
	var buffer strings.Builder
	req.StringWrite(&buffer)
	return []byte(buffer.String())
}

// Clone performs a deep clone of the request, body included.
func (req *Request) Clone() *Request {
	newReq := NewRequest(req.Method, req.Recipient)
	newReq.SipVersion = req.SipVersion
	for _, h := range req.CloneHeaders() {
		newReq.AppendHeader(h)
	}
	if req.body != nil {
		newReq.body = append([]byte(nil), req.body...)
	}
	return newReq
}

func (req *Request) IsInvite() bool {
	return req.Method == INVITE
}

func (req *Request) IsAck() bool {
	return req.Method == ACK
}

func (req *Request) IsCancel() bool {
	return req.Method == CANCEL
}

func (req *Request) AsRequest() (*Request, error) {
	return req, nil
}

func (req *Request) AsResponse() (*Response, error) {
	return nil, unexpectedErrorf("sip message is a request, not a response")
}
