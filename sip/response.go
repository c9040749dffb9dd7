package sip

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Response RFC 3261 - 7.2.
type Response struct {
	MessageData
	StatusCode StatusCode
	Reason     string
}

// NewResponse creates the base structure of a response.
func NewResponse(statusCode StatusCode, reason string) *Response {
	res := &Response{}
	res.SipVersion = SIPVersion2
	res.headers = headers{
		headerOrder: make([]Header, 0, 10),
	}
	res.StatusCode = statusCode
	res.Reason = reason
	return res
}

// NewResponseFromRequest builds a response for the given request per
// RFC 3261 8.2.6.2: Record-Route, Via, From, To, Call-ID and CSeq are
// copied from the request in that order.
func NewResponseFromRequest(req *Request, statusCode StatusCode, reason string, body []byte) *Response {
	res := NewResponse(statusCode, reason)
	res.SipVersion = req.SipVersion
	for _, h := range req.GetHeaders("Record-Route") {
		res.AppendHeader(h.Clone())
	}
	for _, h := range req.GetHeaders("Via") {
		res.AppendHeader(h.Clone())
	}
	if h, ok := req.From(); ok {
		res.AppendHeader(h.Clone())
	}
	if h, ok := req.To(); ok {
		res.AppendHeader(h.Clone())
	}
	if h, ok := req.CallID(); ok {
		res.AppendHeader(h.Clone())
	}
	if h, ok := req.CSeq(); ok {
		res.AppendHeader(h.Clone())
	}
	if body != nil {
		res.SetBody(body)
	}
	return res
}

// Short is the textual short version of the response.
func (res *Response) Short() string {
	if res == nil {
		return "<nil>"
	}
	return fmt.Sprintf("response status=%d reason=%s", res.StatusCode, res.Reason)
}

// StartLine returns the Response Status Line - RFC 3261 7.2.
func (res *Response) StartLine() string {
	var buffer strings.Builder
	res.StartLineWrite(&buffer)
	return buffer.String()
}

func (res *Response) StartLineWrite(buffer io.StringWriter) {
	buffer.WriteString(res.SipVersion)
	buffer.WriteString(" ")
	buffer.WriteString(strconv.Itoa(int(res.StatusCode)))
	buffer.WriteString(" ")
	buffer.WriteString(res.Reason)
}

func (res *Response) String() string {
	var buffer strings.Builder
	res.StringWrite(&buffer)
	return buffer.String()
}

func (res *Response) StringWrite(buffer io.StringWriter) {
	res.StartLineWrite(buffer)
	buffer.WriteString("\r\n")
	res.headers.StringWrite(buffer)
	buffer.WriteString("\r\n")
	if len(res.body) > 0 {
		buffer.WriteString(string(res.body))
	}
}

func (res *Response) Bytes() []byte {
	var buffer strings.Builder
	res.StringWrite(&buffer)
	return []byte(buffer.String())
}

// Clone performs a deep clone of the response, body included.
func (res *Response) Clone() *Response {
	newRes := NewResponse(res.StatusCode, res.Reason)
	newRes.SipVersion = res.SipVersion
	for _, h := range res.CloneHeaders() {
		newRes.AppendHeader(h)
	}
	if res.body != nil {
		newRes.body = append([]byte(nil), res.body...)
	}
	return newRes
}

func (res *Response) IsProvisional() bool {
	return res.StatusCode < 200
}

func (res *Response) IsSuccess() bool {
	return res.StatusCode >= 200 && res.StatusCode < 300
}

func (res *Response) IsRedirection() bool {
	return res.StatusCode >= 300 && res.StatusCode < 400
}

func (res *Response) IsClientError() bool {
	return res.StatusCode >= 400 && res.StatusCode < 500
}

func (res *Response) IsServerError() bool {
	return res.StatusCode >= 500 && res.StatusCode < 600
}

func (res *Response) IsGlobalError() bool {
	return res.StatusCode >= 600
}

func (res *Response) AsRequest() (*Request, error) {
	return nil, unexpectedErrorf("sip message is a response, not a request")
}

func (res *Response) AsResponse() (*Response, error) {
	return res, nil
}
