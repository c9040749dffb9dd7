package sip

import (
	"io"
	"strconv"
	"strings"
)

// Header is one SIP message header line. Headers this package does
// not model explicitly round-trip through GenericHeader, which preserves
// the original field-name case and the raw value bytes verbatim.
type Header interface {
	Name() string
	Value() string
	String() string
	StringWrite(w io.StringWriter)
	Clone() Header
}

// GenericHeader carries any header this package has no typed model for.
// HeaderName keeps the exact bytes seen before the colon so unknown
// headers round-trip byte for byte.
type GenericHeader struct {
	HeaderName string
	Contents   string
}

func (h *GenericHeader) Name() string  { return h.HeaderName }
func (h *GenericHeader) Value() string { return h.Contents }

func (h *GenericHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}

func (h *GenericHeader) StringWrite(w io.StringWriter) {
	w.WriteString(h.HeaderName)
	w.WriteString(": ")
	w.WriteString(h.Contents)
}

func (h *GenericHeader) Clone() Header {
	return &GenericHeader{HeaderName: h.HeaderName, Contents: h.Contents}
}

// addressValue is the shared "[display-name] <uri> ;params" value shape of
// the From/To/Contact/Route/Record-Route family (RFC 3261 S.20).
type addressValue struct {
	DisplayName string
	HasDisplay  bool
	// QuotedDisplay records whether the display name was quoted on the
	// wire, so an unquoted token display name stays unquoted on output.
	QuotedDisplay bool
	Address       Uri
	// NoBrackets preserves a bare (un-angled) address form, permitted by
	// the grammar when no display name is present.
	NoBrackets bool
	Params     ParamList
}

func (a addressValue) stringWrite(w io.StringWriter) {
	if a.Address.Wildcard {
		w.WriteString("*")
		return
	}
	if a.HasDisplay {
		if a.QuotedDisplay {
			w.WriteString("\"")
			w.WriteString(a.DisplayName)
			w.WriteString("\"")
		} else {
			w.WriteString(a.DisplayName)
		}
		w.WriteString(" ")
	}
	if a.NoBrackets && !a.HasDisplay {
		a.Address.StringWrite(w)
	} else {
		w.WriteString("<")
		a.Address.StringWrite(w)
		w.WriteString(">")
	}
	a.Params.StringWrite(w)
}

func (a addressValue) clone() addressValue {
	c := a
	c.Address = a.Address.Clone()
	c.Params = a.Params.Clone()
	return c
}

// ToHeader is the SIP 'To' header.
type ToHeader struct {
	addressValue
}

func (h *ToHeader) Name() string { return "To" }
func (h *ToHeader) Value() string {
	var sb strings.Builder
	h.addressValue.stringWrite(&sb)
	return sb.String()
}
func (h *ToHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *ToHeader) StringWrite(w io.StringWriter) {
	w.WriteString("To: ")
	h.addressValue.stringWrite(w)
}
func (h *ToHeader) Clone() Header {
	return &ToHeader{addressValue: h.addressValue.clone()}
}

// Tag returns the 'tag' parameter value, if present.
func (h *ToHeader) Tag() (string, bool) {
	p, ok := h.Params.Get(ParamTag)
	if !ok {
		return "", false
	}
	return p.Value, true
}

// FromHeader is the SIP 'From' header.
type FromHeader struct {
	addressValue
}

func (h *FromHeader) Name() string { return "From" }
func (h *FromHeader) Value() string {
	var sb strings.Builder
	h.addressValue.stringWrite(&sb)
	return sb.String()
}
func (h *FromHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *FromHeader) StringWrite(w io.StringWriter) {
	w.WriteString("From: ")
	h.addressValue.stringWrite(w)
}
func (h *FromHeader) Clone() Header {
	return &FromHeader{addressValue: h.addressValue.clone()}
}

func (h *FromHeader) Tag() (string, bool) {
	p, ok := h.Params.Get(ParamTag)
	if !ok {
		return "", false
	}
	return p.Value, true
}

// ContactHeader is one SIP 'Contact' header entry. A comma-separated
// Contact line expands into one ContactHeader per entry. The "*" form is
// represented by setting Address.Wildcard.
type ContactHeader struct {
	addressValue
}

func (h *ContactHeader) Name() string { return "Contact" }
func (h *ContactHeader) Value() string {
	var sb strings.Builder
	h.addressValue.stringWrite(&sb)
	return sb.String()
}
func (h *ContactHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *ContactHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Contact: ")
	h.addressValue.stringWrite(w)
}
func (h *ContactHeader) Clone() Header {
	return &ContactHeader{addressValue: h.addressValue.clone()}
}

// RouteHeader is one 'Route' header entry. A comma-separated Route line
// in the wire form expands into one RouteHeader per entry.
type RouteHeader struct {
	addressValue
}

func (h *RouteHeader) Name() string { return "Route" }
func (h *RouteHeader) Value() string {
	var sb strings.Builder
	h.addressValue.stringWrite(&sb)
	return sb.String()
}
func (h *RouteHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *RouteHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Route: ")
	h.addressValue.stringWrite(w)
}
func (h *RouteHeader) Clone() Header {
	return &RouteHeader{addressValue: h.addressValue.clone()}
}

// RecordRouteHeader is one 'Record-Route' header entry.
type RecordRouteHeader struct {
	addressValue
}

func (h *RecordRouteHeader) Name() string { return "Record-Route" }
func (h *RecordRouteHeader) Value() string {
	var sb strings.Builder
	h.addressValue.stringWrite(&sb)
	return sb.String()
}
func (h *RecordRouteHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *RecordRouteHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Record-Route: ")
	h.addressValue.stringWrite(w)
}
func (h *RecordRouteHeader) Clone() Header {
	return &RecordRouteHeader{addressValue: h.addressValue.clone()}
}

// CallIDHeader is the SIP 'Call-ID' header.
type CallIDHeader string

func (h CallIDHeader) Name() string  { return "Call-ID" }
func (h CallIDHeader) Value() string { return string(h) }
func (h CallIDHeader) String() string {
	return "Call-ID: " + string(h)
}
func (h CallIDHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Call-ID: ")
	w.WriteString(string(h))
}
func (h CallIDHeader) Clone() Header {
	c := h
	return &c
}

// CSeqHeader is the SIP 'CSeq' header.
type CSeqHeader struct {
	SeqNo  uint32
	Method RequestMethod
}

func (h *CSeqHeader) Name() string { return "CSeq" }
func (h *CSeqHeader) Value() string {
	return strconv.FormatUint(uint64(h.SeqNo), 10) + " " + string(h.Method)
}
func (h *CSeqHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *CSeqHeader) StringWrite(w io.StringWriter) {
	w.WriteString("CSeq: ")
	w.WriteString(strconv.FormatUint(uint64(h.SeqNo), 10))
	w.WriteString(" ")
	w.WriteString(string(h.Method))
}
func (h *CSeqHeader) Clone() Header {
	return &CSeqHeader{SeqNo: h.SeqNo, Method: h.Method}
}

// MaxForwardsHeader is the SIP 'Max-Forwards' header.
type MaxForwardsHeader uint32

func (h MaxForwardsHeader) Name() string  { return "Max-Forwards" }
func (h MaxForwardsHeader) Value() string { return strconv.FormatUint(uint64(h), 10) }
func (h MaxForwardsHeader) String() string {
	return "Max-Forwards: " + h.Value()
}
func (h MaxForwardsHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Max-Forwards: ")
	w.WriteString(h.Value())
}
func (h MaxForwardsHeader) Clone() Header {
	c := h
	return &c
}

// ExpiresHeader is the SIP 'Expires' header.
type ExpiresHeader uint32

func (h ExpiresHeader) Name() string  { return "Expires" }
func (h ExpiresHeader) Value() string { return strconv.FormatUint(uint64(h), 10) }
func (h ExpiresHeader) String() string {
	return "Expires: " + h.Value()
}
func (h ExpiresHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Expires: ")
	w.WriteString(h.Value())
}
func (h ExpiresHeader) Clone() Header {
	c := h
	return &c
}

// ContentLengthHeader is the SIP 'Content-Length' header.
type ContentLengthHeader uint32

func (h ContentLengthHeader) Name() string  { return "Content-Length" }
func (h ContentLengthHeader) Value() string { return strconv.FormatUint(uint64(h), 10) }
func (h ContentLengthHeader) String() string {
	return "Content-Length: " + h.Value()
}
func (h ContentLengthHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Content-Length: ")
	w.WriteString(h.Value())
}
func (h ContentLengthHeader) Clone() Header {
	c := h
	return &c
}

// ContentTypeHeader is the SIP 'Content-Type' header.
type ContentTypeHeader string

func (h ContentTypeHeader) Name() string  { return "Content-Type" }
func (h ContentTypeHeader) Value() string { return string(h) }
func (h ContentTypeHeader) String() string {
	return "Content-Type: " + string(h)
}
func (h ContentTypeHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Content-Type: ")
	w.WriteString(string(h))
}
func (h ContentTypeHeader) Clone() Header {
	c := h
	return &c
}

// ViaHeader is one Via hop. A comma-separated Via line expands into one
// ViaHeader per hop; each renders on its own "Via:" line when the
// message is serialized, matching how this package always writes Via as
// a distinct header per hop rather than re-joining them with commas.
type ViaHeader struct {
	ProtocolName    string
	ProtocolVersion string
	Transport       string
	Host            Host
	HasPort         bool
	Port            uint16
	Params          ParamList
}

func (h *ViaHeader) Name() string { return "Via" }
func (h *ViaHeader) Value() string {
	var sb strings.Builder
	h.valueWrite(&sb)
	return sb.String()
}
func (h *ViaHeader) String() string {
	var sb strings.Builder
	h.StringWrite(&sb)
	return sb.String()
}
func (h *ViaHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Via: ")
	h.valueWrite(w)
}
func (h *ViaHeader) valueWrite(w io.StringWriter) {
	w.WriteString(h.ProtocolName)
	w.WriteString("/")
	w.WriteString(h.ProtocolVersion)
	w.WriteString("/")
	w.WriteString(h.Transport)
	w.WriteString(" ")
	if h.Host.Kind == HostIPv6 {
		w.WriteString("[")
		w.WriteString(h.Host.String())
		w.WriteString("]")
	} else {
		w.WriteString(h.Host.String())
	}
	if h.HasPort {
		w.WriteString(":")
		w.WriteString(strconv.Itoa(int(h.Port)))
	}
	h.Params.StringWrite(w)
}
func (h *ViaHeader) Clone() Header {
	return &ViaHeader{
		ProtocolName:    h.ProtocolName,
		ProtocolVersion: h.ProtocolVersion,
		Transport:       h.Transport,
		Host:            h.Host,
		HasPort:         h.HasPort,
		Port:            h.Port,
		Params:          h.Params.Clone(),
	}
}

func (h *ViaHeader) Branch() (string, bool) {
	p, ok := h.Params.Get(ParamBranch)
	if !ok {
		return "", false
	}
	return p.Value, true
}

// AllowHeader is the SIP 'Allow' header. The method list is kept as raw
// text.
type AllowHeader string

func (h AllowHeader) Name() string  { return "Allow" }
func (h AllowHeader) Value() string { return string(h) }
func (h AllowHeader) String() string {
	return "Allow: " + string(h)
}
func (h AllowHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Allow: ")
	w.WriteString(string(h))
}
func (h AllowHeader) Clone() Header {
	c := h
	return &c
}

// SupportedHeader is the SIP 'Supported' header.
type SupportedHeader string

func (h SupportedHeader) Name() string  { return "Supported" }
func (h SupportedHeader) Value() string { return string(h) }
func (h SupportedHeader) String() string {
	return "Supported: " + string(h)
}
func (h SupportedHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Supported: ")
	w.WriteString(string(h))
}
func (h SupportedHeader) Clone() Header {
	c := h
	return &c
}

// UserAgentHeader is the SIP 'User-Agent' header.
type UserAgentHeader string

func (h UserAgentHeader) Name() string  { return "User-Agent" }
func (h UserAgentHeader) Value() string { return string(h) }
func (h UserAgentHeader) String() string {
	return "User-Agent: " + string(h)
}
func (h UserAgentHeader) StringWrite(w io.StringWriter) {
	w.WriteString("User-Agent: ")
	w.WriteString(string(h))
}
func (h UserAgentHeader) Clone() Header {
	c := h
	return &c
}

// ServerHeader is the SIP 'Server' header.
type ServerHeader string

func (h ServerHeader) Name() string  { return "Server" }
func (h ServerHeader) Value() string { return string(h) }
func (h ServerHeader) String() string {
	return "Server: " + string(h)
}
func (h ServerHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Server: ")
	w.WriteString(string(h))
}
func (h ServerHeader) Clone() Header {
	c := h
	return &c
}

// SubjectHeader is the SIP 'Subject' header.
type SubjectHeader string

func (h SubjectHeader) Name() string  { return "Subject" }
func (h SubjectHeader) Value() string { return string(h) }
func (h SubjectHeader) String() string {
	return "Subject: " + string(h)
}
func (h SubjectHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Subject: ")
	w.WriteString(string(h))
}
func (h SubjectHeader) Clone() Header {
	c := h
	return &c
}

// ContentEncodingHeader is the SIP 'Content-Encoding' header.
type ContentEncodingHeader string

func (h ContentEncodingHeader) Name() string  { return "Content-Encoding" }
func (h ContentEncodingHeader) Value() string { return string(h) }
func (h ContentEncodingHeader) String() string {
	return "Content-Encoding: " + string(h)
}
func (h ContentEncodingHeader) StringWrite(w io.StringWriter) {
	w.WriteString("Content-Encoding: ")
	w.WriteString(string(h))
}
func (h ContentEncodingHeader) Clone() Header {
	c := h
	return &c
}

// headers is the ordered header block of a message. Insertion order is
// preserved; there is no hashing or de-duplication. A few hot
// headers keep a direct pointer so the common accessors skip the scan.
type headers struct {
	headerOrder []Header

	via           *ViaHeader
	from          *FromHeader
	to            *ToHeader
	callid        *CallIDHeader
	contact       *ContactHeader
	cseq          *CSeqHeader
	contentLength *ContentLengthHeader
	contentType   *ContentTypeHeader
}

func (hs *headers) String() string {
	var sb strings.Builder
	hs.StringWrite(&sb)
	return sb.String()
}

// StringWrite writes every header followed by its CRLF. The empty line
// terminating the header block is the message's job, not ours.
func (hs *headers) StringWrite(w io.StringWriter) {
	for _, header := range hs.headerOrder {
		header.StringWrite(w)
		w.WriteString("\r\n")
	}
}

// AppendHeader adds the given header at the end of the block.
func (hs *headers) AppendHeader(header Header) {
	hs.headerOrder = append(hs.headerOrder, header)
	switch m := header.(type) {
	case *ViaHeader:
		if hs.via == nil {
			hs.via = m
		}
	case *FromHeader:
		hs.from = m
	case *ToHeader:
		hs.to = m
	case *CallIDHeader:
		hs.callid = m
	case *CSeqHeader:
		hs.cseq = m
	case *ContactHeader:
		if hs.contact == nil {
			hs.contact = m
		}
	case *ContentLengthHeader:
		hs.contentLength = m
	case *ContentTypeHeader:
		hs.contentType = m
	}
}

// PrependHeader adds headers to the front of the block.
func (hs *headers) PrependHeader(headers ...Header) {
	if len(headers) == 0 {
		return
	}
	offset := len(headers)
	newOrder := make([]Header, len(hs.headerOrder)+offset)
	copy(newOrder, headers)
	copy(newOrder[offset:], hs.headerOrder)
	hs.headerOrder = newOrder
	switch m := headers[0].(type) {
	case *ViaHeader:
		hs.via = m
	case *ContactHeader:
		hs.contact = m
	}
}

// ReplaceHeader swaps the first header with the same name.
func (hs *headers) ReplaceHeader(header Header) {
	for i, h := range hs.headerOrder {
		if headerNameLower(h.Name()) == headerNameLower(header.Name()) {
			hs.headerOrder[i] = header
			hs.cacheShortcut(header)
			break
		}
	}
}

func (hs *headers) cacheShortcut(header Header) {
	switch m := header.(type) {
	case *ViaHeader:
		hs.via = m
	case *FromHeader:
		hs.from = m
	case *ToHeader:
		hs.to = m
	case *CallIDHeader:
		hs.callid = m
	case *CSeqHeader:
		hs.cseq = m
	case *ContactHeader:
		hs.contact = m
	case *ContentLengthHeader:
		hs.contentLength = m
	case *ContentTypeHeader:
		hs.contentType = m
	}
}

// Headers returns the header block in insertion order.
func (hs *headers) Headers() []Header {
	return hs.headerOrder
}

func (hs *headers) GetHeaders(name string) []Header {
	var out []Header
	lower := headerNameLower(name)
	for _, h := range hs.headerOrder {
		if headerNameLower(h.Name()) == lower {
			out = append(out, h)
		}
	}
	return out
}

// GetHeader returns the first header matching name, or nil.
func (hs *headers) GetHeader(name string) Header {
	lower := headerNameLower(name)
	for _, h := range hs.headerOrder {
		if headerNameLower(h.Name()) == lower {
			return h
		}
	}
	return nil
}

func (hs *headers) RemoveHeader(name string) {
	lower := headerNameLower(name)
	for idx, entry := range hs.headerOrder {
		if headerNameLower(entry.Name()) == lower {
			removed := hs.headerOrder[idx]
			hs.headerOrder = append(hs.headerOrder[:idx], hs.headerOrder[idx+1:]...)
			hs.dropShortcut(removed)
			break
		}
	}
}

func (hs *headers) dropShortcut(header Header) {
	switch header.(type) {
	case *ViaHeader:
		hs.via = nil
	case *FromHeader:
		hs.from = nil
	case *ToHeader:
		hs.to = nil
	case *CallIDHeader:
		hs.callid = nil
	case *CSeqHeader:
		hs.cseq = nil
	case *ContactHeader:
		hs.contact = nil
	case *ContentLengthHeader:
		hs.contentLength = nil
	case *ContentTypeHeader:
		hs.contentType = nil
	}
}

// CloneHeaders returns deep copies of all headers in order.
func (hs *headers) CloneHeaders() []Header {
	out := make([]Header, 0, len(hs.headerOrder))
	for _, h := range hs.headerOrder {
		out = append(out, h.Clone())
	}
	return out
}

func (hs *headers) CallID() (*CallIDHeader, bool) {
	return hs.callid, hs.callid != nil
}

func (hs *headers) Via() (*ViaHeader, bool) {
	return hs.via, hs.via != nil
}

func (hs *headers) From() (*FromHeader, bool) {
	return hs.from, hs.from != nil
}

func (hs *headers) To() (*ToHeader, bool) {
	return hs.to, hs.to != nil
}

func (hs *headers) CSeq() (*CSeqHeader, bool) {
	return hs.cseq, hs.cseq != nil
}

func (hs *headers) Contact() (*ContactHeader, bool) {
	return hs.contact, hs.contact != nil
}

func (hs *headers) ContentLength() (*ContentLengthHeader, bool) {
	return hs.contentLength, hs.contentLength != nil
}

func (hs *headers) ContentType() (*ContentTypeHeader, bool) {
	return hs.contentType, hs.contentType != nil
}

func (hs *headers) MaxForwards() (*MaxForwardsHeader, bool) {
	if h, ok := hs.GetHeader("Max-Forwards").(*MaxForwardsHeader); ok {
		return h, true
	}
	return nil, false
}

func (hs *headers) Expires() (*ExpiresHeader, bool) {
	if h, ok := hs.GetHeader("Expires").(*ExpiresHeader); ok {
		return h, true
	}
	return nil, false
}

func (hs *headers) Route() (*RouteHeader, bool) {
	if h, ok := hs.GetHeader("Route").(*RouteHeader); ok {
		return h, true
	}
	return nil, false
}

func (hs *headers) RecordRoute() (*RecordRouteHeader, bool) {
	if h, ok := hs.GetHeader("Record-Route").(*RecordRouteHeader); ok {
		return h, true
	}
	return nil, false
}
