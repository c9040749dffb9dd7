package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadersOrderPreserved(t *testing.T) {
	var hs headers
	h1, _ := parseHeaderLine(nil, "Via: SIP/2.0/UDP a.com;branch=z9hG4bK1")
	h2, _ := parseHeaderLine(nil, "X-One: 1")
	h3, _ := parseHeaderLine(nil, "Via: SIP/2.0/UDP b.com;branch=z9hG4bK2")
	for _, h := range [][]Header{h1, h2, h3} {
		for _, hdr := range h {
			hs.AppendHeader(hdr)
		}
	}

	require.Len(t, hs.Headers(), 3)
	assert.Equal(t, "Via", hs.Headers()[0].Name())
	assert.Equal(t, "X-One", hs.Headers()[1].Name())

	// the shortcut accessor returns the top Via
	via, ok := hs.Via()
	require.True(t, ok)
	assert.Equal(t, "a.com", via.Host.Domain)

	vias := hs.GetHeaders("via")
	require.Len(t, vias, 2)
}

func TestHeadersPrependReplaceRemove(t *testing.T) {
	var hs headers
	mf := MaxForwardsHeader(70)
	hs.AppendHeader(&mf)

	via := &ViaHeader{ProtocolName: "SIP", ProtocolVersion: "2.0", Transport: "UDP", Host: ParseHost("proxy.example.com")}
	hs.PrependHeader(via)
	assert.Equal(t, "Via", hs.Headers()[0].Name())

	mf2 := MaxForwardsHeader(69)
	hs.ReplaceHeader(&mf2)
	got, ok := hs.MaxForwards()
	require.True(t, ok)
	assert.Equal(t, MaxForwardsHeader(69), *got)

	hs.RemoveHeader("Via")
	_, ok = hs.Via()
	assert.False(t, ok)
	assert.Len(t, hs.Headers(), 1)
}

func TestGetHeaderCaseInsensitive(t *testing.T) {
	var hs headers
	hdrs, err := parseHeaderLine(nil, "Call-ID: abc")
	require.NoError(t, err)
	hs.AppendHeader(hdrs[0])

	assert.NotNil(t, hs.GetHeader("call-id"))
	assert.NotNil(t, hs.GetHeader("CALL-ID"))
	assert.Nil(t, hs.GetHeader("cseq"))
}

func TestCloneHeadersDeep(t *testing.T) {
	var hs headers
	hdrs, err := parseHeaderLine(nil, "From: <sip:alice@atlanta.com>;tag=abc")
	require.NoError(t, err)
	hs.AppendHeader(hdrs[0])

	cloned := hs.CloneHeaders()
	require.Len(t, cloned, 1)
	from := cloned[0].(*FromHeader)
	from.Params[0] = Param{Kind: ParamTag, Value: "zzz", HasValue: true}

	orig, ok := hs.From()
	require.True(t, ok)
	tag, _ := orig.Tag()
	assert.Equal(t, "abc", tag)
}

func TestSetBodyMaintainsContentLength(t *testing.T) {
	req := NewRequest(MESSAGE, Uri{Scheme: SchemeSIP, Host: ParseHost("biloxi.com")})
	req.SetBody([]byte("hello"))

	cl, ok := req.ContentLength()
	require.True(t, ok)
	assert.Equal(t, ContentLengthHeader(5), *cl)

	req.SetBody([]byte("hi"))
	cl, ok = req.ContentLength()
	require.True(t, ok)
	assert.Equal(t, ContentLengthHeader(2), *cl)

	// only one Content-Length header after resizing
	assert.Len(t, req.GetHeaders("Content-Length"), 1)
}

func TestViaHeaderClone(t *testing.T) {
	hdrs, err := parseHeaderLine(nil, "Via: SIP/2.0/UDP pc33.atlanta.com:5060;branch=z9hG4bK776asdhds")
	require.NoError(t, err)
	via := hdrs[0].(*ViaHeader)

	c := via.Clone().(*ViaHeader)
	c.Params[0] = Param{Kind: ParamBranch, Value: "other", HasValue: true}
	branch, _ := via.Branch()
	assert.Equal(t, "z9hG4bK776asdhds", branch)
}
