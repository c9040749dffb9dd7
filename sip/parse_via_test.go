package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViaSingle(t *testing.T) {
	hdrs, err := parseHeaderLine(nil, "Via: SIP/2.0/TLS client.biloxi.example.com:5061;branch=z9hG4bKnashd92")
	require.NoError(t, err)
	require.Len(t, hdrs, 1)

	via, ok := hdrs[0].(*ViaHeader)
	require.True(t, ok)
	assert.Equal(t, "SIP", via.ProtocolName)
	assert.Equal(t, "2.0", via.ProtocolVersion)
	assert.Equal(t, "TLS", via.Transport)
	assert.Equal(t, "client.biloxi.example.com", via.Host.Domain)
	require.True(t, via.HasPort)
	assert.Equal(t, uint16(5061), via.Port)

	branch, ok := via.Branch()
	require.True(t, ok)
	assert.Equal(t, "z9hG4bKnashd92", branch)

	assert.Equal(t, "Via: SIP/2.0/TLS client.biloxi.example.com:5061;branch=z9hG4bKnashd92", via.String())
}

func TestParseViaMultiValue(t *testing.T) {
	// One wire line with three comma-separated hops expands into three
	// Via entries in order.
	line := "Via: SIP/2.0/UDP server10.biloxi.com;branch=z9hG4bK4b43c2ff8.1, " +
		"SIP/2.0/UDP bigbox3.site3.atlanta.com;branch=z9hG4bK77ef4c2312983.1, " +
		"SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds"
	hdrs, err := parseHeaderLine(nil, line)
	require.NoError(t, err)
	require.Len(t, hdrs, 3)

	hosts := []string{"server10.biloxi.com", "bigbox3.site3.atlanta.com", "pc33.atlanta.com"}
	for i, h := range hdrs {
		via, ok := h.(*ViaHeader)
		require.True(t, ok)
		assert.Equal(t, hosts[i], via.Host.Domain)
		assert.True(t, via.Params.Has(ParamBranch))
	}
}

func TestParseViaHostForms(t *testing.T) {
	t.Run("ipv4 with received param", func(t *testing.T) {
		hdrs, err := parseHeaderLine(nil, "Via: SIP/2.0/UDP 192.0.2.1:5060;received=192.0.2.207;branch=z9hG4bK77asjd")
		require.NoError(t, err)
		via := hdrs[0].(*ViaHeader)
		assert.Equal(t, HostIPv4, via.Host.Kind)
		p, ok := via.Params.Get(ParamReceived)
		require.True(t, ok)
		assert.Equal(t, "192.0.2.207", p.Value)
		assert.Equal(t, "Via: SIP/2.0/UDP 192.0.2.1:5060;received=192.0.2.207;branch=z9hG4bK77asjd", via.String())
	})

	t.Run("ipv6 literal", func(t *testing.T) {
		hdrs, err := parseHeaderLine(nil, "Via: SIP/2.0/UDP [2001:db8::9:1]:5060;branch=z9hG4bKas3-111")
		require.NoError(t, err)
		via := hdrs[0].(*ViaHeader)
		assert.Equal(t, HostIPv6, via.Host.Kind)
		require.True(t, via.HasPort)
		assert.Equal(t, uint16(5060), via.Port)
		assert.Equal(t, "Via: SIP/2.0/UDP [2001:db8::9:1]:5060;branch=z9hG4bKas3-111", via.String())
	})

	t.Run("transport folded to upper case", func(t *testing.T) {
		hdrs, err := parseHeaderLine(nil, "Via: SIP/2.0/udp pc33.atlanta.com;branch=z9hG4bK776asdhds")
		require.NoError(t, err)
		via := hdrs[0].(*ViaHeader)
		assert.Equal(t, "UDP", via.Transport)
	})
}

func TestParseViaErrors(t *testing.T) {
	for _, line := range []string{
		"Via: SIP",
		"Via: SIP/2.0",
		"Via: SIP/2.0/UDP",
		"Via: SIP/2.0/UDP host:notaport",
	} {
		_, err := parseHeaderLine(nil, line)
		require.Error(t, err, line)
		assert.Contains(t, err.Error(), "failed to tokenize via", line)
	}
}
