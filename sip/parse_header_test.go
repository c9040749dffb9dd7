package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSingleHeader(t *testing.T, line string) Header {
	t.Helper()
	hdrs, err := parseHeaderLine(nil, line)
	require.NoError(t, err, line)
	require.Len(t, hdrs, 1, line)
	return hdrs[0]
}

func TestParseHeaderLine(t *testing.T) {
	t.Run("missing colon is a tokenize error", func(t *testing.T) {
		_, err := parseHeaderLine(nil, "Max-Forwards 70")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to tokenize headers")
		var serr *Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, ErrKindTokenize, serr.Kind)
	})

	t.Run("unknown header preserved verbatim", func(t *testing.T) {
		h := parseSingleHeader(t, "X-FooBar: sOmE VaLuE")
		g, ok := h.(*GenericHeader)
		require.True(t, ok)
		assert.Equal(t, "X-FooBar", g.Name())
		assert.Equal(t, "X-FooBar: sOmE VaLuE", g.String())
	})

	t.Run("known name folds to canonical form", func(t *testing.T) {
		h := parseSingleHeader(t, "CALL-ID: a84b4c76e66710@pc33.atlanta.com")
		assert.Equal(t, "Call-ID: a84b4c76e66710@pc33.atlanta.com", h.String())
	})
}

func TestCompactHeaderForms(t *testing.T) {
	// RFC 3261 S.7.3.3: a compact letter parses as the long header and
	// renders in long form.
	cases := []struct{ line, want string }{
		{"i: a84b4c76e66710", "Call-ID: a84b4c76e66710"},
		{"l: 0", "Content-Length: 0"},
		{"m: <sip:alice@pc33.atlanta.com>", "Contact: <sip:alice@pc33.atlanta.com>"},
		{"f: <sip:alice@atlanta.com>;tag=88sja8x", "From: <sip:alice@atlanta.com>;tag=88sja8x"},
		{"t: <sip:bob@biloxi.com>", "To: <sip:bob@biloxi.com>"},
		{"v: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds", "Via: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds"},
		{"s: lunch", "Subject: lunch"},
		{"k: 100rel", "Supported: 100rel"},
		{"e: gzip", "Content-Encoding: gzip"},
		{"c: application/sdp", "Content-Type: application/sdp"},
	}
	for _, tc := range cases {
		h := parseSingleHeader(t, tc.line)
		assert.Equal(t, tc.want, h.String(), tc.line)
	}
}

func TestParseAddressHeaders(t *testing.T) {
	t.Run("quoted display name", func(t *testing.T) {
		h := parseSingleHeader(t, `From: "Alice Wonder" <sip:alice@atlanta.com>;tag=88sja8x`)
		from, ok := h.(*FromHeader)
		require.True(t, ok)
		assert.Equal(t, "Alice Wonder", from.DisplayName)
		assert.True(t, from.QuotedDisplay)
		tag, ok := from.Tag()
		require.True(t, ok)
		assert.Equal(t, "88sja8x", tag)
		assert.Equal(t, `From: "Alice Wonder" <sip:alice@atlanta.com>;tag=88sja8x`, from.String())
	})

	t.Run("unquoted display name stays unquoted", func(t *testing.T) {
		h := parseSingleHeader(t, "To: Bob <sips:bob@biloxi.example.com>")
		to, ok := h.(*ToHeader)
		require.True(t, ok)
		assert.Equal(t, "Bob", to.DisplayName)
		assert.False(t, to.QuotedDisplay)
		assert.Equal(t, "To: Bob <sips:bob@biloxi.example.com>", to.String())
	})

	t.Run("bare uri form", func(t *testing.T) {
		h := parseSingleHeader(t, "To: sip:bob@biloxi.com;tag=a6c85cf")
		to := h.(*ToHeader)
		assert.True(t, to.NoBrackets)
		assert.Equal(t, "bob", to.Address.Auth.User)
		require.Len(t, to.Params, 1)
		assert.Equal(t, "To: sip:bob@biloxi.com;tag=a6c85cf", to.String())
	})

	t.Run("uri params stay inside brackets", func(t *testing.T) {
		h := parseSingleHeader(t, "Route: <sip:p1.example.com;lr>")
		route := h.(*RouteHeader)
		assert.True(t, route.Address.Params.Has(ParamLr))
		assert.Empty(t, route.Params)
		assert.Equal(t, "Route: <sip:p1.example.com;lr>", route.String())
	})

	t.Run("contact list with q values", func(t *testing.T) {
		hdrs, err := parseHeaderLine(nil, "Contact: <sip:a@x.com>;q=0.7,<sip:b@y.com>;q=0.3")
		require.NoError(t, err)
		require.Len(t, hdrs, 2)
		c0 := hdrs[0].(*ContactHeader)
		c1 := hdrs[1].(*ContactHeader)
		p, ok := c0.Params.Get(ParamQ)
		require.True(t, ok)
		assert.Equal(t, "0.7", p.Value)
		assert.Equal(t, "b", c1.Address.Auth.User)
	})

	t.Run("contact wildcard", func(t *testing.T) {
		h := parseSingleHeader(t, "Contact: *")
		c := h.(*ContactHeader)
		assert.True(t, c.Address.Wildcard)
		assert.Equal(t, "Contact: *", c.String())
	})

	t.Run("wildcard rejected in From and To", func(t *testing.T) {
		_, err := parseHeaderLine(nil, "From: *")
		require.Error(t, err)
		_, err = parseHeaderLine(nil, "To: *")
		require.Error(t, err)
	})

	t.Run("record route list keeps order", func(t *testing.T) {
		hdrs, err := parseHeaderLine(nil, "Record-Route: <sip:p2.example.com;lr>,<sip:p1.example.com;lr>")
		require.NoError(t, err)
		require.Len(t, hdrs, 2)
		assert.Equal(t, "Record-Route: <sip:p2.example.com;lr>", hdrs[0].String())
		assert.Equal(t, "Record-Route: <sip:p1.example.com;lr>", hdrs[1].String())
	})

	t.Run("display name with comma stays one entry", func(t *testing.T) {
		hdrs, err := parseHeaderLine(nil, `Contact: "Smith, John" <sip:john@x.com>`)
		require.NoError(t, err)
		require.Len(t, hdrs, 1)
		assert.Equal(t, `Contact: "Smith, John" <sip:john@x.com>`, hdrs[0].String())
	})
}

func TestParseScalarHeaders(t *testing.T) {
	t.Run("cseq", func(t *testing.T) {
		h := parseSingleHeader(t, "CSeq: 314159 INVITE")
		cseq := h.(*CSeqHeader)
		assert.Equal(t, uint32(314159), cseq.SeqNo)
		assert.Equal(t, INVITE, cseq.Method)
		assert.Equal(t, "CSeq: 314159 INVITE", cseq.String())
	})

	t.Run("cseq garbage", func(t *testing.T) {
		_, err := parseHeaderLine(nil, "CSeq: banana")
		require.Error(t, err)
	})

	t.Run("max forwards", func(t *testing.T) {
		h := parseSingleHeader(t, "Max-Forwards: 70")
		mf := h.(*MaxForwardsHeader)
		assert.Equal(t, MaxForwardsHeader(70), *mf)
	})

	t.Run("expires", func(t *testing.T) {
		h := parseSingleHeader(t, "Expires: 3600")
		assert.Equal(t, "Expires: 3600", h.String())
	})

	t.Run("content length", func(t *testing.T) {
		h := parseSingleHeader(t, "Content-Length: 142")
		cl := h.(*ContentLengthHeader)
		assert.Equal(t, ContentLengthHeader(142), *cl)
	})

	t.Run("content type", func(t *testing.T) {
		h := parseSingleHeader(t, "Content-Type: application/sdp")
		assert.Equal(t, "Content-Type: application/sdp", h.String())
	})
}

func TestParseAuthHeaders(t *testing.T) {
	t.Run("authorization round trips verbatim", func(t *testing.T) {
		// separators in deployed digest credentials are not uniform;
		// the raw text must survive untouched
		value := `Digest username="bob", realm="atlanta.example.com" nonce="ea9c8e88df84f1cec4341ae6cbe5a359", opaque="" uri="sips:ss2.biloxi.example.com", response="dfe56131d1958046689d83306477ecc"`
		h := parseSingleHeader(t, "Authorization: "+value)
		auth, ok := h.(*AuthorizationHeader)
		require.True(t, ok)
		assert.Equal(t, "Digest", auth.AuthScheme)
		assert.Equal(t, "Authorization: "+value, auth.String())

		user, ok := auth.Username()
		require.True(t, ok)
		assert.Equal(t, "bob", user)
		realm, ok := auth.Realm()
		require.True(t, ok)
		assert.Equal(t, "atlanta.example.com", realm)
		nonce, ok := auth.Nonce()
		require.True(t, ok)
		assert.Equal(t, "ea9c8e88df84f1cec4341ae6cbe5a359", nonce)
	})

	t.Run("www-authenticate", func(t *testing.T) {
		value := `Digest realm="atlanta.com", domain="sip:boxesbybob.com", qop="auth", nonce="f84f1cec41e6cbe5aea9c8e88d359", opaque="", stale=FALSE, algorithm=MD5`
		h := parseSingleHeader(t, "WWW-Authenticate: "+value)
		ch, ok := h.(*WWWAuthenticateHeader)
		require.True(t, ok)
		assert.Equal(t, "WWW-Authenticate: "+value, ch.String())

		realm, ok := ch.Realm()
		require.True(t, ok)
		assert.Equal(t, "atlanta.com", realm)
		alg, ok := ch.AuthParam("algorithm")
		require.True(t, ok)
		assert.Equal(t, "MD5", alg)
	})
}
