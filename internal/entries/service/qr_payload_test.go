package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQRPayloadJSON(t *testing.T) {

	identity := ParseQRPayload(`{"dni": "20.111.222", "nro_socio": "10045"}`)
	assert.Equal(t, "20111222", identity.Document)
	assert.Equal(t, "10045", identity.MemberNumber)
}

func TestParseQRPayloadJSONNumericValues(t *testing.T) {

	identity := ParseQRPayload(`{"document": 20111222}`)
	assert.Equal(t, "20111222", identity.Document)
	assert.Empty(t, identity.MemberNumber)
}

func TestParseQRPayloadBareDocument(t *testing.T) {

	identity := ParseQRPayload("20111222")
	assert.Equal(t, "20111222", identity.Document)
	assert.Empty(t, identity.MemberNumber)
}

func TestParseQRPayloadBareMemberNumber(t *testing.T) {

	// Too long for a document, still plausible as a member number.
	identity := ParseQRPayload("1004512345")
	assert.Empty(t, identity.Document)
	assert.Equal(t, "1004512345", identity.MemberNumber)
}

func TestParseQRPayloadMalformedJSONDegradesToText(t *testing.T) {

	identity := ParseQRPayload(`{"dni": "20111222", "nro_socio":`)
	assert.Equal(t, "20111222", identity.Document)
}

func TestParseQRPayloadLabeledText(t *testing.T) {

	identity := ParseQRPayload("DNI: 20111222 socio: 10045")
	assert.Equal(t, "20111222", identity.Document)
	assert.Equal(t, "10045", identity.MemberNumber)
}

func TestParseQRPayloadUnrecognized(t *testing.T) {

	assert.True(t, ParseQRPayload("hello world").Empty())
	assert.True(t, ParseQRPayload("").Empty())
	assert.True(t, ParseQRPayload(`{"name": "Juan"}`).Empty())
}
