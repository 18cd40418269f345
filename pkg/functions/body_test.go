package functions

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyEncode_Nil(t *testing.T) {
	var body *Body
	payload, contentType, err := body.encode()
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Empty(t, contentType)
}

func TestBodyEncode_JSON(t *testing.T) {
	payload, contentType, err := JSONBody(map[string]interface{}{"key": "value"}).encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, map[string]interface{}{"key": "value"}, decoded)
}

func TestBodyEncode_JSONSerializationError(t *testing.T) {
	_, _, err := JSONBody(map[string]interface{}{"ch": make(chan int)}).encode()
	require.Error(t, err)
	assert.True(t, IsType(err, ErrorTypeSerialization))
}

func TestBodyEncode_Text(t *testing.T) {
	payload, contentType, err := TextBody("hello").encode()
	require.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, []byte("hello"), payload)
}

func TestBodyEncode_FormData(t *testing.T) {
	payload, contentType, err := FormDataBody(map[string]string{
		"field1": "value1",
		"field2": "value2",
	}).encode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="))

	text := string(payload)
	assert.Contains(t, text, `name="field1"`)
	assert.Contains(t, text, "value1")
	assert.Contains(t, text, `name="field2"`)
	assert.Contains(t, text, "value2")
}

func TestBodyEncode_RawVariants(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	for _, body := range []*Body{FileBody(raw), BlobBody(raw), ArrayBufferBody(raw)} {
		payload, contentType, err := body.encode()
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", contentType)
		assert.Equal(t, raw, payload)
	}
}
