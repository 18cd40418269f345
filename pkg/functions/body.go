package functions

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
)

type bodyKind int

const (
	bodyNone bodyKind = iota
	bodyJSON
	bodyText
	bodyFormData
	bodyFile
	bodyBlob
	bodyArrayBuffer
)

// Body is the tagged request payload variant. Exactly one variant is carried
// per value; the variant determines both the wire encoding and the
// Content-Type header. A nil *Body means no payload and no Content-Type.
type Body struct {
	kind bodyKind
	json map[string]interface{}
	text string
	form map[string]string
	raw  []byte
}

// JSONBody carries a JSON object serialized as application/json
func JSONBody(fields map[string]interface{}) *Body {
	return &Body{kind: bodyJSON, json: fields}
}

// TextBody carries a plain string sent as text/plain
func TextBody(s string) *Body {
	return &Body{kind: bodyText, text: s}
}

// FormDataBody carries key/value fields encoded as multipart/form-data.
// Multipart (rather than application/x-www-form-urlencoded) is the fixed
// policy for this client; the boundary is generated per request.
func FormDataBody(fields map[string]string) *Body {
	return &Body{kind: bodyFormData, form: fields}
}

// FileBody carries raw file bytes sent as application/octet-stream
func FileBody(b []byte) *Body {
	return &Body{kind: bodyFile, raw: b}
}

// BlobBody carries raw blob bytes sent as application/octet-stream
func BlobBody(b []byte) *Body {
	return &Body{kind: bodyBlob, raw: b}
}

// ArrayBufferBody carries a raw byte buffer sent as application/octet-stream
func ArrayBufferBody(b []byte) *Body {
	return &Body{kind: bodyArrayBuffer, raw: b}
}

// encode produces the wire payload and its content type. A nil or empty body
// yields a nil payload and empty content type.
func (b *Body) encode() ([]byte, string, error) {
	if b == nil || b.kind == bodyNone {
		return nil, "", nil
	}

	switch b.kind {
	case bodyJSON:
		payload, err := json.Marshal(b.json)
		if err != nil {
			return nil, "", Wrap(err, ErrorTypeSerialization, "failed to serialize JSON body")
		}
		return payload, "application/json", nil

	case bodyText:
		return []byte(b.text), "text/plain", nil

	case bodyFormData:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for key, value := range b.form {
			if err := w.WriteField(key, value); err != nil {
				return nil, "", Wrap(err, ErrorTypeSerialization, "failed to encode form field")
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", Wrap(err, ErrorTypeSerialization, "failed to finalize form data")
		}
		return buf.Bytes(), w.FormDataContentType(), nil

	case bodyFile, bodyBlob, bodyArrayBuffer:
		return b.raw, "application/octet-stream", nil
	}

	return nil, "", Newf(ErrorTypeInvalidArgument, "unknown body variant %d", b.kind)
}
