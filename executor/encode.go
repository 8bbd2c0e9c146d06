package executor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/url"
)

// encodeBody renders a bound request's body properties per contentType,
// returning the wire bytes and the Content-Type header to send (the
// multipart case needs the boundary multipart.Writer picked, so the
// returned content type can differ from the input by its boundary param).
// An empty body yields no body at all; a non-empty body with an empty or
// unrecognised contentType is encoded as JSON.
func encodeBody(body map[string]any, contentType string) ([]byte, string, error) {
	if len(body) == 0 {
		return nil, "", nil
	}
	switch contentType {
	case "application/x-www-form-urlencoded":
		return encodeForm(body), "application/x-www-form-urlencoded", nil
	case "multipart/form-data":
		return encodeMultipart(body)
	default:
		// application/json, and the default for a primitive/array body
		// whose single property is literally named "body".
		if single, ok := body["body"]; ok && len(body) == 1 {
			encoded, err := json.Marshal(single)
			return encoded, "application/json", err
		}
		encoded, err := json.Marshal(body)
		return encoded, "application/json", err
	}
}

func encodeForm(body map[string]any) []byte {
	values := url.Values{}
	for _, k := range sortedKeys(body) {
		values.Set(k, scalarToString(body[k]))
	}
	return []byte(values.Encode())
}

func encodeMultipart(body map[string]any) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, k := range sortedKeys(body) {
		if err := w.WriteField(k, scalarToString(body[k])); err != nil {
			return nil, "", fmt.Errorf("encoding multipart field %q: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
