package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var errTrailingData = errors.New("unexpected data after the JSON value")

// decode parses a JSON payload keeping numbers as json.Number so passthrough
// fields survive re-encoding unchanged. The payload must hold exactly one value.
func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

func required(obj map[string]any, key, path string) (any, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, &MissingFieldError{Field: path}
	}
	return v, nil
}

func stringField(obj map[string]any, key, path string) (string, error) {
	v, err := required(obj, key, path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &InvalidFieldError{Field: path, Want: "a string"}
	}
	return s, nil
}

// idField accepts a string or a JSON number and renders it verbatim.
func idField(obj map[string]any, key, path string) (string, error) {
	v, err := required(obj, key, path)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", &InvalidFieldError{Field: path, Want: "a string or number"}
	}
}

func arrayField(obj map[string]any, key, path string) ([]any, error) {
	v, err := required(obj, key, path)
	if err != nil {
		return nil, err
	}
	a, ok := v.([]any)
	if !ok {
		return nil, &InvalidFieldError{Field: path, Want: "an array"}
	}
	return a, nil
}

func stringsField(obj map[string]any, key, path string) ([]string, error) {
	a, err := arrayField(obj, key, path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(a))
	for i, v := range a {
		s, ok := v.(string)
		if !ok {
			return nil, &InvalidFieldError{Field: fmt.Sprintf("%s[%d]", path, i), Want: "a string"}
		}
		out = append(out, s)
	}
	return out, nil
}

// without copies obj minus the given keys. It returns nil when nothing is left.
func without(obj map[string]any, keys ...string) map[string]any {
	var out map[string]any
	for k, v := range obj {
		if contains(keys, k) {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(obj))
		}
		out[k] = v
	}
	return out
}

func contains(keys []string, k string) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}
