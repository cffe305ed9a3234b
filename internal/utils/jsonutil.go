package utils

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StringOrNumber accepts a JSON string or number, as gateways are not
// consistent about codes and statuses.
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringOrNumber(str)
		return nil
	}
	*s = StringOrNumber(strings.TrimSpace(string(b)))
	return nil
}

func (s StringOrNumber) String() string { return string(s) }

// FlexibleMsg holds a message that may arrive as a string, object or array.
// Non-string shapes are kept as their compact JSON text.
type FlexibleMsg struct {
	Text string
}

func (m *FlexibleMsg) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Text = s
		return nil
	}
	if string(bytes.TrimSpace(data)) == "null" {
		m.Text = ""
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err == nil {
		m.Text = buf.String()
		return nil
	}
	m.Text = string(data)
	return nil
}

// DecodeObject decodes body into a JSON object, yielding an empty object when
// the body is empty, malformed or not an object.
func DecodeObject(body []byte) map[string]any {
	out := map[string]any{}
	if len(bytes.TrimSpace(body)) == 0 {
		return out
	}
	if err := json.Unmarshal(body, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}
