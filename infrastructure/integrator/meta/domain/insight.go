package metadomain

import (
	"bytes"
	"encoding/json"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// InsightRecord is one element of an insights page, kept as raw values so any
// requested column can be read back without a fixed struct.
type InsightRecord map[string]json.RawMessage

// Scalar renders the value under key as text: strings unquoted, numbers and
// booleans verbatim. Missing keys, nulls and nested values yield "".
func (r InsightRecord) Scalar(key string) (string, bool) {
	raw, ok := r[key]
	if !ok {
		return "", false
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := jsonAPI.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[', 'n':
		return "", false
	default:
		return string(raw), true
	}
}

// DateStart is the first day covered by the record, as sent (YYYY-MM-DD).
func (r InsightRecord) DateStart() string {
	s, _ := r.Scalar("date_start")
	return s
}

// ActionStats decodes a list valued field such as actions or action_values.
// Malformed or absent lists yield nil.
func (r InsightRecord) ActionStats(field string) []ActionStat {
	raw, ok := r[field]
	if !ok {
		return nil
	}

	var stats []ActionStat
	if err := jsonAPI.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return stats
}

// ActionStat is one action_type bucket. Besides "value" the API adds one key per
// requested attribution window (e.g. "7d_click").
type ActionStat struct {
	ActionType string
	Value      string
	Windows    map[string]string
}

func (a *ActionStat) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.Windows = make(map[string]string, len(raw))
	for k, v := range raw {
		text := rawText(v)
		switch k {
		case "action_type":
			a.ActionType = text
		case "value":
			a.Value = text
		default:
			a.Windows[k] = text
		}
	}
	return nil
}

// WindowValue returns the value counted for an attribution window token. The
// "default" token reads the base value.
func (a ActionStat) WindowValue(token string) (string, bool) {
	if token == "default" {
		return a.Value, a.Value != ""
	}
	v, ok := a.Windows[token]
	return v, ok
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := jsonAPI.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
