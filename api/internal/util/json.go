package util

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// StringField returns raw as a string when it holds a JSON string, "" otherwise.
func StringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ErrorMessage pulls error.message out of a provider error body for logging.
// Bodies are read with a cap, so a cut-off body gets one repair attempt.
// Without a message the trimmed body itself is returned, truncated to n bytes.
func ErrorMessage(raw []byte, n int) string {
	raw = bytes.TrimSpace(raw)
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		if repaired, rerr := jsonrepair.JSONRepair(string(raw)); rerr == nil {
			eb = errorBody{}
			_ = json.Unmarshal([]byte(repaired), &eb)
		}
	}
	if msg := strings.TrimSpace(eb.Error.Message); msg != "" {
		return TruncateBytes([]byte(msg), n)
	}
	return TruncateBytes(raw, n)
}
