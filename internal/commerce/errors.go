package commerce

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxErrorMessage = 500

// FlattenErrors turns an API error payload into one line of text. Every string,
// number or boolean leaf of a JSON payload is kept in document order and
// joined with a space; object keys are dropped. A body that is not JSON is
// returned trimmed.
//
//	{"username": ["Taken."], "password": ["Too short.", "Too common."]}
//
// becomes "Taken. Too short. Too common.".
func FlattenErrors(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	parts, ok := jsonLeaves(trimmed)
	if !ok {
		return truncate(string(trimmed))
	}
	return truncate(strings.Join(parts, " "))
}

type frame struct {
	object  bool
	wantKey bool
}

func jsonLeaves(b []byte) ([]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var (
		parts []string
		stack []frame
	)

	valueSeen := func() {
		if n := len(stack); n > 0 && stack[n-1].object {
			stack[n-1].wantKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false
		}

		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				valueSeen()
				stack = append(stack, frame{object: d == '{', wantKey: d == '{'})
			case '}', ']':
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].wantKey {
			stack[n-1].wantKey = false
			continue
		}
		valueSeen()

		switch v := tok.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				parts = append(parts, s)
			}
		case json.Number:
			parts = append(parts, v.String())
		case bool:
			parts = append(parts, strconv.FormatBool(v))
		}
	}

	if len(stack) != 0 {
		return nil, false
	}
	return parts, true
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxErrorMessage {
		return s
	}
	r := []rune(s)
	return string(r[:maxErrorMessage]) + "…"
}
