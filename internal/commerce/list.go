package commerce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// listEnvelope is the paginated list shape of the commerce API.
type listEnvelope struct {
	Count    json.RawMessage `json:"count"`
	Next     json.RawMessage `json:"next"`
	Previous json.RawMessage `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

type listPage[T any] struct {
	items      []T
	next       *int
	previous   *int
	totalCount int
}

// decodeList accepts both the paginated envelope and a bare JSON array.
// Relative next/previous URLs are resolved against base.
func decodeList[T any](body []byte, base *url.URL) (listPage[T], error) {
	var page listPage[T]

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.items); err != nil {
			return listPage[T]{}, fmt.Errorf("decode list: %w", err)
		}
		page.totalCount = len(page.items)
		return page, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return listPage[T]{}, fmt.Errorf("decode list envelope: %w", err)
	}

	if r := bytes.TrimSpace(env.Results); len(r) > 0 && r[0] == '[' {
		if err := json.Unmarshal(r, &page.items); err != nil {
			return listPage[T]{}, fmt.Errorf("decode list results: %w", err)
		}
	}

	page.next = parsePageNumber(env.Next, base)
	page.previous = parsePageNumber(env.Previous, base)

	page.totalCount = len(page.items)
	if c := bytes.TrimSpace(env.Count); len(c) > 0 && c[0] != '"' {
		var count json.Number
		if err := json.Unmarshal(c, &count); err == nil {
			if n, err := count.Int64(); err == nil {
				page.totalCount = int(n)
			}
		}
	}

	return page, nil
}

// parsePageNumber extracts the page query parameter from a next/previous link.
// A link without the parameter points at the first page. Anything that is not
// a string URL, or carries a page that is not a positive integer, yields nil.
func parsePageNumber(raw json.RawMessage, base *url.URL) *int {
	var link string
	if err := json.Unmarshal(raw, &link); err != nil || link == "" {
		return nil
	}

	ref, err := url.Parse(link)
	if err != nil {
		return nil
	}

	u := base.ResolveReference(ref)
	pageParam := u.Query().Get("page")
	if pageParam == "" {
		first := 1
		return &first
	}

	n, err := strconv.Atoi(pageParam)
	if err != nil || n < 1 {
		return nil
	}
	return &n
}
