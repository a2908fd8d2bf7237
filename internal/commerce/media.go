package commerce

import (
	"fmt"
	"net/url"
	"strings"
)

// Media builds browser-facing URLs for images served by the commerce API.
type Media struct {
	base *url.URL
}

func NewMedia(publicBaseURL string) (Media, error) {
	base, err := url.Parse(publicBaseURL)
	if err != nil {
		return Media{}, fmt.Errorf("parse public api base url: %w", err)
	}
	return Media{base: base}, nil
}

// URL returns ref unchanged when it is already absolute and resolves it
// against the public API origin otherwise. An empty ref stays empty.
func (m Media) URL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(u.Path, "/") && u.Host == "" {
		u.Path = "/" + u.Path
	}
	return m.base.ResolveReference(u).String()
}
