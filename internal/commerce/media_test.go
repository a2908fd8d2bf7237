package commerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
)

func TestMedia_URL(t *testing.T) {
	m, err := commerce.NewMedia("http://localhost:8000")
	require.NoError(t, err)

	tests := []struct {
		ref  string
		want string
	}{
		{"https://cdn.example/a.jpg", "https://cdn.example/a.jpg"},
		{"/media/products/a.jpg", "http://localhost:8000/media/products/a.jpg"},
		{"media/products/a.jpg", "http://localhost:8000/media/products/a.jpg"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, m.URL(tt.ref))
		})
	}
}
