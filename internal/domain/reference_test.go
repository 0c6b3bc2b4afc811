package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name    string
		ref     ImageReference
		wantErr bool
	}{
		{"https", "https://images.dog.ceo/breeds/pug/n02110958_1975.jpg", false},
		{"http", "http://localhost:8080/a.png", false},
		{"file", "file:///tmp/a.png", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"relative", "breeds/pug/1.jpg", true},
		{"no host", "https:///a.jpg", true},
		{"bad escape", "https://host/%zz", true},
		{"unsupported scheme", "ftp://host/a.jpg", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := ParseReference(tc.ref)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidReference)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, u)
		})
	}
}
