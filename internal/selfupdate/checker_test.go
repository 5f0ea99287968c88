package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		tag       string
		available bool
	}{
		{"newer release", "v1.0.0", "v1.2.0", true},
		{"same release", "v1.2.0", "v1.2.0", false},
		{"older release", "v1.3.0", "v1.2.0", false},
		{"missing v prefix", "1.0.0", "v1.0.1", true},
		{"dev build", "(devel)", "v1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/abhisek/codemaster/releases/latest", r.URL.Path)
				_, _ = w.Write([]byte(`{"tag_name":"` + tt.tag + `","html_url":"https://example.com/r"}`))
			}))
			defer server.Close()

			res, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.available, res.UpdateAvailable)
			assert.Equal(t, tt.tag, res.LatestVersion)
			assert.Equal(t, "https://example.com/r", res.ReleaseURL)
		})
	}
}

func TestCheckHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}
