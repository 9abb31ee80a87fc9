package ideogram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateImage(t *testing.T) {
	var gotAuth string
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/images", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]string{"image_url": "https://cdn.example.com/img.png"})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("ig_key", srv.URL)
	url, err := c.GenerateImage(context.Background(), "a lighthouse at dusk", "")
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img.png", url)
	assert.Equal(t, "Bearer ig_key", gotAuth)
	assert.Equal(t, "a lighthouse at dusk", gotReq.Prompt)
	assert.Equal(t, DefaultStyle, gotReq.Style)
	assert.Equal(t, 1024, gotReq.Width)
	assert.Equal(t, 1024, gotReq.Height)
}

func TestGenerateImageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "prompt rejected"})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("ig_key", srv.URL)
	_, err := c.GenerateImage(context.Background(), "bad prompt", "natural")
	assert.ErrorContains(t, err, "prompt rejected")
}

func TestListStyles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/styles", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]string{"styles": {"natural", "anime", "render_3d"}})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("ig_key", srv.URL)
	styles, err := c.ListStyles(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"natural", "anime", "render_3d"}, styles)
}
