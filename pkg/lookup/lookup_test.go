package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserstackDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "Mozilla/5.0 (iPhone)", r.URL.Query().Get("ua"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ua":"Mozilla/5.0 (iPhone)","device":{"is_mobile_device":true,"type":"smartphone","brand":"Apple"}}`))
	}))
	defer server.Close()

	dev, err := NewUserstack(server.URL+"/", "key", nil).Detect(context.Background(), "Mozilla/5.0 (iPhone)")
	require.NoError(t, err)
	assert.Equal(t, Device{Type: "smartphone", Brand: "Apple"}, dev)
}

func TestUserstackDetect_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":101,"type":"invalid_access_key","info":"bad key"}}`))
	}))
	defer server.Close()

	_, err := NewUserstack(server.URL, "nope", nil).Detect(context.Background(), "ua")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_access_key")
}

func TestUserstackDetect_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewUserstack(server.URL, "k", nil).Detect(context.Background(), "ua")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestAbstractAPILocate(t *testing.T) {
	var gotIP string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/", r.URL.Path)
		assert.Equal(t, "geo-key", r.URL.Query().Get("api_key"))
		gotIP = r.URL.Query().Get("ip_address")
		_, _ = w.Write([]byte(`{
			"ip_address":"8.8.8.8","country":"United States","latitude":37.4,"longitude":-122.1,
			"flag":{"emoji":"🇺🇸"},"connection":{"isp_name":"Google LLC"},"security":{"is_vpn":true}}`))
	}))
	defer server.Close()

	geo := NewAbstractAPI(server.URL, "geo-key", server.Client())
	loc, err := geo.Locate(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "8.8.8.8", gotIP)
	assert.Equal(t, "United States", loc.Country)
	assert.Equal(t, "🇺🇸", loc.Flag.Emoji)
	assert.Equal(t, "Google LLC", loc.Connection.ISPName)
	assert.True(t, loc.Security.IsVPN)
	assert.InDelta(t, 37.4, loc.Latitude, 1e-9)

	_, err = geo.Locate(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Empty(t, gotIP)
}

func TestAbstractAPILocate_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := NewAbstractAPI(server.URL, "k", nil).Locate(context.Background(), "8.8.8.8")
	assert.Error(t, err)
}

func TestIsPublic(t *testing.T) {
	assert.True(t, isPublic("8.8.8.8"))
	assert.True(t, isPublic("2001:4860:4860::8888"))
	assert.False(t, isPublic("10.0.0.1"))
	assert.False(t, isPublic("::1"))
	assert.False(t, isPublic("not-an-ip"))
	assert.False(t, isPublic(""))
}
