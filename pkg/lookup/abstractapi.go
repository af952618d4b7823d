package lookup

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

const DefaultAbstractAPIURL = "https://ipgeolocation.abstractapi.com"

type AbstractAPI struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewAbstractAPI(baseURL, apiKey string, client *http.Client) *AbstractAPI {
	if baseURL == "" {
		baseURL = DefaultAbstractAPIURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &AbstractAPI{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: client,
	}
}

// Locate geolocates ip. Private, loopback and unparsable addresses are not
// sent, in which case the service locates the address the request came from.
func (a *AbstractAPI) Locate(ctx context.Context, ip string) (Geolocation, error) {
	q := url.Values{}
	q.Set("api_key", a.APIKey)
	if isPublic(ip) {
		q.Set("ip_address", ip)
	}

	var loc Geolocation
	if err := getJSON(ctx, a.HTTPClient, a.BaseURL+"/v1/?"+q.Encode(), &loc); err != nil {
		return Geolocation{}, fmt.Errorf("abstractapi geolocation: %w", err)
	}
	return loc, nil
}

func isPublic(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsPrivate() && !parsed.IsLoopback() && !parsed.IsUnspecified() &&
		!parsed.IsLinkLocalUnicast()
}
