// Package lookup talks to the third-party services used to enrich data
// events: userstack for user-agent detection and abstractapi for IP
// geolocation.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Device is what the detector could tell about a user agent.
type Device struct {
	Type  string `json:"type"`
	Brand string `json:"brand"`
}

type Geolocation struct {
	IPAddress  string     `json:"ip_address"`
	Country    string     `json:"country"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Flag       Flag       `json:"flag"`
	Connection Connection `json:"connection"`
	Security   Security   `json:"security"`
}

type Flag struct {
	Emoji string `json:"emoji"`
}

type Connection struct {
	ISPName string `json:"isp_name"`
}

type Security struct {
	IsVPN bool `json:"is_vpn"`
}

type DeviceDetector interface {
	Detect(ctx context.Context, userAgent string) (Device, error)
}

type Geolocator interface {
	Locate(ctx context.Context, ip string) (Geolocation, error)
}

// getJSON issues a GET and decodes a 2xx JSON body into out.
func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
