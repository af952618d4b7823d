package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const DefaultUserstackURL = "http://api.userstack.com"

type Userstack struct {
	BaseURL    string
	AccessKey  string
	HTTPClient *http.Client
}

func NewUserstack(baseURL, accessKey string, client *http.Client) *Userstack {
	if baseURL == "" {
		baseURL = DefaultUserstackURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Userstack{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		AccessKey:  accessKey,
		HTTPClient: client,
	}
}

type userstackResponse struct {
	Success *bool  `json:"success"`
	Device  Device `json:"device"`
	Error   *struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
}

func (u *Userstack) Detect(ctx context.Context, userAgent string) (Device, error) {
	q := url.Values{}
	q.Set("access_key", u.AccessKey)
	q.Set("ua", userAgent)

	var resp userstackResponse
	if err := getJSON(ctx, u.HTTPClient, u.BaseURL+"/detect?"+q.Encode(), &resp); err != nil {
		return Device{}, fmt.Errorf("userstack detect: %w", err)
	}
	// userstack reports failures with a 200 and success=false
	if resp.Error != nil || (resp.Success != nil && !*resp.Success) {
		info := "unknown error"
		if resp.Error != nil {
			info = fmt.Sprintf("%s (%d): %s", resp.Error.Type, resp.Error.Code, resp.Error.Info)
		}
		return Device{}, fmt.Errorf("userstack detect: %s", info)
	}

	return resp.Device, nil
}
