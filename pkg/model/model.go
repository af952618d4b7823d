package model

import (
	"encoding/json"

	"github.com/trackmaster/trackmaster/pkg/db"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type UpdateUserRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword"`
}

type DomainRequest struct {
	DomainName string `json:"domainName"`
	URL        string `json:"url"`
	Owner      string `json:"owner"`
}

// CreatedAt fields are epoch milliseconds; empty means now.
type DeviceRequest struct {
	IP            string      `json:"ip"`
	Name          string      `json:"name"`
	UserAgent     string      `json:"userAgent"`
	Details       string      `json:"details"`
	DetailsIPInfo string      `json:"detailsIpInfo"`
	CreatedAt     json.Number `json:"createdAt,omitempty"`
}

type DetailRequest struct {
	IP        string      `json:"ip"`
	Brand     string      `json:"brand"`
	Host      string      `json:"host"`
	CreatedAt json.Number `json:"createdAt,omitempty"`
}

type DataRequest struct {
	Owner   string      `json:"owner"`
	Archive json.Number `json:"archive,omitempty"`
	LatLng  *LatLng     `json:"latlng,omitempty"`
}

// LatLng coordinates a client may supply. A missing coordinate is taken
// from the geolocation lookup instead.
type LatLng struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Visitor is what the server itself knows about the request creating a data event.
type Visitor struct {
	IP        string
	UserAgent string
	Host      string
}

type DataListResponse struct {
	Data         []db.DataEvent         `json:"data"`
	NbrCountries int64                  `json:"nbrCountries"`
	NbrDataHits  int                    `json:"nbrDataHits"`
	Users        []db.CountryOwnerCount `json:"users"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
