package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Domain struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	DomainName string    `gorm:"size:255;not null" json:"domainName"`
	URL        string    `gorm:"size:255;uniqueIndex;not null" json:"url"`
	Owner      string    `gorm:"size:255;index;not null" json:"owner"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Device struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	IP            string    `gorm:"size:255;not null" json:"ip"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	UserAgent     string    `gorm:"size:255;index;not null" json:"userAgent"`
	Details       string    `gorm:"size:255;not null" json:"details"`
	DetailsIPInfo string    `gorm:"size:255;not null" json:"detailsIpInfo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Detail struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	IP        string    `gorm:"size:255;not null" json:"ip"`
	Brand     string    `gorm:"size:255;not null" json:"brand"`
	Host      string    `gorm:"size:255;not null" json:"host"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DataEvent is one visit: the visitor's address, device and what the
// geolocation lookup said about it.
type DataEvent struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	IP          string    `gorm:"size:255;index;not null" json:"ip"`
	IPDetails   string    `gorm:"size:255;not null" json:"ipDetails"`
	Host        string    `gorm:"size:255;index;not null" json:"host"`
	Owner       string    `gorm:"size:255;index;not null" json:"owner"`
	Source      string    `gorm:"size:255;not null" json:"source"`
	Domain      string    `gorm:"size:255;index;not null" json:"domain"`
	Brand       *string   `gorm:"size:255;index" json:"brand"`
	Country     string    `gorm:"size:255;index;not null" json:"country"`
	CountryFlag string    `gorm:"size:255;not null" json:"countryFlag"`
	ISP         string    `gorm:"size:255;index;not null" json:"isp"`
	ISPDomain   string    `gorm:"size:255;not null" json:"ispDomain"`
	IsVPN       bool      `gorm:"not null" json:"isVpn"`
	IsNew       bool      `gorm:"default:true" json:"isNew"`
	Archive     *string   `gorm:"size:255" json:"archive"`
	Location    Location  `gorm:"type:varchar(255);not null" json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (DataEvent) TableName() string { return "data" }

// CountryOwnerCount is one row of the data events grouped by country and owner.
type CountryOwnerCount struct {
	Country string `json:"country"`
	Owner   string `json:"owner"`
	Count   int64  `json:"count"`
}

// Location is stored as its JSON encoding.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func (l Location) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Location) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = Location{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported location column type %T", src)
	}
	return json.Unmarshal(raw, l)
}
