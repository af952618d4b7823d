package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no row has the requested key.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write would break a unique index.
var ErrDuplicate = errors.New("duplicate record")

// Page limits a listing. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

type Database interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uint) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	SaveUser(ctx context.Context, user *User) error

	CreateDomain(ctx context.Context, domain *Domain) error
	GetDomain(ctx context.Context, id uint) (Domain, error)
	GetDomainByURL(ctx context.Context, url string) (Domain, error)
	ListDomains(ctx context.Context) ([]Domain, error)
	DeleteDomain(ctx context.Context, id uint) error

	CreateDevice(ctx context.Context, device *Device) error
	GetDevice(ctx context.Context, id uint) (Device, error)
	ListDevices(ctx context.Context) ([]Device, error)
	DeleteDevice(ctx context.Context, id uint) error

	CreateDetail(ctx context.Context, detail *Detail) error
	GetDetail(ctx context.Context, id uint) (Detail, error)
	ListDetails(ctx context.Context) ([]Detail, error)
	DeleteDetail(ctx context.Context, id uint) error

	CreateDataEvent(ctx context.Context, event *DataEvent) error
	GetDataEvent(ctx context.Context, id uint) (DataEvent, error)
	ListDataEvents(ctx context.Context, page Page) ([]DataEvent, error)
	CountDataEventCountries(ctx context.Context) (int64, error)
	CountDataEventsByCountryAndOwner(ctx context.Context) ([]CountryOwnerCount, error)
	DeleteDataEvent(ctx context.Context, id uint) error
}
