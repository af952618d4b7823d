package db

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.sqlite")
	d, err := New(context.Background(), "sqlite", dsn, &gorm.Config{Logger: NewLogger("error")})
	require.NoError(t, err)
	return d
}

func TestNew_UnsupportedDialect(t *testing.T) {
	_, err := New(context.Background(), "postgres", "", nil)
	assert.EqualError(t, err, "unsupported dialect: postgres")
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	u := &User{Email: "a@b.com", Password: "hash"}
	require.NoError(t, d.CreateUser(ctx, u))
	require.NotZero(t, u.ID)

	got, err := d.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.Password)

	_, err = d.GetUserByEmail(ctx, "missing@b.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// unique index backs the handler-level check
	assert.ErrorIs(t, d.CreateUser(ctx, &User{Email: "a@b.com", Password: "other"}), ErrDuplicate)

	other := &User{Email: "other@b.com", Password: "hash"}
	require.NoError(t, d.CreateUser(ctx, other))
	other.Email = "a@b.com"
	assert.ErrorIs(t, d.SaveUser(ctx, other), ErrDuplicate)

	got.Email = "c@d.com"
	require.NoError(t, d.SaveUser(ctx, &got))
	again, err := d.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", again.Email)

	users, err := d.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "other@b.com", users[1].Email)
}

func TestDomains(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	dom := &Domain{DomainName: "example", URL: "https://example.com", Owner: "acme"}
	require.NoError(t, d.CreateDomain(ctx, dom))

	assert.ErrorIs(t, d.CreateDomain(ctx, &Domain{DomainName: "copy", URL: "https://example.com", Owner: "acme"}), ErrDuplicate)

	byURL, err := d.GetDomainByURL(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, dom.ID, byURL.ID)

	require.NoError(t, d.DeleteDomain(ctx, dom.ID))
	assert.ErrorIs(t, d.DeleteDomain(ctx, dom.ID), ErrNotFound)

	_, err = d.GetDomain(ctx, dom.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	domains, err := d.ListDomains(ctx)
	require.NoError(t, err)
	assert.NotNil(t, domains)
	assert.Empty(t, domains)
}

func TestDevicesAndDetails(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	created := time.UnixMilli(1700000000000).UTC()
	dev := &Device{IP: "1.2.3.4", Name: "laptop", UserAgent: "Mozilla", Details: "x", DetailsIPInfo: "y", CreatedAt: created}
	require.NoError(t, d.CreateDevice(ctx, dev))

	got, err := d.GetDevice(ctx, dev.ID)
	require.NoError(t, err)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, "Mozilla", got.UserAgent)

	det := &Detail{IP: "1.2.3.4", Brand: "Apple", Host: "mobile"}
	require.NoError(t, d.CreateDetail(ctx, det))
	details, err := d.ListDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Apple", details[0].Brand)

	require.NoError(t, d.DeleteDevice(ctx, dev.ID))
	require.NoError(t, d.DeleteDetail(ctx, det.ID))
	devices, err := d.ListDevices(ctx)
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestDataEvents(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	for i := 0; i < 45; i++ {
		country := "France"
		if i%3 == 0 {
			country = "Kenya"
		}
		owner := fmt.Sprintf("owner-%d", i%2)
		e := &DataEvent{
			IP: "8.8.8.8", IPDetails: "d", Host: "desktop", Owner: owner, Source: "s", Domain: "localhost",
			Country: country, CountryFlag: "🇫🇷", ISP: "isp", ISPDomain: "isp",
			Location: Location{Latitude: float64(i), Longitude: 20},
		}
		require.NoError(t, d.CreateDataEvent(ctx, e))
	}

	all, err := d.ListDataEvents(ctx, Page{})
	require.NoError(t, err)
	assert.Len(t, all, 45)
	assert.True(t, all[0].IsNew)
	assert.Equal(t, Location{Latitude: 0, Longitude: 20}, all[0].Location)

	second, err := d.ListDataEvents(ctx, Page{Limit: 20, Offset: 20})
	require.NoError(t, err)
	require.Len(t, second, 20)
	assert.Equal(t, all[20].ID, second[0].ID)

	third, err := d.ListDataEvents(ctx, Page{Limit: 20, Offset: 40})
	require.NoError(t, err)
	assert.Len(t, third, 5)

	countries, err := d.CountDataEventCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), countries)

	groups, err := d.CountDataEventsByCountryAndOwner(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 4)
	var total int64
	for _, g := range groups {
		total += g.Count
	}
	assert.Equal(t, int64(45), total)
	assert.Equal(t, "France", groups[0].Country)

	require.NoError(t, d.DeleteDataEvent(ctx, all[0].ID))
	_, err = d.GetDataEvent(ctx, all[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocationScan(t *testing.T) {
	var l Location
	require.NoError(t, l.Scan(`{"longitude":20,"latitude":10}`))
	assert.Equal(t, Location{Longitude: 20, Latitude: 10}, l)

	require.NoError(t, l.Scan([]byte(`{"longitude":1,"latitude":2}`)))
	assert.Equal(t, Location{Longitude: 1, Latitude: 2}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, Location{}, l)

	assert.Error(t, l.Scan(42))

	v, err := Location{Longitude: 20, Latitude: 10}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"longitude":20,"latitude":10}`, v)
}
