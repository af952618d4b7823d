package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/model"
)

const unidentified = "Unidentified"

// CreateData records a visit. The device is detected from the visitor's user
// agent and the address is geolocated, one after the other, before the event
// is stored.
func (b *backend) CreateData(ctx context.Context, input model.DataRequest, visitor model.Visitor) (db.DataEvent, error) {
	const failed = "Registering data failed, please try again"

	device, err := b.detector.Detect(ctx, visitor.UserAgent)
	if err != nil {
		return db.DataEvent{}, apierrors.Internal(failed, err)
	}

	geo, err := b.geolocator.Locate(ctx, visitor.IP)
	if err != nil {
		return db.DataEvent{}, apierrors.Internal(failed, err)
	}

	location := db.Location{
		Longitude: geo.Longitude,
		Latitude:  geo.Latitude,
	}
	if input.LatLng != nil {
		if input.LatLng.Longitude != nil {
			location.Longitude = *input.LatLng.Longitude
		}
		if input.LatLng.Latitude != nil {
			location.Latitude = *input.LatLng.Latitude
		}
	}

	brand := device.Brand
	if brand == "" {
		brand = unidentified
	}
	archive := input.Archive.String()
	if archive == "" {
		archive = unidentified
	}

	event := db.DataEvent{
		IP:          visitor.IP,
		IPDetails:   fmt.Sprintf("This is an ip address with the request made from %s", geo.Country),
		Host:        device.Type,
		Owner:       input.Owner,
		Source:      fmt.Sprintf("from latitude: %s and longitude: %s", formatCoordinate(location.Latitude), formatCoordinate(location.Longitude)),
		Domain:      visitor.Host,
		Brand:       &brand,
		Country:     geo.Country,
		CountryFlag: geo.Flag.Emoji,
		ISP:         geo.Connection.ISPName,
		ISPDomain:   geo.Connection.ISPName,
		IsVPN:       geo.Security.IsVPN,
		IsNew:       true,
		Archive:     &archive,
		Location:    location,
	}
	if err := b.db.CreateDataEvent(ctx, &event); err != nil {
		return db.DataEvent{}, apierrors.Internal(failed, err)
	}

	logrus.WithFields(logrus.Fields{"id": event.ID, "country": event.Country, "owner": event.Owner}).Debug("recorded data event")
	return event, nil
}

// GetData lists one page of events along with per-country statistics over
// all of them.
func (b *backend) GetData(ctx context.Context, page db.Page) (model.DataListResponse, error) {
	const failed = "Fetching data failed, please try again later."

	users, err := b.db.CountDataEventsByCountryAndOwner(ctx)
	if err != nil {
		return model.DataListResponse{}, apierrors.Internal(failed, err)
	}

	countries, err := b.db.CountDataEventCountries(ctx)
	if err != nil {
		return model.DataListResponse{}, apierrors.Internal(failed, err)
	}

	data, err := b.db.ListDataEvents(ctx, page)
	if err != nil {
		return model.DataListResponse{}, apierrors.Internal(failed, err)
	}

	return model.DataListResponse{
		Data:         data,
		NbrCountries: countries,
		NbrDataHits:  len(data),
		Users:        users,
	}, nil
}

func (b *backend) GetDataByID(ctx context.Context, dataID uint) (db.DataEvent, error) {
	event, err := b.db.GetDataEvent(ctx, dataID)
	if err != nil {
		return db.DataEvent{}, lookupFailed(err, "Could not find this data", "Something went wrong, could not find data")
	}
	return event, nil
}

func (b *backend) DeleteData(ctx context.Context, dataID uint) error {
	if err := b.db.DeleteDataEvent(ctx, dataID); err != nil {
		return lookupFailed(err, "Could not find this data", "Something went wrong, could not delete data.")
	}
	return nil
}

func formatCoordinate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
