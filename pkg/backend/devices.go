package backend

import (
	"context"

	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/model"
)

func (b *backend) CreateDevice(ctx context.Context, input model.DeviceRequest) (db.Device, error) {
	created, err := createdAt(input.CreatedAt.String())
	if err != nil {
		return db.Device{}, err
	}

	device := db.Device{
		IP:            input.IP,
		Name:          input.Name,
		UserAgent:     input.UserAgent,
		Details:       input.Details,
		DetailsIPInfo: input.DetailsIPInfo,
		CreatedAt:     created,
	}
	if err := b.db.CreateDevice(ctx, &device); err != nil {
		return db.Device{}, apierrors.Internal("Registering device failed, please try again", err)
	}
	return device, nil
}

func (b *backend) GetDevices(ctx context.Context) ([]db.Device, error) {
	devices, err := b.db.ListDevices(ctx)
	if err != nil {
		return nil, apierrors.Internal("Fetching devices failed, please try again later.", err)
	}
	return devices, nil
}

func (b *backend) GetDevice(ctx context.Context, deviceID uint) (db.Device, error) {
	device, err := b.db.GetDevice(ctx, deviceID)
	if err != nil {
		return db.Device{}, lookupFailed(err, "Could not find this device", "Something went wrong, could not find device")
	}
	return device, nil
}

func (b *backend) DeleteDevice(ctx context.Context, deviceID uint) error {
	if err := b.db.DeleteDevice(ctx, deviceID); err != nil {
		return lookupFailed(err, "Could not find this device", "Something went wrong, could not delete device.")
	}
	return nil
}
