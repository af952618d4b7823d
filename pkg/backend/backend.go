package backend

import (
	"context"

	"github.com/trackmaster/trackmaster/pkg/auth"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/model"
)

// Backend holds the business rules of every resource. All errors it returns
// are *apierrors.Error values.
type Backend interface {
	SignUp(ctx context.Context, input model.SignupRequest) (db.User, error)
	Login(ctx context.Context, input model.LoginRequest) (model.LoginResponse, error)
	UpdateUser(ctx context.Context, caller auth.Identity, userID uint, input model.UpdateUserRequest) (db.User, error)
	GetUsers(ctx context.Context) ([]db.User, error)
	GetUser(ctx context.Context, userID uint) (db.User, error)
	Authenticate(token string) (auth.Identity, error)

	CreateDomain(ctx context.Context, input model.DomainRequest) (db.Domain, error)
	GetDomains(ctx context.Context) ([]db.Domain, error)
	GetDomain(ctx context.Context, domainID uint) (db.Domain, error)
	DeleteDomain(ctx context.Context, domainID uint) error

	CreateDevice(ctx context.Context, input model.DeviceRequest) (db.Device, error)
	GetDevices(ctx context.Context) ([]db.Device, error)
	GetDevice(ctx context.Context, deviceID uint) (db.Device, error)
	DeleteDevice(ctx context.Context, deviceID uint) error

	CreateDetail(ctx context.Context, input model.DetailRequest) (db.Detail, error)
	GetDetails(ctx context.Context) ([]db.Detail, error)
	GetDetail(ctx context.Context, detailID uint) (db.Detail, error)
	DeleteDetail(ctx context.Context, detailID uint) error

	CreateData(ctx context.Context, input model.DataRequest, visitor model.Visitor) (db.DataEvent, error)
	GetData(ctx context.Context, page db.Page) (model.DataListResponse, error)
	GetDataByID(ctx context.Context, dataID uint) (db.DataEvent, error)
	DeleteData(ctx context.Context, dataID uint) error
}
