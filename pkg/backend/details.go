package backend

import (
	"context"

	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/model"
)

func (b *backend) CreateDetail(ctx context.Context, input model.DetailRequest) (db.Detail, error) {
	created, err := createdAt(input.CreatedAt.String())
	if err != nil {
		return db.Detail{}, err
	}

	detail := db.Detail{
		IP:        input.IP,
		Brand:     input.Brand,
		Host:      input.Host,
		CreatedAt: created,
	}
	if err := b.db.CreateDetail(ctx, &detail); err != nil {
		return db.Detail{}, apierrors.Internal("Registering detail failed, please try again", err)
	}
	return detail, nil
}

func (b *backend) GetDetails(ctx context.Context) ([]db.Detail, error) {
	details, err := b.db.ListDetails(ctx)
	if err != nil {
		return nil, apierrors.Internal("Fetching details failed, please try again later.", err)
	}
	return details, nil
}

func (b *backend) GetDetail(ctx context.Context, detailID uint) (db.Detail, error) {
	detail, err := b.db.GetDetail(ctx, detailID)
	if err != nil {
		return db.Detail{}, lookupFailed(err, "Could not find this detail", "Something went wrong, could not find detail")
	}
	return detail, nil
}

func (b *backend) DeleteDetail(ctx context.Context, detailID uint) error {
	if err := b.db.DeleteDetail(ctx, detailID); err != nil {
		return lookupFailed(err, "Could not find this detail", "Something went wrong, could not delete detail.")
	}
	return nil
}
