package backend

import (
	"context"
	"errors"

	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/model"
)

const domainExists = "Domain exists already, register another domain instead."

func (b *backend) CreateDomain(ctx context.Context, input model.DomainRequest) (db.Domain, error) {
	const failed = "Registering domain failed, please try again"

	_, err := b.db.GetDomainByURL(ctx, input.URL)
	switch {
	case err == nil:
		return db.Domain{}, apierrors.Conflict(domainExists)
	case !errors.Is(err, db.ErrNotFound):
		return db.Domain{}, apierrors.Internal(failed, err)
	}

	domain := db.Domain{
		DomainName: input.DomainName,
		URL:        input.URL,
		Owner:      input.Owner,
	}
	if err := b.db.CreateDomain(ctx, &domain); errors.Is(err, db.ErrDuplicate) {
		return db.Domain{}, apierrors.Conflict(domainExists)
	} else if err != nil {
		return db.Domain{}, apierrors.Internal(failed, err)
	}
	return domain, nil
}

func (b *backend) GetDomains(ctx context.Context) ([]db.Domain, error) {
	domains, err := b.db.ListDomains(ctx)
	if err != nil {
		return nil, apierrors.Internal("Fetching domains failed, please try again later.", err)
	}
	return domains, nil
}

func (b *backend) GetDomain(ctx context.Context, domainID uint) (db.Domain, error) {
	domain, err := b.db.GetDomain(ctx, domainID)
	if err != nil {
		return db.Domain{}, lookupFailed(err, "Could not find this domain", "Something went wrong, could not find domain")
	}
	return domain, nil
}

func (b *backend) DeleteDomain(ctx context.Context, domainID uint) error {
	if err := b.db.DeleteDomain(ctx, domainID); err != nil {
		return lookupFailed(err, "Could not find this domain", "Something went wrong, could not delete domain.")
	}
	return nil
}
