package backend

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/auth"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/lookup"
	"golang.org/x/crypto/bcrypt"
)

const defaultBcryptCost = 12

type Options struct {
	Tokens     *auth.Tokens
	Detector   lookup.DeviceDetector
	Geolocator lookup.Geolocator
	// BcryptCost defaults to 12.
	BcryptCost int
}

type backend struct {
	db         db.Database
	tokens     *auth.Tokens
	detector   lookup.DeviceDetector
	geolocator lookup.Geolocator
	bcryptCost int
}

func NewBackend(database db.Database, opts Options) (Backend, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token issuer is required")
	}
	if opts.Detector == nil || opts.Geolocator == nil {
		return nil, errors.New("device detector and geolocator are required")
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = defaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &backend{
		db:         database,
		tokens:     opts.Tokens,
		detector:   opts.Detector,
		geolocator: opts.Geolocator,
		bcryptCost: cost,
	}, nil
}

func (b *backend) Authenticate(token string) (auth.Identity, error) {
	id, err := b.tokens.Verify(token)
	if err != nil {
		logrus.Debugf("token verification failed: %v", err)
		return auth.Identity{}, apierrors.Unauthorized("Authentication failed!")
	}
	return id, nil
}

// lookupFailed maps a gateway error to not found or to an internal error
// carrying msg.
func lookupFailed(err error, notFound, msg string) error {
	if errors.Is(err, db.ErrNotFound) {
		return apierrors.NotFound(notFound)
	}
	return apierrors.Internal(msg, err)
}

// Bounds of a creation time given in epoch milliseconds: years 1 to 9999,
// which is what the database and JSON encoding can round-trip.
var (
	minCreatedAt = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxCreatedAt = time.Date(9999, time.December, 31, 23, 59, 59, 999e6, time.UTC).UnixMilli()
)

// createdAt turns an optional epoch-milliseconds value into a timestamp.
// The zero time lets the database set it.
func createdAt(ms string) (time.Time, error) {
	if ms == "" {
		return time.Time{}, nil
	}

	f, err := strconv.ParseFloat(ms, 64)
	if err != nil || math.IsNaN(f) || f < float64(minCreatedAt) || f > float64(maxCreatedAt) {
		return time.Time{}, apierrors.Validation("createdAt must be numeric.")
	}
	return time.UnixMilli(int64(f)).UTC(), nil
}
