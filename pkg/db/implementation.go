package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type database struct {
	db *gorm.DB
}

// New opens the database for the given dialect and migrates the schema.
func New(ctx context.Context, dialect string, dsn string, config *gorm.Config) (Database, error) {
	if config == nil {
		config = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	}

	var db *gorm.DB
	var err error

	switch dialect {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), config)
	case "mysql":
		db, err = gorm.Open(mysql.Open(dsn), config)
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
	if err != nil {
		return nil, err
	}

	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&User{},
		&Domain{},
		&Device{},
		&Detail{},
		&DataEvent{},
	); err != nil {
		return nil, err
	}

	return &database{
		db: db,
	}, nil
}

func (d *database) CreateUser(ctx context.Context, user *User) error {
	return write(d.db.WithContext(ctx).Create(user))
}

func (d *database) GetUser(ctx context.Context, id uint) (User, error) {
	return first[User](ctx, d.db, "id = ?", id)
}

func (d *database) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return first[User](ctx, d.db, "email = ?", email)
}

func (d *database) ListUsers(ctx context.Context) ([]User, error) {
	return list[User](d.db.WithContext(ctx))
}

func (d *database) SaveUser(ctx context.Context, user *User) error {
	return write(d.db.WithContext(ctx).Save(user))
}

func (d *database) CreateDomain(ctx context.Context, domain *Domain) error {
	return write(d.db.WithContext(ctx).Create(domain))
}

func (d *database) GetDomain(ctx context.Context, id uint) (Domain, error) {
	return first[Domain](ctx, d.db, "id = ?", id)
}

func (d *database) GetDomainByURL(ctx context.Context, url string) (Domain, error) {
	return first[Domain](ctx, d.db, "url = ?", url)
}

func (d *database) ListDomains(ctx context.Context) ([]Domain, error) {
	return list[Domain](d.db.WithContext(ctx))
}

func (d *database) DeleteDomain(ctx context.Context, id uint) error {
	return deleteByID[Domain](ctx, d.db, id)
}

func (d *database) CreateDevice(ctx context.Context, device *Device) error {
	return write(d.db.WithContext(ctx).Create(device))
}

func (d *database) GetDevice(ctx context.Context, id uint) (Device, error) {
	return first[Device](ctx, d.db, "id = ?", id)
}

func (d *database) ListDevices(ctx context.Context) ([]Device, error) {
	return list[Device](d.db.WithContext(ctx))
}

func (d *database) DeleteDevice(ctx context.Context, id uint) error {
	return deleteByID[Device](ctx, d.db, id)
}

func (d *database) CreateDetail(ctx context.Context, detail *Detail) error {
	return write(d.db.WithContext(ctx).Create(detail))
}

func (d *database) GetDetail(ctx context.Context, id uint) (Detail, error) {
	return first[Detail](ctx, d.db, "id = ?", id)
}

func (d *database) ListDetails(ctx context.Context) ([]Detail, error) {
	return list[Detail](d.db.WithContext(ctx))
}

func (d *database) DeleteDetail(ctx context.Context, id uint) error {
	return deleteByID[Detail](ctx, d.db, id)
}

func (d *database) CreateDataEvent(ctx context.Context, event *DataEvent) error {
	return write(d.db.WithContext(ctx).Create(event))
}

func (d *database) GetDataEvent(ctx context.Context, id uint) (DataEvent, error) {
	return first[DataEvent](ctx, d.db, "id = ?", id)
}

func (d *database) ListDataEvents(ctx context.Context, page Page) ([]DataEvent, error) {
	tx := d.db.WithContext(ctx)
	if page.Limit > 0 {
		tx = tx.Limit(page.Limit).Offset(page.Offset)
	}
	return list[DataEvent](tx)
}

func (d *database) CountDataEventCountries(ctx context.Context) (int64, error) {
	var n int64
	sql := d.db.WithContext(ctx).Model(&DataEvent{}).Distinct("country").Count(&n)
	return n, sql.Error
}

func (d *database) CountDataEventsByCountryAndOwner(ctx context.Context) ([]CountryOwnerCount, error) {
	counts := []CountryOwnerCount{}
	sql := d.db.WithContext(ctx).Model(&DataEvent{}).
		Select("country, owner, count(id) AS count").
		Group("country, owner").
		Order("country, owner").
		Scan(&counts)
	return counts, sql.Error
}

func (d *database) DeleteDataEvent(ctx context.Context, id uint) error {
	return deleteByID[DataEvent](ctx, d.db, id)
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (T, error) {
	var row T
	sql := db.WithContext(ctx).Where(query, args...).Take(&row)
	if errors.Is(sql.Error, gorm.ErrRecordNotFound) {
		return row, ErrNotFound
	}
	return row, sql.Error
}

func list[T any](tx *gorm.DB) ([]T, error) {
	rows := []T{}
	sql := tx.Order("id").Find(&rows)
	return rows, sql.Error
}

// deleteByID hard deletes a row, reporting ErrNotFound when nothing matched.
func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) error {
	var row T
	sql := db.WithContext(ctx).Delete(&row, id)
	if sql.Error != nil {
		return sql.Error
	}
	if sql.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// mysql error number for a duplicate entry on a unique key
const mysqlDuplicateEntry = 1062

// write maps unique index violations to ErrDuplicate.
func write(sql *gorm.DB) error {
	err := sql.Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
