package domain

import (
	"context"
	"errors"

	"github.com/fleetline/taller/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, truck *Truck) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Truck, error)
	List(ctx context.Context, db *gorm.DB, filter ListTruckFilter, page pagination.Pagination) ([]Truck, error)
	Update(ctx context.Context, db *gorm.DB, truck *Truck) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ListTruckFilter struct {
	ClientID     int64
	LicensePlate string
}

type ListTruckRequest struct {
	ClientID     int64  `form:"client_id"`
	LicensePlate string `form:"license_plate"`
	pagination.Pagination
}

type CreateTruckRequest struct {
	ClientID     int64  `json:"client_id" binding:"required"`
	LicensePlate string `json:"license_plate" binding:"required"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
}

type UpdateTruckRequest struct {
	ClientID     *int64  `json:"client_id"`
	LicensePlate *string `json:"license_plate"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
}

type Service interface {
	Create(ctx context.Context, req CreateTruckRequest) (Truck, error)
	Get(ctx context.Context, id int64) (Truck, error)
	List(ctx context.Context, req ListTruckRequest) ([]Truck, error)
	Update(ctx context.Context, id int64, req UpdateTruckRequest) (Truck, error)
	Delete(ctx context.Context, id int64) error
}

var (
	ErrNotFound       = errors.New("truck_not_found")
	ErrInvalidPlate   = errors.New("invalid_license_plate")
	ErrDuplicatePlate = errors.New("duplicate_license_plate")
)
