package domain

import (
	"context"
	"errors"

	"github.com/fleetline/taller/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Client, error)
	List(ctx context.Context, db *gorm.DB, filter ListClientFilter, page pagination.Pagination) ([]Client, error)
	Update(ctx context.Context, db *gorm.DB, client *Client) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ListClientFilter struct {
	Type ClientType
	Name string
}

type ListClientRequest struct {
	Type ClientType `form:"type"`
	Name string     `form:"name"`
	pagination.Pagination
}

type CreateClientRequest struct {
	Type           ClientType `json:"type" binding:"required"`
	Name           string     `json:"name" binding:"required"`
	DocumentNumber string     `json:"document_number"`
	Phone          string     `json:"phone"`
}

// UpdateClientRequest patches only the fields present in the request body.
type UpdateClientRequest struct {
	Type           *ClientType `json:"type"`
	Name           *string     `json:"name"`
	DocumentNumber *string     `json:"document_number"`
	Phone          *string     `json:"phone"`
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	Get(ctx context.Context, id int64) (Client, error)
	List(ctx context.Context, req ListClientRequest) ([]Client, error)
	Update(ctx context.Context, id int64, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id int64) error
}

var (
	ErrNotFound    = errors.New("client_not_found")
	ErrInvalidType = errors.New("invalid_client_type")
	ErrInvalidName = errors.New("invalid_client_name")
)
