package domain

import "context"

type CreateRequest struct {
	Name        string
	Description string
}

type UpdateRequest struct {
	ID          string
	Name        *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Lodge, error)
	Get(ctx context.Context, id string) (*Lodge, error)
	List(ctx context.Context) ([]Lodge, error)
	Update(ctx context.Context, req UpdateRequest) (*Lodge, error)
}
