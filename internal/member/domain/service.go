package domain

import "context"

type CreateRequest struct {
	Name            string
	Email           string
	JoinDate        string
	MasonicJoinDate string
	RejoinDate      string
	LodgeRole       string
}

type UpdateRequest struct {
	ID              string
	Name            *string
	Email           *string
	JoinDate        *string
	MasonicJoinDate *string
	RejoinDate      *string
	LodgeRole       *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Member, error)
	Get(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, req UpdateRequest) (*Member, error)
	SetActive(ctx context.Context, id string, active bool) (*Member, error)
}
