package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	lodgedomain "github.com/lodgeworks/tesoro/internal/organization/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  lodgedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  lodgedomain.Repository
}

func New(p Params) lodgedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("organization.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req lodgedomain.CreateRequest) (*lodgedomain.Lodge, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, lodgedomain.ErrInvalidName
	}

	now := time.Now().UTC()
	lodge := &lodgedomain.Lodge{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, lodge); err != nil {
		return nil, err
	}

	s.log.Info("lodge created", zap.Int64("lodge_id", int64(lodge.ID)), zap.String("name", lodge.Name))
	return lodge, nil
}

func (s *Service) Get(ctx context.Context, id string) (*lodgedomain.Lodge, error) {
	lodgeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, lodgedomain.ErrInvalidID
	}

	lodge, err := s.repo.FindByID(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}
	if lodge == nil {
		return nil, lodgedomain.ErrNotFound
	}
	return lodge, nil
}

func (s *Service) List(ctx context.Context) ([]lodgedomain.Lodge, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Update(ctx context.Context, req lodgedomain.UpdateRequest) (*lodgedomain.Lodge, error) {
	lodge, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, lodgedomain.ErrInvalidName
		}
		lodge.Name = name
	}
	if req.Description != nil {
		lodge.Description = strings.TrimSpace(*req.Description)
	}
	lodge.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, lodge); err != nil {
		return nil, err
	}
	return lodge, nil
}
