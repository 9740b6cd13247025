package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lodgeworks/tesoro/internal/billingcycle"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	memberdomain "github.com/lodgeworks/tesoro/internal/member/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  memberdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  memberdomain.Repository
}

func New(p Params) memberdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("member.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req memberdomain.CreateRequest) (*memberdomain.Member, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, memberdomain.ErrInvalidLodge
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, memberdomain.ErrInvalidName
	}

	joinDate := strings.TrimSpace(req.JoinDate)
	if joinDate == "" {
		joinDate = time.Now().UTC().Format("2006-01-02")
	}
	masonicJoinDate := strings.TrimSpace(req.MasonicJoinDate)
	rejoinDate := strings.TrimSpace(req.RejoinDate)
	for _, d := range []string{joinDate, masonicJoinDate, rejoinDate} {
		if d != "" && !billingcycle.IsDate(d) {
			return nil, memberdomain.ErrInvalidDate
		}
	}

	now := time.Now().UTC()
	m := &memberdomain.Member{
		ID:              s.genID.Generate(),
		LodgeID:         lodgeID,
		Name:            name,
		Email:           strings.TrimSpace(req.Email),
		Active:          false,
		LodgeRole:       strings.TrimSpace(req.LodgeRole),
		JoinDate:        joinDate,
		MasonicJoinDate: masonicJoinDate,
		RejoinDate:      rejoinDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Insert(ctx, s.db, m); err != nil {
		return nil, err
	}

	s.log.Info("member enrolled",
		zap.Int64("member_id", int64(m.ID)),
		zap.Int64("lodge_id", int64(lodgeID)),
	)
	return m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*memberdomain.Member, error) {
	memberID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, memberdomain.ErrInvalidID
	}

	m, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, memberdomain.ErrNotFound
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]memberdomain.Member, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, memberdomain.ErrInvalidLodge
	}
	return s.repo.ListByLodge(ctx, s.db, lodgeID)
}

func (s *Service) Update(ctx context.Context, req memberdomain.UpdateRequest) (*memberdomain.Member, error) {
	m, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, memberdomain.ErrInvalidName
		}
		m.Name = name
	}
	if req.Email != nil {
		m.Email = strings.TrimSpace(*req.Email)
	}
	if req.LodgeRole != nil {
		m.LodgeRole = strings.TrimSpace(*req.LodgeRole)
	}
	if err := applyDate(req.JoinDate, &m.JoinDate); err != nil {
		return nil, err
	}
	if err := applyDate(req.MasonicJoinDate, &m.MasonicJoinDate); err != nil {
		return nil, err
	}
	if err := applyDate(req.RejoinDate, &m.RejoinDate); err != nil {
		return nil, err
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, m); err != nil {
		return nil, err
	}
	return m, nil
}

func applyDate(field *string, dst *string) error {
	if field == nil {
		return nil
	}
	value := strings.TrimSpace(*field)
	if value != "" && !billingcycle.IsDate(value) {
		return memberdomain.ErrInvalidDate
	}
	*dst = value
	return nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (*memberdomain.Member, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Active = active
	m.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, m); err != nil {
		return nil, err
	}

	s.log.Info("member status changed",
		zap.Int64("member_id", int64(m.ID)),
		zap.Bool("active", active),
	)
	return m, nil
}
