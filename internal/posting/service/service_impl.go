package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fincore/internal/clock"
	"github.com/smallbiznis/fincore/internal/posting/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("posting.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) CreatePoliza(ctx context.Context, req domain.CreatePolizaRequest) (*domain.Poliza, error) {
	companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
	if err != nil || companyID == 0 {
		return nil, domain.ErrInvalidCompany
	}
	if strings.TrimSpace(req.Folio) == "" {
		return nil, domain.ErrInvalidFolio
	}
	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if len(req.Movements) < 2 {
		return nil, domain.ErrInvalidMovements
	}

	now := s.clock.Now()
	poliza := &domain.Poliza{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		Folio:     strings.TrimSpace(req.Folio),
		Concept:   strings.TrimSpace(req.Concept),
		Date:      req.Date.UTC(),
		Status:    domain.PolizaStatusDraft,
		CreatedAt: now,
	}

	movements := make([]domain.Movement, 0, len(req.Movements))
	for _, line := range req.Movements {
		accountID, err := snowflake.ParseString(strings.TrimSpace(line.AccountID))
		if err != nil || accountID == 0 {
			return nil, domain.ErrInvalidAccount
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		movements = append(movements, domain.Movement{
			ID:        s.genID.Generate(),
			PolizaID:  poliza.ID,
			AccountID: accountID,
			Concept:   strings.TrimSpace(line.Concept),
			Debit:     line.Debit,
			Credit:    line.Credit,
			CreatedAt: now,
		})
	}

	if err := domain.ValidateBalanced(movements); err != nil {
		return nil, err
	}

	if err := s.repo.InsertPoliza(ctx, s.db, poliza, movements); err != nil {
		return nil, err
	}
	return poliza, nil
}

func (s *Service) Apply(ctx context.Context, companyIDRaw, polizaIDRaw string) (*domain.Poliza, error) {
	companyID, err := snowflake.ParseString(strings.TrimSpace(companyIDRaw))
	if err != nil || companyID == 0 {
		return nil, domain.ErrInvalidCompany
	}
	polizaID, err := snowflake.ParseString(strings.TrimSpace(polizaIDRaw))
	if err != nil || polizaID == 0 {
		return nil, domain.ErrNotFound
	}

	poliza, movements, err := s.repo.FindPoliza(ctx, s.db, companyID, polizaID)
	if err != nil {
		return nil, err
	}
	if poliza == nil {
		return nil, domain.ErrNotFound
	}
	if poliza.Status == domain.PolizaStatusApplied {
		return nil, domain.ErrAlreadyApplied
	}
	if err := domain.ValidateBalanced(movements); err != nil {
		return nil, err
	}

	appliedAt := s.clock.Now()
	updated, err := s.repo.MarkApplied(ctx, s.db, companyID, polizaID, appliedAt)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race with a concurrent apply.
		return nil, domain.ErrAlreadyApplied
	}

	s.log.Info("poliza applied",
		zap.String("company_id", companyID.String()),
		zap.String("poliza_id", polizaID.String()),
		zap.String("folio", poliza.Folio))

	poliza.Status = domain.PolizaStatusApplied
	poliza.AppliedAt = &appliedAt
	return poliza, nil
}
