package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fincore/internal/clock"
	finrecorddomain "github.com/smallbiznis/fincore/internal/finrecord/domain"
	"github.com/smallbiznis/fincore/internal/provision/domain"
	pkgdb "github.com/smallbiznis/fincore/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var decimalNeg100 = decimal.NewFromInt(-100)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	RecordRepo finrecorddomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	recordRepo finrecorddomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("provision.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		recordRepo: p.RecordRepo,
	}
}

func parseID(raw string, sentinel error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, sentinel
	}
	return id, nil
}

func (s *Service) CreateProvision(ctx context.Context, req domain.CreateProvisionRequest) (*domain.ProvisionBudget, error) {
	companyID, err := parseID(req.CompanyID, domain.ErrInvalidCompany)
	if err != nil {
		return nil, err
	}
	eventID, err := parseID(req.EventID, domain.ErrInvalidEvent)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseID(req.CategoryID, domain.ErrInvalidCategory)
	if err != nil {
		return nil, err
	}
	if req.Provision.IsNegative() {
		return nil, domain.ErrInvalidProvision
	}

	now := s.clock.Now()
	provision := &domain.ProvisionBudget{
		ID:           s.genID.Generate(),
		CompanyID:    companyID,
		EventID:      eventID,
		CategoryID:   categoryID,
		CategoryName: strings.TrimSpace(req.CategoryName),
		Provision:    req.Provision,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, provision); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrInvalidCategory
		}
		return nil, err
	}
	return provision, nil
}

func (s *Service) Reconciliation(ctx context.Context, req domain.ReconciliationRequest) (*domain.ReconciliationResult, error) {
	companyID, err := parseID(req.CompanyID, domain.ErrInvalidCompany)
	if err != nil {
		return nil, err
	}
	eventID, err := parseID(req.EventID, domain.ErrInvalidEvent)
	if err != nil {
		return nil, err
	}

	provisions, err := s.repo.ListByEvent(ctx, s.db, companyID, eventID)
	if err != nil {
		return nil, err
	}
	spent, err := s.spentByCategory(ctx, companyID, eventID)
	if err != nil {
		return nil, err
	}

	categories, totals := domain.Reconcile(provisions, spent)

	estimatedIncome, err := s.recordRepo.SumIncome(ctx, s.db, companyID, eventID, false)
	if err != nil {
		return nil, err
	}
	actualIncome, err := s.recordRepo.SumIncome(ctx, s.db, companyID, eventID, true)
	if err != nil {
		return nil, err
	}

	return &domain.ReconciliationResult{
		CompanyID:  companyID,
		EventID:    eventID,
		Categories: categories,
		Totals:     totals,
		Profit:     domain.CompareProfit(estimatedIncome, actualIncome, totals.Provision, totals.Spent),
	}, nil
}

func (s *Service) AdjustProvisions(ctx context.Context, req domain.AdjustRequest) ([]domain.AdjustedProvision, error) {
	companyID, err := parseID(req.CompanyID, domain.ErrInvalidCompany)
	if err != nil {
		return nil, err
	}
	eventID, err := parseID(req.EventID, domain.ErrInvalidEvent)
	if err != nil {
		return nil, err
	}
	// A margin below -100% would propose negative provisions.
	if req.MarginPct.LessThan(decimalNeg100) {
		return nil, domain.ErrInvalidMargin
	}

	provisions, err := s.repo.ListByEvent(ctx, s.db, companyID, eventID)
	if err != nil {
		return nil, err
	}
	spent, err := s.spentByCategory(ctx, companyID, eventID)
	if err != nil {
		return nil, err
	}

	adjusted := domain.AutoAdjust(provisions, spent, req.MarginPct)
	if !req.Commit {
		return adjusted, nil
	}

	byCategory := make(map[snowflake.ID]snowflake.ID, len(provisions))
	for _, p := range provisions {
		byCategory[p.CategoryID] = p.ID
	}
	for _, a := range adjusted {
		provisionID, ok := byCategory[a.CategoryID]
		if !ok {
			continue
		}
		if err := s.repo.UpdateAmount(ctx, s.db, companyID, provisionID, a.Proposed); err != nil {
			return nil, err
		}
	}

	s.log.Info("provisions adjusted",
		zap.String("company_id", companyID.String()),
		zap.String("event_id", eventID.String()),
		zap.String("margin_pct", req.MarginPct.String()))
	return adjusted, nil
}

func (s *Service) spentByCategory(ctx context.Context, companyID, eventID snowflake.ID) (map[snowflake.ID]domain.CategorySpend, error) {
	totals, err := s.recordRepo.SumByCategory(ctx, s.db, companyID, eventID, finrecorddomain.RecordKindExpense)
	if err != nil {
		return nil, err
	}
	spent := make(map[snowflake.ID]domain.CategorySpend, len(totals))
	for _, t := range totals {
		spent[t.CategoryID] = domain.CategorySpend{
			CategoryName: t.CategoryName,
			Spent:        t.Total,
		}
	}
	return spent, nil
}
