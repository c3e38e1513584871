package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
	ledgerdomain "github.com/smallbiznis/fincore/internal/ledger/domain"
	postingdomain "github.com/smallbiznis/fincore/internal/posting/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Chart       ledgerdomain.Chart
	AccountRepo accountdomain.Repository
	PostingRepo postingdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	chart       ledgerdomain.Chart
	accountRepo accountdomain.Repository
	postingRepo postingdomain.Repository
}

func NewService(p Params) ledgerdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("ledger.service"),
		chart:       p.Chart,
		accountRepo: p.AccountRepo,
		postingRepo: p.PostingRepo,
	}
}

func (s *Service) ActiveChart() ledgerdomain.Chart {
	return s.chart
}

func (s *Service) TrialBalance(ctx context.Context, req ledgerdomain.TrialBalanceRequest) (*ledgerdomain.TrialBalance, error) {
	companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
	if err != nil || companyID == 0 {
		return nil, ledgerdomain.ErrInvalidCompany
	}
	if req.End.IsZero() {
		return nil, ledgerdomain.ErrInvalidPeriod
	}
	if req.Start != nil && req.Start.After(req.End) {
		return nil, ledgerdomain.ErrInvalidPeriod
	}

	accounts, err := s.accountRepo.ListActive(ctx, s.db, companyID)
	if err != nil {
		return nil, err
	}
	movements, err := s.postingRepo.ListApplied(ctx, s.db, companyID, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	balances, err := ledgerdomain.Aggregate(accounts, movements)
	if err != nil {
		return nil, err
	}

	return &ledgerdomain.TrialBalance{
		CompanyID:   companyID,
		PeriodStart: req.Start,
		PeriodEnd:   req.End,
		Balances:    balances,
	}, nil
}
