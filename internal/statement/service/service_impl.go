package service

import (
	"context"

	"github.com/smallbiznis/fincore/internal/clock"
	ledgerdomain "github.com/smallbiznis/fincore/internal/ledger/domain"
	"github.com/smallbiznis/fincore/internal/statement/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Clock  clock.Clock
	Config domain.Config
	Ledger ledgerdomain.Service
}

type Service struct {
	log    *zap.Logger
	clock  clock.Clock
	cfg    domain.Config
	ledger ledgerdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("statement.service"),
		clock:  p.Clock,
		cfg:    p.Config,
		ledger: p.Ledger,
	}
}

func (s *Service) BalanceSheet(ctx context.Context, req domain.BalanceSheetRequest) (*domain.BalanceSheet, error) {
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = s.clock.Now()
	}

	tb, err := s.ledger.TrialBalance(ctx, ledgerdomain.TrialBalanceRequest{
		CompanyID: req.CompanyID,
		End:       asOf,
	})
	if err != nil {
		return nil, err
	}

	sheet, err := domain.BuildBalanceSheet(s.ledger.ActiveChart(), tb, s.cfg)
	if err != nil {
		return nil, err
	}
	if !sheet.IsBalanced {
		s.log.Warn("balance sheet does not balance",
			zap.String("company_id", tb.CompanyID.String()),
			zap.String("asset_total", sheet.AssetTotal.String()),
			zap.String("liability_plus_equity", sheet.LiabilityPlusEquity.String()))
	}
	return sheet, nil
}

func (s *Service) IncomeStatement(ctx context.Context, req domain.IncomeStatementRequest) (*domain.IncomeStatement, error) {
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, ledgerdomain.ErrInvalidPeriod
	}
	start := req.Start

	tb, err := s.ledger.TrialBalance(ctx, ledgerdomain.TrialBalanceRequest{
		CompanyID: req.CompanyID,
		Start:     &start,
		End:       req.End,
	})
	if err != nil {
		return nil, err
	}

	return domain.BuildIncomeStatement(s.ledger.ActiveChart(), tb, s.cfg)
}
