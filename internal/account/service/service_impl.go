package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fincore/internal/account/domain"
	pkgdb "github.com/smallbiznis/fincore/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Account, error) {
	companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
	if err != nil || companyID == 0 {
		return nil, domain.ErrInvalidCompany
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:             s.genID.Generate(),
		CompanyID:      companyID,
		Code:           strings.TrimSpace(req.Code),
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		Nature:         req.Nature,
		OpeningBalance: req.OpeningBalance,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, account); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateCode
		}
		return nil, err
	}
	return account, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Account, error) {
	companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
	if err != nil || companyID == 0 {
		return nil, domain.ErrInvalidCompany
	}
	return s.repo.ListActive(ctx, s.db, companyID, req.Types...)
}
