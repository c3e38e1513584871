package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/fincore/internal/account/domain"
	"github.com/smallbiznis/fincore/internal/account/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func cashRequest() domain.CreateRequest {
	return domain.CreateRequest{
		CompanyID: "1001",
		Code:      "1.1.01",
		Name:      "Cash",
		Type:      domain.AccountTypeAsset,
		Nature:    domain.AccountNatureDebtor,
	}
}

func TestCreateAccount(t *testing.T) {
	svc := newTestService(t)

	account, err := svc.Create(context.Background(), cashRequest())
	require.NoError(t, err)
	assert.Equal(t, "1.1.01", account.Code)
	assert.True(t, account.Active)
}

func TestCreateAccountDuplicateCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, cashRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, cashRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	// The same code under another company is fine.
	req := cashRequest()
	req.CompanyID = "1002"
	_, err = svc.Create(ctx, req)
	assert.NoError(t, err)
}

func TestCreateAccountValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := cashRequest()
	req.Code = " "
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	req = cashRequest()
	req.Type = "imaginary"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAccountType)

	req = cashRequest()
	req.Nature = "sideways"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAccountNature)

	req = cashRequest()
	req.CompanyID = "zero"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
}

func TestListFiltersByType(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, cashRequest())
	require.NoError(t, err)

	revenue := cashRequest()
	revenue.Code = "4.1.01"
	revenue.Name = "Sales Revenue"
	revenue.Type = domain.AccountTypeRevenue
	revenue.Nature = domain.AccountNatureCreditor
	_, err = svc.Create(ctx, revenue)
	require.NoError(t, err)

	accounts, err := svc.List(ctx, domain.ListRequest{CompanyID: "1001"})
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	accounts, err = svc.List(ctx, domain.ListRequest{
		CompanyID: "1001",
		Types:     []domain.AccountType{domain.AccountTypeRevenue},
	})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "4.1.01", accounts[0].Code)
}
