package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fincore/internal/clock"
	"github.com/smallbiznis/fincore/internal/posting/domain"
	"github.com/smallbiznis/fincore/internal/posting/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, domain.Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Poliza{}, &domain.Movement{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.Provide()
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repo,
	})
	return svc, repo, db
}

func saleRequest() domain.CreatePolizaRequest {
	return domain.CreatePolizaRequest{
		CompanyID: "1001",
		Folio:     "P-0001",
		Concept:   "sale of services",
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Movements: []domain.MovementLineRequest{
			{AccountID: "11", Concept: "cash in", Debit: decimal.RequireFromString("1000")},
			{AccountID: "41", Concept: "revenue", Credit: decimal.RequireFromString("1000")},
		},
	}
}

func TestCreatePolizaStartsDraft(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	poliza, err := svc.CreatePoliza(ctx, saleRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.PolizaStatusDraft, poliza.Status)
	assert.Nil(t, poliza.AppliedAt)

	// Draft movements do not reach the ledger.
	movements, err := repo.ListApplied(ctx, db, poliza.CompanyID, nil, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestCreatePolizaRejectsUnbalanced(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := saleRequest()
	req.Movements[1].Credit = decimal.RequireFromString("999")
	_, err := svc.CreatePoliza(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnbalancedPoliza)
}

func TestCreatePolizaValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	req := saleRequest()
	req.Folio = " "
	_, err := svc.CreatePoliza(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidFolio)

	req = saleRequest()
	req.Movements = req.Movements[:1]
	_, err = svc.CreatePoliza(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidMovements)

	req = saleRequest()
	req.Movements[0].Debit = decimal.RequireFromString("-5")
	_, err = svc.CreatePoliza(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestApplyPoliza(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	poliza, err := svc.CreatePoliza(ctx, saleRequest())
	require.NoError(t, err)

	applied, err := svc.Apply(ctx, "1001", poliza.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.PolizaStatusApplied, applied.Status)
	require.NotNil(t, applied.AppliedAt)

	movements, err := repo.ListApplied(ctx, db, poliza.CompanyID, nil, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, movements, 2)
}

func TestApplyPolizaTwiceConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	poliza, err := svc.CreatePoliza(ctx, saleRequest())
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "1001", poliza.ID.String())
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "1001", poliza.ID.String())
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
}

func TestApplyUnknownPoliza(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Apply(context.Background(), "1001", "424242")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
