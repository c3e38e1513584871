package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/fincore/internal/clock"
	"github.com/smallbiznis/fincore/internal/config"
	"github.com/smallbiznis/fincore/internal/finrecord/domain"
	"github.com/smallbiznis/fincore/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Config config.Config
	Repo   domain.Repository
}

type Service struct {
	db                   *gorm.DB
	log                  *zap.Logger
	genID                *snowflake.Node
	clock                clock.Clock
	repo                 domain.Repository
	requireLedgerAccount bool
}

func New(p Params) domain.Service {
	return &Service{
		db:                   p.DB,
		log:                  p.Log.Named("finrecord.service"),
		genID:                p.GenID,
		clock:                p.Clock,
		repo:                 p.Repo,
		requireLedgerAccount: p.Config.RequireLedgerAccountOnPaid,
	}
}

func parseID(raw string, sentinel error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, sentinel
	}
	return id, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.FinancialRecord, error) {
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
	responsibleID, err := parseID(req.Responsible, domain.ErrInvalidResponsible)
	if err != nil {
		return nil, err
	}
	if req.Kind != domain.RecordKindIncome && req.Kind != domain.RecordKindExpense {
		return nil, domain.ErrInvalidKind
	}
	if strings.TrimSpace(req.Concept) == "" {
		return nil, domain.ErrInvalidConcept
	}
	if req.Subtotal.IsNegative() || req.Tax.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if req.IssueDate.IsZero() {
		return nil, domain.ErrInvalidIssueDate
	}

	now := s.clock.Now()
	record := &domain.FinancialRecord{
		ID:            s.genID.Generate(),
		CompanyID:     companyID,
		EventID:       eventID,
		Kind:          req.Kind,
		CategoryID:    categoryID,
		CategoryName:  strings.TrimSpace(req.CategoryName),
		Concept:       strings.TrimSpace(req.Concept),
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Total:         req.Subtotal.Add(req.Tax),
		IssueDate:     req.IssueDate.UTC(),
		DueDate:       req.DueDate,
		ResponsibleID: responsibleID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	record.Recompute()

	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Get(ctx context.Context, companyIDRaw, idRaw string) (*domain.FinancialRecord, error) {
	record, err := s.load(ctx, companyIDRaw, idRaw)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	companyID, err := parseID(req.CompanyID, domain.ErrInvalidCompany)
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageSize := req.Pagination.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 250 {
		pageSize = 250
	}
	req.Pagination.PageSize = pageSize

	records, err := s.repo.List(ctx, s.db, companyID, req.Filter, req.Pagination)
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(records, pageSize, func(record *domain.FinancialRecord) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        record.ID.String(),
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(records) > pageSize {
		records = records[:pageSize]
	}

	return domain.ListResponse{Records: records, PageInfo: *pageInfo}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.FinancialRecord, error) {
	record, err := s.load(ctx, req.CompanyID, req.ID)
	if err != nil {
		return nil, err
	}
	if record.Voided {
		return nil, domain.ErrRecordVoided
	}

	if req.Concept != nil {
		concept := strings.TrimSpace(*req.Concept)
		if concept == "" {
			return nil, domain.ErrInvalidConcept
		}
		record.Concept = concept
	}
	if req.DueDate != nil {
		due := req.DueDate.UTC()
		record.DueDate = &due
	}
	if req.PaymentDate != nil {
		paid := req.PaymentDate.UTC()
		record.PaymentDate = &paid
	}
	if req.LedgerAccountID != nil {
		accountID, err := parseID(*req.LedgerAccountID, domain.ErrMissingLedgerAccount)
		if err != nil {
			return nil, err
		}
		record.LedgerAccountID = &accountID
	}

	return s.persist(ctx, record)
}

func (s *Service) AttachArtifact(ctx context.Context, req domain.ArtifactRequest) (*domain.FinancialRecord, error) {
	record, err := s.load(ctx, req.CompanyID, req.ID)
	if err != nil {
		return nil, err
	}
	if record.Voided {
		return nil, domain.ErrRecordVoided
	}
	if req.Ref == uuid.Nil {
		return nil, domain.ErrInvalidArtifactRef
	}

	ref := req.Ref
	switch req.Kind {
	case domain.ArtifactPurchaseOrder:
		record.Artifacts.PurchaseOrderRef = &ref
	case domain.ArtifactInvoiceDoc:
		record.Artifacts.InvoiceDocRef = &ref
	case domain.ArtifactInvoiceProof:
		record.Artifacts.InvoiceProofRef = &ref
	case domain.ArtifactPaymentProof:
		record.Artifacts.PaymentProofRef = &ref
	default:
		return nil, domain.ErrInvalidArtifactKind
	}

	return s.persist(ctx, record)
}

func (s *Service) DetachArtifact(ctx context.Context, companyIDRaw, idRaw string, kind domain.ArtifactKind) (*domain.FinancialRecord, error) {
	record, err := s.load(ctx, companyIDRaw, idRaw)
	if err != nil {
		return nil, err
	}
	if record.Voided {
		return nil, domain.ErrRecordVoided
	}

	switch kind {
	case domain.ArtifactPurchaseOrder:
		record.Artifacts.PurchaseOrderRef = nil
	case domain.ArtifactInvoiceDoc:
		record.Artifacts.InvoiceDocRef = nil
	case domain.ArtifactInvoiceProof:
		record.Artifacts.InvoiceProofRef = nil
	case domain.ArtifactPaymentProof:
		record.Artifacts.PaymentProofRef = nil
	default:
		return nil, domain.ErrInvalidArtifactKind
	}

	return s.persist(ctx, record)
}

func (s *Service) State(ctx context.Context, companyIDRaw, idRaw string) (*domain.StateResponse, error) {
	record, err := s.load(ctx, companyIDRaw, idRaw)
	if err != nil {
		return nil, err
	}
	state := domain.DeriveState(record.Artifacts)
	return &domain.StateResponse{
		State:    state,
		Invoiced: state.AtLeast(domain.StateInvoiced),
		Paid:     state.AtLeast(domain.StatePaid),
	}, nil
}

func (s *Service) Void(ctx context.Context, companyIDRaw, idRaw string) (*domain.FinancialRecord, error) {
	record, err := s.load(ctx, companyIDRaw, idRaw)
	if err != nil {
		return nil, err
	}
	if record.Voided {
		return nil, domain.ErrRecordVoided
	}
	record.Voided = true
	record.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) CreateRefund(ctx context.Context, req domain.RefundRequest) (*domain.FinancialRecord, error) {
	original, err := s.load(ctx, req.CompanyID, req.ID)
	if err != nil {
		return nil, err
	}
	if original.Voided {
		return nil, domain.ErrRecordVoided
	}
	if original.RefundOfID != nil {
		return nil, domain.ErrRefundOfRefund
	}

	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		concept = "refund: " + original.Concept
	}

	now := s.clock.Now()
	originalID := original.ID
	refund := &domain.FinancialRecord{
		ID:            s.genID.Generate(),
		CompanyID:     original.CompanyID,
		EventID:       original.EventID,
		Kind:          original.Kind,
		CategoryID:    original.CategoryID,
		CategoryName:  original.CategoryName,
		Concept:       concept,
		Subtotal:      original.Subtotal.Neg(),
		Tax:           original.Tax.Neg(),
		Total:         original.Total.Neg(),
		IssueDate:     now,
		ResponsibleID: original.ResponsibleID,
		RefundOfID:    &originalID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	refund.Recompute()

	if err := s.repo.Insert(ctx, s.db, refund); err != nil {
		return nil, err
	}

	s.log.Info("refund record created",
		zap.String("company_id", refund.CompanyID.String()),
		zap.String("original_id", originalID.String()),
		zap.String("refund_id", refund.ID.String()))
	return refund, nil
}

func (s *Service) load(ctx context.Context, companyIDRaw, idRaw string) (*domain.FinancialRecord, error) {
	companyID, err := parseID(companyIDRaw, domain.ErrInvalidCompany)
	if err != nil {
		return nil, err
	}
	id, err := parseID(idRaw, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// persist recomputes the derived state from the record's current artifacts,
// enforces the persist preconditions for that state, then stores the record.
func (s *Service) persist(ctx context.Context, record *domain.FinancialRecord) (*domain.FinancialRecord, error) {
	state := domain.DeriveState(record.Artifacts)
	if err := domain.ValidatePersist(record, state, s.requireLedgerAccount); err != nil {
		return nil, err
	}
	record.Recompute()
	record.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}
