package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/fincore/internal/account"
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
	"github.com/smallbiznis/fincore/internal/config"
	"github.com/smallbiznis/fincore/internal/finrecord"
	finrecorddomain "github.com/smallbiznis/fincore/internal/finrecord/domain"
	"github.com/smallbiznis/fincore/internal/ledger"
	ledgerdomain "github.com/smallbiznis/fincore/internal/ledger/domain"
	"github.com/smallbiznis/fincore/internal/posting"
	postingdomain "github.com/smallbiznis/fincore/internal/posting/domain"
	"github.com/smallbiznis/fincore/internal/provision"
	provisiondomain "github.com/smallbiznis/fincore/internal/provision/domain"
	"github.com/smallbiznis/fincore/internal/statement"
	statementdomain "github.com/smallbiznis/fincore/internal/statement/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	account.Module,
	posting.Module,
	ledger.Module,
	statement.Module,
	finrecord.Module,
	provision.Module,
	fx.Provide(NewMetrics),
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	metrics      *Metrics
	accountSvc   accountdomain.Service
	postingSvc   postingdomain.Service
	ledgerSvc    ledgerdomain.Service
	statementSvc statementdomain.Service
	recordSvc    finrecorddomain.Service
	provisionSvc provisiondomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	Metrics      *Metrics
	AccountSvc   accountdomain.Service
	PostingSvc   postingdomain.Service
	LedgerSvc    ledgerdomain.Service
	StatementSvc statementdomain.Service
	RecordSvc    finrecorddomain.Service
	ProvisionSvc provisiondomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		metrics:      p.Metrics,
		accountSvc:   p.AccountSvc,
		postingSvc:   p.PostingSvc,
		ledgerSvc:    p.LedgerSvc,
		statementSvc: p.StatementSvc,
		recordSvc:    p.RecordSvc,
		provisionSvc: p.ProvisionSvc,
	}
}

// RegisterAPIRoutes mounts the company-scoped API.
func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")
	companies := api.Group("/companies/:company_id")

	companies.GET("/accounts", s.ListAccounts)
	companies.POST("/accounts", s.CreateAccount)

	companies.POST("/polizas", s.CreatePoliza)
	companies.POST("/polizas/:poliza_id/apply", s.ApplyPoliza)

	companies.GET("/reports/trial-balance", s.GetTrialBalance)
	companies.GET("/reports/balance-sheet", s.GetBalanceSheet)
	companies.GET("/reports/income-statement", s.GetIncomeStatement)

	companies.GET("/records", s.ListRecords)
	companies.POST("/records", s.CreateRecord)
	companies.GET("/records/:record_id", s.GetRecord)
	companies.PATCH("/records/:record_id", s.UpdateRecord)
	companies.GET("/records/:record_id/state", s.GetRecordState)
	companies.POST("/records/:record_id/artifacts", s.AttachArtifact)
	companies.DELETE("/records/:record_id/artifacts/:kind", s.DetachArtifact)
	companies.POST("/records/:record_id/void", s.VoidRecord)
	companies.POST("/records/:record_id/refund", s.RefundRecord)

	companies.POST("/events/:event_id/provisions", s.CreateProvision)
	companies.GET("/events/:event_id/reconciliation", s.GetReconciliation)
	companies.POST("/events/:event_id/provisions/adjust", s.AdjustProvisions)
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
