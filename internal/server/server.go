package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/lodgeworks/tesoro/internal/config"
	"github.com/lodgeworks/tesoro/internal/dashboard"
	"github.com/lodgeworks/tesoro/internal/ledger"
	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	"github.com/lodgeworks/tesoro/internal/member"
	memberdomain "github.com/lodgeworks/tesoro/internal/member/domain"
	"github.com/lodgeworks/tesoro/internal/organization"
	lodgedomain "github.com/lodgeworks/tesoro/internal/organization/domain"
	"github.com/lodgeworks/tesoro/internal/pricing"
	pricingdomain "github.com/lodgeworks/tesoro/internal/pricing/domain"
	"github.com/lodgeworks/tesoro/internal/treasury"
	treasurydomain "github.com/lodgeworks/tesoro/internal/treasury/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(newSnowflakeNode),
	organization.Module,
	member.Module,
	pricing.Module,
	ledger.Module,
	treasury.Module,
	dashboard.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
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

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	lodgeSvc     lodgedomain.Service
	memberSvc    memberdomain.Service
	pricingSvc   pricingdomain.Service
	ledgerSvc    ledgerdomain.Service
	treasurySvc  treasurydomain.Service
	dashboardSvc dashboard.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	LodgeSvc     lodgedomain.Service
	MemberSvc    memberdomain.Service
	PricingSvc   pricingdomain.Service
	LedgerSvc    ledgerdomain.Service
	TreasurySvc  treasurydomain.Service
	DashboardSvc dashboard.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		log:          p.Log.Named("http.server"),
		genID:        p.GenID,
		lodgeSvc:     p.LodgeSvc,
		memberSvc:    p.MemberSvc,
		pricingSvc:   p.PricingSvc,
		ledgerSvc:    p.LedgerSvc,
		treasurySvc:  p.TreasurySvc,
		dashboardSvc: p.DashboardSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Lodges --------
	api.GET("/lodges", s.ListLodges)
	api.POST("/lodges", s.CreateLodge)
	api.GET("/lodges/:id", s.GetLodgeByID)
	api.PATCH("/lodges/:id", s.UpdateLodge)

	scoped := api.Group("", s.LodgeContext())

	// -------- Members --------
	scoped.GET("/members", s.ListMembers)
	scoped.POST("/members", s.CreateMember)
	scoped.GET("/members/:id", s.GetMemberByID)
	scoped.PATCH("/members/:id", s.UpdateMember)
	scoped.POST("/members/:id/activate", s.ActivateMember)
	scoped.POST("/members/:id/deactivate", s.DeactivateMember)

	// -------- Price history --------
	scoped.GET("/price-history", s.ListPriceHistory)
	scoped.POST("/price-history", s.AddPriceHistory)
	scoped.PATCH("/price-history", s.UpdatePriceHistory)
	scoped.DELETE("/price-history/:start_period", s.RemovePriceHistory)

	// -------- Dues ledger --------
	scoped.GET("/members/:id/ledger", s.ListLedgerEntries)
	scoped.POST("/members/:id/sync", s.SyncMember)
	scoped.POST("/members/:id/payments", s.RecordPayment)
	scoped.DELETE("/members/:id/ledger/:period", s.DeleteLedgerEntry)
	scoped.GET("/members/:id/stats", s.GetMemberStats)
	scoped.POST("/ledger/sync", s.SyncRoster)
	scoped.POST("/ledger/extra-fees", s.ApplyExtraFee)

	// -------- Treasury --------
	scoped.GET("/treasury", s.ListTreasuryEntries)
	scoped.POST("/treasury", s.CreateTreasuryEntry)
	scoped.PATCH("/treasury/:id", s.UpdateTreasuryEntry)
	scoped.DELETE("/treasury/:id", s.DeleteTreasuryEntry)
	scoped.GET("/treasury/balances", s.GetTreasuryBalances)
	scoped.GET("/treasury/history", s.GetTreasuryHistory)
	scoped.GET("/treasury/financials", s.GetGlobalFinancials)

	// -------- Dashboard --------
	scoped.GET("/dashboard", s.GetDashboard)
}
