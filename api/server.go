package api

import (
	"akashic/config"
	"akashic/domain/interfaces"
	"akashic/infrastructure/observability"

	"github.com/gin-gonic/gin"
)

// Server bundles the services behind the HTTP surface
type Server struct {
	accounts interfaces.AccountService
	ledger   interfaces.LedgerService
	unlocks  interfaces.UnlockService
	catalog  interfaces.CatalogService
	crafting interfaces.CraftingService
	oracle   interfaces.OracleService
	contact  interfaces.ContactService
	metrics  *observability.MetricsProvider
}

// NewServer creates a new API server
func NewServer(
	accounts interfaces.AccountService,
	ledger interfaces.LedgerService,
	unlocks interfaces.UnlockService,
	catalog interfaces.CatalogService,
	crafting interfaces.CraftingService,
	oracle interfaces.OracleService,
	contact interfaces.ContactService,
	metrics *observability.MetricsProvider,
) *Server {
	return &Server{
		accounts: accounts,
		ledger:   ledger,
		unlocks:  unlocks,
		catalog:  catalog,
		crafting: crafting,
		oracle:   oracle,
		contact:  contact,
		metrics:  metrics,
	}
}

// Router builds the gin engine with all routes and middleware
func (s *Server) Router() *gin.Engine {
	if config.Get().Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	if s.metrics != nil {
		r.Use(RequestMetrics(s.metrics))
	}

	r.GET("/health", s.handleHealth)

	public := r.Group("/api")
	{
		public.POST("/register", s.handleRegister)
		public.POST("/login", s.handleLogin)
		public.GET("/scrolls", s.handleListScrolls)
		public.GET("/mana/packages", s.handleListPackages)
		public.GET("/crafting/recipes", s.handleListRecipes)
		public.POST("/contact", s.handleContact)
	}

	authed := r.Group("/api")
	authed.Use(RequireSession(s.accounts))
	{
		authed.POST("/logout", s.handleLogout)
		authed.GET("/user/me", s.handleMe)

		authed.GET("/user/scrolls", s.handleUserScrolls)
		authed.POST("/scrolls/:id/unlock", s.handleUnlockScroll)

		authed.GET("/user/mana", s.handleBalance)
		authed.GET("/user/mana/transactions", s.handleTransactions)
		authed.POST("/user/mana/purchase", s.handlePurchase)

		authed.GET("/user/inventory", s.handleInventory)
		authed.POST("/user/inventory/:id/equip", s.handleEquip)
		authed.GET("/user/crafting/queue", s.handleCraftingQueue)
		authed.POST("/user/crafting/start", s.handleStartCrafting)
		authed.POST("/user/crafting/claim/:queueId", s.handleClaimCrafting)

		authed.POST("/oracle/ask", s.handleOracleAsk)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
