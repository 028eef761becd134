package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cafebot/configs"
	"cafebot/controllers"
	"cafebot/middlewares"
	"cafebot/repository"
	"cafebot/services"
	"cafebot/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Shared state
	sessions := services.NewSessionStore()
	gate := services.NewAvailabilityGate(cfg.OpenHour, cfg.CloseHour, cfg.Timezone)
	hub := ws.NewNotifyHub(cfg.JWTSecret)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.GatewaySecretHash, cfg.JWTSecret, cfg.JWTTTL, cfg.StaffIDs)
	navSvc := services.NewNavigationService(catalogRepo, sessions)
	orderSvc := services.NewOrderService(db, orderRepo, catalogRepo, userRepo, sessions, hub, cfg.StaffIDs)
	intakeSvc := services.NewIntakeService(catalogRepo, sessions, orderSvc.AdminPanel)
	dispatcher := services.NewDispatcher(navSvc, orderSvc, intakeSvc, gate)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	botCtrl := controllers.NewBotController(dispatcher, userRepo)

	// Gateway session (public, guarded by the gateway secret)
	r.POST("/auth/session", authCtrl.OpenSession)

	// Bot surface (per-user JWT)
	bot := r.Group("/bot", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		bot.POST("/action", botCtrl.Action)
		bot.POST("/message", botCtrl.Message)
	}

	// Notification push (token in query; websockets cannot set headers)
	r.GET("/ws/notifications", hub.HandleWebSocket)
}
