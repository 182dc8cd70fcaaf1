package handler

import (
	"log/slog"

	"smart-bulb-backend/internal/config"
	"smart-bulb-backend/internal/metrics"
	"smart-bulb-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Account      *AccountHandler
	Bulb         *BulbHandler
	Verification *VerificationHandler
	Health       *HealthHandler
}

// NewRouter builds the engine with middleware and every route registered.
func NewRouter(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(m),
		middleware.Recovery(log),
		middleware.CORS(cfg.CORS),
	)

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// Verification
	r.POST("/send_code", h.Verification.SendCode)

	// Accounts
	r.POST("/check_email", h.Account.CheckEmail)
	r.POST("/register", h.Account.Register)
	r.POST("/login", h.Account.Login)
	r.POST("/reset_password", h.Account.ResetPassword)

	// Bulbs
	r.POST("/add_bulb", h.Bulb.AddBulb)
	r.POST("/get_bulbs", h.Bulb.GetBulbs)
	r.POST("/update_bulb", h.Bulb.UpdateBulb)
	r.POST("/delete_bulb", h.Bulb.DeleteBulb)

	return r
}
