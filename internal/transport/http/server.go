package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkravets/codeshare-server/internal/config"
	"github.com/mkravets/codeshare-server/internal/core"
	"github.com/mkravets/codeshare-server/internal/store"
)

// NewServer builds the HTTP server: websocket endpoint, liveness probe and
// the small read-only REST surface.
func NewServer(hub *core.Hub, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "Backend is running.")
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	wsHandler := NewWSHandler(hub, logger)
	router.GET("/ws", gin.WrapH(wsHandler))

	rooms := NewRoomHandlers(hub, st, cfg.HistoryLimit, logger)
	api := router.Group("/api")
	{
		api.GET("/rooms/:id/members", rooms.Members)
		api.GET("/rooms/:id/runs", rooms.Runs)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
