package http

import (
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const readHeaderTimeout = 5 * time.Second

// NewServer builds the read-only status API for a running bot.
func NewServer(addr string, session SessionView, commands CommandView, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              addr,
		Handler:           NewRouter(session, commands, logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// NewRouter wires the status routes on a gin engine.
func NewRouter(session SessionView, commands CommandView, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	status := NewStatusHandlers(session, commands, logger)
	api := router.Group("/api")
	api.GET("/members", status.Members)
	api.GET("/members/:id", status.Member)
	api.GET("/commands", status.Commands)
	api.GET("/commands/:name", status.Command)

	return router
}

func healthHandler(c *gin.Context) {
	_, _ = fmt.Fprint(c.Writer, "ok")
}
