// Package status exposes a read-only view of the engine for operators.
package status

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lobbywatch/internal/app"
)

func SetupRouter(mode string, view *app.ViewStore, health *app.StreamHealth) *gin.Engine {
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		if !health.Up() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"stream": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"stream": "up"})
	})

	r.GET("/status", func(c *gin.Context) {
		lobbies := view.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"stream_up": health.Up(),
			"games":     len(lobbies),
			"lobbies":   lobbies,
		})
	})

	return r
}
