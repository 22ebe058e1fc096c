package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/resto-backoffice/floor"
	"github.com/yeremiapane/resto-backoffice/middlewares"
	"github.com/yeremiapane/resto-backoffice/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Sesuaikan dengan kebutuhan keamanan
	},
}

// FloorHandler -> endpoint WebSocket untuk layar host dan staff
func FloorHandler(hub *floor.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(middlewares.ContextRole)
		if role != models.RoleAdmin && role != models.RoleStaff && role != models.RoleHost {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		hub.Register(ws, role)

		// screens only listen; reading detects the disconnect
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(ws)
	}
}
