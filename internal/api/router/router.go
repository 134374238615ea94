package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/goalpulse/reminder-service/internal/api/handlers/bridge"
	"github.com/goalpulse/reminder-service/internal/api/handlers/reminder"
	"github.com/goalpulse/reminder-service/internal/api/handlers/scan"
)

func New(reminderHandler *reminder.Handler, scanHandler *scan.Handler, bridgeHandler *bridge.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")

	reminders := api.Group("/reminders")

	reminders.POST("/", reminderHandler.Create)
	reminders.GET("/", reminderHandler.GetAll)
	reminders.GET("/:id", reminderHandler.Get)
	reminders.GET("/:id/status", reminderHandler.GetStatus)
	reminders.POST("/:id/ack", reminderHandler.Acknowledge)
	reminders.DELETE("/:id", reminderHandler.Cancel)

	api.POST("/scan", scanHandler.Trigger)

	br := api.Group("/bridge")

	br.POST("/connect", bridgeHandler.Connect)
	br.DELETE("/connect/:instance_id", bridgeHandler.Disconnect)
	br.POST("/messages/:instance_id", bridgeHandler.Send)
	br.GET("/messages/:instance_id", bridgeHandler.Poll)

	return e
}
