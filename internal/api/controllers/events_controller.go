package controllers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"pottypal/internal/services"
	"pottypal/pkg/realtime"
	"pottypal/pkg/utils"
)

const keepAliveInterval = 30 * time.Second

type EventsController struct {
	childService services.ChildServiceInterface
	hub          *realtime.Hub
}

func NewEventsController(childService services.ChildServiceInterface, hub *realtime.Hub) *EventsController {
	return &EventsController{
		childService: childService,
		hub:          hub,
	}
}

// Stream is the change feed: a server-sent event stream of entity
// changes for one child. The subscription is torn down when the client
// disconnects.
func (ctl *EventsController) Stream(c *gin.Context) {
	childId := c.Param("childId")

	if _, err := ctl.childService.GetChild(c.Request.Context(), c.GetString("user_id"), childId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	events, cancel := ctl.hub.Subscribe(childId)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", event)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", nil)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
