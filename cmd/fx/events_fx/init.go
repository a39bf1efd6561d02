package events_fx

import (
	"go.uber.org/fx"
	"pottypal/internal/api/controllers"
	"pottypal/internal/services"
	"pottypal/pkg/realtime"
)

var Module = fx.Provide(
	provideHub, provideEventsController)

func provideHub() *realtime.Hub {
	return realtime.NewHub()
}

func provideEventsController(childService services.ChildServiceInterface, hub *realtime.Hub) *controllers.EventsController {
	return controllers.NewEventsController(childService, hub)
}
