package moderationservice

import (
	"log/slog"

	httpadapter "vestiaire/contexts/moderation-safety/moderation-service/adapters/http"
	"vestiaire/contexts/moderation-safety/moderation-service/application"
	"vestiaire/contexts/moderation-safety/moderation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Listings      ports.ListingQueueSource
	Photos        ports.PhotoQueueSource
	ListingClient ports.ListingDecisionClient
	PhotoClient   ports.PhotoDecisionClient
	Clock         ports.Clock
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Listings:      deps.Listings,
		Photos:        deps.Photos,
		ListingClient: deps.ListingClient,
		PhotoClient:   deps.PhotoClient,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}
