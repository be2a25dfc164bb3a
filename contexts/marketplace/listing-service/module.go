package listingservice

import (
	"log/slog"

	httpadapter "vestiaire/contexts/marketplace/listing-service/adapters/http"
	"vestiaire/contexts/marketplace/listing-service/adapters/memory"
	"vestiaire/contexts/marketplace/listing-service/application/commands"
	"vestiaire/contexts/marketplace/listing-service/application/queries"
	"vestiaire/contexts/marketplace/listing-service/application/workers"
	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	"vestiaire/contexts/marketplace/listing-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Listings     ports.ListingRepository
	Reservations ports.ReservationRepository
	Favorites    ports.FavoriteRepository
	Outbox       ports.OutboxWriter
	OutboxReader ports.OutboxRepository
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createListing := commands.CreateListingUseCase{
		Listings: deps.Listings,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	moderateListing := commands.ModerateListingUseCase{
		Listings: deps.Listings,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	reserveListing := commands.ReserveListingUseCase{
		Listings:     deps.Listings,
		Reservations: deps.Reservations,
		Outbox:       deps.Outbox,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	closeListing := commands.CloseListingUseCase{
		Listings: deps.Listings,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	deleteListing := commands.DeleteListingUseCase{
		Listings: deps.Listings,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	favoriteListing := commands.FavoriteListingUseCase{
		Listings:  deps.Listings,
		Favorites: deps.Favorites,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	listingQueries := queries.ListingQueries{
		Listings:     deps.Listings,
		Reservations: deps.Reservations,
		Favorites:    deps.Favorites,
	}

	module := Module{
		Handler: httpadapter.Handler{
			CreateListing:   createListing,
			ModerateListing: moderateListing,
			ReserveListing:  reserveListing,
			CloseListing:    closeListing,
			DeleteListing:   deleteListing,
			FavoriteListing: favoriteListing,
			Queries:         listingQueries,
			Logger:          deps.Logger,
		},
	}
	if deps.OutboxReader != nil && deps.Publisher != nil {
		module.Relay = workers.OutboxRelay{
			Outbox:    deps.OutboxReader,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		}
	}
	return module
}

// NewInMemoryModule wires the module onto a single in-memory store, which
// also serves as clock and id source for deterministic local runs.
func NewInMemoryModule(seed []entities.Listing, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Listings:     store,
		Reservations: store,
		Favorites:    store,
		Outbox:       store,
		OutboxReader: store,
		Publisher:    publisher,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
