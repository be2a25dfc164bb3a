package photoservice

import (
	"log/slog"

	httpadapter "vestiaire/contexts/contest/photo-service/adapters/http"
	"vestiaire/contexts/contest/photo-service/adapters/memory"
	"vestiaire/contexts/contest/photo-service/application/commands"
	"vestiaire/contexts/contest/photo-service/application/queries"
	"vestiaire/contexts/contest/photo-service/application/workers"
	"vestiaire/contexts/contest/photo-service/domain/entities"
	"vestiaire/contexts/contest/photo-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Photos       ports.PhotoRepository
	Settings     ports.SettingsRepository
	Votes        ports.VotePurger
	Outbox       ports.OutboxWriter
	OutboxReader ports.OutboxRepository
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submitPhoto := commands.SubmitPhotoUseCase{
		Photos: deps.Photos,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	moderatePhoto := commands.ModeratePhotoUseCase{
		Photos: deps.Photos,
		Votes:  deps.Votes,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	withdrawPhoto := commands.WithdrawPhotoUseCase{
		Photos: deps.Photos,
		Votes:  deps.Votes,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	updateSettings := commands.UpdateSettingsUseCase{
		Settings: deps.Settings,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	resetContest := commands.ResetContestUseCase{
		Photos: deps.Photos,
		Votes:  deps.Votes,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	photoQueries := queries.PhotoQueries{
		Photos:   deps.Photos,
		Settings: deps.Settings,
	}

	module := Module{
		Handler: httpadapter.Handler{
			SubmitPhoto:    submitPhoto,
			ModeratePhoto:  moderatePhoto,
			WithdrawPhoto:  withdrawPhoto,
			UpdateSettings: updateSettings,
			ResetContest:   resetContest,
			Queries:        photoQueries,
			Logger:         deps.Logger,
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
func NewInMemoryModule(seed []entities.ContestPhoto, votes ports.VotePurger, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Photos:       store,
		Settings:     store,
		Votes:        votes,
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
