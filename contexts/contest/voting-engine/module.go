package votingengine

import (
	"log/slog"

	httpadapter "vestiaire/contexts/contest/voting-engine/adapters/http"
	"vestiaire/contexts/contest/voting-engine/adapters/memory"
	"vestiaire/contexts/contest/voting-engine/application/commands"
	"vestiaire/contexts/contest/voting-engine/application/queries"
	"vestiaire/contexts/contest/voting-engine/application/workers"
	"vestiaire/contexts/contest/voting-engine/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Purger   commands.PurgeVotesUseCase
	Relay    workers.OutboxRelay
	Consumer workers.PhotoLifecycleConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Votes        ports.VoteRepository
	Directory    ports.PhotoDirectory
	Gate         ports.ContestGate
	Cache        ports.RankingCache
	Subscriber   ports.EventSubscriber
	Outbox       ports.OutboxWriter
	OutboxReader ports.OutboxRepository
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	castVote := commands.CastVoteUseCase{
		Votes:     deps.Votes,
		Directory: deps.Directory,
		Gate:      deps.Gate,
		Cache:     deps.Cache,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	retractVote := commands.RetractVoteUseCase{
		Votes:  deps.Votes,
		Gate:   deps.Gate,
		Cache:  deps.Cache,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	purger := commands.PurgeVotesUseCase{
		Votes:  deps.Votes,
		Cache:  deps.Cache,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	rankingQueries := queries.RankingQueries{
		Votes:     deps.Votes,
		Directory: deps.Directory,
		Gate:      deps.Gate,
		Cache:     deps.Cache,
		Logger:    deps.Logger,
	}

	module := Module{
		Handler: httpadapter.Handler{
			CastVote:    castVote,
			RetractVote: retractVote,
			Queries:     rankingQueries,
			Logger:      deps.Logger,
		},
		Purger: purger,
	}
	if deps.OutboxReader != nil && deps.Publisher != nil {
		module.Relay = workers.OutboxRelay{
			Outbox:    deps.OutboxReader,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		}
	}
	if deps.Subscriber != nil {
		module.Consumer = workers.PhotoLifecycleConsumer{
			Subscriber: deps.Subscriber,
			Votes:      deps.Votes,
			Cache:      deps.Cache,
			Logger:     deps.Logger,
		}
	}
	return module
}

// NewInMemoryModule wires the module onto a single in-memory store, which
// also serves as ranking cache, clock, and id source.
func NewInMemoryModule(directory ports.PhotoDirectory, gate ports.ContestGate, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:        store,
		Directory:    directory,
		Gate:         gate,
		Cache:        store,
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
