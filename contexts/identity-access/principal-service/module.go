package principalservice

import (
	"log/slog"

	"vestiaire/contexts/identity-access/principal-service/application"
	"vestiaire/contexts/identity-access/principal-service/ports"
)

type Module struct {
	Service application.Service
}

type Dependencies struct {
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.Service{
			Verifier: deps.Verifier,
			Logger:   deps.Logger,
		},
	}
}
