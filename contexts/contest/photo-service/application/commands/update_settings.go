package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "vestiaire/contexts/contest/photo-service/application"
	"vestiaire/contexts/contest/photo-service/domain/entities"
	domainerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	"vestiaire/contexts/contest/photo-service/ports"
	"vestiaire/internal/shared/principal"
)

type UpdateSettingsCommand struct {
	Actor         principal.Principal
	VotingOpen    *bool
	RankingPublic *bool
	Theme         *string
	Deadline      *time.Time
	Rewards       *string
}

// UpdateSettingsUseCase patches the contest configuration. Nil fields keep
// their current value, so flipping one flag never clobbers the others.
type UpdateSettingsUseCase struct {
	Settings ports.SettingsRepository
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc UpdateSettingsUseCase) Execute(ctx context.Context, cmd UpdateSettingsCommand) (entities.ContestSettings, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !cmd.Actor.Moderator() {
		return entities.ContestSettings{}, domainerrors.ErrForbidden
	}

	settings, err := uc.Settings.GetSettings(ctx)
	if err != nil {
		return entities.ContestSettings{}, err
	}

	if cmd.VotingOpen != nil {
		settings.VotingOpen = *cmd.VotingOpen
	}
	if cmd.RankingPublic != nil {
		settings.RankingPublic = *cmd.RankingPublic
	}
	if cmd.Theme != nil {
		settings.Theme = strings.TrimSpace(*cmd.Theme)
	}
	if cmd.Deadline != nil {
		deadline := cmd.Deadline.UTC()
		settings.Deadline = &deadline
	}
	if cmd.Rewards != nil {
		settings.Rewards = strings.TrimSpace(*cmd.Rewards)
	}
	now := uc.Clock.Now().UTC()
	settings.UpdatedAt = now

	if err := uc.Settings.SaveSettings(ctx, settings); err != nil {
		return entities.ContestSettings{}, err
	}

	if err := appendContestEvent(ctx, uc.Outbox, uc.IDGen, now, eventSettingsUpdated, contestEntityContest, "contest", map[string]any{
		"voting_open":    settings.VotingOpen,
		"ranking_public": settings.RankingPublic,
		"theme":          settings.Theme,
	}); err != nil {
		logger.Warn("settings event staging failed",
			"event", "contest_settings_event_staging_failed",
			"module", "contest/photo-service",
			"layer", "application",
			"error", err.Error(),
		)
	}

	logger.Info("contest settings updated",
		"event", "contest_settings_updated",
		"module", "contest/photo-service",
		"layer", "application",
		"actor_id", cmd.Actor.UserID,
		"voting_open", settings.VotingOpen,
		"ranking_public", settings.RankingPublic,
	)
	return settings, nil
}
