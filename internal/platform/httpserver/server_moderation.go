package httpserver

import (
	"errors"
	"net/http"

	listingerrors "vestiaire/contexts/marketplace/listing-service/domain/errors"
	moderationerrors "vestiaire/contexts/moderation-safety/moderation-service/domain/errors"
	moderationhttp "vestiaire/contexts/moderation-safety/moderation-service/transport/http"
)

func (s *Server) handleModerationQueue(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.moderation.Handler.QueueHandler(r.Context(), actor)
	if err != nil {
		writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModerationDecide(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	var req moderationhttp.DecideRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if err := s.moderation.Handler.DecideHandler(r.Context(), actor, req); err != nil {
		writeModerationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Decisions are executed through the owning context, so its domain errors
// surface here. Listing and photo errors fall through to the per-context
// mappers before the moderation-level cases.
func writeModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, moderationerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, moderationerrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, moderationerrors.ErrUnknownResource):
		writeError(w, http.StatusNotFound, "unknown_resource", err.Error())
	case errors.Is(err, moderationerrors.ErrDependencyUnavailable):
		writeError(w, http.StatusServiceUnavailable, "dependency_unavailable", err.Error())
	case errors.Is(err, listingerrors.ErrListingNotFound),
		errors.Is(err, listingerrors.ErrInvalidTransition),
		errors.Is(err, listingerrors.ErrReasonRequired):
		writeListingDomainError(w, err)
	default:
		writePhotoDomainError(w, err)
	}
}
