package httpserver

import (
	"errors"
	"net/http"

	photoerrors "vestiaire/contexts/contest/photo-service/domain/errors"
	photohttp "vestiaire/contexts/contest/photo-service/transport/http"
	voteerrors "vestiaire/contexts/contest/voting-engine/domain/errors"
	votehttp "vestiaire/contexts/contest/voting-engine/transport/http"
)

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	resp, err := s.photos.Handler.GalleryHandler(r.Context())
	if err != nil {
		writePhotoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitPhoto(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	var req photohttp.SubmitPhotoRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.photos.Handler.SubmitPhotoHandler(r.Context(), actor, req)
	if err != nil {
		writePhotoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.photos.Handler.GetPhotoHandler(r.Context(), r.PathValue("photo_id"), actor)
	if err != nil {
		writePhotoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdrawPhoto(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.photos.Handler.WithdrawPhotoHandler(r.Context(), actor, r.PathValue("photo_id")); err != nil {
		writePhotoDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleModeratePhoto(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	var req photohttp.ModeratePhotoRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if err := s.photos.Handler.ModeratePhotoHandler(r.Context(), actor, r.PathValue("photo_id"), req); err != nil {
		writePhotoDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyPhoto(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.photos.Handler.MyPhotoHandler(r.Context(), actor)
	if err != nil {
		writePhotoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.photos.Handler.GetSettingsHandler(r.Context())
	if err != nil {
		writePhotoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	var req photohttp.UpdateSettingsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.photos.Handler.UpdateSettingsHandler(r.Context(), actor, req)
	if err != nil {
		writePhotoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResetContest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.photos.Handler.ResetContestHandler(r.Context(), actor); err != nil {
		writePhotoDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	var req votehttp.CastVoteRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.votes.Handler.CastVoteHandler(r.Context(), actor, req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRetractVote(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.votes.Handler.RetractVoteHandler(r.Context(), actor); err != nil {
		writeVoteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyVote(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.votes.Handler.MyVoteHandler(r.Context(), actor)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.votes.Handler.RankingHandler(r.Context(), actor)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePhotoDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, photoerrors.ErrPhotoNotFound):
		writeError(w, http.StatusNotFound, "photo_not_found", err.Error())
	case errors.Is(err, photoerrors.ErrPhotoAlreadySubmitted):
		writeError(w, http.StatusConflict, "photo_already_submitted", err.Error())
	case errors.Is(err, photoerrors.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, photoerrors.ErrInvalidPhotoInput),
		errors.Is(err, photoerrors.ErrReasonRequired):
		writeError(w, http.StatusBadRequest, "invalid_photo_input", err.Error())
	case errors.Is(err, photoerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVoteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voteerrors.ErrVoteNotFound):
		writeError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, voteerrors.ErrPhotoNotEligible):
		writeError(w, http.StatusConflict, "photo_not_eligible", err.Error())
	case errors.Is(err, voteerrors.ErrSelfVote):
		writeError(w, http.StatusUnprocessableEntity, "self_vote", err.Error())
	case errors.Is(err, voteerrors.ErrVotingClosed):
		writeError(w, http.StatusConflict, "voting_closed", err.Error())
	case errors.Is(err, voteerrors.ErrRankingHidden):
		writeError(w, http.StatusForbidden, "ranking_hidden", err.Error())
	case errors.Is(err, voteerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
