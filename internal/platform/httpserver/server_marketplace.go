package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"vestiaire/contexts/marketplace/listing-service/domain/entities"
	listingerrors "vestiaire/contexts/marketplace/listing-service/domain/errors"
	listinghttp "vestiaire/contexts/marketplace/listing-service/transport/http"
)

func (s *Server) handleBrowseListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entities.ListingFilter{
		Query:         query.Get("q"),
		Category:      query.Get("category"),
		Size:          query.Get("size"),
		Condition:     query.Get("condition"),
		DonationsOnly: query.Get("donations_only") == "true",
		AvailableOnly: query.Get("available_only") == "true",
	}
	if raw := query.Get("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_min_price", "min_price must be a number")
			return
		}
		filter.MinPrice = &value
	}
	if raw := query.Get("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_max_price", "max_price must be a number")
			return
		}
		filter.MaxPrice = &value
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		filter.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
			return
		}
		filter.Offset = offset
	}

	resp, err := s.listings.Handler.BrowseListingsHandler(r.Context(), filter)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	var req listinghttp.CreateListingRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.listings.Handler.CreateListingHandler(r.Context(), actor, req)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.listings.Handler.GetListingHandler(r.Context(), r.PathValue("listing_id"), actor)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.listings.Handler.DeleteListingHandler(r.Context(), actor, r.PathValue("listing_id")); err != nil {
		writeListingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleModerateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	var req listinghttp.ModerateListingRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if err := s.listings.Handler.ModerateListingHandler(r.Context(), actor, r.PathValue("listing_id"), req); err != nil {
		writeListingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReserveListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.listings.Handler.ReserveListingHandler(r.Context(), actor, r.PathValue("listing_id"))
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleReleaseListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.listings.Handler.ReleaseListingHandler(r.Context(), actor, r.PathValue("listing_id")); err != nil {
		writeListingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.listings.Handler.CloseListingHandler(r.Context(), actor, r.PathValue("listing_id")); err != nil {
		writeListingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.listings.Handler.AddFavoriteHandler(r.Context(), actor, r.PathValue("listing_id")); err != nil {
		writeListingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.listings.Handler.RemoveFavoriteHandler(r.Context(), actor, r.PathValue("listing_id")); err != nil {
		writeListingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyListings(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.listings.Handler.MyListingsHandler(r.Context(), actor)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.listings.Handler.MyReservationHandler(r.Context(), actor)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.resolvePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.listings.Handler.ListFavoritesHandler(r.Context(), actor)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeListingDomainError keeps the three user-facing distinctions apart:
// permission problems, availability problems, and input problems.
func writeListingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listingerrors.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "listing_not_found", err.Error())
	case errors.Is(err, listingerrors.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, "reservation_not_found", err.Error())
	case errors.Is(err, listingerrors.ErrAlreadyReserved):
		writeError(w, http.StatusConflict, "already_reserved", err.Error())
	case errors.Is(err, listingerrors.ErrListingReserved):
		writeError(w, http.StatusConflict, "listing_reserved", err.Error())
	case errors.Is(err, listingerrors.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, listingerrors.ErrSelfReservation):
		writeError(w, http.StatusUnprocessableEntity, "self_reservation", err.Error())
	case errors.Is(err, listingerrors.ErrInvalidListingInput),
		errors.Is(err, listingerrors.ErrPriceRequired),
		errors.Is(err, listingerrors.ErrPriceNotAllowed),
		errors.Is(err, listingerrors.ErrReasonRequired):
		writeError(w, http.StatusBadRequest, "invalid_listing_input", err.Error())
	case errors.Is(err, listingerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
