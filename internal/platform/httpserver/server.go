package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"

	photoservice "vestiaire/contexts/contest/photo-service"
	votingengine "vestiaire/contexts/contest/voting-engine"
	principalservice "vestiaire/contexts/identity-access/principal-service"
	listingservice "vestiaire/contexts/marketplace/listing-service"
	moderationservice "vestiaire/contexts/moderation-safety/moderation-service"
	"vestiaire/internal/platform/blobstore"
	_ "vestiaire/internal/platform/httpserver/docs"
	"vestiaire/internal/shared/principal"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	validate   *validator.Validate
	principals principalservice.Module
	listings   listingservice.Module
	photos     photoservice.Module
	votes      votingengine.Module
	moderation moderationservice.Module
	uploads    *blobstore.Store
}

type Modules struct {
	Principals principalservice.Module
	Listings   listingservice.Module
	Photos     photoservice.Module
	Votes      votingengine.Module
	Moderation moderationservice.Module
	Uploads    *blobstore.Store
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		principals: modules.Principals,
		listings:   modules.Listings,
		photos:     modules.Photos,
		votes:      modules.Votes,
		moderation: modules.Moderation,
		uploads:    modules.Uploads,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /marketplace/listings", s.handleBrowseListings)
	s.mux.HandleFunc("POST /marketplace/listings", s.handleCreateListing)
	s.mux.HandleFunc("GET /marketplace/listings/{listing_id}", s.handleGetListing)
	s.mux.HandleFunc("DELETE /marketplace/listings/{listing_id}", s.handleDeleteListing)
	s.mux.HandleFunc("POST /marketplace/listings/{listing_id}/decision", s.handleModerateListing)
	s.mux.HandleFunc("POST /marketplace/listings/{listing_id}/reserve", s.handleReserveListing)
	s.mux.HandleFunc("DELETE /marketplace/listings/{listing_id}/reserve", s.handleReleaseListing)
	s.mux.HandleFunc("POST /marketplace/listings/{listing_id}/close", s.handleCloseListing)
	s.mux.HandleFunc("PUT /marketplace/listings/{listing_id}/favorite", s.handleAddFavorite)
	s.mux.HandleFunc("DELETE /marketplace/listings/{listing_id}/favorite", s.handleRemoveFavorite)
	s.mux.HandleFunc("GET /marketplace/my/listings", s.handleMyListings)
	s.mux.HandleFunc("GET /marketplace/my/reservation", s.handleMyReservation)
	s.mux.HandleFunc("GET /marketplace/my/favorites", s.handleListFavorites)

	s.mux.HandleFunc("GET /contest/photos", s.handleGallery)
	s.mux.HandleFunc("POST /contest/photos", s.handleSubmitPhoto)
	s.mux.HandleFunc("GET /contest/photos/{photo_id}", s.handleGetPhoto)
	s.mux.HandleFunc("DELETE /contest/photos/{photo_id}", s.handleWithdrawPhoto)
	s.mux.HandleFunc("POST /contest/photos/{photo_id}/decision", s.handleModeratePhoto)
	s.mux.HandleFunc("GET /contest/my/photo", s.handleMyPhoto)
	s.mux.HandleFunc("GET /contest/settings", s.handleGetSettings)
	s.mux.HandleFunc("PATCH /contest/settings", s.handleUpdateSettings)
	s.mux.HandleFunc("POST /contest/reset", s.handleResetContest)

	s.mux.HandleFunc("POST /contest/votes", s.handleCastVote)
	s.mux.HandleFunc("DELETE /contest/votes", s.handleRetractVote)
	s.mux.HandleFunc("GET /contest/my/vote", s.handleMyVote)
	s.mux.HandleFunc("GET /contest/ranking", s.handleRanking)

	s.mux.HandleFunc("GET /moderation/queue", s.handleModerationQueue)
	s.mux.HandleFunc("POST /moderation/decisions", s.handleModerationDecide)

	s.mux.HandleFunc("POST /uploads", s.handleUpload)
}

// resolvePrincipal extracts the caller identity from the request. A missing
// identity yields the zero principal; handlers that require authentication
// check Anonymous themselves through the application layer.
func (s *Server) resolvePrincipal(w http.ResponseWriter, r *http.Request) (principal.Principal, bool) {
	p, _, err := s.principals.Service.Resolve(
		r.Context(),
		r.Header.Get("Authorization"),
		r.Header.Get("X-User-Id"),
		r.Header.Get("X-User-Role"),
	)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", "bearer token rejected")
		return principal.Principal{}, false
	}
	return p, true
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	if err := s.validate.Struct(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
