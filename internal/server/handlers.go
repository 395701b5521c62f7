package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/activlink/devicematch/internal/locale"
	"github.com/activlink/devicematch/internal/match"
	"github.com/activlink/devicematch/internal/models"
	"go.uber.org/zap"
)

// handleMatch runs the match pipeline: embed the query, pick the best catalog
// category, then attach a localized title. Matcher failures are fatal to the
// request; title resolution failures never are.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req models.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("match request", zap.String("query", req.Query), zap.String("locale", req.Locale))

	result, err := s.matcher.Match(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, match.ErrNoCategories) {
			s.respondError(w, http.StatusInternalServerError, match.ErrNoCategories.Error())
			return
		}
		s.logger.Error("match failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := models.MatchResponse{
		Category:   result.Category,
		Similarity: result.Similarity,
	}
	if res := s.resolver.Resolve(r.Context(), result.Category, req.Locale); res.Found {
		resp.LocaleTitle = &res.Title
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string][]string{"categories": s.catalog.Names()})
}

func (s *Server) handleLocales(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, locale.Mapping())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories":             s.catalog.Len(),
		"embedding_dimensions":   s.catalog.Dimensions(),
		"embedding_model":        s.config.Embedding.Model,
		"title_store_configured": s.config.Titles.URI != "",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
