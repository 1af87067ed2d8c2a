package handlers

import (
	"net/http"

	"github.com/Daniyar05/esports-tournament-system/services"
)

type SeasonHandler struct {
	seasonService services.SeasonService
}

func NewSeasonHandler(seasonService services.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

// CreateHandler обрабатывает POST /seasons
func (h *SeasonHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.seasonService.CreateSeason(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /seasons/{seasonID}
func (h *SeasonHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.seasonService.GetSeasonByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /seasons
func (h *SeasonHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasonService.ListSeasons(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"seasons": seasons}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RenameHandler обрабатывает PUT /seasons/{seasonID}
func (h *SeasonHandler) RenameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.seasonService.RenameSeason(r.Context(), id, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ActivateHandler обрабатывает PATCH /seasons/{seasonID}/activate
func (h *SeasonHandler) ActivateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.seasonService.ActivateSeason(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "season activated"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler обрабатывает DELETE /seasons/{seasonID}
func (h *SeasonHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.seasonService.DeleteSeason(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
