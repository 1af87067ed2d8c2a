package handlers

import (
	"fmt"
	"net/http"

	"github.com/Daniyar05/esports-tournament-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	exportService    services.ExportService
}

func NewStandingsHandler(standingsService services.StandingsService, exportService services.ExportService) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
		exportService:    exportService,
	}
}

// GetHandler обрабатывает GET /tournaments/{tournamentID}/standings?match=all|N
func (h *StandingsHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matchNo := r.URL.Query().Get("match")
	view, err := h.standingsService.Standings(r.Context(), tournamentID, matchNo)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportHandler обрабатывает GET /tournaments/{tournamentID}/standings/export
// и отдаёт xlsx-файл со сводной таблицей.
func (h *StandingsHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	buf, filename, err := h.exportService.StandingsWorkbook(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		serverErrorResponse(w, r, err)
	}
}
