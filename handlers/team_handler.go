package handlers

import (
	"errors"
	"net/http"

	"github.com/Daniyar05/esports-tournament-system/middleware"
	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/Daniyar05/esports-tournament-system/services"
)

type TeamHandler struct {
	teamService      services.TeamService
	standingsService services.StandingsService
}

func NewTeamHandler(teamService services.TeamService, standingsService services.StandingsService) *TeamHandler {
	return &TeamHandler{
		teamService:      teamService,
		standingsService: standingsService,
	}
}

// CreateHandler обрабатывает POST /tournaments/{tournamentID}/teams —
// самозапись: взнос списывается с кошелька текущего пользователя.
func (h *TeamHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to register a team")
		return
	}

	var input struct {
		Players []models.Player `json:"players"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), currentUserID, services.CreateTeamInput{
		TournamentID: tournamentID,
		Players:      input.Players,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BulkImportHandler обрабатывает POST /tournaments/{tournamentID}/teams/bulk
func (h *TeamHandler) BulkImportHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Rosters [][]models.Player `json:"rosters"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Rosters) == 0 {
		badRequestResponse(w, r, errors.New("rosters must not be empty"))
		return
	}

	teams, err := h.teamService.BulkImportTeams(r.Context(), tournamentID, input.Rosters)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /teams/{teamID}
func (h *TeamHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /tournaments/{tournamentID}/teams
func (h *TeamHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.teamService.ListTeamsByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePlayersHandler обрабатывает PUT /teams/{teamID}/players
func (h *TeamHandler) UpdatePlayersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Players []models.Player `json:"players"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.UpdatePlayers(r.Context(), id, input.Players)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.standingsService.BroadcastStandings(r.Context(), team.TournamentID)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordScoreHandler обрабатывает PUT /teams/{teamID}/matches/{matchNo}
func (h *TeamHandler) RecordScoreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchNo, err := getStringIDFromURL(r, "matchNo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordMatchScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.RecordMatchScore(r.Context(), id, matchNo, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.standingsService.BroadcastStandings(r.Context(), team.TournamentID)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReconcileHandler обрабатывает POST /tournaments/{tournamentID}/teams/reconcile
func (h *TeamHandler) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	fixed, err := h.teamService.ReconcileStats(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if fixed > 0 {
		h.standingsService.BroadcastStandings(r.Context(), tournamentID)
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams_fixed": fixed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadLogoHandler обрабатывает POST /teams/{teamID}/logo
func (h *TeamHandler) UploadLogoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxLogoUploadBytes); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form, logo file too large or malformed"))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, errors.New("logo file is required"))
		return
	}
	defer file.Close()

	team, err := h.teamService.UploadLogo(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler обрабатывает DELETE /teams/{teamID}
func (h *TeamHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getStringIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.standingsService.BroadcastStandings(r.Context(), team.TournamentID)
	w.WriteHeader(http.StatusNoContent)
}
