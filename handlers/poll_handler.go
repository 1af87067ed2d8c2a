package handlers

import (
	"net/http"
	"time"

	"github.com/Daniyar05/esports-tournament-system/middleware"
	"github.com/Daniyar05/esports-tournament-system/services"
)

type PollHandler struct {
	pollService services.PollService
}

func NewPollHandler(pollService services.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// CreateHandler обрабатывает POST /tournaments/{tournamentID}/polls
func (h *PollHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Question string    `json:"question"`
		Options  []string  `json:"options"`
		ClosesAt time.Time `json:"closes_at"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	poll, err := h.pollService.CreatePoll(r.Context(), services.CreatePollInput{
		TournamentID: tournamentID,
		Question:     input.Question,
		Options:      input.Options,
		ClosesAt:     input.ClosesAt,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"poll": poll}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /tournaments/{tournamentID}/polls
func (h *PollHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	polls, err := h.pollService.ListPollsByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"polls": polls}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// VoteHandler обрабатывает POST /polls/{pollID}/votes
func (h *PollHandler) VoteHandler(w http.ResponseWriter, r *http.Request) {
	pollID, err := getStringIDFromURL(r, "pollID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to vote")
		return
	}

	var input struct {
		OptionIndex int `json:"option_index"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	vote, err := h.pollService.Vote(r.Context(), pollID, currentUserID, input.OptionIndex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"vote": vote}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CloseHandler обрабатывает POST /polls/{pollID}/close
func (h *PollHandler) CloseHandler(w http.ResponseWriter, r *http.Request) {
	pollID, err := getStringIDFromURL(r, "pollID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.pollService.ClosePoll(r.Context(), pollID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "poll closed"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResultsHandler обрабатывает GET /polls/{pollID}/results
func (h *PollHandler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	pollID, err := getStringIDFromURL(r, "pollID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.pollService.Results(r.Context(), pollID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
