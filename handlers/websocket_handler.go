package handlers

import (
	"log"
	"net/http"

	"github.com/Daniyar05/esports-tournament-system/live"
	"github.com/Daniyar05/esports-tournament-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin по списку
		// доверенных доменов фронтенда.
		return true
	},
}

type WebSocketHandler struct {
	hub              *live.Hub
	standingsService services.StandingsService
}

func NewWebSocketHandler(hub *live.Hub, standingsService services.StandingsService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:              hub,
		standingsService: standingsService,
	}
}

// ServeWs обрабатывает GET /ws/standings/{tournamentID}: подключает клиента
// к комнате турнира, по которой идут push-обновления таблицы.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		http.Error(w, "Missing tournamentID", http.StatusBadRequest)
		return
	}

	// Комната создаётся только для существующего турнира.
	if _, err := h.standingsService.Standings(r.Context(), tournamentID, services.MatchAll); err != nil {
		http.NotFound(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection for tournament %s: %v", tournamentID, err)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: tournamentID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	log.Printf("Client registered and pumps started for room %s.", tournamentID)
}
