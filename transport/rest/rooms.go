package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

type RoomHandler interface {
	GetRoom(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, _ *http.Request)
}

type roomHandler struct {
	logger  *slog.Logger
	reader  roomReader
	counter roomCounter
}

func NewRoomHandler(logger *slog.Logger, reader roomReader, counter roomCounter) RoomHandler {
	return &roomHandler{
		logger:  logger,
		reader:  reader,
		counter: counter,
	}
}

type roomView struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	Board         entity.Board        `json:"board"`
	CurrentPlayer int                 `json:"currentPlayer"`
	Winner        int                 `json:"winner"`
	Players       []entity.PlayerView `json:"players"`
}

type statsView struct {
	Rooms int `json:"rooms"`
}

type errorView struct {
	Detail string `json:"detail"`
}

func (that *roomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetRoom")

	id := usecase.NormalizeCode(r.PathValue("id"))

	room, err := that.reader.GetByID(r.Context(), id)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		writeJSON(w, http.StatusNotFound, errorView{Detail: "room not found"})
		return
	}

	if err != nil {
		log.Error("failed to get room", "roomID", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorView{Detail: "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, roomView{
		ID:            room.ID,
		Status:        room.Status,
		Board:         room.Board,
		CurrentPlayer: room.CurrentPlayer,
		Winner:        room.Winner,
		Players:       room.PlayerViews(),
	})
}

func (that *roomHandler) Stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statsView{Rooms: that.counter.Count()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
