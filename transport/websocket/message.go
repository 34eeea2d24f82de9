package websocket

import (
	"encoding/json"
)

// Inbound actions.
const (
	actionCreateRoom  = "create_room"
	actionJoinRoom    = "join_room"
	actionMakeMove    = "make_move"
	actionRestartGame = "restart_game"
	actionLeaveRoom   = "leave_room"
)

// Message - envelope for every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
}

type JoinRoomRequest struct {
	RoomID     string `json:"roomId" validate:"required,alphanum,max=32"`
	PlayerName string `json:"playerName"`
}

type MakeMoveRequest struct {
	Row *int `json:"row" validate:"required"`
	Col *int `json:"col" validate:"required"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: payloadJSON})
}
