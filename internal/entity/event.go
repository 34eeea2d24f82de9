package entity

// Outbound event names.
const (
	EventRoomCreated          = "room_created"
	EventJoinError            = "join_error"
	EventGameStart            = "game_start"
	EventMoveMade             = "move_made"
	EventGameRestarted        = "game_restarted"
	EventOpponentDisconnected = "opponent_disconnected"
	EventOpponentLeft         = "opponent_left"
	EventError                = "error"
)

// Event - one outbound message addressed to a single player.
type Event struct {
	Name     string
	PlayerID string
	Payload  any
}

type RoomCreatedPayload struct {
	RoomID       string `json:"roomId"`
	PlayerName   string `json:"playerName"`
	PlayerNumber int    `json:"playerNumber"`
}

type PlayerView struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type GameStartPayload struct {
	RoomID        string       `json:"roomId"`
	Board         Board        `json:"board"`
	CurrentPlayer int          `json:"currentPlayer"`
	YourNumber    int          `json:"yourNumber"`
	Players       []PlayerView `json:"players"`
}

// MoveMadePayload - exactly one of CurrentPlayer and Winner is set.
type MoveMadePayload struct {
	Row           int  `json:"row"`
	Col           int  `json:"col"`
	Player        int  `json:"player"`
	CurrentPlayer *int `json:"currentPlayer,omitempty"`
	Winner        *int `json:"winner,omitempty"`
	Draw          bool `json:"draw,omitempty"`
}

type GameRestartedPayload struct {
	Board         Board `json:"board"`
	CurrentPlayer int   `json:"currentPlayer"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Action  string `json:"action"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type EmptyPayload struct{}

// PlayerViews - roster of the seated players in slot order.
func (that *Room) PlayerViews() []PlayerView {
	views := make([]PlayerView, 0, len(that.Players))
	for i, player := range that.Players {
		if player == nil {
			continue
		}

		views = append(views, PlayerView{Number: i + 1, Name: player.Name})
	}

	return views
}
