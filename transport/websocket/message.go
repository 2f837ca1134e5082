package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type setNameRequest struct {
	Name string `json:"name"`
}

type readyRequest struct {
	RoomID string       `json:"roomId"`
	Board  entity.Board `json:"board"`
	Name   string       `json:"name,omitempty"`
}

// targetIndex is a pointer so that a missing index is told apart from cell 0.
type attackRequest struct {
	RoomID      string `json:"roomId"`
	TargetIndex *int   `json:"targetIndex"`
}

type attackResultRequest struct {
	RoomID      string `json:"roomId"`
	TargetIndex *int   `json:"targetIndex"`
	Hit         bool   `json:"hit"`
}

type shipSunkRequest struct {
	RoomID       string `json:"roomId"`
	ShipName     string `json:"shipName"`
	AttackerName string `json:"attackerName"`
}

func encode(action string, payload any) ([]byte, error) {
	msg := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		msg.Payload = raw
	}

	return json.Marshal(msg)
}
