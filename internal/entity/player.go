package entity

const DefaultPlayerName = "Anonymous"

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	RoomID string `json:"room_id,omitempty"`
}

func NewPlayer(id string) *Player {
	return &Player{ID: id}
}

// DisplayName - returns the chosen name or the placeholder when none was set.
func (that *Player) DisplayName() string {
	if that.Name == "" {
		return DefaultPlayerName
	}

	return that.Name
}

func (that *Player) HasName() bool {
	return that.Name != ""
}

func (that *Player) InRoom() bool {
	return that.RoomID != ""
}
