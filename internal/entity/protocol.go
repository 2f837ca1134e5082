package entity

// Client to server actions.
const (
	ActionSetName      = "set_name"
	ActionFindMatch    = "find_match"
	ActionReady        = "ready"
	ActionAttack       = "attack"
	ActionAttackResult = "attack_result"
	ActionShipSunk     = "ship_sunk"
)

// Server to client actions.
const (
	ActionConnected      = "connected"
	ActionWaiting        = "waiting"
	ActionMatchFound     = "match_found"
	ActionBothReady      = "both_ready"
	ActionIncomingAttack = "incoming_attack"
	ActionAttackFeedback = "attack_feedback"
	ActionYourTurn       = "your_turn"
	ActionOpponentTurn   = "opponent_turn"
	ActionGameWon        = "game_won"
	ActionGameLost       = "game_lost"
	ActionShipDestroyed  = "ship_destroyed"
	ActionOpponentLeft   = "opponent_left"
	ActionError          = "error"
)

const WaitingText = "Waiting for another player..."

type ConnectedPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type WaitingPayload struct {
	Text string `json:"text"`
}

type MatchFoundPayload struct {
	RoomID string `json:"roomId"`
}

type BothReadyPayload struct {
	FirstTurn string            `json:"firstTurn"`
	Names     map[string]string `json:"names,omitempty"`
}

type IncomingAttackPayload struct {
	TargetIndex int    `json:"targetIndex"`
	AttackerID  string `json:"attackerId"`
}

type AttackFeedbackPayload struct {
	TargetIndex int  `json:"targetIndex"`
	Hit         bool `json:"hit"`
}

type GameWonPayload struct {
	WinnerName string `json:"winnerName,omitempty"`
}

type GameLostPayload struct {
	LoserName string `json:"loserName,omitempty"`
}

type ShipDestroyedPayload struct {
	AttackerName string `json:"attackerName"`
	ShipName     string `json:"shipName"`
}

type ErrorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}
