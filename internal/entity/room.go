package entity

import (
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Member is one of the two players of a room together with the board it submitted.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Board Board  `json:"-"`
	Ready bool   `json:"ready"`
}

type pendingAttack struct {
	attackerID string
	index      int
}

// Room is a single match between two players. All mutations must happen under Lock.
type Room struct {
	mu sync.Mutex

	ID        string     `json:"id"`
	Members   [2]*Member `json:"members"`
	Turn      string     `json:"turn,omitempty"`
	Status    string     `json:"status"`
	Winner    string     `json:"winner,omitempty"`
	Attacks   int        `json:"attacks"`
	CreatedAt time.Time  `json:"created_at"`

	pending *pendingAttack
}

// RoomID - derives the room identifier from the queued and the arriving player.
func RoomID(firstID, secondID string) string {
	return fmt.Sprintf("room-%s-%s", firstID, secondID)
}

func NewRoom(first, second *Player) *Room {
	return &Room{
		ID: RoomID(first.ID, second.ID),
		Members: [2]*Member{
			{ID: first.ID, Name: first.DisplayName()},
			{ID: second.ID, Name: second.DisplayName()},
		},
		Status:    StatusWaiting,
		CreatedAt: time.Now(),
	}
}

func (that *Room) Lock() {
	that.mu.Lock()
}

func (that *Room) Unlock() {
	that.mu.Unlock()
}

// Member - returns the member with the given id or nil.
func (that *Room) Member(id string) *Member {
	for _, member := range that.Members {
		if member.ID == id {
			return member
		}
	}

	return nil
}

// Opponent - returns the member that is not id, nil when id is not a member.
func (that *Room) Opponent(id string) *Member {
	switch id {
	case that.Members[0].ID:
		return that.Members[1]
	case that.Members[1].ID:
		return that.Members[0]
	default:
		return nil
	}
}

func (that *Room) HasMember(id string) bool {
	return that.Member(id) != nil
}

func (that *Room) BothReady() bool {
	return that.Members[0].Ready && that.Members[1].Ready
}

// Names - display names keyed by member id.
func (that *Room) Names() map[string]string {
	return map[string]string{
		that.Members[0].ID: that.Members[0].Name,
		that.Members[1].ID: that.Members[1].Name,
	}
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Room) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

// SubmitBoard - stores the member's board and marks it ready.
// It reports true when this submission made both members ready.
func (that *Room) SubmitBoard(playerID string, board Board, name string) (bool, error) {
	if that.IsFinished() {
		return false, apperror.ErrGameFinished
	}

	member := that.Member(playerID)
	if member == nil {
		return false, apperror.ErrNotMember
	}

	if member.Ready {
		return false, apperror.ErrAlreadyReady
	}

	if err := board.Validate(); err != nil {
		return false, err
	}

	member.Board = append(Board(nil), board...)
	member.Ready = true

	if name != "" {
		member.Name = name
	}

	return that.BothReady(), nil
}

// Start - moves the room into active play with firstTurn as the turn owner.
func (that *Room) Start(firstTurn string) error {
	if !that.IsWaiting() || !that.BothReady() {
		return apperror.ErrGameIsNotStarted
	}

	if !that.HasMember(firstTurn) {
		return apperror.ErrNotMember
	}

	that.Status = StatusOngoing
	that.Turn = firstTurn

	return nil
}

// Attack - validates an attack and returns the defending member.
// With enforceTurn the attacker must own the turn and have no unanswered attack.
func (that *Room) Attack(attackerID string, index int, enforceTurn bool) (*Member, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	defender := that.Opponent(attackerID)
	if defender == nil {
		return nil, apperror.ErrNotMember
	}

	if !ValidCell(index) {
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if enforceTurn && (that.Turn != attackerID || that.pending != nil) {
		return nil, apperror.ErrNotYourTurn
	}

	that.pending = &pendingAttack{attackerID: attackerID, index: index}
	that.Attacks++

	return defender, nil
}

// ReportResult - applies the defender's own report of an attack on its board.
// A hit clears the reported cell. When no ship cell is left the room finishes
// with the attacker as winner, otherwise the turn passes to the reporter.
func (that *Room) ReportResult(reporterID string, index int, hit, enforceTurn bool) (*Member, bool, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return nil, false, err
	}

	reporter := that.Member(reporterID)
	if reporter == nil {
		return nil, false, apperror.ErrNotMember
	}

	attacker := that.Opponent(reporterID)

	if !ValidCell(index) {
		return nil, false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if enforceTurn && (that.pending == nil || that.pending.attackerID != attacker.ID || that.pending.index != index) {
		return nil, false, apperror.ErrNotYourTurn
	}

	if hit {
		if err := reporter.Board.Clear(index); err != nil {
			return nil, false, err
		}
	}

	that.pending = nil

	if !reporter.Board.HasShips() {
		that.finish(attacker.ID)
		return attacker, true, nil
	}

	that.Turn = reporterID

	return attacker, false, nil
}

// Abandon - finishes the room because leaverID left. It returns the remaining member,
// or false when the room was already finished.
func (that *Room) Abandon(leaverID string) (*Member, bool) {
	if that.IsFinished() {
		return nil, false
	}

	survivor := that.Opponent(leaverID)
	if survivor == nil {
		return nil, false
	}

	that.finish(survivor.ID)

	return survivor, true
}

func (that *Room) finish(winnerID string) {
	that.Status = StatusFinished
	that.Winner = winnerID
	that.Turn = ""
	that.pending = nil
}
