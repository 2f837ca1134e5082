package usecase

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const maxNameLength = 32

type notifier interface {
	Send(playerID, action string, payload any)
}

type playerRepo interface {
	Create(player *entity.Player)
	GetByID(id string) (*entity.Player, error)
	Update(id string, apply func(player *entity.Player)) (*entity.Player, error)
	DeleteByID(id string)
	Count() int
}

type roomRepo interface {
	Create(room *entity.Room) error
	GetByID(id string) (*entity.Room, error)
	FindByPlayerID(playerID string) []*entity.Room
	DeleteByID(id string) bool
	Count() int
}

type matchRecorder interface {
	Record(result *entity.MatchResult)
}

// GameManager owns the matchmaking queue and drives every room through its lifecycle.
// Lock order is room first, then the registries; the queue lock is never held together with a room lock.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	roomRepo   roomRepo
	recorder   matchRecorder
	notifier   notifier

	enforceTurns bool
	intn         func(n int) int

	queueMu sync.Mutex
	waiting string
}

func NewGameManager(
	logger *slog.Logger,
	playerRepo playerRepo,
	roomRepo roomRepo,
	recorder matchRecorder,
	notifier notifier,
	enforceTurns bool,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		roomRepo:   roomRepo,
		recorder:   recorder,
		notifier:   notifier,

		enforceTurns: enforceTurns,
		intn:         rand.Intn,
	}
}

// Connect - registers a new connection and puts it into matchmaking.
func (that *GameManager) Connect(playerID string) (*entity.Player, error) {
	player := entity.NewPlayer(playerID)
	that.playerRepo.Create(player)

	that.notifier.Send(playerID, entity.ActionConnected, entity.ConnectedPayload{
		PlayerID: player.ID,
		Name:     player.DisplayName(),
	})

	if err := that.Join(playerID); err != nil {
		return nil, fmt.Errorf("failed to join matchmaking: %w", err)
	}

	return player, nil
}

// SetName - sets the display name once. A room still in the ready phase picks the new name up.
func (that *GameManager) SetName(playerID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: must be 1 to %d characters", apperror.ErrInvalidName, maxNameLength)
	}

	var alreadySet bool
	player, err := that.playerRepo.Update(playerID, func(player *entity.Player) {
		if player.HasName() {
			alreadySet = true
			return
		}

		player.Name = name
	})
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	if alreadySet {
		return apperror.ErrNameAlreadySet
	}

	if !player.InRoom() {
		return nil
	}

	room, err := that.roomRepo.GetByID(player.RoomID)
	if err != nil {
		// the room finished in the meantime
		return nil //nolint: nilerr // the name is stored on the player anyway
	}

	room.Lock()
	defer room.Unlock()

	if member := room.Member(playerID); member != nil && room.IsWaiting() && !member.Ready {
		member.Name = name
	}

	return nil
}

// Join - parks the player in the queue or pairs it with the player already waiting.
func (that *GameManager) Join(playerID string) error {
	log := that.logger.With("method", "Join", "playerID", playerID)

	that.queueMu.Lock()
	defer that.queueMu.Unlock()

	player, err := that.playerRepo.GetByID(playerID)
	if err != nil {
		return fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.InRoom() {
		return apperror.ErrAlreadyInRoom
	}

	if that.waiting == playerID {
		return apperror.ErrAlreadyQueued
	}

	if that.waiting == "" {
		that.park(playerID)
		return nil
	}

	peerID := that.waiting
	that.waiting = ""

	peer, err := that.playerRepo.GetByID(peerID)
	if err != nil {
		log.Warn("queued player is gone, waiting instead", "peerID", peerID)
		that.park(playerID)
		return nil
	}

	room := entity.NewRoom(peer, player)
	if err = that.roomRepo.Create(room); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	for _, member := range room.Members {
		if _, err = that.playerRepo.Update(member.ID, func(player *entity.Player) {
			player.RoomID = room.ID
		}); err != nil {
			log.Error("failed to assign room", "memberID", member.ID, "error", err)
		}
	}

	payload := entity.MatchFoundPayload{RoomID: room.ID}
	that.notifier.Send(peerID, entity.ActionMatchFound, payload)
	that.notifier.Send(playerID, entity.ActionMatchFound, payload)

	log.Info("match found", "roomID", room.ID)

	return nil
}

func (that *GameManager) park(playerID string) {
	that.waiting = playerID
	that.notifier.Send(playerID, entity.ActionWaiting, entity.WaitingPayload{Text: entity.WaitingText})
}

// Leave - removes the player from the queue, it does nothing when the player is not queued.
func (that *GameManager) Leave(playerID string) {
	that.queueMu.Lock()
	defer that.queueMu.Unlock()

	if that.waiting == playerID {
		that.waiting = ""
	}
}

// SubmitBoard - stores the member's board. The second board starts the game with a random first turn.
func (that *GameManager) SubmitBoard(roomID, playerID string, board entity.Board, name string) error {
	room, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	bothReady, err := room.SubmitBoard(playerID, board, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to submit board: %w", err)
	}

	if !bothReady {
		return nil
	}

	firstTurn := room.Members[that.intn(len(room.Members))].ID
	if err = room.Start(firstTurn); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	payload := entity.BothReadyPayload{
		FirstTurn: firstTurn,
		Names:     room.Names(),
	}
	for _, member := range room.Members {
		that.notifier.Send(member.ID, entity.ActionBothReady, payload)
	}

	that.logger.Info("game started", "roomID", room.ID, "firstTurn", firstTurn)

	return nil
}

// Attack - relays an attack to the opponent, who decides hit or miss on its own board.
func (that *GameManager) Attack(roomID, attackerID string, targetIndex int) error {
	room, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	defender, err := room.Attack(attackerID, targetIndex, that.enforceTurns)
	if err != nil {
		return fmt.Errorf("failed to attack: %w", err)
	}

	that.notifier.Send(defender.ID, entity.ActionIncomingAttack, entity.IncomingAttackPayload{
		TargetIndex: targetIndex,
		AttackerID:  attackerID,
	})

	return nil
}

// ReportAttackResult - applies the defender's report, forwards it to the attacker and
// finishes the room once the reporter has no ship cells left.
func (that *GameManager) ReportAttackResult(roomID, reporterID string, targetIndex int, hit bool) error {
	room, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	attacker, won, err := room.ReportResult(reporterID, targetIndex, hit, that.enforceTurns)
	if err != nil {
		return fmt.Errorf("failed to report attack result: %w", err)
	}

	that.notifier.Send(attacker.ID, entity.ActionAttackFeedback, entity.AttackFeedbackPayload{
		TargetIndex: targetIndex,
		Hit:         hit,
	})

	if !won {
		that.notifier.Send(reporterID, entity.ActionYourTurn, nil)
		that.notifier.Send(attacker.ID, entity.ActionOpponentTurn, nil)

		return nil
	}

	reporter := room.Member(reporterID)
	that.notifier.Send(attacker.ID, entity.ActionGameWon, entity.GameWonPayload{WinnerName: attacker.Name})
	that.notifier.Send(reporterID, entity.ActionGameLost, entity.GameLostPayload{LoserName: reporter.Name})

	that.finishRoom(room, reporterID, entity.OutcomeCompleted)

	return nil
}

// ShipSunk - broadcasts the flavor event to both members as reported.
func (that *GameManager) ShipSunk(roomID, playerID, shipName, attackerName string) error {
	room, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	if room.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !room.HasMember(playerID) {
		return apperror.ErrNotMember
	}

	payload := entity.ShipDestroyedPayload{
		AttackerName: attackerName,
		ShipName:     shipName,
	}
	for _, member := range room.Members {
		that.notifier.Send(member.ID, entity.ActionShipDestroyed, payload)
	}

	return nil
}

// Disconnect - drops the player from the queue, abandons every room it belongs to and forgets it.
func (that *GameManager) Disconnect(playerID string) {
	log := that.logger.With("method", "Disconnect", "playerID", playerID)

	that.Leave(playerID)

	for _, room := range that.roomRepo.FindByPlayerID(playerID) {
		that.abandonRoom(room, playerID)
	}

	that.playerRepo.DeleteByID(playerID)

	log.Info("player disconnected")
}

func (that *GameManager) abandonRoom(room *entity.Room, leaverID string) {
	room.Lock()
	defer room.Unlock()

	survivor, ok := room.Abandon(leaverID)
	if !ok {
		return
	}

	that.notifier.Send(survivor.ID, entity.ActionOpponentLeft, nil)
	that.finishRoom(room, leaverID, entity.OutcomeAbandoned)
}

// finishRoom - must be called with the room lock held, right after the room became terminal.
func (that *GameManager) finishRoom(room *entity.Room, loserID, outcome string) {
	log := that.logger.With("method", "finishRoom", "roomID", room.ID)

	that.roomRepo.DeleteByID(room.ID)

	for _, member := range room.Members {
		// the leaving player may already be gone from the registry
		_, _ = that.playerRepo.Update(member.ID, func(player *entity.Player) {
			if player.RoomID == room.ID {
				player.RoomID = ""
			}
		})
	}

	that.recorder.Record(entity.NewMatchResult(room, loserID, outcome))

	log.Info("room finished", "outcome", outcome, "winner", room.Winner, "attacks", room.Attacks)
}

// Snapshot - current size of the live registries.
func (that *GameManager) Snapshot() entity.LobbyStats {
	that.queueMu.Lock()
	waiting := that.waiting != ""
	that.queueMu.Unlock()

	return entity.LobbyStats{
		Online:      that.playerRepo.Count(),
		Waiting:     waiting,
		ActiveRooms: that.roomRepo.Count(),
	}
}
