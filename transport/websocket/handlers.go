package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

var (
	errMalformedMessage = errors.New("malformed message")
	errUnknownAction    = errors.New("unknown action")
	errMissingTarget    = errors.New("targetIndex is required")
)

func (that *Server) handleSetName(playerID string, msg *Message) error {
	var req setNameRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	return that.game.SetName(playerID, req.Name)
}

func (that *Server) handleFindMatch(playerID string, _ *Message) error {
	return that.game.Join(playerID)
}

func (that *Server) handleReady(playerID string, msg *Message) error {
	var req readyRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	if req.RoomID == "" {
		return errMissingRoom()
	}

	return that.game.SubmitBoard(req.RoomID, playerID, req.Board, req.Name)
}

func (that *Server) handleAttack(playerID string, msg *Message) error {
	var req attackRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	if req.RoomID == "" {
		return errMissingRoom()
	}

	if req.TargetIndex == nil {
		return errMissingTarget
	}

	return that.game.Attack(req.RoomID, playerID, *req.TargetIndex)
}

func (that *Server) handleAttackResult(playerID string, msg *Message) error {
	var req attackResultRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	if req.RoomID == "" {
		return errMissingRoom()
	}

	if req.TargetIndex == nil {
		return errMissingTarget
	}

	return that.game.ReportAttackResult(req.RoomID, playerID, *req.TargetIndex, req.Hit)
}

func (that *Server) handleShipSunk(playerID string, msg *Message) error {
	var req shipSunkRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	if req.RoomID == "" {
		return errMissingRoom()
	}

	return that.game.ShipSunk(req.RoomID, playerID, req.ShipName, req.AttackerName)
}

// handleError - drops messages about rooms the player may not touch, reports everything else back.
func (that *Server) handleError(playerID, action string, err error) {
	log := that.logger.With("method", "handleError", "playerID", playerID, "action", action)

	if apperror.IsStale(err) {
		log.Debug("message dropped", "error", err)
		return
	}

	log.Info("message rejected", "error", err)
	that.sendError(playerID, action, err)
}

func (that *Server) sendError(playerID, action string, err error) {
	that.hub.Send(playerID, entity.ActionError, entity.ErrorPayload{
		Action: action,
		Error:  err.Error(),
	})
}

// errMissingRoom - a message without a room id names no registered room and is dropped like a stale one.
func errMissingRoom() error {
	return fmt.Errorf("%w: roomId is missing", apperror.ErrRoomNotFound)
}

func decode(msg *Message, target any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: payload is required", errMalformedMessage)
	}

	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("%w: %w", errMalformedMessage, err)
	}

	return nil
}
