package repository

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

var ErrRoomAlreadyExists = errors.New("room already exists")

// RoomRepository is the registry of rooms that have not reached a terminal state.
type RoomRepository interface {
	Create(room *entity.Room) error
	GetByID(id string) (*entity.Room, error)
	FindByPlayerID(playerID string) []*entity.Room
	DeleteByID(id string) bool
	Count() int
}

type memRoom struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func NewRoomRepository() RoomRepository {
	return &memRoom{
		rooms: make(map[string]*entity.Room),
	}
}

func (that *memRoom) Create(room *entity.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[room.ID]; ok {
		return fmt.Errorf("%w: %s", ErrRoomAlreadyExists, room.ID)
	}

	that.rooms[room.ID] = room

	return nil
}

// GetByID - returns the shared room; callers must hold the room lock while touching it.
func (that *memRoom) GetByID(id string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[id]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// FindByPlayerID - returns every room that lists playerID as a member.
// Members never change after creation, so they are read without the room lock.
func (that *memRoom) FindByPlayerID(playerID string) []*entity.Room {
	that.mu.RLock()
	defer that.mu.RUnlock()

	var found []*entity.Room
	for _, room := range that.rooms {
		if room.HasMember(playerID) {
			found = append(found, room)
		}
	}

	return found
}

// DeleteByID - removes the room and reports whether it was present.
func (that *memRoom) DeleteByID(id string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[id]; !ok {
		return false
	}

	delete(that.rooms, id)

	return true
}

func (that *memRoom) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}
