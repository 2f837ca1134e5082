package repository

import (
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// PlayerRepository is the registry of live connections.
type PlayerRepository interface {
	Create(player *entity.Player)
	GetByID(id string) (*entity.Player, error)
	Update(id string, apply func(player *entity.Player)) (*entity.Player, error)
	DeleteByID(id string)
	Count() int
}

type memPlayer struct {
	mu      sync.RWMutex
	players map[string]*entity.Player
}

func NewPlayerRepository() PlayerRepository {
	return &memPlayer{
		players: make(map[string]*entity.Player),
	}
}

// Create - stores a copy of the player, replacing any player with the same id.
func (that *memPlayer) Create(player *entity.Player) {
	stored := *player

	that.mu.Lock()
	that.players[player.ID] = &stored
	that.mu.Unlock()
}

// GetByID - returns a copy of the stored player.
func (that *memPlayer) GetByID(id string) (*entity.Player, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	found := *player

	return &found, nil
}

// Update - applies the change to the stored player atomically and returns a copy of the result.
func (that *memPlayer) Update(id string, apply func(player *entity.Player)) (*entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	apply(player)
	updated := *player

	return &updated, nil
}

func (that *memPlayer) DeleteByID(id string) {
	that.mu.Lock()
	delete(that.players, id)
	that.mu.Unlock()
}

func (that *memPlayer) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.players)
}
