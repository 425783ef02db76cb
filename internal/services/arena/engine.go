package arena

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/okradley/veilarena/internal/dependencies/clock"
	"github.com/okradley/veilarena/internal/events"
	"github.com/okradley/veilarena/internal/fhe"
	"github.com/okradley/veilarena/internal/model"
	"github.com/okradley/veilarena/internal/storage"
)

// Game balance constants
const (
	initialBalance = 1000
	initialHealth  = 10
	maxHealth      = 10
	healCost       = 10

	// Victory reward is scalar%rewardSpread + rewardFloor, i.e. [10,100].
	// The modulo makes low residues slightly more likely; kept as-is.
	rewardSpread = 91
	rewardFloor  = 10
)

// EntropySource derives the outcome scalar for a fight
type EntropySource interface {
	Scalar(playerID model.PlayerID, battles uint64) uint64
}

// Engine applies the arena's state transitions. All branching on secret
// values happens inside the provider via conditional select; the engine
// never decrypts to decide.
type Engine struct {
	storage   storage.Storage
	provider  fhe.Provider
	entropy   EntropySource
	clock     clock.Clock
	publisher events.Publisher
	logger    *slog.Logger

	// Mutations are serialized per player. The ledger backends hand out
	// independent record copies, so without this two concurrent fights
	// for one player would both read the same counters and one update
	// would be lost.
	locksMu sync.Mutex
	locks   map[model.PlayerID]*sync.Mutex
}

// NewEngine creates a new arena engine
func NewEngine(
	storage storage.Storage,
	provider fhe.Provider,
	entropy EntropySource,
	clock clock.Clock,
	publisher events.Publisher,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		storage:   storage,
		provider:  provider,
		entropy:   entropy,
		clock:     clock,
		publisher: publisher,
		logger:    logger,
		locks:     make(map[model.PlayerID]*sync.Mutex),
	}
}

// lockPlayer acquires the player's mutation lock, returning the unlock func
func (e *Engine) lockPlayer(playerID model.PlayerID) func() {
	e.locksMu.Lock()
	lock, ok := e.locks[playerID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[playerID] = lock
	}
	e.locksMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// FightResult is the public outcome of a fight
type FightResult struct {
	Victory bool
	Reward  uint64 // 0 on defeat
	Stats   model.PlayerStats
}

// Join activates a player's arena record. A second join for the same
// player fails with ErrAlreadyJoined and changes nothing.
func (e *Engine) Join(ctx context.Context, playerID model.PlayerID) (*model.PlayerRecord, error) {
	defer e.lockPlayer(playerID)()

	existing, err := e.storage.GetRecord(ctx, playerID)
	if err == nil && existing.Joined {
		return nil, model.ErrAlreadyJoined
	}
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	balance, err := e.provider.EncryptUint32(initialBalance)
	if err != nil {
		return nil, err
	}
	health, err := e.provider.EncryptUint8(initialHealth)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	record := &model.PlayerRecord{
		PlayerID:  playerID,
		Balance:   balance,
		Health:    health,
		Joined:    true,
		JoinedAt:  now,
		UpdatedAt: now,
	}

	if err := e.disclose(record); err != nil {
		return nil, err
	}

	if err := e.storage.SaveRecord(ctx, record); err != nil {
		e.logger.Error("failed to save record",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	e.logger.Info("player joined arena", slog.String("player_id", string(playerID)))

	if err := e.emit(ctx, model.Event{
		Type:      model.EventPlayerJoined,
		Timestamp: now,
		PlayerID:  playerID,
		Payload:   model.PlayerJoinedPayload{},
	}); err != nil {
		return nil, err
	}

	return record, nil
}

// FightMonster resolves one battle for the player. Victory adds the reward
// to the encrypted balance; defeat decrements encrypted health with a floor
// at zero. The battle counter always advances.
func (e *Engine) FightMonster(ctx context.Context, playerID model.PlayerID) (*FightResult, error) {
	defer e.lockPlayer(playerID)()

	record, err := e.joinedRecord(ctx, playerID)
	if err != nil {
		return nil, err
	}

	scalar := e.entropy.Scalar(playerID, record.Battles)
	victory := scalar%2 == 0

	var reward uint64
	if victory {
		reward = scalar%rewardSpread + rewardFloor

		encReward, err := e.provider.EncryptUint32(uint32(reward))
		if err != nil {
			return nil, err
		}
		newBalance, err := e.provider.Add(record.Balance, encReward)
		if err != nil {
			return nil, err
		}
		record.Balance = newBalance
		record.Victories++
	} else {
		newHealth, err := e.clampedDamage(record.Health)
		if err != nil {
			return nil, err
		}
		record.Health = newHealth
	}

	record.Battles++
	record.UpdatedAt = e.clock.Now()

	if err := e.disclose(record); err != nil {
		return nil, err
	}

	if err := e.storage.SaveRecord(ctx, record); err != nil {
		return nil, err
	}

	e.logger.Info("monster fought",
		slog.String("player_id", string(playerID)),
		slog.Bool("victory", victory),
		slog.Uint64("battles", record.Battles),
	)

	if err := e.emit(ctx, model.Event{
		Type:      model.EventMonsterFought,
		Timestamp: record.UpdatedAt,
		PlayerID:  playerID,
		Payload: model.MonsterFoughtPayload{
			Victory: victory,
			Reward:  reward,
			Battles: record.Battles,
		},
	}); err != nil {
		return nil, err
	}

	return &FightResult{
		Victory: victory,
		Reward:  reward,
		Stats:   record.Stats(),
	}, nil
}

// Heal attempts to buy one health point for healCost gold. Whether the heal
// takes effect is decided entirely under encryption: both predicates and
// both outcomes are computed, and a conditional select applies the healed
// values only where allowed. The heal counter advances either way.
func (e *Engine) Heal(ctx context.Context, playerID model.PlayerID) (uint64, error) {
	defer e.lockPlayer(playerID)()

	record, err := e.joinedRecord(ctx, playerID)
	if err != nil {
		return 0, err
	}

	encMaxHealth, err := e.provider.EncryptUint8(maxHealth)
	if err != nil {
		return 0, err
	}
	encHealCost, err := e.provider.EncryptUint32(healCost)
	if err != nil {
		return 0, err
	}

	hasRoom, err := e.provider.Lt(record.Health, encMaxHealth)
	if err != nil {
		return 0, err
	}
	hasFunds, err := e.provider.Ge(record.Balance, encHealCost)
	if err != nil {
		return 0, err
	}
	canHeal, err := e.provider.And(hasRoom, hasFunds)
	if err != nil {
		return 0, err
	}

	encOne, err := e.provider.EncryptUint8(1)
	if err != nil {
		return 0, err
	}
	healedHealth, err := e.provider.Add(record.Health, encOne)
	if err != nil {
		return 0, err
	}
	debitedBalance, err := e.provider.Sub(record.Balance, encHealCost)
	if err != nil {
		return 0, err
	}

	newHealth, err := e.provider.Select(canHeal, healedHealth, record.Health)
	if err != nil {
		return 0, err
	}
	newBalance, err := e.provider.Select(canHeal, debitedBalance, record.Balance)
	if err != nil {
		return 0, err
	}

	record.Health = newHealth
	record.Balance = newBalance
	record.Heals++
	record.UpdatedAt = e.clock.Now()

	if err := e.disclose(record); err != nil {
		return 0, err
	}

	if err := e.storage.SaveRecord(ctx, record); err != nil {
		return 0, err
	}

	e.logger.Info("heal used",
		slog.String("player_id", string(playerID)),
		slog.Uint64("total_heals", record.Heals),
	)

	if err := e.emit(ctx, model.Event{
		Type:      model.EventHealUsed,
		Timestamp: record.UpdatedAt,
		PlayerID:  playerID,
		Payload:   model.HealUsedPayload{TotalHeals: record.Heals},
	}); err != nil {
		return 0, err
	}

	return record.Heals, nil
}

// EncryptedBalance returns the player's balance ciphertext handle
func (e *Engine) EncryptedBalance(ctx context.Context, playerID model.PlayerID) (fhe.Handle, error) {
	record, err := e.storage.GetRecord(ctx, playerID)
	if err != nil {
		return "", err
	}
	if !record.Joined {
		return "", model.ErrNotJoined
	}
	return record.Balance, nil
}

// EncryptedHealth returns the player's health ciphertext handle
func (e *Engine) EncryptedHealth(ctx context.Context, playerID model.PlayerID) (fhe.Handle, error) {
	record, err := e.storage.GetRecord(ctx, playerID)
	if err != nil {
		return "", err
	}
	if !record.Joined {
		return "", model.ErrNotJoined
	}
	return record.Health, nil
}

// PlayerStats returns the player's plaintext counters
func (e *Engine) PlayerStats(ctx context.Context, playerID model.PlayerID) (model.PlayerStats, error) {
	record, err := e.storage.GetRecord(ctx, playerID)
	if err != nil {
		return model.PlayerStats{}, err
	}
	return record.Stats(), nil
}

// HasJoined reports whether the player has joined; never errors on an
// unknown player
func (e *Engine) HasJoined(ctx context.Context, playerID model.PlayerID) (bool, error) {
	record, err := e.storage.GetRecord(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.Joined, nil
}

// Decrypt decodes a ciphertext handle on behalf of the player. The provider
// enforces the grant; a player can only ever open handles disclosed to them.
func (e *Engine) Decrypt(ctx context.Context, playerID model.PlayerID, h fhe.Handle) (uint64, error) {
	return e.provider.Decrypt(h, string(playerID))
}

// joinedRecord loads the record for a mutating operation
func (e *Engine) joinedRecord(ctx context.Context, playerID model.PlayerID) (*model.PlayerRecord, error) {
	record, err := e.storage.GetRecord(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.ErrNotJoined
		}
		return nil, err
	}
	if !record.Joined {
		return nil, model.ErrNotJoined
	}
	return record, nil
}

// clampedDamage returns health-1 floored at zero, decided under encryption
func (e *Engine) clampedDamage(health fhe.Handle) (fhe.Handle, error) {
	encOne, err := e.provider.EncryptUint8(1)
	if err != nil {
		return "", err
	}
	hasHealth, err := e.provider.Ge(health, encOne)
	if err != nil {
		return "", err
	}
	damaged, err := e.provider.Sub(health, encOne)
	if err != nil {
		return "", err
	}
	return e.provider.Select(hasHealth, damaged, health)
}

// disclose regrants rights on the record's handles. Required after every
// mutation: the handles themselves are fresh even when the decoded values
// are not, so grants never carry over.
func (e *Engine) disclose(record *model.PlayerRecord) error {
	identity := string(record.PlayerID)

	if err := e.provider.AllowEngine(record.Balance); err != nil {
		return err
	}
	if err := e.provider.Allow(record.Balance, identity); err != nil {
		return err
	}
	if err := e.provider.AllowEngine(record.Health); err != nil {
		return err
	}
	return e.provider.Allow(record.Health, identity)
}

// emit appends the event to the log and broadcasts it
func (e *Engine) emit(ctx context.Context, event model.Event) error {
	if err := e.storage.AppendEvent(ctx, &event); err != nil {
		return err
	}
	if e.publisher != nil {
		e.publisher.Publish(event)
	}
	return nil
}

// EngineInterface is the engine's surface, for dependency injection
type EngineInterface interface {
	Join(ctx context.Context, playerID model.PlayerID) (*model.PlayerRecord, error)
	FightMonster(ctx context.Context, playerID model.PlayerID) (*FightResult, error)
	Heal(ctx context.Context, playerID model.PlayerID) (uint64, error)
	EncryptedBalance(ctx context.Context, playerID model.PlayerID) (fhe.Handle, error)
	EncryptedHealth(ctx context.Context, playerID model.PlayerID) (fhe.Handle, error)
	PlayerStats(ctx context.Context, playerID model.PlayerID) (model.PlayerStats, error)
	HasJoined(ctx context.Context, playerID model.PlayerID) (bool, error)
	Decrypt(ctx context.Context, playerID model.PlayerID, h fhe.Handle) (uint64, error)
}

var _ EngineInterface = (*Engine)(nil)
