// Package journal provides persistent storage for the trade journal.
// The store owns the raw trade list; every analytics result is derived
// from a snapshot of it, never from shared references.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradelens/journal-backend/pkg/types"
)

const tradesFile = "trades.json"

// Store holds the trade journal and persists it as JSON under dataDir.
type Store struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	dataDir  string
	trades   []*types.Trade
	onChange func(count int)
}

// NewStore creates a journal store, loading any previously saved trades.
func NewStore(logger *zap.Logger, dataDir string) (*Store, error) {
	store := &Store{
		logger:  logger,
		dataDir: dataDir,
		trades:  make([]*types.Trade, 0),
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := store.load(); err != nil {
		logger.Warn("Failed to load journal", zap.Error(err))
	}

	return store, nil
}

// OnChange registers a callback invoked after every mutation with the
// new trade count. Used to push journal updates to connected clients.
func (s *Store) OnChange(fn func(count int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns an independent copy of the trade list. Callers may
// post-process their copy freely without corrupting other consumers.
func (s *Store) Snapshot() []*types.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*types.Trade, len(s.trades))
	for i, trade := range s.trades {
		copied := *trade
		snapshot[i] = &copied
	}
	return snapshot
}

// Count returns the number of trades in the journal.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}

// Add appends one trade, assigning an ID when missing, and persists.
func (s *Store) Add(trade *types.Trade) error {
	return s.AddBatch([]*types.Trade{trade})
}

// AddBatch appends trades, assigning IDs when missing, and persists.
func (s *Store) AddBatch(trades []*types.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	s.mu.Lock()
	for _, trade := range trades {
		if trade.ID == "" {
			trade.ID = uuid.New().String()
		}
		copied := *trade
		s.trades = append(s.trades, &copied)
	}
	count := len(s.trades)
	err := s.save()
	fn := s.onChange
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.logger.Info("Trades added to journal",
		zap.Int("added", len(trades)),
		zap.Int("total", count),
	)

	if fn != nil {
		fn(count)
	}
	return nil
}

// Remove deletes a trade by ID. Returns false when the ID is unknown.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	found := false
	for i, trade := range s.trades {
		if trade.ID == id {
			s.trades = append(s.trades[:i], s.trades[i+1:]...)
			found = true
			break
		}
	}

	var err error
	var fn func(int)
	count := len(s.trades)
	if found {
		err = s.save()
		fn = s.onChange
	}
	s.mu.Unlock()

	if err != nil {
		return found, err
	}
	if found && fn != nil {
		fn(count)
	}
	return found, nil
}

// Replace swaps the entire journal contents and persists.
func (s *Store) Replace(trades []*types.Trade) error {
	s.mu.Lock()
	s.trades = make([]*types.Trade, 0, len(trades))
	for _, trade := range trades {
		if trade.ID == "" {
			trade.ID = uuid.New().String()
		}
		copied := *trade
		s.trades = append(s.trades, &copied)
	}
	count := len(s.trades)
	err := s.save()
	fn := s.onChange
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if fn != nil {
		fn(count)
	}
	return nil
}

// save writes the journal to disk. Callers must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.trades, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	filename := filepath.Join(s.dataDir, tradesFile)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write journal file: %w", err)
	}
	return nil
}

// load reads the journal from disk; a missing file is not an error.
func (s *Store) load() error {
	filename := filepath.Join(s.dataDir, tradesFile)

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var trades []*types.Trade
	if err := json.Unmarshal(data, &trades); err != nil {
		return fmt.Errorf("failed to parse journal file: %w", err)
	}

	s.mu.Lock()
	s.trades = trades
	s.mu.Unlock()

	s.logger.Info("Journal loaded", zap.Int("trades", len(trades)))
	return nil
}
