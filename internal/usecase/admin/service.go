package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/domain"
)

const (
	// DefaultWipeAllGroup is the caller group whose wipe spans every group.
	DefaultWipeAllGroup = "root"
	// DefaultBatchSize bounds each archive pass.
	DefaultBatchSize = 100
)

// Config tunes the wipe operation.
type Config struct {
	WipeAllGroup string `yaml:"wipe_all_group"`
	BatchSize    int    `yaml:"batch_size"`
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.WipeAllGroup == "" {
		out.WipeAllGroup = DefaultWipeAllGroup
	}
	if out.BatchSize <= 0 || out.BatchSize > DefaultBatchSize {
		out.BatchSize = DefaultBatchSize
	}
	return out
}

// Service performs administrative bulk operations across collections.
type Service struct {
	collections []Collection
	cfg         Config
	logger      *zap.Logger
}

func New(cfg Config, logger *zap.Logger, collections ...Collection) *Service {
	return &Service{
		collections: collections,
		cfg:         cfg.withDefaults(),
		logger:      logger,
	}
}

// WipeResult reports how many documents each collection archived.
type WipeResult struct {
	Archived map[string]int
}

// Total sums the per-collection counts.
func (r *WipeResult) Total() int {
	n := 0
	for _, c := range r.Archived {
		n += c
	}
	return n
}

// Wipe archives every active document the caller group owns, across
// all collections. The configured all-groups caller wipes everything.
// The confirm flag must be set; a wipe is not recoverable through the
// API even though the documents survive as tombstones.
func (s *Service) Wipe(ctx context.Context, groupID string, confirm bool) (*WipeResult, error) {
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}
	if !confirm {
		return nil, fmt.Errorf("wipe requires confirmation: %w", domain.ErrValidation)
	}

	scope := groupID
	if groupID == s.cfg.WipeAllGroup {
		scope = ""
	}

	res := &WipeResult{Archived: make(map[string]int, len(s.collections))}
	for _, col := range s.collections {
		n, err := s.wipeCollection(ctx, col, scope, groupID)
		res.Archived[col.Name] = n
		if err != nil {
			return res, fmt.Errorf("wipe %s: %w", col.Name, err)
		}
	}

	s.logger.Info("Wipe completed",
		zap.String("groupID", groupID),
		zap.Bool("allGroups", scope == ""),
		zap.Int("archived", res.Total()),
	)
	return res, nil
}

// wipeCollection drains one collection. Archived documents leave the
// active set, so every pass reads from the front.
func (s *Service) wipeCollection(ctx context.Context, col Collection, scope, by string) (int, error) {
	total := 0
	for {
		n, err := col.Archiver.ArchiveBatch(ctx, scope, by, s.cfg.BatchSize)
		total += n
		if err != nil {
			return total, err
		}
		if n < s.cfg.BatchSize {
			return total, nil
		}
	}
}
