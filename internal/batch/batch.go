package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/stmdev/steam-game-scraper/internal/models"
	"github.com/stmdev/steam-game-scraper/internal/scraper"
)

var ErrEmptyInput = errors.New("no games to process")

// Resolver finds the detail page for a game name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// DetailFetcher extracts the field set from a resolved detail page.
type DetailFetcher interface {
	Fetch(ctx context.Context, url string) (map[models.FieldID]models.FieldValue, error)
}

// Store is the append-only table persistence collaborator.
type Store interface {
	ExistingNames() map[string]struct{}
	Append(records []*models.GameRecord) error
}

// Limiter bounds the request rate between processed names.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Orchestrator drives one batch run: dedup against prior output, resolve and
// extract each name sequentially, checkpoint every CheckpointEvery records,
// and flush whatever is buffered when the context is cancelled.
type Orchestrator struct {
	resolver Resolver
	fetcher  DetailFetcher
	store    Store
	limiter  Limiter
	logger   *slog.Logger

	CheckpointEvery int

	buffer []*models.GameRecord
}

func NewOrchestrator(resolver Resolver, fetcher DetailFetcher, store Store, limiter Limiter, logger *slog.Logger) *Orchestrator {
	runID := uuid.NewString()
	return &Orchestrator{
		resolver:        resolver,
		fetcher:         fetcher,
		store:           store,
		limiter:         limiter,
		logger:          logger.With("run_id", runID),
		CheckpointEvery: 10,
	}
}

// Run processes every name in the input file and returns the number of
// records produced. Cancellation is observed between whole names, never
// mid-fetch; the buffer is flushed before returning on either path.
func (o *Orchestrator) Run(ctx context.Context, inputFile string) (int, error) {
	existing := o.store.ExistingNames()

	names, err := ReadNames(inputFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read input list: %w", err)
	}
	if len(names) == 0 {
		return 0, ErrEmptyInput
	}
	o.logger.Info("starting batch", "games", len(names), "known", len(existing))

	processed := 0
	for i, name := range names {
		if ctx.Err() != nil {
			o.logger.Info("processing interrupted")
			break
		}

		if _, seen := existing[name]; seen {
			o.logger.Info("skipping existing game", "name", name)
			continue
		}
		existing[name] = struct{}{}

		o.logger.Info("processing game", "index", i+1, "total", len(names), "name", name)
		o.buffer = append(o.buffer, o.processName(ctx, name))
		processed++

		if len(o.buffer) >= o.CheckpointEvery {
			o.logger.Info("checkpointing", "buffered", len(o.buffer))
			o.flush()
		}

		if err := o.limiter.Wait(ctx); err != nil {
			// Cancelled mid-delay; the interruption log happens above.
			continue
		}
	}

	o.flush()
	o.logger.Info("batch complete", "processed", processed)
	return processed, nil
}

// processName assembles exactly one schema-complete record for the name,
// whatever happens: resolution failure, fetch failure, or success.
func (o *Orchestrator) processName(ctx context.Context, name string) *models.GameRecord {
	detailURL, err := o.resolver.Resolve(ctx, name)
	if err != nil {
		return models.NewGameRecord(name, models.StatusSearchFailed)
	}

	fields, err := o.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		record := models.NewGameRecord(name, models.StatusParseFailed)
		record.DetailURL = detailURL
		record.Fields[models.FieldDetailURL] = models.Found(detailURL)
		return record
	}

	record := models.NewGameRecord(name, models.StatusSuccess)
	record.DetailURL = detailURL
	record.Fields = fields
	return record
}

// flush appends the buffer to the store and clears it. Safe to call with an
// empty buffer and from the cancellation path. A persistence failure keeps
// the buffer so the next flush retries it.
func (o *Orchestrator) flush() {
	if len(o.buffer) == 0 {
		return
	}

	if err := o.store.Append(o.buffer); err != nil {
		o.logger.Error("failed to persist records, keeping buffer", "count", len(o.buffer), "error", err)
		return
	}
	o.buffer = o.buffer[:0]
}

// ReadNames reads one game name per line, skipping blank lines.
func ReadNames(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

var _ Resolver = (*scraper.Resolver)(nil)
var _ DetailFetcher = (*scraper.DetailFetcher)(nil)
