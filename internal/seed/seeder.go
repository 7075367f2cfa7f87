// Package seed populates an empty database with a realistic development
// dataset: a jobs board, a large candidate pipeline with per-candidate
// timelines, and assessment forms. Seeding runs in one transaction and
// records a completion flag, so restarts never duplicate data.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/data"
)

// Default dataset sizes. Large enough that list endpoints page and search
// against meaningful volume.
const (
	DefaultJobs        = 25
	DefaultCandidates  = 1000
	DefaultAssessments = 3
)

const (
	seedJobInsertQuery = `
		INSERT INTO jobs (title, slug, status, tags, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	seedCandidateInsertQuery = `
		INSERT INTO candidates (name, email, stage, job_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	seedEventInsertQuery = `
		INSERT INTO candidate_events (candidate_id, type, from_stage, to_stage, note, at)
		VALUES (?, ?, ?, ?, ?, ?)`

	seedAssessmentInsertQuery = `
		INSERT INTO assessments (job_id, title, sections, updated_at)
		VALUES (?, ?, ?, ?)`

	seedMarkQuery = `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`
)

// Counts controls how many rows of each kind the seeder generates.
// Zero or negative values fall back to the defaults.
type Counts struct {
	Jobs        int
	Candidates  int
	Assessments int
}

func (c Counts) withDefaults() Counts {
	if c.Jobs <= 0 {
		c.Jobs = DefaultJobs
	}
	if c.Candidates <= 0 {
		c.Candidates = DefaultCandidates
	}
	if c.Assessments <= 0 {
		c.Assessments = DefaultAssessments
	}
	return c
}

// SeederOptions configures a Seeder.
type SeederOptions struct {
	DB     *sql.DB
	Meta   core.MetaRepository
	Logger *slog.Logger
	Counts Counts
	// RandomSeed makes the generated dataset reproducible. Zero selects a
	// random seed per process.
	RandomSeed uint64
	// TimeProvider anchors generated timestamps; nil uses real time.
	TimeProvider data.TimeProvider
}

// Seeder fills an empty database with generated data exactly once.
type Seeder struct {
	db     *sql.DB
	meta   core.MetaRepository
	logger *slog.Logger
	tp     data.TimeProvider
	rng    *rand.Rand
	counts Counts
	group  singleflight.Group
}

// NewSeeder creates a Seeder. DB and Meta are required.
func NewSeeder(opts SeederOptions) *Seeder {
	tp := opts.TimeProvider
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	seed := opts.RandomSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Seeder{
		db:     opts.DB,
		meta:   opts.Meta,
		logger: opts.Logger,
		tp:     tp,
		rng:    rand.New(rand.NewPCG(seed, seed)),
		counts: opts.Counts.withDefaults(),
	}
}

// EnsureSeeded populates the database unless the seeded flag is already set.
// It reports whether this call performed the seeding. Concurrent callers are
// collapsed into a single run; everyone gets the same result.
func (s *Seeder) EnsureSeeded(ctx context.Context) (bool, error) {
	v, err, _ := s.group.Do("seed", func() (any, error) {
		return s.ensureSeeded(ctx)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (s *Seeder) ensureSeeded(ctx context.Context) (bool, error) {
	if _, found, err := s.meta.Get(ctx, data.MetaKeySeeded); err != nil {
		return false, fmt.Errorf("failed to read seeded flag: %w", err)
	} else if found {
		return false, nil
	}

	c, err := loadCorpus()
	if err != nil {
		return false, err
	}

	now := s.tp.Now()
	g := &generator{corpus: c, rng: s.rng, now: now}
	jobs := g.jobs(s.counts.Jobs)
	candidates := g.candidates(s.counts.Candidates, len(jobs))
	assessments, err := g.assessments(s.counts.Assessments, jobs)
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	jobIDs, err := s.insertJobs(ctx, tx, jobs)
	if err != nil {
		return false, err
	}
	if err := s.insertCandidates(ctx, tx, candidates, jobIDs); err != nil {
		return false, err
	}
	if err := s.insertAssessments(ctx, tx, assessments, jobIDs, now); err != nil {
		return false, err
	}

	// The flag is the last write inside the transaction: it can only be
	// observed together with the complete dataset.
	if _, err := tx.ExecContext(ctx, seedMarkQuery, data.MetaKeySeeded, s.tp.FormatForDB(now)); err != nil {
		return false, fmt.Errorf("failed to set seeded flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "seeded database",
			"jobs", len(jobs),
			"candidates", len(candidates),
			"assessments", len(assessments),
		)
	}
	return true, nil
}

func (s *Seeder) insertJobs(ctx context.Context, tx *sql.Tx, jobs []jobSeed) ([]int64, error) {
	stmt, err := tx.PrepareContext(ctx, seedJobInsertQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare job insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(jobs))
	for order, job := range jobs {
		tags, err := json.Marshal(job.req.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tags for job %q: %w", job.req.Title, err)
		}
		res, err := stmt.ExecContext(ctx,
			job.req.Title, job.req.Slug, string(job.req.Status), string(tags),
			order, s.tp.FormatForDB(job.createdAt), s.tp.FormatForDB(job.createdAt),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert job %q: %w", job.req.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Seeder) insertCandidates(ctx context.Context, tx *sql.Tx, candidates []candidateSeed, jobIDs []int64) error {
	candStmt, err := tx.PrepareContext(ctx, seedCandidateInsertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare candidate insert: %w", err)
	}
	defer candStmt.Close()

	eventStmt, err := tx.PrepareContext(ctx, seedEventInsertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer eventStmt.Close()

	for _, cand := range candidates {
		var jobID any
		if cand.jobIndex >= 0 {
			jobID = jobIDs[cand.jobIndex]
		}
		res, err := candStmt.ExecContext(ctx,
			cand.req.Name, cand.req.Email, string(cand.req.Stage), jobID,
			s.tp.FormatForDB(cand.createdAt), s.tp.FormatForDB(cand.updatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert candidate %q: %w", cand.req.Email, err)
		}
		candidateID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read candidate id: %w", err)
		}

		for _, ev := range cand.events {
			var fromStage, toStage, note any
			if ev.fromStage != nil {
				fromStage = string(*ev.fromStage)
			}
			if ev.toStage != nil {
				toStage = string(*ev.toStage)
			}
			if ev.note != "" {
				note = ev.note
			}
			if _, err := eventStmt.ExecContext(ctx,
				candidateID, string(ev.eventType), fromStage, toStage, note, s.tp.FormatForDB(ev.at),
			); err != nil {
				return fmt.Errorf("failed to insert timeline event for candidate %q: %w", cand.req.Email, err)
			}
		}
	}
	return nil
}

func (s *Seeder) insertAssessments(
	ctx context.Context,
	tx *sql.Tx,
	assessments []assessmentSeed,
	jobIDs []int64,
	now time.Time,
) error {
	for _, seed := range assessments {
		sections, err := json.Marshal(seed.req.Sections)
		if err != nil {
			return fmt.Errorf("failed to encode sections for %q: %w", seed.req.Title, err)
		}
		if _, err := tx.ExecContext(ctx, seedAssessmentInsertQuery,
			jobIDs[seed.jobIndex], seed.req.Title, string(sections), s.tp.FormatForDB(now),
		); err != nil {
			return fmt.Errorf("failed to insert assessment %q: %w", seed.req.Title, err)
		}
	}
	return nil
}

// Reset deletes every seeded table and clears the seeded flag inside one
// transaction, so a following EnsureSeeded regenerates from scratch.
func (s *Seeder) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	tables := []string{"assessment_responses", "assessments", "candidate_events", "candidates", "jobs"}
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM meta WHERE key = ?", data.MetaKeySeeded); err != nil {
		return fmt.Errorf("failed to clear seeded flag: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset transaction: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "reset database")
	}
	return nil
}
