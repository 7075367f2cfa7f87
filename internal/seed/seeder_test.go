package seed

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/talentflow/ui-api/internal/data"
	"github.com/talentflow/ui-api/internal/domain/model"
	"github.com/talentflow/ui-api/internal/testutil"
)

func newTestSeeder(db *sql.DB, counts Counts, randomSeed uint64) *Seeder {
	return NewSeeder(SeederOptions{
		DB:         db,
		Meta:       data.NewMetaRepo(db),
		Counts:     counts,
		RandomSeed: randomSeed,
	})
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestSeeder_EnsureSeeded_PopulatesOnce(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		counts := Counts{Jobs: 6, Candidates: 40, Assessments: 2}
		seeder := newTestSeeder(db, counts, 42)

		seeded, err := seeder.EnsureSeeded(ctx)
		require.NoError(t, err)
		assert.True(t, seeded)

		assert.Equal(t, counts.Jobs, countRows(t, db, "jobs"))
		assert.Equal(t, counts.Candidates, countRows(t, db, "candidates"))
		assert.Equal(t, counts.Assessments, countRows(t, db, "assessments"))

		_, found, err := data.NewMetaRepo(db).Get(ctx, data.MetaKeySeeded)
		require.NoError(t, err)
		assert.True(t, found)

		// A second call sees the flag and leaves the data alone.
		seeded, err = seeder.EnsureSeeded(ctx)
		require.NoError(t, err)
		assert.False(t, seeded)
		assert.Equal(t, counts.Jobs, countRows(t, db, "jobs"))
		assert.Equal(t, counts.Candidates, countRows(t, db, "candidates"))
	})
}

func TestSeeder_EnsureSeeded_ConcurrentCallsSeedOnce(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		counts := Counts{Jobs: 4, Candidates: 25, Assessments: 1}
		seeder := newTestSeeder(db, counts, 7)

		g, ctx := errgroup.WithContext(context.Background())
		for i := 0; i < 8; i++ {
			g.Go(func() error {
				_, err := seeder.EnsureSeeded(ctx)
				return err
			})
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, counts.Jobs, countRows(t, db, "jobs"))
		assert.Equal(t, counts.Candidates, countRows(t, db, "candidates"))

		seeded, err := seeder.EnsureSeeded(context.Background())
		require.NoError(t, err)
		assert.False(t, seeded)
	})
}

func TestSeeder_JobsHaveDenseOrderAndUniqueSlugs(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		seeder := newTestSeeder(db, Counts{Jobs: 25, Candidates: 10, Assessments: 3}, 11)
		_, err := seeder.EnsureSeeded(ctx)
		require.NoError(t, err)

		rows, err := db.Query("SELECT sort_order FROM jobs ORDER BY sort_order")
		require.NoError(t, err)
		defer rows.Close()
		want := 0
		for rows.Next() {
			var order int
			require.NoError(t, rows.Scan(&order))
			assert.Equal(t, want, order)
			want++
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, 25, want)

		var distinctSlugs int
		require.NoError(t, db.QueryRow("SELECT COUNT(DISTINCT slug) FROM jobs").Scan(&distinctSlugs))
		assert.Equal(t, 25, distinctSlugs)
	})
}

func TestSeeder_TimelinesWalkThePipeline(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		seeder := newTestSeeder(db, Counts{Jobs: 3, Candidates: 30, Assessments: 1}, 19)
		_, err := seeder.EnsureSeeded(ctx)
		require.NoError(t, err)

		candidates, err := data.NewCandidateRepo(db).List(ctx, model.CandidatesListOptions{Page: 1, PageSize: 30})
		require.NoError(t, err)
		require.Len(t, candidates.Data, 30)

		eventRepo := data.NewEventRepo(db)
		for _, cand := range candidates.Data {
			events, err := eventRepo.ListByCandidate(ctx, cand.ID)
			require.NoError(t, err)
			require.NotEmpty(t, events, "candidate %d has no timeline", cand.ID)

			first := events[0]
			assert.Equal(t, model.EventStageChange, first.Type)
			assert.Nil(t, first.FromStage)
			require.NotNil(t, first.ToStage)
			assert.Equal(t, model.StageApplied, *first.ToStage)

			var lastStage model.CandidateStage
			prevAt := first.At
			for _, ev := range events {
				assert.False(t, ev.At.Before(prevAt), "timeline for candidate %d goes backwards", cand.ID)
				prevAt = ev.At
				if ev.Type == model.EventStageChange {
					require.NotNil(t, ev.ToStage)
					lastStage = *ev.ToStage
				}
			}
			assert.Equal(t, cand.Stage, lastStage, "candidate %d stage does not match its history", cand.ID)
		}
	})
}

func TestSeeder_AssessmentsAreWellFormed(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		seeder := newTestSeeder(db, Counts{Jobs: 5, Candidates: 10, Assessments: 3}, 23)
		_, err := seeder.EnsureSeeded(ctx)
		require.NoError(t, err)

		rows, err := db.Query("SELECT job_id FROM assessments ORDER BY job_id")
		require.NoError(t, err)
		defer rows.Close()
		var jobIDs []int64
		for rows.Next() {
			var id int64
			require.NoError(t, rows.Scan(&id))
			jobIDs = append(jobIDs, id)
		}
		require.NoError(t, rows.Err())
		require.Len(t, jobIDs, 3)

		repo := data.NewAssessmentRepo(db)
		for _, jobID := range jobIDs {
			assessment, err := repo.GetByJobID(ctx, jobID)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(assessment.Sections), 2)

			questionCount := 0
			conditional := 0
			for _, section := range assessment.Sections {
				questionCount += len(section.Questions)
				for _, q := range section.Questions {
					if q.ShowIf != nil {
						conditional++
					}
				}
			}
			assert.GreaterOrEqual(t, questionCount, 10)
			assert.GreaterOrEqual(t, conditional, 1)

			// The stored document must round-trip through save validation.
			req := model.SaveAssessmentRequest{Title: assessment.Title, Sections: assessment.Sections}
			assert.NoError(t, req.Validate())
		}
	})
}

func TestSeeder_DeterministicWithFixedSeed(t *testing.T) {
	anchor := data.NewFixedTimeProvider(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	snapshot := func(t *testing.T) ([]string, []string) {
		t.Helper()
		var jobs, emails []string
		testutil.WithTestDB(t, func(db *sql.DB) {
			seeder := NewSeeder(SeederOptions{
				DB:           db,
				Meta:         data.NewMetaRepo(db),
				Counts:       Counts{Jobs: 8, Candidates: 20, Assessments: 2},
				RandomSeed:   99,
				TimeProvider: anchor,
			})
			_, err := seeder.EnsureSeeded(context.Background())
			require.NoError(t, err)

			rows, err := db.Query("SELECT slug FROM jobs ORDER BY sort_order")
			require.NoError(t, err)
			defer rows.Close()
			for rows.Next() {
				var slug string
				require.NoError(t, rows.Scan(&slug))
				jobs = append(jobs, slug)
			}
			require.NoError(t, rows.Err())

			emailRows, err := db.Query("SELECT email FROM candidates ORDER BY id")
			require.NoError(t, err)
			defer emailRows.Close()
			for emailRows.Next() {
				var email string
				require.NoError(t, emailRows.Scan(&email))
				emails = append(emails, email)
			}
			require.NoError(t, emailRows.Err())
		})
		return jobs, emails
	}

	jobsA, emailsA := snapshot(t)
	jobsB, emailsB := snapshot(t)
	assert.Equal(t, jobsA, jobsB)
	assert.Equal(t, emailsA, emailsB)
}

func TestSeeder_ResetClearsDataAndFlag(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		seeder := newTestSeeder(db, Counts{Jobs: 3, Candidates: 12, Assessments: 1}, 5)
		_, err := seeder.EnsureSeeded(ctx)
		require.NoError(t, err)
		require.NotZero(t, countRows(t, db, "candidates"))

		require.NoError(t, seeder.Reset(ctx))
		assert.Zero(t, countRows(t, db, "jobs"))
		assert.Zero(t, countRows(t, db, "candidates"))
		assert.Zero(t, countRows(t, db, "candidate_events"))
		assert.Zero(t, countRows(t, db, "assessments"))

		_, found, err := data.NewMetaRepo(db).Get(ctx, data.MetaKeySeeded)
		require.NoError(t, err)
		assert.False(t, found)

		// Seeding works again after a reset.
		seeded, err := seeder.EnsureSeeded(ctx)
		require.NoError(t, err)
		assert.True(t, seeded)
	})
}
