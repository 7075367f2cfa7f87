package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	"github.com/talentflow/ui-api/internal/testutil"
)

func TestEventRepo_AppendAndList(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tp := NewFixedTimeProvider(time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC))
		candidates := NewCandidateRepoWithTimeProvider(db, tp)
		repo := NewEventRepoWithTimeProvider(db, tp)

		candidate, err := candidates.Create(ctx, testutil.NewCandidateRequest().Build())
		require.NoError(t, err)

		tp.AddTime(time.Hour)
		note := "Strong portfolio"
		event, err := repo.Append(ctx, core.AppendEventParams{
			CandidateID: candidate.ID,
			Type:        model.EventNote,
			Note:        &note,
		})
		require.NoError(t, err)
		assert.Equal(t, model.EventNote, event.Type)
		require.NotNil(t, event.Note)
		assert.Equal(t, note, *event.Note)
		assert.True(t, event.At.Equal(tp.Now().UTC()))

		tp.AddTime(time.Hour)
		from := model.StageApplied
		to := model.StageScreen
		_, err = repo.Append(ctx, core.AppendEventParams{
			CandidateID: candidate.ID,
			Type:        model.EventStageChange,
			FromStage:   &from,
			ToStage:     &to,
		})
		require.NoError(t, err)

		timeline, err := repo.ListByCandidate(ctx, candidate.ID)
		require.NoError(t, err)
		require.Len(t, timeline, 3, "origin event plus two appended")

		// strictly non-decreasing times, insertion order on ties
		for i := 1; i < len(timeline); i++ {
			assert.False(t, timeline[i].At.Before(timeline[i-1].At))
		}
		assert.Equal(t, model.EventNote, timeline[1].Type)
		assert.Equal(t, model.EventStageChange, timeline[2].Type)

		// events round-trip their stored timestamps
		assert.True(t, timeline[1].At.Equal(event.At))
	})
}

func TestEventRepo_ListByCandidate_EmptyForUnknown(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewEventRepo(db)

		timeline, err := repo.ListByCandidate(context.Background(), 777)
		require.NoError(t, err)
		assert.Empty(t, timeline)
	})
}
