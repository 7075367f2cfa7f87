package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/domain/model"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// EventRepo provides database operations for candidate timeline events.
// The timeline is append-only; events are never updated or deleted.
type EventRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEventRepo creates a new EventRepo with real time provider.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewEventRepoWithTimeProvider creates a new EventRepo with a custom time provider (useful for tests).
func NewEventRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *EventRepo {
	return &EventRepo{DB: db, timeProvider: tp}
}

var _ core.EventRepository = (*EventRepo)(nil)

const (
	eventInsertQuery = `
		INSERT INTO candidate_events (candidate_id, type, from_stage, to_stage, note, at)
		VALUES (?, ?, ?, ?, ?, ?)`

	eventListByCandidateQuery = `
		SELECT id, candidate_id, type, from_stage, to_stage, note, at
		FROM candidate_events
		WHERE candidate_id = ?
		ORDER BY at, id`
)

// Append writes one timeline event stamped with the repo's current time.
func (r *EventRepo) Append(ctx context.Context, params core.AppendEventParams) (*model.TimelineEvent, error) {
	at := r.timeProvider.Now().UTC()
	res, err := r.DB.ExecContext(ctx, eventInsertQuery,
		params.CandidateID,
		string(params.Type),
		stageValue(params.FromStage),
		stageValue(params.ToStage),
		params.Note,
		r.timeProvider.FormatForDB(at),
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read event id: %w", err)
	}
	return &model.TimelineEvent{
		ID:          id,
		CandidateID: params.CandidateID,
		Type:        params.Type,
		FromStage:   params.FromStage,
		ToStage:     params.ToStage,
		Note:        params.Note,
		// Truncate to the stored millisecond precision so the returned
		// event equals a re-read of the row.
		At: at.Truncate(time.Millisecond),
	}, nil
}

// ListByCandidate returns a candidate's timeline ordered by time ascending,
// insertion order breaking ties.
func (r *EventRepo) ListByCandidate(ctx context.Context, candidateID int64) ([]*model.TimelineEvent, error) {
	rows, err := r.DB.QueryContext(ctx, eventListByCandidateQuery, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]*model.TimelineEvent, 0, 8)
	for rows.Next() {
		event, scanErr := scanTimelineEvent(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan timeline event: %w", scanErr)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list timeline events: %w", err)
	}
	return events, nil
}

// stageValue converts an optional stage to a nullable column value.
func stageValue(stage *model.CandidateStage) any {
	if stage == nil {
		return nil
	}
	return string(*stage)
}

// scanTimelineEvent scans an event row in insert column order.
func scanTimelineEvent(row rowScanner) (*model.TimelineEvent, error) {
	var (
		event     model.TimelineEvent
		eventType string
		fromStage sql.NullString
		toStage   sql.NullString
		note      sql.NullString
		at        string
	)
	if err := row.Scan(
		&event.ID,
		&event.CandidateID,
		&eventType,
		&fromStage,
		&toStage,
		&note,
		&at,
	); err != nil {
		return nil, err
	}
	event.Type = model.TimelineEventType(eventType)
	if fromStage.Valid {
		stage := model.CandidateStage(fromStage.String)
		event.FromStage = &stage
	}
	if toStage.Valid {
		stage := model.CandidateStage(toStage.String)
		event.ToStage = &stage
	}
	if note.Valid {
		event.Note = &note.String
	}
	var err error
	if event.At, err = parseDBTime(at); err != nil {
		return nil, fmt.Errorf("failed to parse event time: %w", err)
	}
	return &event, nil
}
