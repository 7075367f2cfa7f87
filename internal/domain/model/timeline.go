//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxNoteLen = 4000

// TimelineEventType distinguishes the kinds of entries on a candidate timeline.
type TimelineEventType string

const (
	// EventStageChange records a pipeline stage transition. The candidate's
	// first timeline entry is a stage change into applied with no from stage.
	EventStageChange TimelineEventType = "stage_change"
	// EventNote records a free-form recruiter note.
	EventNote TimelineEventType = "note"
)

// Valid reports whether the event type is supported.
func (t TimelineEventType) Valid() bool {
	switch t {
	case EventStageChange, EventNote:
		return true
	default:
		return false
	}
}

// TimelineEvent is one append-only entry on a candidate's history.
// Stage fields are set for stage_change events, Note for note events.
type TimelineEvent struct {
	ID          int64             `json:"id"                  db:"id"`
	CandidateID int64             `json:"candidateId"         db:"candidate_id"`
	Type        TimelineEventType `json:"type"                db:"type"`
	FromStage   *CandidateStage   `json:"fromStage,omitempty" db:"from_stage"`
	ToStage     *CandidateStage   `json:"toStage,omitempty"   db:"to_stage"`
	Note        *string           `json:"note,omitempty"      db:"note"`
	At          time.Time         `json:"at"                  db:"at"`
}

// AddNoteRequest attaches a note to a candidate timeline.
type AddNoteRequest struct {
	Note string `json:"note"`
}

// Validate rejects empty or whitespace-only notes.
func (r *AddNoteRequest) Validate() error {
	r.Note = strings.TrimSpace(r.Note)
	if r.Note == "" {
		return errors.New("note cannot be empty")
	}
	if utf8.RuneCountInString(r.Note) > maxNoteLen {
		return errors.New("note cannot exceed 4000 characters")
	}
	return nil
}
