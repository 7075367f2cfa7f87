//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxCandidateNameLen = 255
	maxCandidateEmail   = 320
)

// CandidateStage is a candidate's position in the hiring pipeline.
type CandidateStage string

const (
	StageApplied  CandidateStage = "applied"
	StageScreen   CandidateStage = "screen"
	StageTech     CandidateStage = "tech"
	StageOffer    CandidateStage = "offer"
	StageHired    CandidateStage = "hired"
	StageRejected CandidateStage = "rejected"
)

// Stages lists every pipeline stage in board order.
func Stages() []CandidateStage {
	return []CandidateStage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}
}

// Valid reports whether the stage is supported.
func (s CandidateStage) Valid() bool {
	switch s {
	case StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected:
		return true
	default:
		return false
	}
}

// ParseCandidateStage normalizes a stage string and reports whether it is supported.
func ParseCandidateStage(value string) (CandidateStage, bool) {
	stage := CandidateStage(strings.ToLower(strings.TrimSpace(value)))
	if stage.Valid() {
		return stage, true
	}
	return "", false
}

// CandidatesListOptions controls paging and filtering for listing candidates.
// Notes:
// - Search matches name and email via case-insensitive substring.
// - Stage and JobID match exactly.
// - Results are ordered newest first.
type CandidatesListOptions struct {
	Page     int
	PageSize int
	Search   string
	Stage    *CandidateStage
	JobID    *int64
}

// Candidate represents an applicant in the pipeline. JobID links the
// candidate to a job posting; it is nil for unattached applicants.
type Candidate struct {
	ID        int64          `json:"id"              db:"id"`
	Name      string         `json:"name"            db:"name"`
	Email     string         `json:"email"           db:"email"`
	Stage     CandidateStage `json:"stage"           db:"stage"`
	JobID     *int64         `json:"jobId,omitempty" db:"job_id"`
	CreatedAt time.Time      `json:"createdAt"       db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt"       db:"updated_at"`
}

// CreateCandidateRequest represents parameters to create a Candidate.
// Stage defaults to applied when omitted.
type CreateCandidateRequest struct {
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Stage CandidateStage `json:"stage,omitempty"`
	JobID *int64         `json:"jobId,omitempty"`
}

// UpdateCandidateRequest represents parameters to update a Candidate.
type UpdateCandidateRequest struct {
	Name  *string         `json:"name,omitempty"`
	Email *string         `json:"email,omitempty"`
	Stage *CandidateStage `json:"stage,omitempty"`
	JobID *int64          `json:"jobId,omitempty"`
}

// Validate validates CreateCandidateRequest, normalizing stage and email in place.
func (r *CreateCandidateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxCandidateNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	r.Email = strings.TrimSpace(r.Email)
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Stage == "" {
		r.Stage = StageApplied
	}
	r.Stage = CandidateStage(strings.ToLower(string(r.Stage)))
	if !r.Stage.Valid() {
		return errors.New("invalid stage")
	}
	if r.JobID != nil && *r.JobID <= 0 {
		return errors.New("jobId must be a positive id")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateCandidateRequest.
func (r *UpdateCandidateRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Stage != nil || r.JobID != nil
}

// Validate validates UpdateCandidateRequest, ensuring at least one field is set and values are sane.
func (r *UpdateCandidateRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxCandidateNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
		*r.Name = n
	}
	if r.Email != nil {
		e := strings.TrimSpace(*r.Email)
		if err := validateEmail(e); err != nil {
			return err
		}
		*r.Email = e
	}
	if r.Stage != nil {
		stage := CandidateStage(strings.ToLower(strings.TrimSpace(string(*r.Stage))))
		if !stage.Valid() {
			return errors.New("invalid stage")
		}
		*r.Stage = stage
	}
	if r.JobID != nil && *r.JobID <= 0 {
		return errors.New("jobId must be a positive id")
	}
	return nil
}

// validateEmail applies a light-weight shape check, not full RFC validation.
func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if utf8.RuneCountInString(email) > maxCandidateEmail {
		return errors.New("email is too long")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("email must contain a local part and a domain")
	}
	return nil
}
