// Package model defines the core data types and structures used throughout the TalentFlow hiring API.
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxJobTitleLen = 255
	maxJobTags     = 20
)

// JobStatus controls whether a job is open for candidates or archived.
type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

// Valid reports whether the job status is supported.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusArchived:
		return true
	default:
		return false
	}
}

// ParseJobStatus normalizes a status string and reports whether it is supported.
func ParseJobStatus(value string) (JobStatus, bool) {
	status := JobStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Job sort fields accepted by the list endpoint. The stored board position
// sorts ascending; creation time sorts newest first.
const (
	JobSortOrder     = "order"
	JobSortCreatedAt = "createdAt"
)

// JobsListOptions controls paging and filtering for listing jobs.
// Notes:
// - Search matches title and slug via case-insensitive substring.
// - Status matches exactly.
// - Tags requires every listed tag to be present (intersection).
// - Sort supports: "order" (ascending), "createdAt" (newest first).
type JobsListOptions struct {
	Page     int
	PageSize int
	Search   string
	Status   *JobStatus
	Tags     []string
	Sort     string
}

// Job represents a posting on the jobs board. Order is the dense zero-based
// position across the entire collection, maintained by reorder operations.
type Job struct {
	ID        int64     `json:"id"        db:"id"`
	Title     string    `json:"title"     db:"title"`
	Slug      string    `json:"slug"      db:"slug"`
	Status    JobStatus `json:"status"    db:"status"`
	Tags      []string  `json:"tags"      db:"tags"`
	Order     int       `json:"order"     db:"sort_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateJobRequest represents parameters to create a Job.
// Slug is derived from the title when omitted.
type CreateJobRequest struct {
	Title  string    `json:"title"`
	Slug   string    `json:"slug,omitempty"`
	Status JobStatus `json:"status,omitempty"`
	Tags   []string  `json:"tags,omitempty"`
}

// UpdateJobRequest represents parameters to update a Job.
type UpdateJobRequest struct {
	Title  *string    `json:"title,omitempty"`
	Slug   *string    `json:"slug,omitempty"`
	Status *JobStatus `json:"status,omitempty"`
	Tags   *[]string  `json:"tags,omitempty"`
}

// ReorderJobRequest moves a job between absolute board positions.
// FromOrder is the position the caller last observed; the stored position is
// authoritative, so a stale FromOrder cannot break the dense sequence.
type ReorderJobRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)

/// Slugify converts free text into a URL-safe slug: lowercased, words joined
// with hyphens, anything outside [a-z0-9-] dropped.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = slugInvalidChars.ReplaceAllString(s, "")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// normalizeTags trims each tag and drops empties and duplicates, preserving order.
func normalizeTags(tags []string) ([]string, error) {
	if len(tags) > maxJobTags {
		return nil, errors.New("too many tags")
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}

// Validate validates CreateJobRequest, normalizing the slug, status, and tags in place.
func (r *CreateJobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxJobTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if r.Slug == "" {
		r.Slug = Slugify(r.Title)
	} else {
		r.Slug = Slugify(r.Slug)
	}
	if r.Slug == "" {
		return errors.New("slug must contain at least one letter or digit")
	}
	if r.Status == "" {
		r.Status = JobStatusActive
	}
	r.Status = JobStatus(strings.ToLower(string(r.Status)))
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	tags, err := normalizeTags(r.Tags)
	if err != nil {
		return err
	}
	r.Tags = tags
	return nil
}

// HasUpdates reports whether any field is set in UpdateJobRequest.
func (r *UpdateJobRequest) HasUpdates() bool {
	return r.Title != nil || r.Slug != nil || r.Status != nil || r.Tags != nil
}

// Validate validates UpdateJobRequest, ensuring at least one field is set and values are sane.
func (r *UpdateJobRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxJobTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
		*r.Title = t
	}
	if r.Slug != nil {
		s := Slugify(*r.Slug)
		if s == "" {
			return errors.New("slug must contain at least one letter or digit")
		}
		*r.Slug = s
	}
	if r.Status != nil {
		status := JobStatus(strings.ToLower(strings.TrimSpace(string(*r.Status))))
		if !status.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	if r.Tags != nil {
		tags, err := normalizeTags(*r.Tags)
		if err != nil {
			return err
		}
		*r.Tags = tags
	}
	return nil
}

// Validate validates ReorderJobRequest positions.
func (r *ReorderJobRequest) Validate() error {
	if r.FromOrder < 0 {
		return errors.New("fromOrder cannot be negative")
	}
	if r.ToOrder < 0 {
		return errors.New("toOrder cannot be negative")
	}
	return nil
}
