//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const maxAssessmentTitleLen = 255

// QuestionType enumerates the supported assessment question kinds.
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionShortText    QuestionType = "short_text"
	QuestionLongText     QuestionType = "long_text"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFileUpload   QuestionType = "file_upload"
)

// Valid reports whether the question type is supported.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionShortText,
		QuestionLongText, QuestionNumeric, QuestionFileUpload:
		return true
	default:
		return false
	}
}

// hasOptions reports whether the question type carries an option list.
func (t QuestionType) hasOptions() bool {
	return t == QuestionSingleChoice || t == QuestionMultiChoice
}

// ScalarKind tags the concrete type held by a ScalarValue.
type ScalarKind int

const (
	ScalarString ScalarKind = iota + 1
	ScalarNumber
	ScalarBool
)

// ScalarValue is a JSON scalar: exactly one of string, number, or boolean.
// Conditional visibility rules compare answers against these; objects,
// arrays, and null are rejected at decode time.
type ScalarValue struct {
	Kind ScalarKind
	Str  string
	Num  float64
	Bool bool
}

// Defined reports whether the value was decoded from a JSON scalar.
func (v ScalarValue) Defined() bool {
	return v.Kind != 0
}

// UnmarshalJSON decodes a JSON scalar, rejecting null, objects, and arrays.
func (v *ScalarValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("value cannot be empty")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ScalarValue{Kind: ScalarString, Str: s}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = ScalarValue{Kind: ScalarBool, Bool: b}
	case 'n':
		return errors.New("value cannot be null")
	case '{', '[':
		return errors.New("value must be a string, number, or boolean")
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return errors.New("value must be a string, number, or boolean")
		}
		*v = ScalarValue{Kind: ScalarNumber, Num: f}
	}
	return nil
}

// MarshalJSON encodes the held scalar.
func (v ScalarValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ScalarString:
		return json.Marshal(v.Str)
	case ScalarNumber:
		return json.Marshal(v.Num)
	case ScalarBool:
		return json.Marshal(v.Bool)
	default:
		return nil, errors.New("scalar value is undefined")
	}
}

// Equal compares two scalars; kinds must match and numbers compare numerically.
func (v ScalarValue) Equal(other ScalarValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ScalarString:
		return v.Str == other.Str
	case ScalarNumber:
		return v.Num == other.Num
	case ScalarBool:
		return v.Bool == other.Bool
	default:
		return false
	}
}

// ShowIf makes a question visible only when an earlier question's answer
// equals the given scalar.
type ShowIf struct {
	QuestionID string      `json:"questionId"`
	Equals     ScalarValue `json:"equals"`
}

// Question is one prompt inside an assessment section.
// Options applies to choice types; Min/Max to numeric; MaxLength to text.
type Question struct {
	ID        string       `json:"id"`
	Type      QuestionType `json:"type"`
	Label     string       `json:"label"`
	Required  bool         `json:"required,omitempty"`
	Options   []string     `json:"options,omitempty"`
	Min       *float64     `json:"min,omitempty"`
	Max       *float64     `json:"max,omitempty"`
	MaxLength *int         `json:"maxLength,omitempty"`
	ShowIf    *ShowIf      `json:"showIf,omitempty"`
}

// Section groups questions under a heading.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Assessment is the per-job form definition. At most one exists per job;
// saving replaces the whole document.
type Assessment struct {
	JobID     int64     `json:"jobId"     db:"job_id"`
	Title     string    `json:"title"     db:"title"`
	Sections  []Section `json:"sections"  db:"sections"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SaveAssessmentRequest replaces a job's assessment document.
type SaveAssessmentRequest struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Validate checks the assessment document structure: non-empty title, at
// least one section, well-formed questions, and visibility rules that only
// reference earlier questions.
func (r *SaveAssessmentRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxAssessmentTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if len(r.Sections) == 0 {
		return errors.New("at least one section is required")
	}

	seen := make(map[string]struct{})
	for si := range r.Sections {
		section := &r.Sections[si]
		section.Title = strings.TrimSpace(section.Title)
		if section.ID == "" {
			return fmt.Errorf("section %d: id is required", si)
		}
		if section.Title == "" {
			return fmt.Errorf("section %q: title is required", section.ID)
		}
		if len(section.Questions) == 0 {
			return fmt.Errorf("section %q: at least one question is required", section.ID)
		}
		for qi := range section.Questions {
			if err := validateQuestion(&section.Questions[qi], seen); err != nil {
				return fmt.Errorf("section %q: %w", section.ID, err)
			}
		}
	}
	return nil
}

// validateQuestion checks a single question. seen accumulates the ids of
// questions validated so far, which is exactly the set a ShowIf may reference.
func validateQuestion(q *Question, seen map[string]struct{}) error {
	if q.ID == "" {
		return errors.New("question id is required")
	}
	if _, dup := seen[q.ID]; dup {
		return fmt.Errorf("question %q: duplicate id", q.ID)
	}
	q.Label = strings.TrimSpace(q.Label)
	if q.Label == "" {
		return fmt.Errorf("question %q: label is required", q.ID)
	}
	if !q.Type.Valid() {
		return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
	}
	if q.Type.hasOptions() {
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q: choice questions require options", q.ID)
		}
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("question %q: options cannot be empty", q.ID)
			}
		}
	} else if len(q.Options) > 0 {
		return fmt.Errorf("question %q: options are only valid for choice questions", q.ID)
	}
	if q.Min != nil || q.Max != nil {
		if q.Type != QuestionNumeric {
			return fmt.Errorf("question %q: min/max are only valid for numeric questions", q.ID)
		}
		if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
			return fmt.Errorf("question %q: min cannot exceed max", q.ID)
		}
	}
	if q.MaxLength != nil {
		if q.Type != QuestionShortText && q.Type != QuestionLongText {
			return fmt.Errorf("question %q: maxLength is only valid for text questions", q.ID)
		}
		if *q.MaxLength <= 0 {
			return fmt.Errorf("question %q: maxLength must be > 0", q.ID)
		}
	}
	if q.ShowIf != nil {
		if q.ShowIf.QuestionID == "" {
			return fmt.Errorf("question %q: showIf.questionId is required", q.ID)
		}
		if q.ShowIf.QuestionID == q.ID {
			return fmt.Errorf("question %q: showIf cannot reference itself", q.ID)
		}
		if _, ok := seen[q.ShowIf.QuestionID]; !ok {
			return fmt.Errorf("question %q: showIf references unknown or later question %q", q.ID, q.ShowIf.QuestionID)
		}
		if !q.ShowIf.Equals.Defined() {
			return fmt.Errorf("question %q: showIf.equals is required", q.ID)
		}
	}
	seen[q.ID] = struct{}{}
	return nil
}
