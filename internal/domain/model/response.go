//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// AnswerKind tags the concrete type held by an AnswerValue.
type AnswerKind int

const (
	AnswerText AnswerKind = iota + 1
	AnswerNumber
	AnswerBool
	AnswerList
)

// AnswerValue is a submitted answer: a string, number, boolean, or list of
// strings (multi-choice selections).
type AnswerValue struct {
	Kind AnswerKind
	Str  string
	Num  float64
	Bool bool
	List []string
}

// UnmarshalJSON decodes an answer, rejecting null and objects.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("answer cannot be empty")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = AnswerValue{Kind: AnswerText, Str: s}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = AnswerValue{Kind: AnswerBool, Bool: b}
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return errors.New("answer lists must contain only strings")
		}
		*v = AnswerValue{Kind: AnswerList, List: list}
	case 'n':
		return errors.New("answer cannot be null")
	case '{':
		return errors.New("answer must be a string, number, boolean, or list of strings")
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return errors.New("answer must be a string, number, boolean, or list of strings")
		}
		*v = AnswerValue{Kind: AnswerNumber, Num: f}
	}
	return nil
}

// MarshalJSON encodes the held answer.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerText:
		return json.Marshal(v.Str)
	case AnswerNumber:
		return json.Marshal(v.Num)
	case AnswerBool:
		return json.Marshal(v.Bool)
	case AnswerList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return nil, errors.New("answer value is undefined")
	}
}

// Empty reports whether the answer carries no usable content.
func (v AnswerValue) Empty() bool {
	switch v.Kind {
	case AnswerText:
		return v.Str == ""
	case AnswerList:
		return len(v.List) == 0
	case AnswerNumber, AnswerBool:
		return false
	default:
		return true
	}
}

// MatchesScalar reports whether the answer satisfies a visibility comparison.
// List answers match a string scalar when they contain it.
func (v AnswerValue) MatchesScalar(s ScalarValue) bool {
	switch v.Kind {
	case AnswerText:
		return s.Kind == ScalarString && v.Str == s.Str
	case AnswerNumber:
		return s.Kind == ScalarNumber && v.Num == s.Num
	case AnswerBool:
		return s.Kind == ScalarBool && v.Bool == s.Bool
	case AnswerList:
		if s.Kind != ScalarString {
			return false
		}
		for _, item := range v.List {
			if item == s.Str {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// AssessmentResponse is one submitted form, keyed by question id.
// Submissions are append-only; a candidate may submit more than once.
type AssessmentResponse struct {
	ID          int64                  `json:"id"                    db:"id"`
	JobID       int64                  `json:"jobId"                 db:"job_id"`
	CandidateID *int64                 `json:"candidateId,omitempty" db:"candidate_id"`
	Answers     map[string]AnswerValue `json:"answers"               db:"answers"`
	SubmittedAt time.Time              `json:"submittedAt"           db:"submitted_at"`
}

// SubmitResponseRequest submits answers for a job's assessment.
type SubmitResponseRequest struct {
	CandidateID *int64                 `json:"candidateId,omitempty"`
	Answers     map[string]AnswerValue `json:"answers"`
}

// Validate applies shape checks that do not need the assessment document.
func (r *SubmitResponseRequest) Validate() error {
	if r.CandidateID != nil && *r.CandidateID <= 0 {
		return errors.New("candidateId must be a positive id")
	}
	if r.Answers == nil {
		r.Answers = map[string]AnswerValue{}
	}
	return nil
}

// ResponsesListOptions controls paging and filtering for listing responses.
type ResponsesListOptions struct {
	Page        int
	PageSize    int
	CandidateID *int64
}

// ValidateAnswers checks submitted answers against the assessment document.
// Questions hidden by an unsatisfied ShowIf are skipped entirely: they are
// not required and any answer supplied for them is ignored.
func (a *Assessment) ValidateAnswers(answers map[string]AnswerValue) error {
	known := make(map[string]struct{})
	for _, section := range a.Sections {
		for i := range section.Questions {
			q := &section.Questions[i]
			known[q.ID] = struct{}{}
			if !questionVisible(q, answers) {
				continue
			}
			answer, ok := answers[q.ID]
			if !ok || answer.Empty() {
				if q.Required {
					return fmt.Errorf("question %q: an answer is required", q.ID)
				}
				continue
			}
			if err := checkAnswer(q, answer); err != nil {
				return err
			}
		}
	}
	for id := range answers {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("answer references unknown question %q", id)
		}
	}
	return nil
}

// questionVisible evaluates the question's ShowIf against submitted answers.
func questionVisible(q *Question, answers map[string]AnswerValue) bool {
	if q.ShowIf == nil {
		return true
	}
	answer, ok := answers[q.ShowIf.QuestionID]
	if !ok {
		return false
	}
	return answer.MatchesScalar(q.ShowIf.Equals)
}

// checkAnswer type-checks one answer against its question definition.
func checkAnswer(q *Question, answer AnswerValue) error {
	switch q.Type {
	case QuestionSingleChoice:
		if answer.Kind != AnswerText {
			return fmt.Errorf("question %q: answer must be a single option", q.ID)
		}
		if !containsOption(q.Options, answer.Str) {
			return fmt.Errorf("question %q: %q is not one of the options", q.ID, answer.Str)
		}
	case QuestionMultiChoice:
		if answer.Kind != AnswerList {
			return fmt.Errorf("question %q: answer must be a list of options", q.ID)
		}
		for _, item := range answer.List {
			if !containsOption(q.Options, item) {
				return fmt.Errorf("question %q: %q is not one of the options", q.ID, item)
			}
		}
	case QuestionShortText, QuestionLongText:
		if answer.Kind != AnswerText {
			return fmt.Errorf("question %q: answer must be text", q.ID)
		}
		if q.MaxLength != nil && utf8.RuneCountInString(answer.Str) > *q.MaxLength {
			return fmt.Errorf("question %q: answer exceeds %d characters", q.ID, *q.MaxLength)
		}
	case QuestionNumeric:
		if answer.Kind != AnswerNumber {
			return fmt.Errorf("question %q: answer must be a number", q.ID)
		}
		if q.Min != nil && answer.Num < *q.Min {
			return fmt.Errorf("question %q: answer is below the minimum of %v", q.ID, *q.Min)
		}
		if q.Max != nil && answer.Num > *q.Max {
			return fmt.Errorf("question %q: answer is above the maximum of %v", q.ID, *q.Max)
		}
	case QuestionFileUpload:
		if answer.Kind != AnswerText {
			return fmt.Errorf("question %q: answer must be a file name", q.ID)
		}
	}
	return nil
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
