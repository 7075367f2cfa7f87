package testutil

import (
	"fmt"

	"github.com/talentflow/ui-api/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Title:  "Backend Engineer",
			Status: model.JobStatusActive,
			Tags:   []string{"engineering"},
		},
	}
}

// WithTitle sets the job title.
func (b *JobRequestBuilder) WithTitle(title string) *JobRequestBuilder {
	b.req.Title = title
	return b
}

// WithSlug sets an explicit slug instead of deriving one from the title.
func (b *JobRequestBuilder) WithSlug(slug string) *JobRequestBuilder {
	b.req.Slug = slug
	return b
}

// WithStatus sets the job status.
func (b *JobRequestBuilder) WithStatus(status model.JobStatus) *JobRequestBuilder {
	b.req.Status = status
	return b
}

// WithTags sets the job tags.
func (b *JobRequestBuilder) WithTags(tags ...string) *JobRequestBuilder {
	b.req.Tags = tags
	return b
}

// Build returns the built CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// CandidateRequestBuilder provides a fluent interface for building CreateCandidateRequest objects for testing.
type CandidateRequestBuilder struct {
	req *model.CreateCandidateRequest
}

// NewCandidateRequest creates a new CandidateRequestBuilder with sensible defaults.
func NewCandidateRequest() *CandidateRequestBuilder {
	return &CandidateRequestBuilder{
		req: &model.CreateCandidateRequest{
			Name:  "Jordan Smith",
			Email: "jordan.smith@example.com",
			Stage: model.StageApplied,
		},
	}
}

// WithName sets the candidate name.
func (b *CandidateRequestBuilder) WithName(name string) *CandidateRequestBuilder {
	b.req.Name = name
	return b
}

// WithEmail sets the candidate email.
func (b *CandidateRequestBuilder) WithEmail(email string) *CandidateRequestBuilder {
	b.req.Email = email
	return b
}

// WithStage sets the initial pipeline stage.
func (b *CandidateRequestBuilder) WithStage(stage model.CandidateStage) *CandidateRequestBuilder {
	b.req.Stage = stage
	return b
}

// WithJobID links the candidate to a job.
func (b *CandidateRequestBuilder) WithJobID(jobID int64) *CandidateRequestBuilder {
	b.req.JobID = &jobID
	return b
}

// Build returns the built CreateCandidateRequest.
func (b *CandidateRequestBuilder) Build() *model.CreateCandidateRequest {
	return b.req
}

// AssessmentRequestBuilder provides a fluent interface for building SaveAssessmentRequest objects for testing.
type AssessmentRequestBuilder struct {
	req *model.SaveAssessmentRequest
}

// NewAssessmentRequest creates a new AssessmentRequestBuilder with one valid
// section containing a choice question and a text question.
func NewAssessmentRequest() *AssessmentRequestBuilder {
	return &AssessmentRequestBuilder{
		req: &model.SaveAssessmentRequest{
			Title: "Screening Questions",
			Sections: []model.Section{
				{
					ID:    "sec-1",
					Title: "Basics",
					Questions: []model.Question{
						{
							ID:       "q1",
							Type:     model.QuestionSingleChoice,
							Label:    "Are you authorized to work?",
							Required: true,
							Options:  []string{"Yes", "No"},
						},
						{
							ID:        "q2",
							Type:      model.QuestionShortText,
							Label:     "Current role",
							MaxLength: IntPtr(120),
						},
					},
				},
			},
		},
	}
}

// WithTitle sets the assessment title.
func (b *AssessmentRequestBuilder) WithTitle(title string) *AssessmentRequestBuilder {
	b.req.Title = title
	return b
}

// WithSections replaces the section list.
func (b *AssessmentRequestBuilder) WithSections(sections ...model.Section) *AssessmentRequestBuilder {
	b.req.Sections = sections
	return b
}

// AddSection appends a section.
func (b *AssessmentRequestBuilder) AddSection(section model.Section) *AssessmentRequestBuilder {
	b.req.Sections = append(b.req.Sections, section)
	return b
}

// Build returns the built SaveAssessmentRequest.
func (b *AssessmentRequestBuilder) Build() *model.SaveAssessmentRequest {
	return b.req
}

// TextAnswer builds a text answer value.
func TextAnswer(s string) model.AnswerValue {
	return model.AnswerValue{Kind: model.AnswerText, Str: s}
}

// NumberAnswer builds a numeric answer value.
func NumberAnswer(f float64) model.AnswerValue {
	return model.AnswerValue{Kind: model.AnswerNumber, Num: f}
}

// ListAnswer builds a multi-choice answer value.
func ListAnswer(values ...string) model.AnswerValue {
	return model.AnswerValue{Kind: model.AnswerList, List: values}
}

// UniqueEmail returns an email unique to the given ordinal, for loops that
// need distinct candidates.
func UniqueEmail(n int) string {
	return fmt.Sprintf("candidate%d@example.com", n)
}
