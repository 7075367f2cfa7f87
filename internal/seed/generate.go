package seed

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/talentflow/ui-api/internal/domain/model"
)

//go:embed corpus.yaml
var corpusYAML []byte

// corpus is the vocabulary the generator draws from. It ships embedded so the
// binary seeds without any external files.
type corpus struct {
	JobTitles       []string                        `yaml:"job_titles"`
	Tags            []string                        `yaml:"tags"`
	FirstNames      []string                        `yaml:"first_names"`
	LastNames       []string                        `yaml:"last_names"`
	EmailDomains    []string                        `yaml:"email_domains"`
	NoteTemplates   []string                        `yaml:"note_templates"`
	SectionTitles   []string                        `yaml:"section_titles"`
	QuestionPrompts map[model.QuestionType][]string `yaml:"question_prompts"`
	ChoiceOptions   [][]string                      `yaml:"choice_options"`
}

func loadCorpus() (*corpus, error) {
	var c corpus
	if err := yaml.Unmarshal(corpusYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to parse embedded corpus: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("embedded corpus is incomplete: %w", err)
	}
	return &c, nil
}

func (c *corpus) validate() error {
	lists := map[string]int{
		"job_titles":     len(c.JobTitles),
		"tags":           len(c.Tags),
		"first_names":    len(c.FirstNames),
		"last_names":     len(c.LastNames),
		"email_domains":  len(c.EmailDomains),
		"note_templates": len(c.NoteTemplates),
		"section_titles": len(c.SectionTitles),
		"choice_options": len(c.ChoiceOptions),
	}
	for name, n := range lists {
		if n == 0 {
			return fmt.Errorf("list %q is empty", name)
		}
	}
	for _, t := range []model.QuestionType{
		model.QuestionSingleChoice, model.QuestionMultiChoice, model.QuestionShortText,
		model.QuestionLongText, model.QuestionNumeric, model.QuestionFileUpload,
	} {
		if len(c.QuestionPrompts[t]) == 0 {
			return fmt.Errorf("no prompts for question type %q", t)
		}
	}
	return nil
}

// generator produces randomized seed rows. All randomness flows through rng so
// a fixed seed reproduces the same dataset.
type generator struct {
	corpus *corpus
	rng    *rand.Rand
	now    time.Time
}

// jobSeed is a job row awaiting insertion. Board order equals the slice index.
type jobSeed struct {
	req       model.CreateJobRequest
	createdAt time.Time
}

// candidateSeed is a candidate row plus its timeline. jobIndex references the
// generated jobs slice (-1 for unattached); the database id is only known
// after the job insert.
type candidateSeed struct {
	req       model.CreateCandidateRequest
	jobIndex  int
	createdAt time.Time
	updatedAt time.Time
	events    []eventSeed
}

type eventSeed struct {
	eventType model.TimelineEventType
	fromStage *model.CandidateStage
	toStage   *model.CandidateStage
	note      string
	at        time.Time
}

type assessmentSeed struct {
	jobIndex int
	req      model.SaveAssessmentRequest
}

func (g *generator) jobs(n int) []jobSeed {
	titleOrder := g.rng.Perm(len(g.corpus.JobTitles))
	seen := make(map[string]struct{}, n)
	jobs := make([]jobSeed, 0, n)
	for i := 0; i < n; i++ {
		title := g.corpus.JobTitles[titleOrder[i%len(titleOrder)]]
		slug := model.Slugify(title)
		if _, dup := seen[slug]; dup {
			slug = slug + "-" + uuid.NewString()[:8]
		}
		seen[slug] = struct{}{}

		status := model.JobStatusActive
		if g.rng.Float64() < 0.2 {
			status = model.JobStatusArchived
		}

		jobs = append(jobs, jobSeed{
			req: model.CreateJobRequest{
				Title:  title,
				Slug:   slug,
				Status: status,
				Tags:   g.pickTags(1 + g.rng.IntN(3)),
			},
			createdAt: g.pastTime(5, 120),
		})
	}
	return jobs
}

func (g *generator) candidates(n, jobCount int) []candidateSeed {
	cands := make([]candidateSeed, 0, n)
	for i := 0; i < n; i++ {
		first := g.pick(g.corpus.FirstNames)
		last := g.pick(g.corpus.LastNames)
		name := first + " " + last
		email := fmt.Sprintf("%s.%d@%s", model.Slugify(name), i+1, g.pick(g.corpus.EmailDomains))

		jobIndex := -1
		if jobCount > 0 && g.rng.Float64() < 0.9 {
			jobIndex = g.rng.IntN(jobCount)
		}

		stage := g.pickStage()
		createdAt := g.pastTime(10, 90)
		events := g.timeline(stage, createdAt)

		cands = append(cands, candidateSeed{
			req: model.CreateCandidateRequest{
				Name:  name,
				Email: email,
				Stage: stage,
			},
			jobIndex:  jobIndex,
			createdAt: createdAt,
			updatedAt: events[len(events)-1].at,
			events:    events,
		})
	}
	return cands
}

// timeline builds the event history that leads a candidate from applied to
// its current stage: the origin entry, one stage_change per hop, and the
// occasional recruiter note. Timestamps are non-decreasing and never in the
// future.
func (g *generator) timeline(stage model.CandidateStage, createdAt time.Time) []eventSeed {
	applied := model.StageApplied
	events := []eventSeed{{
		eventType: model.EventStageChange,
		toStage:   &applied,
		at:        createdAt,
	}}

	prev := applied
	at := createdAt
	for _, next := range g.stagePath(stage) {
		at = g.advance(at)
		from, to := prev, next
		events = append(events, eventSeed{
			eventType: model.EventStageChange,
			fromStage: &from,
			toStage:   &to,
			at:        at,
		})
		prev = next
	}

	if g.rng.Float64() < 0.15 {
		for i := 0; i < 1+g.rng.IntN(2); i++ {
			at = g.advance(at)
			note := strings.ReplaceAll(g.pick(g.corpus.NoteTemplates), "{name}", g.pick(g.corpus.FirstNames))
			events = append(events, eventSeed{
				eventType: model.EventNote,
				note:      note,
				at:        at,
			})
		}
	}
	return events
}

// stagePath lists the transitions after applied that reach the target stage.
// Rejections branch off the pipeline at a random depth.
func (g *generator) stagePath(target model.CandidateStage) []model.CandidateStage {
	pipeline := []model.CandidateStage{
		model.StageApplied, model.StageScreen, model.StageTech, model.StageOffer, model.StageHired,
	}
	if target == model.StageRejected {
		depth := g.rng.IntN(len(pipeline) - 1)
		path := make([]model.CandidateStage, 0, depth+1)
		path = append(path, pipeline[1:1+depth]...)
		return append(path, model.StageRejected)
	}
	for i, s := range pipeline {
		if s == target {
			return pipeline[1 : i+1]
		}
	}
	return nil
}

func (g *generator) pickStage() model.CandidateStage {
	weights := []struct {
		stage  model.CandidateStage
		weight int
	}{
		{model.StageApplied, 28},
		{model.StageScreen, 20},
		{model.StageTech, 17},
		{model.StageRejected, 16},
		{model.StageHired, 10},
		{model.StageOffer, 9},
	}
	total := 0
	for _, w := range weights {
		total += w.weight
	}
	roll := g.rng.IntN(total)
	for _, w := range weights {
		if roll < w.weight {
			return w.stage
		}
		roll -= w.weight
	}
	return model.StageApplied
}

func (g *generator) assessments(n int, jobs []jobSeed) ([]assessmentSeed, error) {
	if n > len(jobs) {
		n = len(jobs)
	}
	seeds := make([]assessmentSeed, 0, n)
	for i := 0; i < n; i++ {
		req := g.assessmentRequest(jobs[i].req.Title)
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("generated assessment for job %q is invalid: %w", jobs[i].req.Title, err)
		}
		seeds = append(seeds, assessmentSeed{jobIndex: i, req: req})
	}
	return seeds, nil
}

// assessmentRequest builds a multi-section form. The first question is a
// yes/no gate and a later question in the same section is only shown when the
// gate answers yes, so seeded data exercises conditional visibility.
func (g *generator) assessmentRequest(jobTitle string) model.SaveAssessmentRequest {
	sectionOrder := g.rng.Perm(len(g.corpus.SectionTitles))
	questionTypes := []model.QuestionType{
		model.QuestionMultiChoice, model.QuestionShortText, model.QuestionLongText,
		model.QuestionNumeric, model.QuestionFileUpload, model.QuestionSingleChoice,
	}

	sectionCount := 2 + g.rng.IntN(2)
	sections := make([]model.Section, 0, sectionCount)
	qn := 0
	for si := 0; si < sectionCount; si++ {
		questionCount := 5 + g.rng.IntN(2)
		questions := make([]model.Question, 0, questionCount)
		for qi := 0; qi < questionCount; qi++ {
			qn++
			id := fmt.Sprintf("q%d", qn)
			var q model.Question
			switch {
			case si == 0 && qi == 0:
				q = model.Question{
					ID:       id,
					Type:     model.QuestionSingleChoice,
					Label:    g.pick(g.corpus.QuestionPrompts[model.QuestionSingleChoice]),
					Required: true,
					Options:  []string{"Yes", "No"},
				}
			case si == 0 && qi == 2:
				q = g.question(id, model.QuestionLongText)
				q.ShowIf = &model.ShowIf{
					QuestionID: "q1",
					Equals:     model.ScalarValue{Kind: model.ScalarString, Str: "Yes"},
				}
			default:
				q = g.question(id, questionTypes[qn%len(questionTypes)])
			}
			questions = append(questions, q)
		}
		sections = append(sections, model.Section{
			ID:        fmt.Sprintf("sec-%d", si+1),
			Title:     g.corpus.SectionTitles[sectionOrder[si%len(sectionOrder)]],
			Questions: questions,
		})
	}

	return model.SaveAssessmentRequest{
		Title:    jobTitle + " Assessment",
		Sections: sections,
	}
}

func (g *generator) question(id string, t model.QuestionType) model.Question {
	q := model.Question{
		ID:       id,
		Type:     t,
		Label:    g.pick(g.corpus.QuestionPrompts[t]),
		Required: g.rng.Float64() < 0.5,
	}
	switch t {
	case model.QuestionSingleChoice, model.QuestionMultiChoice:
		q.Options = g.corpus.ChoiceOptions[g.rng.IntN(len(g.corpus.ChoiceOptions))]
	case model.QuestionNumeric:
		minVal, maxVal := 0.0, float64(10+g.rng.IntN(41))
		q.Min, q.Max = &minVal, &maxVal
	case model.QuestionShortText:
		limit := 200
		q.MaxLength = &limit
	case model.QuestionLongText:
		limit := 2000
		q.MaxLength = &limit
	case model.QuestionFileUpload:
		q.Required = false
	}
	return q
}

func (g *generator) pick(list []string) string {
	return list[g.rng.IntN(len(list))]
}

// pickTags returns n distinct tags.
func (g *generator) pickTags(n int) []string {
	order := g.rng.Perm(len(g.corpus.Tags))
	if n > len(order) {
		n = len(order)
	}
	tags := make([]string, 0, n)
	for _, idx := range order[:n] {
		tags = append(tags, g.corpus.Tags[idx])
	}
	return tags
}

// pastTime returns a moment between minDays and maxDays before now, with
// minute-level jitter.
func (g *generator) pastTime(minDays, maxDays int) time.Time {
	days := minDays + g.rng.IntN(maxDays-minDays+1)
	jitter := time.Duration(g.rng.IntN(24*60)) * time.Minute
	return g.now.AddDate(0, 0, -days).Add(-jitter)
}

// advance moves a timeline forward by six hours to four days, clamped to now.
func (g *generator) advance(t time.Time) time.Time {
	step := 6*time.Hour + time.Duration(g.rng.Int64N(int64(90*time.Hour)))
	next := t.Add(step)
	if next.After(g.now) {
		return g.now
	}
	return next
}
