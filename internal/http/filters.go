package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/talentflow/ui-api/internal/domain/model"
)

// The list endpoints share a pagination vocabulary: page is 1-based and
// pageSize is clamped by the repositories. Filter values are validated here
// so an unknown status or stage is a 400 rather than a silent full listing.

func parsePaging(r *http.Request) (page, pageSize int) {
	return parseIntQuery(r, "page", 1), parseIntQuery(r, "pageSize", model.DefaultPageSize)
}

// parseJobsListOptions reads search, status, tags, sort, and paging for the
// jobs list. Tags may repeat (?tags=a&tags=b) or arrive comma-separated.
func parseJobsListOptions(r *http.Request) (model.JobsListOptions, error) {
	q := r.URL.Query()
	opts := model.JobsListOptions{Search: strings.TrimSpace(q.Get("search"))}
	opts.Page, opts.PageSize = parsePaging(r)

	if raw := q.Get("status"); raw != "" {
		status, ok := model.ParseJobStatus(raw)
		if !ok {
			return opts, fmt.Errorf("unknown status %q", raw)
		}
		opts.Status = &status
	}
	opts.Tags = splitTags(q["tags"])
	if raw := strings.TrimSpace(q.Get("sort")); raw != "" {
		if raw != model.JobSortOrder && raw != model.JobSortCreatedAt {
			return opts, fmt.Errorf("unknown sort %q", raw)
		}
		opts.Sort = raw
	}
	return opts, nil
}

// parseCandidatesListOptions reads search, stage, jobId, and paging for the
// candidates list.
func parseCandidatesListOptions(r *http.Request) (model.CandidatesListOptions, error) {
	q := r.URL.Query()
	opts := model.CandidatesListOptions{Search: strings.TrimSpace(q.Get("search"))}
	opts.Page, opts.PageSize = parsePaging(r)

	if raw := q.Get("stage"); raw != "" {
		stage, ok := model.ParseCandidateStage(raw)
		if !ok {
			return opts, fmt.Errorf("unknown stage %q", raw)
		}
		opts.Stage = &stage
	}
	if raw := q.Get("jobId"); raw != "" {
		id, err := parsePositiveID(raw)
		if err != nil {
			return opts, errors.New("jobId must be a positive integer id")
		}
		opts.JobID = &id
	}
	return opts, nil
}

// parseResponsesListOptions reads the optional candidateId filter and paging
// for the assessment responses list.
func parseResponsesListOptions(r *http.Request) (model.ResponsesListOptions, error) {
	var opts model.ResponsesListOptions
	opts.Page, opts.PageSize = parsePaging(r)

	if raw := r.URL.Query().Get("candidateId"); raw != "" {
		id, err := parsePositiveID(raw)
		if err != nil {
			return opts, errors.New("candidateId must be a positive integer id")
		}
		opts.CandidateID = &id
	}
	return opts, nil
}

func parsePositiveID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("not a positive integer id")
	}
	return id, nil
}

// splitTags flattens repeated and comma-separated tag values, dropping blanks.
func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
