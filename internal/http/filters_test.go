package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/ui-api/internal/domain/model"
)

func listRequest(t *testing.T, rawQuery string) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/api/list?"+rawQuery, nil)
}

func TestParseJobsListOptions(t *testing.T) {
	active := model.JobStatusActive

	tests := []struct {
		name    string
		query   string
		want    model.JobsListOptions
		wantErr string
	}{
		{
			name:  "defaults",
			query: "",
			want:  model.JobsListOptions{Page: 1, PageSize: model.DefaultPageSize},
		},
		{
			name:  "full filter set",
			query: "search=%20engineer%20&status=active&tags=remote&tags=senior&sort=createdAt&page=3&pageSize=25",
			want: model.JobsListOptions{
				Page:     3,
				PageSize: 25,
				Search:   "engineer",
				Status:   &active,
				Tags:     []string{"remote", "senior"},
				Sort:     model.JobSortCreatedAt,
			},
		},
		{
			name:  "comma separated tags",
			query: "tags=remote,senior,%20platform%20",
			want: model.JobsListOptions{
				Page:     1,
				PageSize: model.DefaultPageSize,
				Tags:     []string{"remote", "senior", "platform"},
			},
		},
		{
			name:  "sort by order",
			query: "sort=order",
			want: model.JobsListOptions{
				Page:     1,
				PageSize: model.DefaultPageSize,
				Sort:     model.JobSortOrder,
			},
		},
		{
			name:  "non-numeric paging falls back to defaults",
			query: "page=abc&pageSize=xyz",
			want:  model.JobsListOptions{Page: 1, PageSize: model.DefaultPageSize},
		},
		{
			name:    "unknown status",
			query:   "status=paused",
			wantErr: `unknown status "paused"`,
		},
		{
			name:    "unknown sort",
			query:   "sort=title",
			wantErr: `unknown sort "title"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJobsListOptions(listRequest(t, tt.query))
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCandidatesListOptions(t *testing.T) {
	screen := model.StageScreen
	jobID := int64(4)

	tests := []struct {
		name    string
		query   string
		want    model.CandidatesListOptions
		wantErr string
	}{
		{
			name:  "defaults",
			query: "",
			want:  model.CandidatesListOptions{Page: 1, PageSize: model.DefaultPageSize},
		},
		{
			name:  "stage and job filters",
			query: "search=dana&stage=screen&jobId=4&page=2",
			want: model.CandidatesListOptions{
				Page:     2,
				PageSize: model.DefaultPageSize,
				Search:   "dana",
				Stage:    &screen,
				JobID:    &jobID,
			},
		},
		{
			name:    "unknown stage",
			query:   "stage=limbo",
			wantErr: `unknown stage "limbo"`,
		},
		{
			name:    "negative job id",
			query:   "jobId=-4",
			wantErr: "jobId must be a positive integer id",
		},
		{
			name:    "non-numeric job id",
			query:   "jobId=four",
			wantErr: "jobId must be a positive integer id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCandidatesListOptions(listRequest(t, tt.query))
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResponsesListOptions(t *testing.T) {
	candidateID := int64(31)

	got, err := parseResponsesListOptions(listRequest(t, "candidateId=31&pageSize=5"))
	require.NoError(t, err)
	assert.Equal(t, model.ResponsesListOptions{Page: 1, PageSize: 5, CandidateID: &candidateID}, got)

	_, err = parseResponsesListOptions(listRequest(t, "candidateId=0"))
	require.EqualError(t, err, "candidateId must be a positive integer id")
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, splitTags(nil))
	assert.Nil(t, splitTags([]string{"", " ,  , "}))
	assert.Equal(t, []string{"remote", "senior", "platform"},
		splitTags([]string{"remote, senior", "", "platform"}))
}

func TestPathID(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantID int64
		wantOK bool
	}{
		{name: "valid", value: "42", wantID: 42, wantOK: true},
		{name: "zero", value: "0"},
		{name: "negative", value: "-3"},
		{name: "non-numeric", value: "abc"},
		{name: "empty", value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/jobs/x", nil)
			r.SetPathValue("id", tt.value)
			w := httptest.NewRecorder()

			id, ok := pathID(w, r, "id")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, "invalid_path", decodeErrorBody(t, w)["error"])
			}
		})
	}
}
