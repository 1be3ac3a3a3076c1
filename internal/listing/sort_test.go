package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/vibe-jobs/internal/db"
)

func TestSortJobs_Newest(t *testing.T) {
	old := job("old", func(j *db.JobPosting) { j.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })
	mid := job("mid", func(j *db.JobPosting) { j.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) })
	new_ := job("new", func(j *db.JobPosting) { j.CreatedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) })

	jobs := []db.JobPosting{old, new_, mid}
	SortJobs(jobs, SortNewest)

	assert.Equal(t, "new", jobs[0].Title)
	assert.Equal(t, "mid", jobs[1].Title)
	assert.Equal(t, "old", jobs[2].Title)
}

func TestSortJobs_SalaryDesc(t *testing.T) {
	low := job("low", func(j *db.JobPosting) { j.SalaryMax = 120000 })
	high := job("high", func(j *db.JobPosting) { j.SalaryMax = 250000 })

	jobs := []db.JobPosting{low, high}
	SortJobs(jobs, SortSalaryDesc)

	assert.Equal(t, "high", jobs[0].Title)
	assert.Equal(t, "low", jobs[1].Title)
}

func TestSortJobs_StableOnTies(t *testing.T) {
	when := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	first := job("first", func(j *db.JobPosting) { j.CreatedAt = when; j.SalaryMax = 180000 })
	second := job("second", func(j *db.JobPosting) { j.CreatedAt = when; j.SalaryMax = 180000 })
	third := job("third", func(j *db.JobPosting) { j.CreatedAt = when; j.SalaryMax = 180000 })

	jobs := []db.JobPosting{first, second, third}
	SortJobs(jobs, SortNewest)
	assert.Equal(t, []string{"first", "second", "third"}, titles(jobs))

	SortJobs(jobs, SortSalaryDesc)
	assert.Equal(t, []string{"first", "second", "third"}, titles(jobs))
}

func TestSortJobs_UnknownSortLeavesOrder(t *testing.T) {
	jobs := []db.JobPosting{job("b", nil), job("a", nil)}
	SortJobs(jobs, Sort("salaryAsc"))
	assert.Equal(t, []string{"b", "a"}, titles(jobs))
}

func TestRankJobs_ScoreDescTiesNewestFirst(t *testing.T) {
	full := job("full", func(j *db.JobPosting) {
		j.Tools = db.StringArray{"Cursor"}
		j.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	partialOld := job("partial-old", func(j *db.JobPosting) {
		j.Tools = db.StringArray{"Cursor", "v0"}
		j.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	partialNew := job("partial-new", func(j *db.JobPosting) {
		j.Tools = db.StringArray{"Cursor", "Windsurf"}
		j.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	})

	ranked := RankJobs([]db.JobPosting{partialOld, full, partialNew}, []string{"Cursor", "Claude Code"})

	require.Len(t, ranked, 3)
	assert.Equal(t, "full", ranked[0].Title)
	assert.Equal(t, 100, ranked[0].MatchScore)
	// Equal scores: newest first.
	assert.Equal(t, "partial-new", ranked[1].Title)
	assert.Equal(t, "partial-old", ranked[2].Title)
	assert.Equal(t, 50, ranked[1].MatchScore)
}

func TestRankJobs_PartialOverlapRoundsHalfUp(t *testing.T) {
	j := job("agent-builder", func(j *db.JobPosting) {
		j.Tools = db.StringArray{"Cursor", "Claude Code", "v0"}
	})
	ranked := RankJobs([]db.JobPosting{j}, []string{"Cursor", "Claude Code", "ChatGPT"})
	require.Len(t, ranked, 1)
	assert.Equal(t, 67, ranked[0].MatchScore)
}

func TestRankCandidates(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	strong := db.CandidateProfile{FirstName: "Ada", Tools: db.StringArray{"Cursor", "Claude Code"}, CreatedAt: base}
	weak := db.CandidateProfile{FirstName: "Ben", Tools: db.StringArray{"Figma AI"}, CreatedAt: base}

	ranked := RankCandidates([]db.CandidateProfile{weak, strong}, []string{"Cursor", "Claude Code"})
	require.Len(t, ranked, 2)
	assert.Equal(t, "Ada", ranked[0].FirstName)
	assert.Equal(t, 100, ranked[0].MatchScore)
	assert.Equal(t, 0, ranked[1].MatchScore)
}

func titles(jobs []db.JobPosting) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}
