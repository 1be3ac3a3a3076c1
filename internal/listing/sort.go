package listing

import (
	"sort"

	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/matching"
)

// Sort names a supported listing order.
type Sort string

const (
	SortNewest     Sort = "newest"
	SortSalaryDesc Sort = "salary_desc"
)

// SortJobs orders postings in place. Sorting is stable: postings with equal
// keys keep their relative input order. Unknown sort names leave the input
// untouched.
func SortJobs(jobs []db.JobPosting, by Sort) {
	switch by {
	case SortNewest:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
		})
	case SortSalaryDesc:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].SalaryMax > jobs[k].SalaryMax
		})
	}
}

// RankedJob pairs a posting with its match score against a candidate's tools.
type RankedJob struct {
	db.JobPosting
	MatchScore int `json:"match_score"`
}

// RankJobs scores each posting's required tools against the candidate's held
// tools and orders by score descending, ties broken newest-first. The sort is
// stable so equal (score, created_at) pairs keep their input order.
func RankJobs(jobs []db.JobPosting, have []string) []RankedJob {
	ranked := make([]RankedJob, 0, len(jobs))
	for _, j := range jobs {
		ranked = append(ranked, RankedJob{JobPosting: j, MatchScore: matching.Score(j.Tools, have)})
	}
	sort.SliceStable(ranked, func(i, k int) bool {
		if ranked[i].MatchScore != ranked[k].MatchScore {
			return ranked[i].MatchScore > ranked[k].MatchScore
		}
		return ranked[i].CreatedAt.After(ranked[k].CreatedAt)
	})
	return ranked
}

// RankedCandidate pairs a profile with its match score against a required
// tool set.
type RankedCandidate struct {
	db.CandidateProfile
	MatchScore int `json:"match_score"`
}

// RankCandidates scores each profile's held tools against the required tools
// and orders by score descending, ties broken newest-first.
func RankCandidates(profiles []db.CandidateProfile, required []string) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(profiles))
	for _, p := range profiles {
		ranked = append(ranked, RankedCandidate{CandidateProfile: p, MatchScore: matching.Score(required, p.Tools)})
	}
	sort.SliceStable(ranked, func(i, k int) bool {
		if ranked[i].MatchScore != ranked[k].MatchScore {
			return ranked[i].MatchScore > ranked[k].MatchScore
		}
		return ranked[i].CreatedAt.After(ranked[k].CreatedAt)
	})
	return ranked
}
