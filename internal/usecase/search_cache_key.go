package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"jobboard/internal/search"
)

const searchCachePattern = "jobs:search:*"

type jobSearchCacheKeyInput struct {
	Keyword   string   `json:"keyword"`
	Location  string   `json:"location"`
	Skills    []string `json:"skills"`
	MinExp    *int     `json:"min_exp"`
	MaxExp    *int     `json:"max_exp"`
	MinSalary *int     `json:"min_salary"`
	MaxSalary *int     `json:"max_salary"`
	JobType   string   `json:"job_type"`
}

// JobsSearchCacheKey only folds differences search.Score ignores: keyword and
// location case, skill case and order. Duplicate skills and job type casing
// change the score, so they change the key.
func JobsSearchCacheKey(f search.Filters) string {
	skills := f.SkillTokens()
	sort.Strings(skills)

	in := jobSearchCacheKeyInput{
		Keyword:   strings.ToLower(f.Keyword),
		Location:  strings.ToLower(f.Location),
		Skills:    skills,
		MinExp:    f.MinExp,
		MaxExp:    f.MaxExp,
		MinSalary: f.MinSalary,
		MaxSalary: f.MaxSalary,
		JobType:   f.JobType,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:search:" + hex.EncodeToString(sum[:])
}
