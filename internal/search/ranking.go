package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"jobboard/internal/domain/job"
)

var ErrInvalidFilter = errors.New("invalid search filter")

const (
	weightKeywordTitle       = 5
	weightKeywordDescription = 3
	weightKeywordSkills      = 4
	weightKeywordCompany     = 2
	weightKeywordLocation    = 2

	weightLocation   = 3
	weightSkillToken = 4
	weightExperience = 3
	weightSalary     = 3
	weightJobType    = 2

	maxKeywordScore = weightKeywordTitle + weightKeywordDescription + weightKeywordSkills +
		weightKeywordCompany + weightKeywordLocation

	defaultMaxExperience = 999
	defaultMaxSalary     = 99999999
)

// Filters are optional; a nil pointer or empty string means "not supplied".
type Filters struct {
	Keyword   string
	Location  string
	Skills    string
	MinExp    *int
	MaxExp    *int
	MinSalary *int
	MaxSalary *int
	JobType   string
}

type Result struct {
	Job             job.Job
	Score           int
	MatchPercentage int
}

// ParseFilters reads query parameters. Numeric filters that do not parse are
// rejected with ErrInvalidFilter.
func ParseFilters(q map[string]string) (Filters, error) {
	f := Filters{
		Keyword:  strings.TrimSpace(q["keyword"]),
		Location: strings.TrimSpace(q["location"]),
		Skills:   strings.TrimSpace(q["skills"]),
		JobType:  strings.TrimSpace(q["jobType"]),
	}

	var err error
	if f.MinExp, err = parseOptionalInt(q, "minExp"); err != nil {
		return Filters{}, err
	}
	if f.MaxExp, err = parseOptionalInt(q, "maxExp"); err != nil {
		return Filters{}, err
	}
	if f.MinSalary, err = parseOptionalInt(q, "minSalary"); err != nil {
		return Filters{}, err
	}
	if f.MaxSalary, err = parseOptionalInt(q, "maxSalary"); err != nil {
		return Filters{}, err
	}
	return f, nil
}

func parseOptionalInt(q map[string]string, key string) (*int, error) {
	raw := strings.TrimSpace(q[key])
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidFilter, key)
	}
	return &v, nil
}

// IsEmpty reports whether no filter was supplied at all.
func (f Filters) IsEmpty() bool {
	return f.Keyword == "" && f.Location == "" && len(f.SkillTokens()) == 0 &&
		!f.hasExperience() && !f.hasSalary() && f.JobType == ""
}

func (f Filters) hasExperience() bool { return f.MinExp != nil || f.MaxExp != nil }
func (f Filters) hasSalary() bool     { return f.MinSalary != nil || f.MaxSalary != nil }

// SkillTokens lists the lowercased skill filter tokens in input order,
// duplicates included. Each token scores on its own.
func (f Filters) SkillTokens() []string {
	if f.Skills == "" {
		return nil
	}
	out := make([]string, 0)
	for _, s := range strings.Split(f.Skills, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// MaxPossibleScore sums the weights of the supplied filters, floored to 1.
func MaxPossibleScore(f Filters) int {
	total := 0
	if f.Keyword != "" {
		total += maxKeywordScore
	}
	if f.Location != "" {
		total += weightLocation
	}
	total += len(f.SkillTokens()) * weightSkillToken
	if f.hasExperience() {
		total += weightExperience
	}
	if f.hasSalary() {
		total += weightSalary
	}
	if f.JobType != "" {
		total += weightJobType
	}
	if total == 0 {
		total = 1
	}
	return total
}

// Score accumulates relevance points for one job.
func Score(j job.Job, f Filters) int {
	score := 0

	title := strings.ToLower(j.Title)
	desc := strings.ToLower(j.Description)
	skills := strings.ToLower(j.Skills)
	company := strings.ToLower(j.Company)
	location := strings.ToLower(j.Location)

	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if strings.Contains(title, kw) {
			score += weightKeywordTitle
		}
		if strings.Contains(desc, kw) {
			score += weightKeywordDescription
		}
		if strings.Contains(skills, kw) {
			score += weightKeywordSkills
		}
		if strings.Contains(company, kw) {
			score += weightKeywordCompany
		}
		if strings.Contains(location, kw) {
			score += weightKeywordLocation
		}
	}

	if f.Location != "" && strings.Contains(location, strings.ToLower(f.Location)) {
		score += weightLocation
	}

	for _, tok := range f.SkillTokens() {
		if strings.Contains(skills, tok) {
			score += weightSkillToken
		}
	}

	if f.hasExperience() {
		exp := intOr(j.ExperienceRequired, 0)
		if exp >= intOr(f.MinExp, 0) && exp <= intOr(f.MaxExp, defaultMaxExperience) {
			score += weightExperience
		}
	}

	if f.hasSalary() && j.SalaryMin != nil && j.SalaryMax != nil {
		if *j.SalaryMax >= intOr(f.MinSalary, 0) && *j.SalaryMin <= intOr(f.MaxSalary, defaultMaxSalary) {
			score += weightSalary
		}
	}

	if f.JobType != "" && string(j.JobType) == f.JobType {
		score += weightJobType
	}

	return score
}

// Rank scores every job and orders by score, newest first on ties.
func Rank(jobs []job.Job, f Filters) []Result {
	maxScore := MaxPossibleScore(f)
	out := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		s := Score(j, f)
		out = append(out, Result{
			Job:             j,
			Score:           s,
			MatchPercentage: int(math.Round(float64(s) / float64(maxScore) * 100)),
		})
	}

	sort.SliceStable(out, func(i, k int) bool {
		if out[i].Score != out[k].Score {
			return out[i].Score > out[k].Score
		}
		return out[i].Job.CreatedAt.After(out[k].Job.CreatedAt)
	})
	return out
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
