package matching

import (
	"math"
	"sort"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

// TopMatchCount is how many recommendations are pushed live as job:match.
const TopMatchCount = 3

// SkillSet is a normalized, order-free set of skill tokens.
type SkillSet map[string]struct{}

// ParseSkillSet splits comma separated text into trimmed, lowercased tokens.
// Empty input yields an empty set.
func ParseSkillSet(text string) SkillSet {
	set := SkillSet{}
	for _, tok := range strings.Split(text, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

func (s SkillSet) Len() int { return len(s) }

func (s SkillSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// MatchScore returns the percentage of required tokens present in the
// candidate set, rounded to the nearest integer. It never fails: missing or
// malformed text counts as an empty set and scores 0.
func MatchScore(required, candidate string) int {
	req := ParseSkillSet(required)
	if req.Len() == 0 {
		return 0
	}
	have := ParseSkillSet(candidate)
	if have.Len() == 0 {
		return 0
	}

	matched := 0
	for tok := range req {
		if have.Has(tok) {
			matched++
		}
	}

	score := int(math.Round(float64(matched) / float64(req.Len()) * 100))
	return clampInt(score, 0, 100)
}

type JobMatch struct {
	Job   job.Job
	Score int
}

type CandidateMatch struct {
	Candidate user.Candidate
	Score     int
}

// RecommendForCandidate scores every job against the candidate skills and
// keeps positive scores, best first.
func RecommendForCandidate(jobs []job.Job, candidateSkills string) []JobMatch {
	out := make([]JobMatch, 0)
	if ParseSkillSet(candidateSkills).Len() == 0 {
		return out
	}
	for _, j := range jobs {
		s := MatchScore(j.Skills, candidateSkills)
		if s <= 0 {
			continue
		}
		out = append(out, JobMatch{Job: j, Score: s})
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Score > out[k].Score
	})
	return out
}

// MatchedCandidates scores jobseeker candidates against the required skills,
// keeping positive scores, best first. Ownership checks are the caller's job.
func MatchedCandidates(requiredSkills string, candidates []user.Candidate) []CandidateMatch {
	out := make([]CandidateMatch, 0)
	if ParseSkillSet(requiredSkills).Len() == 0 {
		return out
	}
	for _, c := range candidates {
		if c.Role != user.RoleJobseeker {
			continue
		}
		s := MatchScore(requiredSkills, c.Skills)
		if s <= 0 {
			continue
		}
		out = append(out, CandidateMatch{Candidate: c, Score: s})
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Score > out[k].Score
	})
	return out
}

// Top returns at most n leading matches.
func Top(matches []JobMatch, n int) []JobMatch {
	if n <= 0 {
		return nil
	}
	if len(matches) <= n {
		return matches
	}
	return matches[:n]
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
