package matching

import (
	"testing"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

func TestMatchScore_Cases(t *testing.T) {
	cases := []struct {
		name      string
		required  string
		candidate string
		want      int
	}{
		{name: "empty required", required: "", candidate: "x", want: 0},
		{name: "empty candidate", required: "x,y", candidate: "", want: 0},
		{name: "full coverage any order", required: "java,go", candidate: "go,java,rust", want: 100},
		{name: "one of three", required: "java,go,rust", candidate: "go", want: 33},
		{name: "two of three", required: "java,go,rust", candidate: "go,rust", want: 67},
		{name: "half", required: "go,sql", candidate: "SQL", want: 50},
		{name: "whitespace and case", required: " Go , PostgreSQL ", candidate: "postgresql,  go", want: 100},
		{name: "only separators", required: ",,,", candidate: "go", want: 0},
		{name: "duplicate required tokens", required: "go,go,rust", candidate: "go", want: 50},
		{name: "no overlap", required: "go", candidate: "java", want: 0},
	}

	for _, tc := range cases {
		got := MatchScore(tc.required, tc.candidate)
		if got != tc.want {
			t.Fatalf("%s: MatchScore(%q, %q) = %d, want %d", tc.name, tc.required, tc.candidate, got, tc.want)
		}
	}
}

func TestMatchScore_AlwaysInRange(t *testing.T) {
	inputs := []string{"", "go", "go,java", "a,b,c,d,e", " , ", "GO,go,Go", "x,y,z,go"}
	for _, a := range inputs {
		for _, b := range inputs {
			s := MatchScore(a, b)
			if s < 0 || s > 100 {
				t.Fatalf("MatchScore(%q, %q) = %d out of range", a, b, s)
			}
		}
	}
}

func TestParseSkillSet(t *testing.T) {
	s := ParseSkillSet("Go, go ,,Docker")
	if s.Len() != 2 {
		t.Fatalf("expected 2 tokens, got %d", s.Len())
	}
	if !s.Has("go") || !s.Has("docker") {
		t.Fatalf("unexpected set: %v", s)
	}
}

func TestRecommendForCandidate_SortedPositiveOnly(t *testing.T) {
	now := time.Now().UTC()
	jobs := []job.Job{
		{ID: uuid.New(), Title: "A", Skills: "go,rust,java", CreatedAt: now},
		{ID: uuid.New(), Title: "B", Skills: "go", CreatedAt: now},
		{ID: uuid.New(), Title: "C", Skills: "python", CreatedAt: now},
		{ID: uuid.New(), Title: "D", Skills: "", CreatedAt: now},
		{ID: uuid.New(), Title: "E", Skills: "go,rust", CreatedAt: now},
	}

	got := RecommendForCandidate(jobs, "go,rust")
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	for i, m := range got {
		if m.Score <= 0 {
			t.Fatalf("match %d has non-positive score %d", i, m.Score)
		}
		if i > 0 && got[i-1].Score < m.Score {
			t.Fatalf("not sorted desc at %d: %d < %d", i, got[i-1].Score, m.Score)
		}
	}
	if got[0].Score != 100 || got[len(got)-1].Job.Title != "A" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRecommendForCandidate_EmptySkills(t *testing.T) {
	got := RecommendForCandidate([]job.Job{{ID: uuid.New(), Skills: "go"}}, "  ")
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestMatchedCandidates_JobseekersOnly(t *testing.T) {
	cands := []user.Candidate{
		{Profile: user.Profile{ID: uuid.New(), Skills: "go,sql"}, Name: "seeker-1", Role: user.RoleJobseeker},
		{Profile: user.Profile{ID: uuid.New(), Skills: "go,sql,docker"}, Name: "recruiter", Role: user.RoleRecruiter},
		{Profile: user.Profile{ID: uuid.New(), Skills: "docker"}, Name: "seeker-2", Role: user.RoleJobseeker},
		{Profile: user.Profile{ID: uuid.New(), Skills: "go"}, Name: "seeker-3", Role: user.RoleJobseeker},
	}

	got := MatchedCandidates("go,sql", cands)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Candidate.Name != "seeker-1" || got[0].Score != 100 {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[1].Candidate.Name != "seeker-3" || got[1].Score != 50 {
		t.Fatalf("unexpected second candidate: %+v", got[1])
	}
}

func TestTop(t *testing.T) {
	ms := []JobMatch{{Score: 90}, {Score: 80}, {Score: 70}, {Score: 60}}
	if n := len(Top(ms, TopMatchCount)); n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
	if n := len(Top(ms[:2], TopMatchCount)); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
}
