package usecase

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/user"
	"jobboard/internal/search"

	"github.com/google/uuid"
)

func TestJobUsecase_CreateJob_FansOutToMatchingJobseekers(t *testing.T) {
	f := newFixture()
	recruiter := f.addUser(user.RoleRecruiter, user.StatusActive)
	full := f.addCandidate("go,java,rust", true)
	half := f.addCandidate("Go", false)
	none := f.addCandidate("python", true)

	// a recruiter profile with matching skills must not be notified
	other := f.addUser(user.RoleRecruiter, user.StatusActive)
	f.profiles.candidates = append(f.profiles.candidates, user.Candidate{
		Profile: user.Profile{ID: uuid.New(), UserID: other.ID, Skills: "go"},
		Role:    user.RoleRecruiter,
	})

	created, err := f.jobUC.CreateJob(context.Background(), recruiter.ID, CreateJobInput{
		Title:   "Backend Engineer",
		Company: "Acme",
		Skills:  "go, java",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != job.StatusOpen {
		t.Fatalf("expected open, got %s", created.Status)
	}
	if !created.IsOwnedBy(recruiter.ID) {
		t.Fatalf("expected job owned by recruiter")
	}

	if got := len(f.bc.byEvent(notification.EventJobNew)); got != 1 {
		t.Fatalf("expected 1 job:new, got %d", got)
	}

	fullNotes := f.notes.forUser(full.ID)
	if len(fullNotes) != 1 {
		t.Fatalf("expected 1 notification for full match, got %d", len(fullNotes))
	}
	if fullNotes[0].Type != notification.TypeRecommendedJob {
		t.Fatalf("unexpected type %s", fullNotes[0].Type)
	}
	wantMsg := "✨ 100% Match! New recommended job: Backend Engineer at Acme"
	if fullNotes[0].Message != wantMsg {
		t.Fatalf("message = %q, want %q", fullNotes[0].Message, wantMsg)
	}
	p, ok := fullNotes[0].Payload.(notification.RecommendedJobPayload)
	if !ok || p.JobID != created.ID || p.MatchScore != 100 {
		t.Fatalf("unexpected payload %#v", fullNotes[0].Payload)
	}

	halfNotes := f.notes.forUser(half.ID)
	if len(halfNotes) != 1 || halfNotes[0].Payload.(notification.RecommendedJobPayload).MatchScore != 50 {
		t.Fatalf("expected one 50%% notification, got %#v", halfNotes)
	}
	if n := len(f.notes.forUser(none.ID)); n != 0 {
		t.Fatalf("expected no notification for zero match, got %d", n)
	}
	if n := len(f.notes.forUser(other.ID)); n != 0 {
		t.Fatalf("expected no notification for recruiter profile, got %d", n)
	}

	recs := f.bc.byEvent(notification.EventJobRecommended)
	if len(recs) != 2 {
		t.Fatalf("expected 2 job:recommended, got %d", len(recs))
	}
	for _, e := range recs {
		if e.Room != notification.UserRoom(full.ID) && e.Room != notification.UserRoom(half.ID) {
			t.Fatalf("unexpected room %s", e.Room)
		}
		ev := e.Payload.(JobEvent)
		if ev.MatchScore == nil || *ev.MatchScore <= 0 {
			t.Fatalf("expected positive matchScore on event")
		}
	}
}

func TestJobUsecase_CreateJob_WithoutSkillsSkipsFanout(t *testing.T) {
	f := newFixture()
	recruiter := f.addUser(user.RoleRecruiter, user.StatusActive)
	f.addCandidate("go", true)

	if _, err := f.jobUC.CreateJob(context.Background(), recruiter.ID, CreateJobInput{Title: "Ops", Company: "Acme"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := f.notes.count(); n != 0 {
		t.Fatalf("expected no notifications, got %d", n)
	}
	if n := len(f.bc.byEvent(notification.EventJobNew)); n != 1 {
		t.Fatalf("expected job:new, got %d", n)
	}
}

func TestJobUsecase_CreateJob_InvalidInput(t *testing.T) {
	f := newFixture()
	recruiter := f.addUser(user.RoleRecruiter, user.StatusActive)

	cases := []CreateJobInput{
		{Title: "", Company: "Acme"},
		{Title: "Dev", Company: "  "},
		{Title: "Dev", Company: "Acme", JobType: "gig"},
		{Title: "Dev", Company: "Acme", SalaryMin: intPtr(10), SalaryMax: intPtr(5)},
		{Title: "Dev", Company: "Acme", ExperienceRequired: intPtr(-1)},
	}
	for i, in := range cases {
		if _, err := f.jobUC.CreateJob(context.Background(), recruiter.ID, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if n := len(f.bc.byEvent(notification.EventJobNew)); n != 0 {
		t.Fatalf("expected no job:new, got %d", n)
	}
}

func TestJobUsecase_CreateJob_FailedLedgerWriteSkipsOnlyThatRecipient(t *testing.T) {
	f := newFixture()
	recruiter := f.addUser(user.RoleRecruiter, user.StatusActive)
	broken := f.addCandidate("go", true)
	fine := f.addCandidate("go", true)
	f.notes.failFor = broken.ID

	if _, err := f.jobUC.CreateJob(context.Background(), recruiter.ID, CreateJobInput{Title: "Dev", Company: "Acme", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := len(f.notes.forUser(fine.ID)); n != 1 {
		t.Fatalf("expected 1 notification for healthy recipient, got %d", n)
	}
	for _, e := range f.bc.byEvent(notification.EventJobRecommended) {
		if e.Room == notification.UserRoom(broken.ID) {
			t.Fatalf("broadcast must not follow a failed ledger write")
		}
	}
}

func TestJobUsecase_UpdateJobStatus(t *testing.T) {
	f := newFixture()
	owner := f.addUser(user.RoleRecruiter, user.StatusActive)
	stranger := f.addUser(user.RoleRecruiter, user.StatusActive)
	cand := f.addCandidate("go", true)
	j := f.addJob(owner.ID, "go", job.StatusOpen)

	if _, err := f.jobUC.UpdateJobStatus(context.Background(), owner.ID, j.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := f.jobUC.UpdateJobStatus(context.Background(), stranger.ID, j.ID, "closed"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.jobUC.UpdateJobStatus(context.Background(), owner.ID, uuid.New(), "closed"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if f.jobs.status(j.ID) != job.StatusOpen {
		t.Fatalf("failed calls must not change status")
	}

	if _, err := f.jobUC.UpdateJobStatus(context.Background(), owner.ID, j.ID, "paused"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := f.notes.count(); n != 0 {
		t.Fatalf("pausing must not notify, got %d", n)
	}

	updated, err := f.jobUC.UpdateJobStatus(context.Background(), owner.ID, j.ID, "OPEN")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != job.StatusOpen {
		t.Fatalf("expected open, got %s", updated.Status)
	}

	notes := f.notes.forUser(cand.ID)
	if len(notes) != 1 || notes[0].Type != notification.TypeJobReopened {
		t.Fatalf("expected one jobReopened notification, got %#v", notes)
	}
	want := "✨ 100% Match! Job reopened: Backend Engineer at Acme is now accepting applications"
	if notes[0].Message != want {
		t.Fatalf("message = %q, want %q", notes[0].Message, want)
	}
	if n := len(f.bc.byEvent(notification.EventJobReopened)); n != 1 {
		t.Fatalf("expected 1 job:reopened, got %d", n)
	}

	// open -> open is not a reopen
	if _, err := f.jobUC.UpdateJobStatus(context.Background(), owner.ID, j.ID, "open"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := len(f.notes.forUser(cand.ID)); n != 1 {
		t.Fatalf("expected no extra notification, got %d", n)
	}
}

func TestJobUsecase_Recommend(t *testing.T) {
	f := newFixture()
	owner := f.addUser(user.RoleRecruiter, user.StatusActive)
	cand := f.addCandidate("go,java", true)

	f.addJob(owner.ID, "go", job.StatusOpen)
	f.addJob(owner.ID, "go,rust", job.StatusOpen)
	f.addJob(owner.ID, "go,java,rust,k8s", job.StatusOpen)
	f.addJob(owner.ID, "go,python,c", job.StatusOpen)
	f.addJob(owner.ID, "python", job.StatusOpen)
	f.addJob(owner.ID, "go,java", job.StatusClosed)

	matches, err := f.jobUC.Recommend(context.Background(), cand.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(matches) != 4 {
		t.Fatalf("expected 4 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Score <= 0 {
			t.Fatalf("match %d has non-positive score", i)
		}
		if i > 0 && matches[i-1].Score < m.Score {
			t.Fatalf("matches not sorted descending")
		}
	}
	if matches[0].Score != 100 || matches[3].Score != 33 {
		t.Fatalf("unexpected scores: first=%d last=%d", matches[0].Score, matches[3].Score)
	}

	pushed := f.bc.byEvent(notification.EventJobMatch)
	if len(pushed) != 3 {
		t.Fatalf("expected top 3 job:match pushes, got %d", len(pushed))
	}
	for _, e := range pushed {
		if e.Room != notification.UserRoom(cand.ID) {
			t.Fatalf("unexpected room %s", e.Room)
		}
		if ev := e.Payload.(JobEvent); ev.Score == nil {
			t.Fatalf("expected score on job:match")
		}
	}
	if n := f.notes.count(); n != 0 {
		t.Fatalf("recommend must not write the ledger, got %d", n)
	}
}

func TestJobUsecase_Recommend_NoProfile(t *testing.T) {
	f := newFixture()
	u := f.addUser(user.RoleJobseeker, user.StatusActive)

	matches, err := f.jobUC.Recommend(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected empty, got %d", len(matches))
	}
}

func TestJobUsecase_MatchedCandidates(t *testing.T) {
	f := newFixture()
	owner := f.addUser(user.RoleRecruiter, user.StatusActive)
	stranger := f.addUser(user.RoleRecruiter, user.StatusActive)
	a := f.addCandidate("go", true)
	b := f.addCandidate("go,java", true)
	f.addCandidate("php", true)
	j := f.addJob(owner.ID, "go,java", job.StatusOpen)

	if _, err := f.jobUC.MatchedCandidates(context.Background(), stranger.ID, j.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	res, err := f.jobUC.MatchedCandidates(context.Background(), owner.ID, j.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Job.ID != j.ID {
		t.Fatalf("unexpected job")
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	if res.Candidates[0].Candidate.UserID != b.ID || res.Candidates[0].Score != 100 {
		t.Fatalf("expected full match first")
	}
	if res.Candidates[1].Candidate.UserID != a.ID || res.Candidates[1].Score != 50 {
		t.Fatalf("expected half match second")
	}
}

func TestJobUsecase_Search_CachesUntilNextWrite(t *testing.T) {
	f := newFixture()
	owner := f.addUser(user.RoleRecruiter, user.StatusActive)
	f.addJob(owner.ID, "go", job.StatusOpen)

	filters := search.Filters{Keyword: "backend"}
	first, err := f.jobUC.Search(context.Background(), filters)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 result, got %d", len(first))
	}
	if f.cache.size() != 1 {
		t.Fatalf("expected result cached")
	}

	// written behind the usecase's back: the cached result still wins
	f.addJob(owner.ID, "java", job.StatusOpen)
	second, err := f.jobUC.Search(context.Background(), filters)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached result, got %d", len(second))
	}

	if _, err := f.jobUC.CreateJob(context.Background(), owner.ID, CreateJobInput{Title: "Backend Lead", Company: "Acme"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	third, err := f.jobUC.Search(context.Background(), filters)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(third) != 3 {
		t.Fatalf("expected fresh results after write, got %d", len(third))
	}
}

func TestJobUsecase_Search_NoFilters(t *testing.T) {
	f := newFixture()
	owner := f.addUser(user.RoleRecruiter, user.StatusActive)
	f.addJob(owner.ID, "go", job.StatusOpen)
	f.addJob(owner.ID, "java", job.StatusOpen)
	f.addJob(owner.ID, "rust", job.StatusPaused)

	res, err := f.jobUC.Search(context.Background(), search.Filters{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expected only open jobs, got %d", len(res))
	}
	for _, r := range res {
		if r.MatchPercentage != 0 {
			t.Fatalf("expected 0%% without filters, got %d", r.MatchPercentage)
		}
	}
}

func TestJobUsecase_Search_CacheKeepsScoringDifferencesApart(t *testing.T) {
	cases := []struct {
		name      string
		first     search.Filters
		second    search.Filters
		wantScore int
		wantPct   int
	}{
		{"job type case", search.Filters{JobType: "FULL-TIME"}, search.Filters{JobType: "full-time"}, 2, 100},
		{"duplicate skills", search.Filters{Skills: "go,go"}, search.Filters{Skills: "go"}, 4, 100},
		{"keyword spacing", search.Filters{Keyword: "backend  engineer"}, search.Filters{Keyword: "backend engineer"}, 5, 31},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			owner := f.addUser(user.RoleRecruiter, user.StatusActive)
			f.addJob(owner.ID, "go", job.StatusOpen)

			if _, err := f.jobUC.Search(context.Background(), tc.first); err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			res, err := f.jobUC.Search(context.Background(), tc.second)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(res) != 1 || res[0].Score != tc.wantScore || res[0].MatchPercentage != tc.wantPct {
				t.Fatalf("expected score=%d pct=%d, got %+v", tc.wantScore, tc.wantPct, res)
			}
			if f.cache.size() != 2 {
				t.Fatalf("expected two cache entries, got %d", f.cache.size())
			}
		})
	}
}

func TestJobsSearchCacheKey_FoldsCaseAndSkillOrder(t *testing.T) {
	a := JobsSearchCacheKey(search.Filters{Keyword: "Backend", Location: "Remote", Skills: "Go, SQL"})
	b := JobsSearchCacheKey(search.Filters{Keyword: "backend", Location: "remote", Skills: "sql,go"})
	if a != b {
		t.Fatalf("expected equal keys, got %s and %s", a, b)
	}
	if a == JobsSearchCacheKey(search.Filters{Keyword: "backend", Location: "remote", Skills: "sql,go,go"}) {
		t.Fatalf("duplicate skill must change the key")
	}
}

func TestJobUsecase_ImportExternal(t *testing.T) {
	f := newFixture()
	owner := f.addUser(user.RoleRecruiter, user.StatusActive)
	f.addJob(owner.ID, "go", job.StatusOpen) // Backend Engineer at Acme

	listings := []ExternalListing{
		{Source: "adzuna", ExternalID: "1", Title: "Data Engineer", Company: "Globex", URL: "https://example.com/1"},
		{Source: "adzuna", ExternalID: "1", Title: "Data Engineer", Company: "Globex"},
		{Source: "adzuna", ExternalID: "2", Title: "backend engineer", Company: "ACME"},
		{Source: "adzuna", ExternalID: "3", Title: "", Company: "Initech"},
		{Source: "adzuna", ExternalID: "4", Title: "SRE", Company: "Initech", SalaryMin: intPtr(9), SalaryMax: intPtr(3)},
	}
	res, err := f.jobUC.ImportExternal(context.Background(), listings)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Fetched != 5 || res.Imported != 2 || res.Skipped != 3 {
		t.Fatalf("unexpected result %#v", res)
	}
	if n := len(f.bc.byEvent(notification.EventJobNew)); n != 2 {
		t.Fatalf("expected 2 job:new, got %d", n)
	}

	open, _ := f.jobs.ListOpen(context.Background())
	for _, j := range open {
		if j.Title != "SRE" {
			continue
		}
		if j.PostedBy != nil {
			t.Fatalf("imported job must have no owner")
		}
		if *j.SalaryMin != 3 || *j.SalaryMax != 9 {
			t.Fatalf("expected swapped salary range, got %d-%d", *j.SalaryMin, *j.SalaryMax)
		}
	}
}
