package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]user.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *fakeUserRepo) List(context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id uuid.UUID, status user.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Status = status
	r.users[id] = u
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]job.Job
	err  error
}

func newFakeJobRepo(jobs ...job.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: map[uuid.UUID]job.Job{}}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return job.Job{}, r.err
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	r.jobs[j.ID] = j
	return j, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) filter(keep func(job.Job) bool) []job.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]job.Job, 0)
	for _, j := range r.jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (r *fakeJobRepo) List(context.Context) ([]job.Job, error) {
	return r.filter(func(job.Job) bool { return true }), nil
}

func (r *fakeJobRepo) ListOpen(context.Context) ([]job.Job, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.filter(func(j job.Job) bool { return j.Status == job.StatusOpen }), nil
}

func (r *fakeJobRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]job.Job, error) {
	return r.filter(func(j job.Job) bool { return j.IsOwnedBy(ownerID) }), nil
}

func (r *fakeJobRepo) ListWithOwner(context.Context) ([]job.WithOwner, error) {
	out := make([]job.WithOwner, 0)
	for _, j := range r.filter(func(job.Job) bool { return true }) {
		out = append(out, job.WithOwner{Job: j})
	}
	return out, nil
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, id uuid.UUID, status job.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.Status = status
	r.jobs[id] = j
	return nil
}

func (r *fakeJobRepo) TransitionByOwner(_ context.Context, ownerID uuid.UUID, from, to job.Status) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, j := range r.jobs {
		if j.IsOwnedBy(ownerID) && j.Status == from {
			j.Status = to
			r.jobs[id] = j
			n++
		}
	}
	return n, nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) ExistsExternal(_ context.Context, source, externalID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ExternalSource != nil && j.ExternalID != nil && *j.ExternalSource == source && *j.ExternalID == externalID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJobRepo) ExistsByTitleCompany(_ context.Context, title, company string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if strings.EqualFold(j.Title, title) && strings.EqualFold(j.Company, company) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJobRepo) status(id uuid.UUID) job.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[id].Status
}

type fakeProfileRepo struct {
	mu         sync.Mutex
	profiles   map[uuid.UUID]user.Profile
	candidates []user.Candidate
}

func newFakeProfileRepo(candidates ...user.Candidate) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[uuid.UUID]user.Profile{}, candidates: candidates}
	for _, c := range candidates {
		r.profiles[c.UserID] = c.Profile
	}
	return r
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return user.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p user.Profile) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.profiles[p.UserID]; ok {
		p.ID = old.ID
		p.ResumeURL = old.ResumeURL
	} else {
		p.ID = uuid.New()
	}
	r.profiles[p.UserID] = p
	return p, nil
}

func (r *fakeProfileRepo) UpdateResume(_ context.Context, userID uuid.UUID, resumeURL string) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		p = user.Profile{ID: uuid.New(), UserID: userID}
	}
	p.ResumeURL = &resumeURL
	r.profiles[userID] = p
	return p, nil
}

func (r *fakeProfileRepo) ListCandidates(context.Context) ([]user.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]user.Candidate(nil), r.candidates...), nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]application.Application
	jobs *fakeJobRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[uuid.UUID]application.Application{}, jobs: jobs}
}

func (r *fakeApplicationRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.ApplicantID == a.ApplicantID && existing.JobID == a.JobID {
			return application.Application{}, repository.ErrDuplicateApplication
		}
	}
	a.ID = uuid.New()
	a.AppliedAt = time.Now()
	r.apps[a.ID] = a
	return a, nil
}

func (r *fakeApplicationRepo) Exists(_ context.Context, applicantID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.ApplicantID == applicantID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) detail(a application.Application) application.Detail {
	d := application.Detail{Application: a}
	if j, err := r.jobs.GetByID(context.Background(), a.JobID); err == nil {
		d.JobTitle = j.Title
		d.JobCompany = j.Company
		d.JobPostedBy = j.PostedBy
	}
	return d
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Detail, error) {
	r.mu.Lock()
	a, ok := r.apps[id]
	r.mu.Unlock()
	if !ok {
		return application.Detail{}, repository.ErrApplicationNotFound
	}
	return r.detail(a), nil
}

func (r *fakeApplicationRepo) list(keep func(application.Application) bool) []application.Detail {
	r.mu.Lock()
	items := make([]application.Application, 0)
	for _, a := range r.apps {
		if keep(a) {
			items = append(items, a)
		}
	}
	r.mu.Unlock()
	out := make([]application.Detail, 0, len(items))
	for _, a := range items {
		out = append(out, r.detail(a))
	}
	return out
}

func (r *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]application.Detail, error) {
	return r.list(func(a application.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Detail, error) {
	return r.list(func(a application.Application) bool { return a.JobID == jobID }), nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	r.apps[id] = a
	return nil
}

func (r *fakeApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

type fakeSavedJobRepo struct {
	mu    sync.Mutex
	saved map[[2]uuid.UUID]job.Saved
}

func newFakeSavedJobRepo() *fakeSavedJobRepo {
	return &fakeSavedJobRepo{saved: map[[2]uuid.UUID]job.Saved{}}
}

func (r *fakeSavedJobRepo) SaveIfAbsent(_ context.Context, userID, jobID uuid.UUID) (job.Saved, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uuid.UUID{userID, jobID}
	if s, ok := r.saved[key]; ok {
		return s, nil
	}
	s := job.Saved{ID: uuid.New(), UserID: userID, JobID: jobID, SavedAt: time.Now()}
	r.saved[key] = s
	return s, nil
}

func (r *fakeSavedJobRepo) Delete(_ context.Context, userID, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uuid.UUID{userID, jobID}
	if _, ok := r.saved[key]; !ok {
		return repository.ErrSavedJobNotFound
	}
	delete(r.saved, key)
	return nil
}

func (r *fakeSavedJobRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]job.Saved, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]job.Saved, 0)
	for _, s := range r.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []notification.Notification
	// failFor makes Create fail for one recipient.
	failFor uuid.UUID
}

func (r *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFor != uuid.Nil && n.UserID == r.failFor {
		return notification.Notification{}, errors.New("insert failed")
	}
	n.ID = uuid.New()
	n.CreatedAt = time.Now().Add(time.Duration(len(r.items)) * time.Millisecond)
	r.items = append(r.items, n)
	return n, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.Notification, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.UserID == userID && !it.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserID == userID {
			r.items[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for i := range r.items {
		if r.items[i].UserID == userID && !r.items[i].IsRead {
			r.items[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) forUser(userID uuid.UUID) []notification.Notification {
	out, _ := r.ListByUser(context.Background(), userID)
	return out
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type emitted struct {
	Room    string
	Event   string
	Payload any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []emitted
}

func (b *recordingBroadcaster) EmitToRoom(room, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, emitted{Room: room, Event: event, Payload: payload})
}

func (b *recordingBroadcaster) EmitToAll(event string, payload any) {
	b.EmitToRoom("*", event, payload)
}

func (b *recordingBroadcaster) byEvent(event string) []emitted {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]emitted, 0)
	for _, e := range b.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(context.Context, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]byte{}
	c.deletes++
	return nil
}

func (c *fakeCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// fixture wires every usecase over the same in-memory state.
type fixture struct {
	users    *fakeUserRepo
	jobs     *fakeJobRepo
	profiles *fakeProfileRepo
	apps     *fakeApplicationRepo
	saved    *fakeSavedJobRepo
	notes    *fakeNotificationRepo
	bc       *recordingBroadcaster
	cache    *fakeCache

	notifications *Notifications
	fanout        *CandidateFanout
	jobUC         *Jobs
	appUC         *Applications
	adminUC       *Admin
	profileUC     *Profiles
	savedUC       *SavedJobs
}

func newFixture() *fixture {
	f := &fixture{
		users:    newFakeUserRepo(),
		jobs:     newFakeJobRepo(),
		profiles: newFakeProfileRepo(),
		saved:    newFakeSavedJobRepo(),
		notes:    &fakeNotificationRepo{},
		bc:       &recordingBroadcaster{},
		cache:    newFakeCache(),
	}
	f.apps = newFakeApplicationRepo(f.jobs)
	logger := quietLogger()
	f.notifications = NewNotificationUsecase(f.notes, f.bc, logger)
	f.fanout = NewCandidateFanout(f.profiles, f.notifications, nil, logger)
	f.jobUC = NewJobUsecase(f.jobs, f.profiles, f.fanout, f.bc, f.cache, time.Minute, logger)
	f.appUC = NewApplicationUsecase(f.apps, f.jobs, f.profiles, f.users, f.notifications, logger)
	f.adminUC = NewAdminUsecase(f.users, f.jobs, f.notifications, f.cache, logger)
	f.profileUC = NewProfileUsecase(f.profiles)
	f.savedUC = NewSavedJobUsecase(f.saved, f.jobs)
	return f
}

func (f *fixture) addUser(role user.Role, status user.Status) user.User {
	u := user.User{ID: uuid.New(), Name: string(role) + "-user", Email: uuid.NewString() + "@example.com", Role: role, Status: status}
	_ = f.users.Create(context.Background(), u)
	return u
}

// addCandidate registers a jobseeker with skills and, optionally, a résumé.
func (f *fixture) addCandidate(skills string, resume bool) user.User {
	u := f.addUser(user.RoleJobseeker, user.StatusActive)
	p := user.Profile{ID: uuid.New(), UserID: u.ID, Skills: skills}
	if resume {
		p.ResumeURL = strPtr("https://files.example.com/" + u.ID.String() + ".pdf")
	}
	f.profiles.mu.Lock()
	f.profiles.profiles[u.ID] = p
	f.profiles.candidates = append(f.profiles.candidates, user.Candidate{Profile: p, Name: u.Name, Email: u.Email, Role: u.Role})
	f.profiles.mu.Unlock()
	return u
}

func (f *fixture) addJob(owner uuid.UUID, skills string, status job.Status) job.Job {
	j := job.Job{
		ID:        uuid.New(),
		Title:     "Backend Engineer",
		Company:   "Acme",
		Skills:    skills,
		JobType:   job.TypeFullTime,
		Status:    status,
		PostedBy:  &owner,
		CreatedAt: time.Now(),
	}
	created, _ := f.jobs.Create(context.Background(), j)
	return created
}
