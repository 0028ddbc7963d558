package integration

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/persistence/postgres"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	"jobboard/migrations"

	"github.com/google/uuid"
)

type emitted struct {
	room  string
	event string
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []emitted
}

func (b *recordingBroadcaster) EmitToRoom(room, event string, _ any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, emitted{room: room, event: event})
}

func (b *recordingBroadcaster) EmitToAll(event string, _ any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, emitted{event: event})
}

func (b *recordingBroadcaster) count(room, event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.room == room && e.event == event {
			n++
		}
	}
	return n
}

func TestIntegration_PostApplySuspend(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	r := migration.Runner{FS: migrations.FS}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pgdb, err := postgres.NewPostgresDB(db)
	if err != nil {
		t.Fatalf("postgres db: %v", err)
	}
	users, err := postgres.NewUserRepository(pgdb)
	if err != nil {
		t.Fatalf("user repository: %v", err)
	}
	defer func() { _ = users.Close() }()

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	recruiter := user.User{ID: uuid.New(), Name: "Rec " + suffix, Email: "rec-" + suffix + "@test.local", PasswordHash: "x", Role: user.RoleRecruiter}
	seeker := user.User{ID: uuid.New(), Name: "Seek " + suffix, Email: "seek-" + suffix + "@test.local", PasswordHash: "x", Role: user.RoleJobseeker}
	for _, u := range []user.User{recruiter, seeker} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	var jobIDs []uuid.UUID
	defer func() {
		for _, id := range jobIDs {
			_, _ = db.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
		}
		_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE id = $1 OR id = $2`, recruiter.ID, seeker.ID)
	}()

	logger := log.New(io.Discard, "", 0)
	bc := &recordingBroadcaster{}
	jobRepo := repository.NewPostgresJobRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	notes := usecase.NewNotificationUsecase(repository.NewPostgresNotificationRepository(db), bc, logger)
	fanout := usecase.NewCandidateFanout(profileRepo, notes, nil, logger)
	jobsUC := usecase.NewJobUsecase(jobRepo, profileRepo, fanout, bc, nil, time.Minute, logger)
	appsUC := usecase.NewApplicationUsecase(repository.NewPostgresApplicationRepository(db), jobRepo, profileRepo, users, notes, logger)
	adminUC := usecase.NewAdminUsecase(users, jobRepo, notes, nil, logger)
	profilesUC := usecase.NewProfileUsecase(profileRepo)

	skills := "integration-" + suffix + ", go"
	if _, err := profilesUC.Upsert(ctx, seeker.ID, usecase.ProfileInput{Skills: skills}); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}

	j, err := jobsUC.CreateJob(ctx, recruiter.ID, usecase.CreateJobInput{Title: "Integration " + suffix, Company: "Acme", Skills: skills})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	jobIDs = append(jobIDs, j.ID)

	list, err := notes.List(ctx, seeker.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(list) != 1 || list[0].Type != notification.TypeRecommendedJob {
		t.Fatalf("expected one recommendedJob notification, got %#v", list)
	}
	if p, ok := list[0].Payload.(notification.RecommendedJobPayload); !ok || p.MatchScore != 100 {
		t.Fatalf("unexpected payload %#v", list[0].Payload)
	}
	if n := bc.count(notification.UserRoom(seeker.ID), notification.EventJobRecommended); n != 1 {
		t.Fatalf("expected one job:recommended emit, got %d", n)
	}

	if _, err := appsUC.Apply(ctx, seeker.ID, j.ID); err == nil {
		t.Fatalf("expected apply without resume to fail")
	}
	if _, err := profilesUC.UpdateResume(ctx, seeker.ID, "https://files.test.local/cv.pdf"); err != nil {
		t.Fatalf("update resume: %v", err)
	}
	if _, err := appsUC.Apply(ctx, seeker.ID, j.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := appsUC.Apply(ctx, seeker.ID, j.ID); err != usecase.ErrAlreadyApplied {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if n, _ := notes.UnreadCount(ctx, recruiter.ID); n != 1 {
		t.Fatalf("expected recruiter to have 1 unread notification, got %d", n)
	}

	if _, err := adminUC.UpdateUserStatus(ctx, recruiter.ID, "suspended"); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	got, err := jobRepo.GetByID(ctx, j.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != job.StatusPaused {
		t.Fatalf("expected job paused after suspension, got %s", got.Status)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := os.Getenv("JOBBOARD_TEST_DB_HOST")
	port := os.Getenv("JOBBOARD_TEST_DB_PORT")
	name := os.Getenv("JOBBOARD_TEST_DB_NAME")
	usr := os.Getenv("JOBBOARD_TEST_DB_USER")
	pass := os.Getenv("JOBBOARD_TEST_DB_PASSWORD")
	ssl := os.Getenv("JOBBOARD_TEST_DB_SSL_MODE")

	if host == "" || port == "" || name == "" || usr == "" {
		t.Skip("missing test DB env vars: set JOBBOARD_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     usr,
		DBPassword: pass,
		DBSSLMode:  ssl,
		SlowQuery:  time.Second,
	}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}
