package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ulticlub/roster-service/metrics"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/realtime"
	"github.com/ulticlub/roster-service/repositories"
	"github.com/ulticlub/roster-service/storage"
)

// ------------------------
// Fake Roster Repo
// ------------------------

type FakeRosterRepo struct {
	mu    sync.Mutex
	trace []string

	CreateFunc                    func(ctx context.Context, entry *models.RosterEntry) error
	GetByIDFunc                   func(ctx context.Context, id uuid.UUID) (*models.RosterEntry, error)
	ListByTournamentFunc          func(ctx context.Context, tournamentID uuid.UUID) ([]*models.RosterEntry, error)
	ListPlayerIDsByTournamentFunc func(ctx context.Context, tournamentID uuid.UUID) ([]uuid.UUID, error)
	UpdateFunc                    func(ctx context.Context, entry *models.RosterEntry) error
	DeleteFunc                    func(ctx context.Context, id uuid.UUID) (*models.RosterEntry, error)
	CountFunc                     func(ctx context.Context) (int, error)
}

func (f *FakeRosterRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeRosterRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRosterRepo) Create(ctx context.Context, entry *models.RosterEntry) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, entry)
	}
	return nil
}

func (f *FakeRosterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RosterEntry, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrRosterEntryNotFound
}

func (f *FakeRosterRepo) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*models.RosterEntry, error) {
	f.record("ListByTournament")
	if f.ListByTournamentFunc != nil {
		return f.ListByTournamentFunc(ctx, tournamentID)
	}
	return []*models.RosterEntry{}, nil
}

func (f *FakeRosterRepo) ListPlayerIDsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]uuid.UUID, error) {
	f.record("ListPlayerIDsByTournament")
	if f.ListPlayerIDsByTournamentFunc != nil {
		return f.ListPlayerIDsByTournamentFunc(ctx, tournamentID)
	}
	return []uuid.UUID{}, nil
}

func (f *FakeRosterRepo) Update(ctx context.Context, entry *models.RosterEntry) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, entry)
	}
	return nil
}

func (f *FakeRosterRepo) Delete(ctx context.Context, id uuid.UUID) (*models.RosterEntry, error) {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil, repositories.ErrRosterEntryNotFound
}

func (f *FakeRosterRepo) Count(ctx context.Context) (int, error) {
	f.record("Count")
	if f.CountFunc != nil {
		return f.CountFunc(ctx)
	}
	return 0, nil
}

var _ repositories.RosterRepository = (*FakeRosterRepo)(nil)

// ------------------------
// Fake Notifier
// ------------------------

type FakeNotifier struct {
	mu       sync.Mutex
	rooms    []string
	messages []realtime.Message
}

func (f *FakeNotifier) BroadcastToRoom(room string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, room)
	if msg, ok := message.(realtime.Message); ok {
		f.messages = append(f.messages, msg)
	}
}

func (f *FakeNotifier) Messages() []realtime.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]realtime.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

func (f *FakeNotifier) Rooms() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.rooms))
	copy(out, f.rooms)
	return out
}

var _ RosterNotifier = (*FakeNotifier)(nil)

// ------------------------
// Fake Metrics
// ------------------------

type FakeMetrics struct {
	mu       sync.Mutex
	outcomes map[string][]string
}

func (f *FakeMetrics) RecordOperation(operation, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.outcomes == nil {
		f.outcomes = make(map[string][]string)
	}
	f.outcomes[operation] = append(f.outcomes[operation], outcome)
}

func (f *FakeMetrics) RecordDuration(string, time.Duration) {}

func (f *FakeMetrics) Outcomes(operation string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.outcomes[operation]...)
}

var _ metrics.RosterMetrics = (*FakeMetrics)(nil)

// ------------------------
// Fake Uploader
// ------------------------

type FakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string

	UploadFunc func(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error)
}

func NewFakeUploader() *FakeUploader {
	return &FakeUploader{objects: make(map[string][]byte)}
}

func (f *FakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, key, contentType, reader)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *FakeUploader) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *FakeUploader) GetPublicURL(key string) string {
	return fmt.Sprintf("https://media.example.test/%s", key)
}

func (f *FakeUploader) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys
}

func (f *FakeUploader) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

var _ storage.FileUploader = (*FakeUploader)(nil)
