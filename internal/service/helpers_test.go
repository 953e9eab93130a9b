package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/model"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/memory"
	"funeral-docs-be/internal/repository/unitofwork"
	"funeral-docs-be/pkg/admin/usage"
	"funeral-docs-be/pkg/compositor"
	"funeral-docs-be/pkg/database"
	"funeral-docs-be/pkg/llm"
	"funeral-docs-be/pkg/render"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uowFactory unitofwork.RepositoryFactory
	tracker    *usage.Tracker
	publisher  *recordingPublisher
	log        logger.ILogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, DSN: "file::memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, model.All()...))

	log := logger.NewNopLogger()
	return &fixture{
		uowFactory: unitofwork.NewRepositoryFactory(db),
		tracker:    usage.NewTracker(log, memory.NewLocalStatsCache(time.Minute)),
		publisher:  &recordingPublisher{},
		log:        log,
	}
}

func (f *fixture) user(t *testing.T, email string, role entity.UserRole) *entity.User {
	t.Helper()
	u := &entity.User{
		Email:              email,
		PasswordHash:       "x",
		FullName:           "Test " + email,
		Role:               role,
		BillingPeriodStart: time.Now().Add(-time.Hour),
	}
	require.NoError(t, f.uowFactory.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), u))
	return u
}

// compositor builds a compositor over provider; a nil provider means no LLM.
func (f *fixture) compositor(provider llm.LLMProvider) *compositor.Compositor {
	return compositor.New(provider, render.NewRegistry(stubRenderer{}, nil), NewDocumentStore(f.uowFactory), f.log,
		compositor.Config{Timeout: time.Second})
}

// processed uploads and processes a transcript for userId.
func (f *fixture) processed(t *testing.T, userId uuid.UUID) (transcriptId, arrangementId uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	svc := NewTranscriptService(f.uowFactory, fakeExtractor{data: sampleData}, f.tracker, f.publisher, f.log)

	tr, err := svc.Upload(ctx, userId, "call.txt", []byte("Director: Tell me about your mother."))
	require.NoError(t, err)
	res, err := svc.Process(ctx, userId, tr.Id)
	require.NoError(t, err)
	return tr.Id, res.Arrangement.Id
}

var sampleData = entity.ArrangementData{
	Deceased:    entity.DeceasedInfo{FullName: "Margaret Ann O'Neil"},
	Service:     entity.ServiceInfo{Date: "2024-03-03", Time: "10:00", Location: "St. Mary's"},
	Disposition: entity.DispositionInfo{Method: "Burial", Cemetery: "Oak Hill"},
	NextOfKin:   entity.Contact{Name: "Sean O'Neil", Phone: "555-0100"},
}

type fakeExtractor struct {
	data entity.ArrangementData
	err  error
}

func (f fakeExtractor) Extract(context.Context, string) (entity.ArrangementData, error) {
	return f.data, f.err
}

type fakeLLM struct {
	err error
}

func (f fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "# Draft\n\nBody text.", nil
}

func (f fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

var errModelDown = errors.New("model down")

type stubRenderer struct{}

func (stubRenderer) Name() string { return "stub" }

func (stubRenderer) Render(_ context.Context, src render.Source) ([]byte, error) {
	return []byte("%PDF " + src.Title), nil
}

type recordingPublisher struct {
	mu          sync.Mutex
	processed   []uuid.UUID
	generated   [][]entity.DocumentType
	failed      [][]entity.DocumentType
	roleChanges []entity.UserRole
}

func (p *recordingPublisher) PublishTranscriptProcessed(_ context.Context, _, transcriptId, _ uuid.UUID, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed = append(p.processed, transcriptId)
}

func (p *recordingPublisher) PublishDocumentsGenerated(_ context.Context, _, _ uuid.UUID, generated, failed []entity.DocumentType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generated = append(p.generated, generated)
	p.failed = append(p.failed, failed)
}

func (p *recordingPublisher) PublishRoleChanged(_ context.Context, _ uuid.UUID, _ string, _, newRole entity.UserRole) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roleChanges = append(p.roleChanges, newRole)
}
