package compositor

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/pkg/llm"
	"funeral-docs-be/pkg/render"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply func(ctx context.Context, prompt string) (string, error)
}

func (f fakeLLM) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	return f.reply(ctx, history[len(history)-1].Content)
}

func (f fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type stubRenderer struct {
	err error
}

func (s stubRenderer) Name() string { return "stub" }

func (s stubRenderer) Render(_ context.Context, src render.Source) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF " + src.Title), nil
}

type memStore struct {
	mu   sync.Mutex
	docs []*entity.Document
	err  error
}

func (m *memStore) SaveDocument(_ context.Context, doc *entity.Document) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc.Id = uuid.New()
	m.docs = append(m.docs, doc)
	return nil
}

type recordingNotifier struct {
	events []Progress
}

func (r *recordingNotifier) NotifyProgress(_ uuid.UUID, p Progress) {
	r.events = append(r.events, p)
}

var testData = entity.ArrangementData{
	Deceased:    entity.DeceasedInfo{FullName: "Jane Doe"},
	Service:     entity.ServiceInfo{Date: "March 3", Time: "10am", Location: "St. Mary's", Pallbearers: []string{"Tom", "Ed"}},
	Disposition: entity.DispositionInfo{Method: "Burial", Cemetery: "Oak Hill"},
	NextOfKin:   entity.Contact{Name: "Mary Doe", Phone: "555-0100"},
}

func newJob() Job {
	return Job{ArrangementId: uuid.New(), UserId: uuid.New(), Data: testData, Transcript: "Director: hello"}
}

func newCompositor(provider llm.LLMProvider, r render.Renderer, store Store, timeout time.Duration) *Compositor {
	return New(provider, render.NewRegistry(r, nil), store, logger.NewNopLogger(), Config{Timeout: timeout})
}

func decode(t *testing.T, s string) string {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	return string(b)
}

func TestComposeAllGenerated(t *testing.T) {
	store := &memStore{}
	provider := fakeLLM{reply: func(context.Context, string) (string, error) {
		return "```markdown\n# Draft\n\nBody text.\n```", nil
	}}
	notifier := &recordingNotifier{}
	job := newJob()

	outcomes := newCompositor(provider, stubRenderer{}, store, time.Second).
		WithNotifier(notifier).
		Compose(context.Background(), job, entity.AllDocumentTypes)

	require.Len(t, outcomes, 6)
	for i, o := range outcomes {
		assert.Equal(t, entity.AllDocumentTypes[i], o.Type)
		assert.Equal(t, KindGenerated, o.Kind)
		require.True(t, o.Created())
		assert.Equal(t, entity.ContentTypePDF, o.Document.ContentType)
		assert.Equal(t, "stub", o.Document.Renderer)
		assert.Equal(t, "# Draft\n\nBody text.", o.Document.PlainText)
		assert.Equal(t, "%PDF "+o.Type.Title(), decode(t, o.Document.Content))
		assert.Equal(t, 1, o.Document.Version)
		assert.Equal(t, job.ArrangementId, o.Document.ArrangementId)
	}
	assert.Len(t, store.docs, 6)
	assert.Empty(t, Failed(outcomes))

	require.Len(t, notifier.events, 12)
	assert.Equal(t, "generating", notifier.events[0].Status)
	assert.Equal(t, string(KindGenerated), notifier.events[1].Status)
}

func TestComposeTimeoutFallsBackForTaskLists(t *testing.T) {
	var cancelled atomic.Int32
	provider := fakeLLM{reply: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		cancelled.Add(1)
		return "", ctx.Err()
	}}
	store := &memStore{}

	outcomes := newCompositor(provider, stubRenderer{}, store, 20*time.Millisecond).
		Compose(context.Background(), newJob(), entity.AllDocumentTypes)

	require.Len(t, outcomes, 6)
	byType := map[entity.DocumentType]Outcome{}
	for _, o := range outcomes {
		byType[o.Type] = o
	}

	tasks := byType[entity.DocumentTasks]
	require.Equal(t, KindFallbackTemplate, tasks.Kind)
	assert.True(t, strings.HasPrefix(tasks.Document.PlainText, DirectorChecklistHeading))
	assert.Contains(t, tasks.Document.PlainText, "Oak Hill")
	assert.Equal(t, entity.ContentTypePDF, tasks.Document.ContentType)

	arranger := byType[entity.DocumentArrangerTasks]
	require.Equal(t, KindFallbackTemplate, arranger.Kind)
	assert.True(t, strings.HasPrefix(arranger.Document.PlainText, ArrangerChecklistHeading))

	failed := Failed(outcomes)
	assert.Len(t, failed, 4)
	for _, typ := range []entity.DocumentType{entity.DocumentContract, entity.DocumentSummary, entity.DocumentObituary, entity.DocumentDeathCert} {
		assert.ErrorIs(t, failed[typ], apperror.ErrLLMTimeout)
	}
	assert.Len(t, store.docs, 2)

	assert.Eventually(t, func() bool { return cancelled.Load() == 6 }, time.Second, 5*time.Millisecond)
}

func TestComposeRenderFailureKeepsText(t *testing.T) {
	provider := fakeLLM{reply: func(context.Context, string) (string, error) { return "# Obituary\n\nJane.", nil }}

	outcomes := newCompositor(provider, stubRenderer{err: errors.New("font missing")}, &memStore{}, time.Second).
		Compose(context.Background(), newJob(), []entity.DocumentType{entity.DocumentObituary})

	require.Len(t, outcomes, 1)
	o := outcomes[0]
	assert.Equal(t, KindFallbackText, o.Kind)
	assert.Equal(t, entity.DocumentStatusGenerated, o.Document.Status)
	assert.Equal(t, entity.ContentTypeText, o.Document.ContentType)
	assert.Equal(t, RendererNone, o.Document.Renderer)
	assert.Equal(t, "# Obituary\n\nJane.", decode(t, o.Document.Content))
}

func TestComposeStoresCanonicalPlainText(t *testing.T) {
	provider := fakeLLM{reply: func(context.Context, string) (string, error) {
		return "##Order of Service\r\n\n* Hymn\n+ Reading\n\n\n\nClosing words", nil
	}}

	outcomes := newCompositor(provider, stubRenderer{}, &memStore{}, time.Second).
		Compose(context.Background(), newJob(), []entity.DocumentType{entity.DocumentSummary})

	require.Len(t, outcomes, 1)
	assert.Equal(t, "## Order of Service\n\n- Hymn\n- Reading\n\nClosing words", outcomes[0].Document.PlainText)
}

func TestComposeKeepsTextTheCoreFontsCannotDraw(t *testing.T) {
	provider := fakeLLM{reply: func(context.Context, string) (string, error) {
		return "# Obituary\n\n李小龍 was loved.", nil
	}}

	outcomes := newCompositor(provider, render.NewDirectRenderer(), &memStore{}, time.Second).
		Compose(context.Background(), newJob(), []entity.DocumentType{entity.DocumentObituary})

	require.Len(t, outcomes, 1)
	o := outcomes[0]
	assert.Equal(t, KindFallbackText, o.Kind)
	assert.Equal(t, entity.ContentTypeText, o.Document.ContentType)
	assert.Contains(t, decode(t, o.Document.Content), "李小龍")
}

func TestComposeFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		reply   func(context.Context, string) (string, error)
		store   *memStore
		docType entity.DocumentType
		want    Kind
		wantErr error
	}{
		{
			name:    "empty response",
			reply:   func(context.Context, string) (string, error) { return "   ", nil },
			store:   &memStore{},
			docType: entity.DocumentContract,
			want:    KindFailed,
			wantErr: llm.ErrEmptyResponse,
		},
		{
			name:    "llm error on summary",
			reply:   func(context.Context, string) (string, error) { return "", boom },
			store:   &memStore{},
			docType: entity.DocumentSummary,
			want:    KindFailed,
			wantErr: boom,
		},
		{
			name:    "llm error on arranger tasks uses template",
			reply:   func(context.Context, string) (string, error) { return "", boom },
			store:   &memStore{},
			docType: entity.DocumentArrangerTasks,
			want:    KindFallbackTemplate,
		},
		{
			name:    "store error",
			reply:   func(context.Context, string) (string, error) { return "text", nil },
			store:   &memStore{err: boom},
			docType: entity.DocumentDeathCert,
			want:    KindFailed,
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcomes := newCompositor(fakeLLM{reply: tt.reply}, stubRenderer{}, tt.store, time.Second).
				Compose(context.Background(), newJob(), []entity.DocumentType{tt.docType})

			require.Len(t, outcomes, 1)
			assert.Equal(t, tt.want, outcomes[0].Kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, outcomes[0].Err, tt.wantErr)
			}
		})
	}
}

func TestComposeWithoutLLM(t *testing.T) {
	outcomes := newCompositor(nil, stubRenderer{}, &memStore{}, time.Second).
		Compose(context.Background(), newJob(), []entity.DocumentType{entity.DocumentObituary, entity.DocumentTasks})

	assert.Equal(t, KindFailed, outcomes[0].Kind)
	assert.ErrorIs(t, outcomes[0].Err, apperror.ErrLLMNotConfigured)
	assert.Equal(t, KindFallbackTemplate, outcomes[1].Kind)
}

func TestComposeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := fakeLLM{reply: func(context.Context, string) (string, error) { return "x", nil }}
	outcomes := newCompositor(provider, stubRenderer{}, &memStore{}, time.Second).
		Compose(ctx, newJob(), entity.AllDocumentTypes)

	require.Len(t, outcomes, 6)
	assert.Len(t, Failed(outcomes), 6)
}

func TestBuildPrompt(t *testing.T) {
	job := newJob()
	job.StyleSpecifications = "Keep it under one page."

	p := BuildPrompt(entity.DocumentObituary, job)

	assert.Contains(t, p, "obituary")
	assert.Contains(t, p, `"fullName": "Jane Doe"`)
	assert.Contains(t, p, "Director: hello")
	assert.Contains(t, p, "Keep it under one page.")

	for _, typ := range entity.AllDocumentTypes {
		assert.NotPanics(t, func() { BuildPrompt(typ, Job{}) })
	}
}

func TestTemplate(t *testing.T) {
	for _, typ := range entity.AllDocumentTypes {
		text, ok := Template(typ, testData)
		assert.Equal(t, typ.HasTemplateFallback(), ok, typ)
		if ok {
			assert.Contains(t, text, "**Deceased:** Jane Doe")
		}
	}

	text, _ := Template(entity.DocumentTasks, entity.ArrangementData{})
	assert.True(t, strings.HasPrefix(text, DirectorChecklistHeading))
	assert.Contains(t, text, "the deceased")
}

func TestRenderText(t *testing.T) {
	c := newCompositor(nil, stubRenderer{}, &memStore{}, time.Second)

	r := c.RenderText(context.Background(), entity.DocumentSummary, "Jane Doe", "# Summary", false)

	require.NoError(t, r.Err)
	assert.Equal(t, entity.ContentTypePDF, r.ContentType)
	assert.Equal(t, "%PDF Arrangement Summary", decode(t, r.Content))
}
