package extraction

import (
	"context"
	"errors"
	"testing"

	"funeral-docs-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply   string
	err     error
	history []llm.Message
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.history = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantErr  error
	}{
		{
			name:     "bare json",
			raw:      `{"deceased":{"fullName":"Jane Doe"},"service":{"date":"March 3"}}`,
			wantName: "Jane Doe",
		},
		{
			name:     "fenced json",
			raw:      "```json\n{\"deceased\":{\"fullName\":\"John Roe\"}}\n```",
			wantName: "John Roe",
		},
		{
			name:     "prose around json",
			raw:      "Here you go:\n{\"deceased\":{\"fullName\":\"Ann Lee\"}}\nLet me know.",
			wantName: "Ann Lee",
		},
		{name: "no json", raw: "I could not find anything.", wantErr: ErrNoJSON},
		{name: "no name", raw: `{"deceased":{}}`, wantErr: ErrMissingName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Decode(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, data.Deceased.FullName)
		})
	}

	_, err := Decode(`{"deceased": {"fullName": 12}}`)
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	f := &fakeLLM{reply: `{"deceased":{"fullName":"Jane Doe"},"disposition":{"method":"cremation"}}`}

	data, err := NewExtractor(f, 0).Extract(context.Background(), "Director: Tell me about Jane.")

	require.NoError(t, err)
	assert.Equal(t, "cremation", data.Disposition.Method)
	require.Len(t, f.history, 2)
	assert.Equal(t, "system", f.history[0].Role)
	assert.Contains(t, f.history[1].Content, "Tell me about Jane.")
}

func TestExtractPropagatesLLMError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := NewExtractor(&fakeLLM{err: boom}, 100).Extract(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}
