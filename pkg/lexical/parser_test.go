package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  string
	}{
		{
			name:  "heading and paragraph",
			state: `{"root":{"type":"root","children":[{"type":"heading","tag":"h2","children":[{"type":"text","text":"Service"}]},{"type":"paragraph","children":[{"type":"text","text":"At noon."}]}]}}`,
			want:  "## Service\n\nAt noon.",
		},
		{
			name:  "text formats nest in order",
			state: `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"a","format":1},{"type":"text","text":" "},{"type":"text","text":"b","format":10},{"type":"text","text":" "},{"type":"text","text":"c","format":4}]}]}}`,
			want:  "**a** *__b__* ~~c~~",
		},
		{
			name:  "numbered list with start",
			state: `{"root":{"type":"root","children":[{"type":"list","listType":"number","start":3,"children":[{"type":"listitem","children":[{"type":"text","text":"Hymn"}]},{"type":"listitem","children":[{"type":"text","text":"Reading"}]}]}]}}`,
			want:  "3. Hymn\n4. Reading",
		},
		{
			name:  "bullet list and rule",
			state: `{"root":{"type":"root","children":[{"type":"list","listType":"bullet","children":[{"type":"listitem","children":[{"type":"text","text":"Flowers"}]}]},{"type":"horizontalrule"}]}}`,
			want:  "- Flowers\n\n---",
		},
		{
			name:  "link keeps text",
			state: `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"link","url":"https://example.com","children":[{"type":"text","text":"obituary"}]}]}]}}`,
			want:  "obituary",
		},
		{
			name:  "quote",
			state: `{"root":{"type":"root","children":[{"type":"quote","children":[{"type":"text","text":"Rest well"}]}]}}`,
			want:  "> Rest well",
		},
		{
			name:  "table rows",
			state: `{"root":{"type":"root","children":[{"type":"table","children":[{"type":"tablerow","children":[{"type":"tablecell","children":[{"type":"paragraph","children":[{"type":"text","text":"Casket"}]}]},{"type":"tablecell","children":[{"type":"paragraph","children":[{"type":"text","text":"$2,400"}]}]}]}]}]}}`,
			want:  "Casket | $2,400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewConverter().Convert(tt.state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertRejectsInvalidState(t *testing.T) {
	_, err := NewConverter().Convert(`{"root":`)
	assert.Error(t, err)

	_, err = NewConverter().Convert(`{"other":{}}`)
	assert.Error(t, err)
}

func TestToMarkup(t *testing.T) {
	plain := "# Summary\n\nAlready markup."
	assert.Equal(t, plain, ToMarkup(plain))

	broken := `{"root": nope`
	assert.Equal(t, broken, ToMarkup(broken))

	state := `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"Hi"}]}]}}`
	assert.Equal(t, "Hi", ToMarkup(state))
}

func TestToMarkupDetectsStateByDecoding(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "pretty printed state",
			content: `{
  "root": {
    "type": "root",
    "children": [
      {"type": "heading", "tag": "h1", "children": [{"type": "text", "text": "Obituary"}]}
    ]
  }
}`,
			want: "# Obituary",
		},
		{
			name:    "leading whitespace and spaced key",
			content: "\n  { \"root\" : {\"type\":\"root\",\"children\":[{\"type\":\"paragraph\",\"children\":[{\"type\":\"text\",\"text\":\"Hi\",\"format\":1}]}]}}",
			want:    "**Hi**",
		},
		{
			name:    "other json passes through",
			content: `{"title": "Summary"}`,
			want:    `{"title": "Summary"}`,
		},
		{
			name:    "root that is not an editor root passes through",
			content: `{"root": {"type": "paragraph"}}`,
			want:    `{"root": {"type": "paragraph"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMarkup(tt.content))
		})
	}
}
