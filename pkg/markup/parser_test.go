package markup

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLevel int
		wantText  string
	}{
		{name: "level 1", input: "# Title", wantLevel: 1, wantText: "Title"},
		{name: "level 2 with space", input: "## Header", wantLevel: 2, wantText: "Header"},
		{name: "level 2 without space", input: "##Header", wantLevel: 2, wantText: "Header"},
		{name: "level 3", input: "### Service Details", wantLevel: 3, wantText: "Service Details"},
		{name: "level 4", input: "#### Notes", wantLevel: 4, wantText: "Notes"},
		{name: "deeper clamps to 4", input: "###### Deep", wantLevel: 4, wantText: "Deep"},
		{name: "closing hashes dropped", input: "## Closing ##", wantLevel: 2, wantText: "Closing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Parse(tt.input)
			require.Len(t, blocks, 1)
			assert.Equal(t, KindHeader, blocks[0].Kind)
			assert.Equal(t, tt.wantLevel, blocks[0].Level)
			assert.Equal(t, tt.wantText, blocks[0].Text())
		})
	}
}

func TestParseBlocks(t *testing.T) {
	input := strings.Join([]string{
		"# Funeral Service Contract",
		"",
		"Prepared for the family",
		"of the deceased.",
		"",
		"---",
		"- Casket selection",
		"* Flowers",
		"  - Lilies",
		"1. Call the cemetery",
		"2. Confirm the officiant",
		"",
		"> Remember them with love.",
		"",
		"> [!WARNING] Permit must be filed within 72 hours.",
		"",
		":::success",
		"All documents filed.",
		":::",
		"___",
	}, "\n")

	blocks := Parse(input)
	kinds := make([]Kind, len(blocks))
	for i, b := range blocks {
		kinds[i] = b.Kind
	}

	assert.Equal(t, []Kind{
		KindHeader,
		KindParagraph,
		KindRule,
		KindListItem,
		KindListItem,
		KindListItem,
		KindListItem,
		KindListItem,
		KindBlockquote,
		KindAdmonition,
		KindAdmonition,
		KindRule,
	}, kinds)

	assert.Equal(t, "Prepared for the family of the deceased.", blocks[1].Text())
	assert.Equal(t, Bulleted, blocks[3].List)
	assert.Equal(t, 1, blocks[5].Depth)
	assert.Equal(t, "Lilies", blocks[5].Text())
	assert.Equal(t, Numbered, blocks[7].List)
	assert.Equal(t, 2, blocks[7].Ordinal)
	assert.Equal(t, "Confirm the officiant", blocks[7].Text())
	assert.Equal(t, AdmonitionWarning, blocks[9].Admonition)
	assert.Equal(t, "Permit must be filed within 72 hours.", blocks[9].Text())
	assert.Equal(t, AdmonitionSuccess, blocks[10].Admonition)
}

func TestParseCollapsesBlankLines(t *testing.T) {
	blocks := Parse("First\n\n\n\n\nSecond\n\n\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, "First", blocks[0].Text())
	assert.Equal(t, "Second", blocks[1].Text())
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "plain",
			input: "nothing special",
			want:  []Span{{Text: "nothing special"}},
		},
		{
			name:  "bold",
			input: "a **bold** word",
			want:  []Span{{Text: "a "}, {Text: "bold", Style: Bold}, {Text: " word"}},
		},
		{
			name:  "bold italic",
			input: "***both***",
			want:  []Span{{Text: "both", Style: Bold | Italic}},
		},
		{
			name:  "italic",
			input: "*soft*",
			want:  []Span{{Text: "soft", Style: Italic}},
		},
		{
			name:  "underline and strike",
			input: "__under__ ~~gone~~",
			want:  []Span{{Text: "under", Style: Underline}, {Text: " "}, {Text: "gone", Style: Strike}},
		},
		{
			name:  "bold inside italic",
			input: "*a **b** c*",
			want:  []Span{{Text: "a ", Style: Italic}, {Text: "b", Style: Italic | Bold}, {Text: " c", Style: Italic}},
		},
		{
			name:  "unmatched stays literal",
			input: "5 * 3 and **open",
			want:  []Span{{Text: "5 * 3 and **open"}},
		},
		{
			name:  "lone delimiters",
			input: "**",
			want:  []Span{{Text: "**"}},
		},
		{
			name:  "star run stays literal",
			input: "***** done",
			want:  []Span{{Text: "***** done"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInline(tt.input))
		})
	}
}

func TestParseNeverPanics(t *testing.T) {
	alphabet := []string{"#", "##", "*", "**", "_", "__", "~", "~~", "-", "1.", ">", "[!INFO]", ":::", ":::info", " ", "\n", "\n\n", "word", "---", "\t", "\r\n", "ü", "2)"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		var sb strings.Builder
		n := rng.Intn(40)
		for j := 0; j < n; j++ {
			sb.WriteString(alphabet[rng.Intn(len(alphabet))])
		}
		input := sb.String()
		assert.NotPanics(t, func() {
			blocks := Parse(input)
			_ = Source(blocks)
			_ = PlainText(blocks)
		}, "input %q", input)
	}
}

func TestParseLargeInputIsLinear(t *testing.T) {
	inputs := map[string]string{
		"lone stars":      "x " + strings.Repeat("*", 200001),
		"unclosed bold":   strings.Repeat("**a ", 50000),
		"unclosed strike": strings.Repeat("~~a ", 50000),
		"mixed":           strings.Repeat("*a**b__c", 25000),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			blocks := Parse(input)
			require.NotEmpty(t, blocks)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

type shape struct {
	Kind       Kind
	Level      int
	List       ListKind
	Depth      int
	Admonition AdmonitionKind
}

func shapes(blocks []Block) []shape {
	out := make([]shape, len(blocks))
	for i, b := range blocks {
		out[i] = shape{Kind: b.Kind, Level: b.Level, List: b.List, Depth: b.Depth, Admonition: b.Admonition}
	}
	return out
}

func TestOnlyDashesAndUnderscoresMakeRules(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{input: "---", want: KindRule},
		{input: "_____", want: KindRule},
		{input: "***", want: KindParagraph},
		{input: "*****", want: KindParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			blocks := Parse(tt.input)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.want, blocks[0].Kind)
		})
	}
}

func TestSourceRoundTrip(t *testing.T) {
	inputs := []string{
		"# Obituary\n\nJohn **loved** the sea.\n\n## Survivors\n- Mary (wife)\n- Tom (son)\n  - Grandkids",
		"### Tasks\n1. Call family\n2. Order flowers\n\n---\n\n> A quote\n\n> [!INFO] Viewing at 5pm",
		"##NoSpace\n\n***bold italic*** and __under__ and ~~strike~~",
		":::warning\nDeposit outstanding\n:::\n\nClosing paragraph",
	}

	for _, input := range inputs {
		first := Parse(input)
		second := Parse(Source(first))
		assert.Equal(t, shapes(first), shapes(second), "input %q", input)
		for i := range first {
			assert.Equal(t, first[i].Text(), second[i].Text())
		}
	}
}

func TestNormalize(t *testing.T) {
	in := "```markdown\n# Title\n\n\n\n\nBody\n```"
	assert.Equal(t, "# Title\n\nBody", Normalize(in))
	assert.Equal(t, "plain", Normalize("  plain \r\n"))
}

func TestPlainTextReparsesToSameBlocks(t *testing.T) {
	inputs := []string{
		"## Service\n\n- one\n- two\n\nBody text",
		"# Title\n\n- one\n2. two\n\n**bold** text",
		"> [!WARNING] Permits first\n\n---\n\n1. Call\n  - Florist",
	}

	for _, input := range inputs {
		blocks := Parse(input)
		mirror := PlainText(blocks)
		again := Parse(mirror)
		assert.Equal(t, shapes(blocks), shapes(again), "mirror %q", mirror)
		for i := range blocks {
			assert.Equal(t, blocks[i].Spans, again[i].Spans)
		}
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "## Service\n\n- one\n- two\n\nBody text", Canonical("##Service\r\n\n* one\n+ two\n\n\n\nBody text"))
	assert.Equal(t, "# Draft\n\nBody text.", Canonical("# Draft\n\nBody text."))
}
