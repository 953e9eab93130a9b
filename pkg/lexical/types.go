package lexical

// EditorState is the serialized state of the rich-text editor.
type EditorState struct {
	Root Node `json:"root"`
}

// Node is any node in the editor tree. Only the fields used by the
// converter are decoded.
type Node struct {
	Type     string `json:"type"`
	Children []Node `json:"children,omitempty"`

	// Text
	Text   string      `json:"text,omitempty"`
	Format interface{} `json:"format,omitempty"` // bitmask on text, alignment string on blocks

	// Heading
	Tag string `json:"tag,omitempty"`

	// Link
	URL string `json:"url,omitempty"`

	// List
	ListType string `json:"listType,omitempty"` // check, bullet, number
	Start    int    `json:"start,omitempty"`

	// List item
	Checked bool `json:"checked,omitempty"`
}

// Text format bitmask.
const (
	FormatBold          = 1
	FormatItalic        = 2
	FormatStrikethrough = 4
	FormatUnderline     = 8
	FormatCode          = 16
)
