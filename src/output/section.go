package output

import (
	"fmt"
	"io"
	"strings"
)

const sectionWidth = 61 // inner width between │ and line end

// Section renders a box-drawing framed output section.
type Section struct {
	w     io.Writer
	name  string
	color bool
}

// NewSection creates a section and writes its header.
func NewSection(w io.Writer, name string, color bool) *Section {
	s := &Section{w: w, name: name, color: color}
	s.writeHeader()
	return s
}

// Row writes a content line inside the section frame.
func (s *Section) Row(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(s.w, "    │ %s\n", line)
}

// KV writes an aligned key → value row.
func (s *Section) KV(key, value string) {
	s.Row("%-16s→ %s", key, value)
}

// Separator writes a mid-section divider.
func (s *Section) Separator() {
	fmt.Fprintf(s.w, "    ├%s\n", strings.Repeat("─", sectionWidth))
}

// Close writes the section footer.
func (s *Section) Close() {
	fmt.Fprintf(s.w, "    └%s\n", strings.Repeat("─", sectionWidth))
}

// writeHeader renders: ── Name ─────────────────────────────
func (s *Section) writeHeader() {
	label := fmt.Sprintf("── %s ", s.name)
	rule := strings.Repeat("─", max(sectionWidth+4-len(label), 1))

	if s.color {
		// dim cyan for header
		fmt.Fprintf(s.w, "\n    \033[2;36m%s%s\033[0m\n", label, rule)
	} else {
		fmt.Fprintf(s.w, "\n    %s%s\n", label, rule)
	}
}
