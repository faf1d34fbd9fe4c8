package frame

// Step lines with special meaning.
const (
	LineStart = 0
	LineEnd   = -1
)

// Step is one recorded execution snapshot: its position in the run, the
// breakpoint line that produced it, and the frame itself.
type Step struct {
	Seq   int
	Line  int
	Frame Frame
}
