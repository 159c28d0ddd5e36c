package cli

import "sync"

const transcriptRows = 20

// lineViewport is the terminal scroll area of the transcript. Heights are
// counted in rendered lines; the window shows rows lines starting at top.
type lineViewport struct {
	render func() []string
	rows   int

	mu  sync.Mutex
	top int
}

func newLineViewport(render func() []string, rows int) *lineViewport {
	return &lineViewport{render: render, rows: rows}
}

func (v *lineViewport) ScrollHeight() int {
	return len(v.render())
}

func (v *lineViewport) ScrollTop() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.top
}

func (v *lineViewport) SetScrollTop(top int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.top = max(top, 0)
}

// scrollBy moves the window by delta lines, clamped to the content.
func (v *lineViewport) scrollBy(delta int) {
	height := v.ScrollHeight()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.top = min(max(v.top+delta, 0), max(height-v.rows, 0))
}

func (v *lineViewport) scrollToBottom() {
	height := v.ScrollHeight()
	v.SetScrollTop(height - v.rows)
}

// window returns the visible lines and how many lines lie below them.
func (v *lineViewport) window() ([]string, int) {
	lines := v.render()
	v.mu.Lock()
	top := min(v.top, len(lines))
	v.mu.Unlock()
	end := min(top+v.rows, len(lines))
	return lines[top:end], len(lines) - end
}
