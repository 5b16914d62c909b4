package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

const progressWidth = 30

// Progress draws provider stages as a single updating line.
// It implements drc.StageObserver.
type Progress struct {
	mu     sync.Mutex
	w      io.Writer
	bar    progress.Model
	styles *Styles
	drawn  bool
}

// NewProgress creates a progress line on the renderer's diagnostic output.
func (r *Renderer) NewProgress() *Progress {
	return &Progress{
		w: r.errOut,
		bar: progress.New(
			progress.WithWidth(progressWidth),
			progress.WithoutPercentage(),
			progress.WithColorProfile(r.styles.Profile()),
		),
		styles: r.styles,
	}
}

// OnStage redraws the line for a stage. Stages are counted from zero, so
// the bar shows the fraction of stages already started.
func (p *Progress) OnStage(provider, label string, current, total int) {
	if total <= 0 {
		return
	}
	frac := float64(current+1) / float64(total)

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.w, "\r\x1b[2K%s %s %s", p.bar.ViewAs(frac),
		p.styles.Bold.Render(provider), p.styles.Muted.Render(label))
	p.drawn = true
}

// Done clears the progress line.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		_, _ = fmt.Fprint(p.w, "\r\x1b[2K")
		p.drawn = false
	}
}
