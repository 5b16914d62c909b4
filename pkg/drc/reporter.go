package drc

import (
	"slices"
	"sync"

	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// LoopControl tells a provider whether to keep enumerating after a report.
type LoopControl int

const (
	// Continue keeps going.
	Continue LoopControl = iota
	// StopKind means the reported kind reached its limit. Other kinds may
	// still be reported.
	StopKind
	// StopAll means the global violation cap was reached.
	StopAll
)

// String returns the name of the decision.
func (c LoopControl) String() string {
	switch c {
	case Continue:
		return "continue"
	case StopKind:
		return "stop-kind"
	case StopAll:
		return "stop-all"
	default:
		return "unknown"
	}
}

// StageObserver receives progress notifications from providers.
type StageObserver interface {
	OnStage(provider, label string, current, total int)
}

// StageObserverFunc adapts a function to StageObserver.
type StageObserverFunc func(provider, label string, current, total int)

// OnStage implements StageObserver.
func (f StageObserverFunc) OnStage(provider, label string, current, total int) {
	f(provider, label, current, total)
}

// Limits is the reporting policy of a pass.
type Limits struct {
	// PerCode maps a kind to the most violations reported for it.
	PerCode map[ErrorCode]int
	// Default applies to kinds missing from PerCode. Zero or less is unlimited.
	Default int
	// MaxViolations caps the total across all kinds. Zero or less is unlimited.
	MaxViolations int
	// Severities overrides the default severity of a kind.
	Severities map[ErrorCode]Severity
}

// Reporter collects violations for one pass and enforces the limits.
// It is safe for concurrent use.
type Reporter struct {
	mu         sync.Mutex
	limits     Limits
	loc        *Localizer
	observer   StageObserver
	metrics    *Metrics
	counts     map[ErrorCode]int
	suppressed map[ErrorCode]bool
	violations []Violation
}

// NewReporter creates a reporter. loc, observer and metrics may be nil.
func NewReporter(limits Limits, loc *Localizer, observer StageObserver, metrics *Metrics) *Reporter {
	if loc == nil {
		loc = NewLocalizer("")
	}
	return &Reporter{
		limits:     limits,
		loc:        loc,
		observer:   observer,
		metrics:    metrics,
		counts:     make(map[ErrorCode]int),
		suppressed: make(map[ErrorCode]bool),
	}
}

func (r *Reporter) limitFor(code ErrorCode) int {
	if l, ok := r.limits.PerCode[code]; ok {
		return l
	}
	return r.limits.Default
}

// SeverityOf returns the effective severity of a kind.
func (r *Reporter) SeverityOf(code ErrorCode) Severity {
	if s, ok := r.limits.Severities[code]; ok {
		return s
	}
	return code.DefaultSeverity()
}

// Create returns a new violation of the given kind with its localized
// message template and effective severity.
func (r *Reporter) Create(code ErrorCode) *Violation {
	title := r.loc.T(code.Title())
	return &Violation{
		Code:     code,
		Severity: r.SeverityOf(code),
		Message:  title,
		title:    title,
	}
}

// IsErrorLimitExceeded reports whether no further violations of the kind
// should be built. Ignored kinds always count as exceeded.
func (r *Reporter) IsErrorLimitExceeded(code ErrorCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exceededLocked(code)
}

func (r *Reporter) exceededLocked(code ErrorCode) bool {
	if r.SeverityOf(code) == SeverityIgnore {
		return true
	}
	if r.limits.MaxViolations > 0 && len(r.violations) >= r.limits.MaxViolations {
		return true
	}
	limit := r.limitFor(code)
	return limit > 0 && r.counts[code] >= limit
}

// Report records a copy of v at pos and returns the loop decision.
func (r *Reporter) Report(v *Violation, pos geom.Point) LoopControl {
	item := *v
	item.Position = pos
	item.Items = slices.Clone(v.Items)
	item.Fingerprint = Fingerprint(item.Code, item.Items)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.violations = append(r.violations, item)
	r.counts[item.Code]++
	r.metrics.violationReported(item)

	if r.limits.MaxViolations > 0 && len(r.violations) >= r.limits.MaxViolations {
		return StopAll
	}
	if limit := r.limitFor(item.Code); limit > 0 && r.counts[item.Code] >= limit {
		r.suppressed[item.Code] = true
		return StopKind
	}
	return Continue
}

// ReportStage forwards a progress notification to the observer.
func (r *Reporter) ReportStage(provider, label string, current, total int) {
	if r.observer == nil {
		return
	}
	r.observer.OnStage(provider, r.loc.T(label), current, total)
}

// T translates a catalog key into the reporter's language.
func (r *Reporter) T(key string) string {
	return r.loc.T(key)
}

// Count returns how many violations of a kind were reported.
func (r *Reporter) Count(code ErrorCode) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[code]
}

// Violations returns a copy of everything reported so far, in report order.
func (r *Reporter) Violations() []Violation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.violations)
}

// Suppressed returns the kinds that reached their limit, in code order.
func (r *Reporter) Suppressed() []ErrorCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ErrorCode
	for _, code := range AllCodes() {
		if r.suppressed[code] {
			out = append(out, code)
		}
	}
	return out
}
