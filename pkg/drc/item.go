package drc

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/leapstack-labs/boardcheck/pkg/board"
	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// ItemRef identifies a board item a violation refers to.
type ItemRef struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
}

// Violation is a classified design rule finding. Providers obtain one from
// Pass.Create, fill in items and qualifiers, and hand it to Pass.Report.
// The reporter stores its own copy, so a reported violation never changes.
type Violation struct {
	Code        ErrorCode  `json:"code"`
	Severity    Severity   `json:"severity"`
	Message     string     `json:"message"`
	Position    geom.Point `json:"position"`
	Items       []ItemRef  `json:"items"`
	Provider    string     `json:"provider"`
	Fingerprint string     `json:"fingerprint"`

	title string
}

// SetItems sets the footprints the violation refers to.
func (v *Violation) SetItems(fps ...*board.Footprint) {
	v.Items = make([]ItemRef, 0, len(fps))
	for _, fp := range fps {
		v.Items = append(v.Items, ItemRef{ID: fp.ID, Reference: fp.Reference})
	}
}

// SetQualifier appends a parenthesized detail to the message template.
func (v *Violation) SetQualifier(q string) {
	if q == "" {
		v.Message = v.title
		return
	}
	v.Message = v.title + " (" + q + ")"
}

// References returns the reference designators of the items.
func (v *Violation) References() []string {
	refs := make([]string, 0, len(v.Items))
	for _, it := range v.Items {
		refs = append(refs, it.Reference)
	}
	return refs
}

// Fingerprint identifies a violation across runs by kind and items. The
// position and message are left out: positions are informational and
// messages depend on the language.
func Fingerprint(code ErrorCode, items []ItemRef) string {
	h := xxhash.New()
	_, _ = h.WriteString(code.String())
	for _, it := range items {
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(it.ID)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
