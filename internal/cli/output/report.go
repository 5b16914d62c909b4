package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/boardcheck/internal/state"
	"github.com/leapstack-labs/boardcheck/pkg/drc"
	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// FormatMM formats a point in millimetres.
func FormatMM(p geom.Point) string {
	return fmt.Sprintf("(%s, %s)", mm(p.X), mm(p.Y))
}

func mm(v int64) string {
	return strconv.FormatFloat(float64(v)/1e6, 'f', -1, 64)
}

// ViolationJSON is the machine-readable form of a violation.
type ViolationJSON struct {
	drc.Violation
	New bool `json:"new"`
}

// ReportJSON is the machine-readable form of a check.
type ReportJSON struct {
	Board      string               `json:"board"`
	BoardHash  string               `json:"board_hash"`
	RunID      string               `json:"run_id,omitempty"`
	Errors     int                  `json:"errors"`
	Warnings   int                  `json:"warnings"`
	Duration   string               `json:"duration"`
	Providers  []drc.ProviderResult `json:"providers"`
	Suppressed []drc.ErrorCode      `json:"suppressed,omitempty"`
	Violations []ViolationJSON      `json:"violations"`
}

// Report is a check result with its history context.
type Report struct {
	Result *drc.Result
	// New marks violations absent from the previous run. Nil when the run
	// was not compared against history.
	New   []bool
	RunID string
}

func (rep Report) isNew(i int) bool {
	return rep.New != nil && i < len(rep.New) && rep.New[i]
}

// RenderReport writes a check report in the renderer's mode.
func (r *Renderer) RenderReport(rep Report) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.reportJSON(rep)
	case ModeMarkdown:
		r.reportMarkdown(rep)
	default:
		r.reportText(rep)
	}
	return nil
}

func (r *Renderer) reportJSON(rep Report) error {
	res := rep.Result
	out := ReportJSON{
		Board:      res.Board,
		BoardHash:  res.BoardHash,
		RunID:      rep.RunID,
		Errors:     res.Errors,
		Warnings:   res.Warnings,
		Duration:   res.Duration.Round(time.Microsecond).String(),
		Providers:  res.Providers,
		Suppressed: res.Suppressed,
		Violations: make([]ViolationJSON, len(res.Violations)),
	}
	for i, v := range res.Violations {
		out.Violations[i] = ViolationJSON{Violation: v, New: rep.isNew(i)}
	}
	return r.JSON(out)
}

func (r *Renderer) violationTable(rep Report) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	header := table.Row{"#", "Severity", "Rule", "Message", "Items", "Position (mm)"}
	if rep.New != nil {
		header = append(header, "New")
	}
	t.AppendHeader(header)

	for i, v := range rep.Result.Violations {
		row := table.Row{i + 1, v.Severity.String(), v.Code.String(), v.Message,
			strings.Join(v.References(), ", "), FormatMM(v.Position)}
		if rep.New != nil {
			mark := ""
			if rep.isNew(i) {
				mark = "yes"
			}
			row = append(row, mark)
		}
		t.AppendRow(row)
	}
	return t
}

func (r *Renderer) reportText(rep Report) {
	styles := r.styles
	res := rep.Result

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Design rule check: %s", res.Board)))
	r.Println(styles.Muted.Render(fmt.Sprintf("board %s, %s", res.BoardHash, res.Duration.Round(time.Millisecond))))
	r.Println("")

	if len(res.Violations) == 0 {
		r.Println(styles.Success.Render("No violations found"))
	} else {
		r.Println(r.violationTable(rep).Render())
	}

	for _, code := range res.Suppressed {
		r.Println(styles.Muted.Render(fmt.Sprintf("Further %q violations were suppressed by the error limit", code.String())))
	}
	for _, p := range res.Providers {
		if !p.Completed {
			r.Println(styles.Warning.Render(fmt.Sprintf("Provider %s did not complete", p.Name)))
		}
	}

	r.Println("")
	r.Println(summaryLine(styles, res))
	if rep.RunID != "" {
		r.Println(styles.Muted.Render("Saved run " + rep.RunID))
	}
}

func summaryLine(styles *Styles, res *drc.Result) string {
	errStyle, warnStyle := styles.Muted, styles.Muted
	if res.Errors > 0 {
		errStyle = styles.Error
	}
	if res.Warnings > 0 {
		warnStyle = styles.Warning
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		errStyle.Render(fmt.Sprintf("%d error(s)", res.Errors)),
		", ",
		warnStyle.Render(fmt.Sprintf("%d warning(s)", res.Warnings)),
	)
}

func (r *Renderer) reportMarkdown(rep Report) {
	res := rep.Result
	r.Printf("# Design rule check: %s\n\n", res.Board)
	r.Printf("Board hash `%s`, %d error(s), %d warning(s)\n\n", res.BoardHash, res.Errors, res.Warnings)

	if len(res.Violations) == 0 {
		r.Println("No violations found.")
	} else {
		r.Println(r.violationTable(rep).RenderMarkdown())
	}

	if len(res.Suppressed) > 0 {
		r.Println("")
		for _, code := range res.Suppressed {
			r.Printf("- `%s`: further violations suppressed by the error limit\n", code.String())
		}
	}
	if rep.RunID != "" {
		r.Printf("\nSaved run `%s`\n", rep.RunID)
	}
}

// ProviderInfo describes a registered provider.
type ProviderInfo struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Constraints []drc.ConstraintType `json:"constraints"`
	Enabled     bool                 `json:"enabled"`
}

// RenderProviders writes the provider list.
func (r *Renderer) RenderProviders(infos []ProviderInfo) error {
	mode := r.EffectiveMode()
	if mode == ModeJSON {
		return r.JSON(map[string]any{"providers": infos, "count": len(infos)})
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Description", "Constraints", "Enabled"})
	for _, p := range infos {
		cs := make([]string, len(p.Constraints))
		for i, c := range p.Constraints {
			cs[i] = string(c)
		}
		t.AppendRow(table.Row{p.Name, p.Description, strings.Join(cs, ", "), p.Enabled})
	}

	if mode == ModeMarkdown {
		r.Println("# Providers")
		r.Println("")
		r.Println(t.RenderMarkdown())
		return nil
	}
	r.Println("")
	r.Println(r.styles.Header1.Render(fmt.Sprintf("Providers (%d)", len(infos))))
	r.Println(t.Render())
	return nil
}

// RenderRuns writes the run history.
func (r *Renderer) RenderRuns(runs []*state.Run) error {
	mode := r.EffectiveMode()
	if mode == ModeJSON {
		if runs == nil {
			runs = []*state.Run{}
		}
		return r.JSON(map[string]any{"runs": runs})
	}
	if len(runs) == 0 {
		r.Println("No runs recorded")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Board", "Started", "Errors", "Warnings", "Violations", "Complete"})
	for _, run := range runs {
		t.AppendRow(table.Row{run.ID, run.Board, run.StartedAt.Local().Format(time.DateTime),
			run.Errors, run.Warnings, run.Violations, run.Completed})
	}

	if mode == ModeMarkdown {
		r.Println(t.RenderMarkdown())
		return nil
	}
	r.Println(t.Render())
	return nil
}
