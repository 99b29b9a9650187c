// Package printsheet lays out the sign-up sheet as a PDF document.
package printsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskboard/internal/output"
	"taskboard/internal/task"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	slotHeight = 9.0
	margin     = 15.0
	cardGap    = 6.0
)

type settings struct {
	pageSize string
	compress bool
	created  time.Time
}

// Option configures the document.
type Option func(*settings)

// WithPageSize sets the paper size, "Letter" or "A4".
func WithPageSize(size string) Option {
	return func(s *settings) { s.pageSize = size }
}

// WithCreationDate stamps the document, making output reproducible.
func WithCreationDate(t time.Time) Option {
	return func(s *settings) { s.created = t }
}

func withoutCompression() Option {
	return func(s *settings) { s.compress = false }
}

// Write renders one card per task, in the given order, with a dotted line for
// each open spot.
func Write(w io.Writer, tasks []task.Task, opts ...Option) error {
	cfg := settings{pageSize: "Letter", compress: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	pdf := gofpdf.New("P", "mm", cfg.pageSize, "")
	pdf.SetCompression(cfg.compress)
	if !cfg.created.IsZero() {
		pdf.SetCreationDate(cfg.created)
	}
	pdf.SetTitle("Task Sign-up Sheet", true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*margin

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(contentW, 10, tr(output.SignupTitle), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(contentW, lineHeight, tr(output.SignupInstructions), "B", 1, "C", false, 0, "")
	pdf.Ln(cardGap)

	for _, t := range tasks {
		need := cardHeight(pdf, t, contentW)
		if pdf.GetY()+need > pageH-margin {
			pdf.AddPage()
		}
		drawCard(pdf, tr, t, contentW)
		pdf.Ln(cardGap)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render sign-up sheet: %w", err)
	}
	return nil
}

func cardHeight(pdf *gofpdf.Fpdf, t task.Task, w float64) float64 {
	h := 2*lineHeight + 4
	if t.Overview != "" {
		pdf.SetFont(fontFamily, "", 10)
		h += float64(len(pdf.SplitLines([]byte(t.Overview), w-4))) * 5
	}
	return h + lineHeight + float64(output.Spots(t))*slotHeight
}

func drawCard(pdf *gofpdf.Fpdf, tr func(string) string, t task.Task, w float64) {
	left, top := pdf.GetX(), pdf.GetY()
	badgeW := 34.0

	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(w-badgeW, lineHeight+1, tr(t.Name), "", 0, "L", false, 0, "")

	r, g, b := teamColor(t.SubTeam)
	pdf.SetFillColor(r, g, b)
	pdf.SetFont(fontFamily, "B", 8)
	pdf.CellFormat(badgeW, lineHeight-1, tr(strings.ToUpper(t.SubTeam)), "1", 1, "C", true, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetX(left + w - badgeW)
	pdf.CellFormat(badgeW, lineHeight, tr("Due: "+output.DueShort(t)), "", 1, "R", false, 0, "")

	if t.Overview != "" {
		pdf.SetX(left + 2)
		pdf.MultiCell(w-4, 5, tr(t.Overview), "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont(fontFamily, "B", 8)
	pdf.SetX(left + 2)
	pdf.CellFormat(w-4, lineHeight, strings.ToUpper(output.SpotsLabel(t)), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	for i := 1; i <= output.Spots(t); i++ {
		y := pdf.GetY()
		pdf.SetX(left + 2)
		pdf.CellFormat(8, slotHeight, strconv.Itoa(i)+".", "", 0, "L", false, 0, "")
		pdf.SetDashPattern([]float64{0.6, 0.8}, 0)
		pdf.Line(left+12, y+slotHeight-1.5, left+w-4, y+slotHeight-1.5)
		pdf.SetDashPattern([]float64{}, 0)
		pdf.SetY(y + slotHeight)
	}

	pdf.Rect(left, top, w, pdf.GetY()-top+2, "D")
	pdf.SetY(pdf.GetY() + 2)
}

// teamColor returns the badge color for a sub-team, white when it has none.
func teamColor(team string) (int, int, int) {
	hex, ok := output.SubTeamColors[team]
	if !ok || len(hex) != 7 {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
