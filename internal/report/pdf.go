package report

import (
	"fmt"
	"io"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/go-pdf/fpdf"
)

const (
	// Filename is offered to browsers downloading the report.
	Filename = "skillboard-report.pdf"

	margin     = 14.0
	lineHeight = 6.0
	fontFamily = "Helvetica"
)

// FormatTimestamp renders the report header date.
func FormatTimestamp(t time.Time) string { return t.Format("02/01/2006 15:04") }

// FormatDate renders a completion date. Completion dates are calendar dates
// stored at UTC midnight.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "Date à venir"
	}
	return t.UTC().Format("02/01/2006")
}

// Lines returns the report body as text lines, one per user block, so the
// layout can be checked without parsing PDF output.
func Lines(u *models.User) []string {
	position := u.Position
	if position == "" {
		position = "Non spécifié"
	}
	out := []string{
		u.Name,
		"Poste: " + position,
		"Rôle: " + string(u.Role),
		"Compétences",
	}
	if len(u.Skills) == 0 {
		out = append(out, "Aucune compétence enregistrée")
	}
	for _, s := range u.Skills {
		out = append(out, fmt.Sprintf("- %s (%s)", s.Name, s.Level))
	}
	out = append(out, "Formations")
	if len(u.Trainings) == 0 {
		out = append(out, "Aucune formation enregistrée")
	}
	for _, t := range u.Trainings {
		out = append(out, fmt.Sprintf("- %s | %s | %s", t.Title, t.Status, FormatDate(t.CompletionDate)))
	}
	return out
}

// RenderPDF writes the report of users generated at now to w.
func RenderPDF(w io.Writer, users []*models.User, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("Rapport SkillBoard", true)
	pdf.SetCreator("SkillBoard", true)
	pdf.SetCreationDate(now)
	pdf.AddPage()

	// core fonts are cp1252; accents must be translated
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(size float64, s string) {
		pdf.SetFont(fontFamily, "", size)
		pdf.MultiCell(0, size*0.5, tr(s), "", "L", false)
	}

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 12, tr("Rapport SkillBoard"), "", 1, "C", false, 0, "")
	pdf.Ln(lineHeight)
	text(12, "Date: "+FormatTimestamp(now))
	pdf.Ln(lineHeight)

	for _, u := range users {
		lines := Lines(u)
		text(16, lines[0])
		for _, l := range lines[1:] {
			switch l {
			case "Compétences", "Formations":
				pdf.Ln(lineHeight / 2)
				text(14, l)
			default:
				text(12, l)
			}
		}
		pdf.Ln(lineHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
