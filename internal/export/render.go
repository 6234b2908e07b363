package export

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	ContentType        = "application/pdf"
	ContentDisposition = `attachment; filename="quiz-report.pdf"`

	fontFamily = "DejaVu"
)

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontItalic []byte
)

type Renderer interface {
	Render(lines []Line) ([]byte, error)
}

type pdfRenderer struct {
	compress bool
}

// NewPDFRenderer writes reports with an embedded UTF-8 font so questions in
// any script survive. Content streams are left uncompressed unless compress
// is set.
func NewPDFRenderer(compress bool) Renderer {
	return &pdfRenderer{compress: compress}
}

func (r *pdfRenderer) Render(lines []Line) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(ReportTitle, true)
	pdf.SetCreator("yt-study-api", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", fontItalic)
	pdf.AddPage()

	for _, l := range lines {
		switch l.Kind {
		case KindTitle:
			pdf.SetFont(fontFamily, "B", 18)
			pdf.MultiCell(0, 10, l.Text, "", "C", false)
		case KindSeparator:
			pdf.SetFont(fontFamily, "", 10)
			pdf.MultiCell(0, 5, l.Text, "", "C", false)
		case KindResult:
			pdf.SetFont(fontFamily, "B", 13)
			pdf.MultiCell(0, 7, l.Text, "", "L", false)
		case KindQuestion:
			pdf.SetFont(fontFamily, "B", 12)
			pdf.MultiCell(0, 7, l.Text, "", "L", false)
		case KindOption:
			pdf.SetFont(fontFamily, "", 11)
			pdf.SetX(28)
			pdf.MultiCell(0, 6, l.Text, "", "L", false)
		case KindNotice:
			pdf.SetFont(fontFamily, "I", 12)
			pdf.MultiCell(0, 7, l.Text, "", "L", false)
		case KindFooter:
			pdf.SetFont(fontFamily, "", 9)
			pdf.MultiCell(0, 5, l.Text, "", "R", false)
		default:
			pdf.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
