// Package report renders a design session (generated images, the prompts behind them and
// the breakdown markdown) into a single PDF.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"xeriscape-be/pkg/imageref"

	"github.com/go-pdf/fpdf"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTitle       = "Landscape Design Report"
	defaultConcurrency = 4
	lineHeight         = 5.0
)

type Design struct {
	URL        string
	PromptUsed string
}

type Report struct {
	Title       string
	Address     string
	Designs     []Design
	Breakdown   string
	GeneratedAt time.Time
}

// Resolver turns an image reference into bytes; *imageref.Fetcher satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (*imageref.Image, error)
}

type Builder struct {
	resolver    Resolver
	concurrency int
}

func NewBuilder(resolver Resolver, concurrency int) *Builder {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Builder{resolver: resolver, concurrency: concurrency}
}

type resolved struct {
	img *imageref.Image
	err error
}

// resolveAll fetches every design image with bounded concurrency. A single broken image
// does not fail the report; only a cancelled context does.
func (b *Builder) resolveAll(ctx context.Context, designs []Design) ([]resolved, error) {
	out := make([]resolved, len(designs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, d := range designs {
		g.Go(func() error {
			img, err := b.resolver.Resolve(gctx, d.URL)
			out[i] = resolved{img: img, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func imageType(mime string) string {
	switch mime {
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}

// Build renders the report and returns the PDF bytes.
func (b *Builder) Build(ctx context.Context, r Report) ([]byte, error) {
	if len(r.Designs) == 0 {
		return nil, fmt.Errorf("report has no designs")
	}
	images, err := b.resolveAll(ctx, r.Designs)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(r.Title)
	if title == "" {
		title = DefaultTitle
	}
	generatedAt := r.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("xeriscape-be", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	contentW := pageW - left - right

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(contentW, 9, tr(title), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	if r.Address != "" {
		pdf.MultiCell(contentW, lineHeight, tr("Property: "+r.Address), "", "L", false)
	}
	pdf.MultiCell(contentW, lineHeight, "Generated "+generatedAt.Format("January 2, 2006"), "", "L", false)
	pdf.Ln(4)

	for i, d := range r.Designs {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(contentW, 7, fmt.Sprintf("Design %d", i+1), "", "L", false)

		res := images[i]
		embedded := false
		if res.err == nil && res.img != nil {
			if kind := imageType(res.img.MIMEType); kind != "" {
				name := fmt.Sprintf("design-%d", i)
				opts := fpdf.ImageOptions{ImageType: kind, ReadDpi: false}
				info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(res.img.Data))
				if pdf.Err() || info == nil {
					pdf.ClearError()
				} else {
					h := contentW * info.Height() / info.Width()
					if pdf.GetY()+h > pageH-bottom {
						pdf.AddPage()
					}
					pdf.ImageOptions(name, left, pdf.GetY(), contentW, h, true, opts, 0, "")
					embedded = true
				}
			}
		}
		if !embedded {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(contentW, lineHeight, tr("Image not embedded: "+d.URL), "", "L", false)
		}

		if d.PromptUsed != "" {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "I", 8)
			pdf.MultiCell(contentW, 4, tr(d.PromptUsed), "", "L", false)
		}
		pdf.Ln(4)
	}

	if strings.TrimSpace(r.Breakdown) != "" {
		pdf.AddPage()
		writeMarkdown(pdf, tr, contentW, r.Breakdown)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// writeMarkdown renders headings in bold and everything else as wrapped text.
func writeMarkdown(pdf *fpdf.Fpdf, tr func(string) string, width float64, md string) {
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(2)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			size := 15.0 - float64(level)
			if size < 10 {
				size = 10
			}
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(width, 7, tr(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))), "", "L", false)
		case isTableRule(trimmed):
			continue
		default:
			pdf.SetFont("Helvetica", "", 9)
			text := strings.ReplaceAll(trimmed, "**", "")
			if strings.HasPrefix(text, "|") {
				text = strings.Trim(text, "| ")
				text = strings.ReplaceAll(text, "|", "  ·  ")
			}
			pdf.MultiCell(width, lineHeight, tr(text), "", "L", false)
		}
	}
}

// isTableRule matches markdown separator rows such as |---|:---:|.
func isTableRule(line string) bool {
	if !strings.HasPrefix(line, "|") {
		return false
	}
	return strings.Trim(line, "|-: ") == ""
}
