package reports

import (
	"bytes" // QR image buffer
	"fmt"   // Text formatting
	"io"    // Output stream

	"lamp_catalog/internal/orders" // Priced order views

	"github.com/phpdave11/gofpdf" // PDF rendering
	"github.com/skip2/go-qrcode"  // QR code of the order reference
)

// invoice column widths in millimetres
var invoiceColumns = []struct {
	title string
	width float64
	align string
}{
	{"Article", 70, "L"},
	{"Quantity", 30, "R"},
	{"Unit price", 40, "R"},
	{"Total", 40, "R"},
}

// WriteInvoice renders a one page PDF invoice for the priced order
func WriteInvoice(w io.Writer, view orders.View) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Order: %d", view.ID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Reference: %s", view.Reference))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", view.Status))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", view.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)

	png, err := qrcode.Encode(view.Reference, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode reference: %w", err)
	}
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("reference", imageOpts, bytes.NewReader(png))
	pdf.ImageOptions("reference", 160, 10, 35, 35, false, imageOpts, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	for _, col := range invoiceColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, col.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, line := range view.Priced {
		values := []string{
			line.Article,
			fmt.Sprintf("%d", line.Quantity),
			line.UnitPrice.StringFixed(2),
			line.Total.StringFixed(2),
		}
		for i, col := range invoiceColumns {
			pdf.CellFormat(col.width, 8, values[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", view.Subtotal.StringFixed(2)},
		{"Discount", view.Discount.StringFixed(2)},
		{"Total", view.Total.StringFixed(2)},
	}
	for _, t := range totals {
		pdf.CellFormat(140, 7, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, t.value, "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}
	return nil
}
