// Package reports renders downloadable documents: the merchandiser product
// workbook and order invoices.
package reports

import (
	"fmt" // Sheet errors
	"io"  // Output stream

	"lamp_catalog/internal/domain" // Lamp model

	"github.com/shopspring/decimal" // Currency values
	"github.com/tealeg/xlsx"        // Excel workbook writer
)

// ProductSheet is the name of the worksheet holding the product list
const ProductSheet = "Products"

// productHeaders are the column titles of the product worksheet
var productHeaders = []string{
	"ID", "Article", "Brand", "Lamp type", "Has dimmer", "Power (W)", "Height (cm)", "Color",
	"Price", "Small wholesale price", "Small wholesale quantity",
	"Large wholesale price", "Large wholesale quantity", "Description", "Created at", "Updated at",
}

func addMoney(row *xlsx.Row, v decimal.Decimal) {
	row.AddCell().SetFloat(v.InexactFloat64())
}

func addNullMoney(row *xlsx.Row, v decimal.NullDecimal) {
	if !v.Valid {
		row.AddCell()
		return
	}
	addMoney(row, v.Decimal)
}

func addNullUint(row *xlsx.Row, v *uint) {
	cell := row.AddCell()
	if v != nil {
		cell.SetInt(int(*v))
	}
}

// WriteProducts writes lamps as an xlsx workbook with one row per lamp
func WriteProducts(w io.Writer, lamps []domain.Lamp) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(ProductSheet)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range productHeaders {
		header.AddCell().SetString(h)
	}

	for _, l := range lamps {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(l.ID))
		row.AddCell().SetString(l.Article)
		row.AddCell().SetString(l.Brand)
		row.AddCell().SetString(l.LampType.Label())
		row.AddCell().SetBool(l.HasDimmer)
		row.AddCell().SetInt(int(l.PowerWatts))
		addNullUint(row, l.HeightCM)
		row.AddCell().SetString(l.Color)
		addMoney(row, l.Price)
		addNullMoney(row, l.SmallWholesalePrice)
		addNullUint(row, l.SmallWholesaleQuantity)
		addNullMoney(row, l.LargeWholesalePrice)
		addNullUint(row, l.LargeWholesaleQuantity)
		row.AddCell().SetString(l.Description)
		row.AddCell().SetString(l.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(l.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
