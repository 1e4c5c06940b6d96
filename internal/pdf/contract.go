package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/shieldline/warranty-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders a printable contract document: dealership and customer
// blocks, the vehicle snapshot, the frozen coverage terms and any selected
// add-ons.
func (g *Generator) Generate(doc model.ContractDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Vehicle Service Contract", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Warranty ID: %s", doc.Contract.WarrantyID), "", 1, "C", false, 0, "")
	if doc.Contract.ContractNumber != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Contract No: %s", doc.Contract.ContractNumber), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", doc.Contract.Status), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.dealershipBlock(pdf, doc.Dealership)
	pdf.Ln(2)
	g.customerBlock(pdf, doc.Contract)
	pdf.Ln(2)
	g.vehicleBlock(pdf, doc.Contract)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Coverage", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Product", "Term", "Mileage", "Deductible", "Price"}
	colWidths := []float64{60, 30, 30, 30, 30}
	g.tableRow(pdf, headers, colWidths, true)
	g.tableRow(pdf, []string{
		safeValue(doc.ProductName),
		formatTermMonths(doc.Contract.PricingTermMonths),
		formatTermKm(doc.Contract.PricingTermKm),
		formatOptionalCents(doc.Contract.PricingDeductibleCents),
		formatOptionalCents(doc.Contract.PricingBasePriceCents),
	}, colWidths, false)
	pdf.Ln(2)

	if len(doc.Contract.AddonSnapshot) > 0 {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Add-ons", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)

		addonWidths := []float64{90, 45, 45}
		g.tableRow(pdf, []string{"Name", "Type", "Price"}, addonWidths, true)
		for _, entry := range doc.Contract.AddonSnapshot {
			g.tableRow(pdf, []string{
				entry.Name,
				string(entry.PricingType),
				formatCents(entry.ChosenPriceCents),
			}, addonWidths, false)
		}
		pdf.Ln(2)
		pdf.SetFont(g.fontName, "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Add-ons total: %s", formatCents(doc.Contract.AddonTotalRetailCents)), "", 1, "R", false, 0, "")
	}

	if doc.Contract.SoldAt != nil {
		pdf.Ln(2)
		pdf.SetFont(g.fontName, "", 11)
		soldBy := ""
		if doc.Contract.SoldByEmail != nil {
			soldBy = *doc.Contract.SoldByEmail
		}
		pdf.CellFormat(0, 6, fmt.Sprintf("Sold on %s by %s", formatDate(*doc.Contract.SoldAt), safeValue(soldBy)), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Signatures", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	g.signatureLine(pdf, "Customer", doc.Contract.CustomerName)
	g.signatureLine(pdf, "Dealership", doc.Dealership.Name)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) dealershipBlock(pdf *gofpdf.Fpdf, d model.Dealership) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Dealership", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		d.Name,
		joinNonEmpty(d.Address, d.City, d.Province, d.Postal),
		fmt.Sprintf("Phone: %s", safeValue(d.Phone)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func (g *Generator) customerBlock(pdf *gofpdf.Fpdf, c model.Contract) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Customer", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		c.CustomerName,
		joinNonEmpty(c.CustomerAddress, c.CustomerCity, c.CustomerProvince, c.CustomerPostal),
		joinNonEmpty(c.CustomerEmail, c.CustomerPhone),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func (g *Generator) vehicleBlock(pdf *gofpdf.Fpdf, c model.Contract) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Vehicle", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	v := c.Vehicle
	lines := []string{
		joinNonEmpty(v.Year, v.Make, v.Model, v.Trim),
		fmt.Sprintf("VIN: %s", safeValue(v.VIN)),
	}
	if c.OdometerKm != nil {
		lines = append(lines, fmt.Sprintf("Odometer: %d km", *c.OdometerKm))
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func (g *Generator) tableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func (g *Generator) signatureLine(pdf *gofpdf.Fpdf, label, name string) {
	pdf.CellFormat(0, 10, fmt.Sprintf("%s: ______________________ /%s/", label, safeValue(name)), "", 1, "L", false, 0, "")
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func formatTermMonths(months *int64) string {
	if months == nil {
		return "Unlimited"
	}
	return fmt.Sprintf("%d mo", *months)
}

func formatTermKm(km *int64) string {
	if km == nil {
		return "Unlimited"
	}
	return fmt.Sprintf("%d km", *km)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func formatOptionalCents(cents *int64) string {
	if cents == nil {
		return ""
	}
	return formatCents(*cents)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
