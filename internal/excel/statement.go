package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shieldline/warranty-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a remittance batch as a two-sheet workbook: a summary
// sheet with the batch totals and a detail sheet listing member contracts.
func (g *Generator) Generate(st model.RemittanceStatement) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, st); err != nil {
		return nil, err
	}

	detailSheet := "Contracts"
	file.NewSheet(detailSheet)
	if err := g.writeContracts(file, detailSheet, st); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, st model.RemittanceStatement) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Remittance batch")
	set("B1", st.Batch.Name)
	set("A2", "Dealership")
	set("B2", st.Dealership.Name)
	set("A3", "Status")
	set("B3", string(st.Batch.EffectiveRemittanceStatus()))
	set("A4", "Created")
	set("B4", formatDate(st.Batch.CreatedAt))
	set("A5", "Contracts")
	set("B5", len(st.Contracts))
	set("A6", "Subtotal")
	set("B6", formatCents(st.Batch.SubtotalCents))
	set("A7", fmt.Sprintf("Tax (%.2f%%)", st.Batch.TaxRatePct))
	set("B7", formatCents(st.Batch.TaxCents))
	set("A8", "Total due")
	set("B8", formatCents(st.Batch.TotalCents))

	if st.Batch.PaymentStatus == model.PaymentStatusPaid {
		set("A10", "Payment method")
		if st.Batch.PaymentMethod != nil {
			set("B10", string(*st.Batch.PaymentMethod))
		}
		set("A11", "Payment reference")
		if st.Batch.PaymentReference != nil {
			set("B11", *st.Batch.PaymentReference)
		}
		set("A12", "Payment date")
		if st.Batch.PaymentDate != nil {
			set("B12", formatDate(*st.Batch.PaymentDate))
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	return nil
}

func (g *Generator) writeContracts(file *excelize.File, sheet string, st model.RemittanceStatement) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Warranty ID",
		"Customer",
		"VIN",
		"Vehicle",
		"Sold",
		"Dealer cost",
		"Add-on cost",
		"Line total",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, contract := range st.Contracts {
		row := i + 2
		set(fmt.Sprintf("A%d", row), contract.WarrantyID)
		set(fmt.Sprintf("B%d", row), contract.CustomerName)
		set(fmt.Sprintf("C%d", row), contract.Vehicle.VIN)
		set(fmt.Sprintf("D%d", row), formatVehicle(contract.Vehicle))
		if contract.SoldAt != nil {
			set(fmt.Sprintf("E%d", row), formatDate(*contract.SoldAt))
		}
		cost := formatOptionalCents(contract.PricingDealerCostCents)
		if contract.PricingDealerCostCents == nil {
			cost = formatOptionalCents(contract.PricingBasePriceCents)
		}
		set(fmt.Sprintf("F%d", row), cost)
		set(fmt.Sprintf("G%d", row), formatCents(contract.AddonTotalCostCents))
		set(fmt.Sprintf("H%d", row), formatCents(lineTotalCents(contract)))
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "C", 20)
	_ = file.SetColWidth(sheet, "D", "D", 32)
	_ = file.SetColWidth(sheet, "E", "E", 12)
	_ = file.SetColWidth(sheet, "F", "H", 14)
	return nil
}

func lineTotalCents(c model.Contract) int64 {
	total := c.AddonTotalCostCents
	if c.PricingDealerCostCents != nil {
		total += *c.PricingDealerCostCents
	} else if c.PricingBasePriceCents != nil {
		total += *c.PricingBasePriceCents
	}
	return total
}

func formatVehicle(v model.Vehicle) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.Year, v.Make, v.Model} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func formatOptionalCents(cents *int64) string {
	if cents == nil {
		return ""
	}
	return formatCents(*cents)
}
