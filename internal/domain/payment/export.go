package payment

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payments"

var exportHeaders = []interface{}{
	"Transaction ID", "Paid At", "Student Email", "Student Name",
	"Trainer", "Class", "Slot", "Amount", "Currency", "Gateway Status",
}

// WriteWorkbook writes recs as a single sheet xlsx workbook to w.
func WriteWorkbook(w io.Writer, recs []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return err
	}

	for i, rec := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			rec.TransactionID,
			rec.PaidAt.UTC().Format("2006-01-02 15:04:05"),
			rec.StudentEmail,
			rec.StudentName,
			rec.TrainerName,
			rec.ClassName,
			rec.SlotName,
			rec.Amount,
			rec.Currency,
			rec.GatewayStatus,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	return f.Write(w)
}
