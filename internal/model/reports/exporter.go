package reports

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

const (
	FileName  = "expenses_report.xlsx"
	SheetName = "Expenses"
	// numFmtTwoDecimals is the builtin "0.00" format.
	numFmtTwoDecimals = 2
)

var header = []interface{}{"ID", "Name", "Date", "Amount (UAH)", "Amount (USD)"}

// Report is a rendered workbook and the totals of the rows it holds.
type Report struct {
	FileName       string
	Data           []byte
	TotalLocal     decimal.Decimal
	TotalReference decimal.Decimal
}

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes one row per record in the given order. An empty input produces no workbook.
func (e *Exporter) Export(records []expense.Expense) (Report, error) {
	if len(records) == 0 {
		return Report{}, customerr.ErrEmptyInput
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return Report{}, errors.Wrap(err, "export expenses")
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return Report{}, errors.Wrap(err, "export expenses")
	}

	report := Report{FileName: FileName}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return Report{}, errors.Wrap(err, "export expenses")
		}
		row := []interface{}{
			rec.ID,
			rec.Name,
			expense.FormatDate(rec.Date),
			rec.AmountLocal.Round(2).InexactFloat64(),
			rec.AmountReference.Round(2).InexactFloat64(),
		}
		if err = f.SetSheetRow(SheetName, cell, &row); err != nil {
			return Report{}, errors.Wrap(err, "export expenses")
		}
		report.TotalLocal = report.TotalLocal.Add(rec.AmountLocal)
		report.TotalReference = report.TotalReference.Add(rec.AmountReference)
	}

	if err := formatSheet(f, len(records)); err != nil {
		return Report{}, errors.Wrap(err, "export expenses")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Report{}, errors.Wrap(err, "export expenses")
	}
	report.Data = buf.Bytes()
	return report, nil
}

func formatSheet(f *excelize.File, rows int) error {
	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(5, rows+1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(SheetName, "D2", last, style); err != nil {
		return err
	}
	if err = f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return err
	}
	return f.SetColWidth(SheetName, "C", "E", 14)
}
