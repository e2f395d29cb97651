package reports

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

func record(id int64, name, date, uah, usd string) expense.Expense {
	d, err := expense.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return expense.Expense{
		ID:              id,
		Name:            name,
		Date:            d,
		AmountLocal:     decimal.RequireFromString(uah),
		AmountReference: decimal.RequireFromString(usd),
	}
}

func Test_OnExport_ShouldWriteRowsInInputOrder(t *testing.T) {
	records := []expense.Expense{
		record(3, "Coffee", "15.03.2024", "50", "1.21"),
		record(1, "Rent", "01.03.2024", "12000.5", "290.37"),
	}

	report, err := NewExporter().Export(records)
	require.NoError(t, err)

	assert.Equal(t, FileName, report.FileName)
	assert.Equal(t, "12050.50", report.TotalLocal.StringFixed(2))
	assert.Equal(t, "291.58", report.TotalReference.StringFixed(2))

	f, err := excelize.OpenReader(bytes.NewReader(report.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Date", "Amount (UAH)", "Amount (USD)"}, rows[0])
	assert.Equal(t, []string{"3", "Coffee", "15.03.2024", "50", "1.21"}, rows[1])
	assert.Equal(t, []string{"1", "Rent", "01.03.2024", "12000.5", "290.37"}, rows[2])
}

func Test_OnExport_ShouldRefuseEmptyInput(t *testing.T) {
	report, err := NewExporter().Export(nil)

	assert.ErrorIs(t, err, customerr.ErrEmptyInput)
	assert.Nil(t, report.Data)
}
