package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/reports"
)

type ReportExporterMock struct {
	mock.Mock
}

func (m *ReportExporterMock) Export(records []expense.Expense) (reports.Report, error) {
	args := m.Called(records)
	return args.Get(0).(reports.Report), args.Error(1)
}

type ReportArchiverMock struct {
	mock.Mock
}

func (m *ReportArchiverMock) Archive(ctx context.Context, userID int64, report reports.Report) error {
	return m.Called(ctx, userID, report).Error(0)
}
