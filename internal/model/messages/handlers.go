package messages

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/optional"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/customerr"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/session"
)

const (
	welcomeMessage    = "Welcome to Expense Tracker Bot! Choose an action:"
	chooseMenuMessage = "Please choose an option from the menu below:"

	enterNameMessage      = "Enter expense name:"
	enterDateMessage      = "Enter date in DD.MM.YYYY format:"
	enterAmountMessage    = "Enter amount in UAH:"
	enterStartDateMessage = "Enter start date (DD.MM.YYYY):"
	enterEndDateMessage   = "Enter end date (DD.MM.YYYY):"
	enterNewAmountMessage = "Enter new amount in UAH (or send '-' to keep current):"

	nameTooLongMessage    = "Name is too long (max 100 characters). Please try again:"
	nameEmptyMessage      = "Name cannot be empty. Please try again:"
	invalidDateMessage    = "Invalid date format. Please use DD.MM.YYYY:"
	invalidAmountMessage  = "Please enter a valid positive number:"
	invalidIDMessage      = "Please enter a valid positive ID number:"
	startAfterEndMessage  = "Start date must be before end date. Please try again."
	unknownEditIDMessage  = "Expense with this ID not found. Please try again."
	nothingToEditMessage  = "Nothing to change, the expense is left as it was."
	noExpensesMessage     = "No expenses found for this period."
	noExpensesToDelete    = "No expenses found to delete."
	noExpensesToEdit      = "No expenses found to edit."
	selectDeleteIDCaption = "Select ID of expense to delete:"
	selectEditIDCaption   = "Select ID of expense to edit:"

	addedMessage     = "✅ Expense added successfully!"
	deletedMessage   = "✅ Expense deleted successfully!"
	updatedMessage   = "✅ Expense updated successfully!"
	notFoundMessage  = "❌ Expense with ID %d not found."
	addFailedMessage = "❌ Failed to add expense. Please try again."
	delFailedMessage = "❌ Failed to delete expense. Please try again."
	updFailedMessage = "❌ Failed to update expense. Please try again."
	reportFailed     = "❌ Error generating report. Please try again."
	listFailed       = "❌ Error preparing expenses list. Please try again."
)

const (
	keyName          = "name"
	keyDate          = "date"
	keyReportStart   = "report_start"
	keyEditID        = "edit_id"
	keyEditName      = "edit_name"
	keyCurrentName   = "current_name"
	keyCurrentDate   = "current_date"
	keyCurrentAmount = "current_amount"
)

type handler func(ctx context.Context, sess *session.Session, msg Message) error

type handlerMap map[session.State]handler

func newHandlerMap(s *Service) handlerMap {
	return handlerMap{
		session.Menu:         s.handleMenu,
		session.AddName:      s.handleAddName,
		session.AddDate:      s.handleAddDate,
		session.AddAmount:    s.handleAddAmount,
		session.ReportStart:  s.handleReportStart,
		session.ReportEnd:    s.handleReportEnd,
		session.DeleteSelect: s.handleDeleteSelect,
		session.EditSelect:   s.handleEditSelect,
		session.EditName:     s.handleEditName,
		session.EditAmount:   s.handleEditAmount,
	}
}

func (s *Service) handleReset(_ context.Context, sess *session.Session, msg Message) error {
	sess.Reset()
	return s.tgClient.SendKeyboard(welcomeMessage, menuButtons, msg.UserID)
}

func (s *Service) handleMenu(ctx context.Context, sess *session.Session, msg Message) error {
	switch parseMenuCommand(msg.Text) {
	case commandAdd:
		sess.State = session.AddName
		return s.tgClient.SendMessage(enterNameMessage, msg.UserID)
	case commandReport:
		sess.State = session.ReportStart
		return s.tgClient.SendMessage(enterStartDateMessage, msg.UserID)
	case commandDelete:
		return s.showExpensesForSelection(ctx, sess, msg.UserID, session.DeleteSelect, selectDeleteIDCaption, noExpensesToDelete)
	case commandEdit:
		return s.showExpensesForSelection(ctx, sess, msg.UserID, session.EditSelect, selectEditIDCaption, noExpensesToEdit)
	}
	return s.tgClient.SendKeyboard(chooseMenuMessage, menuButtons, msg.UserID)
}

func (s *Service) handleAddName(_ context.Context, sess *session.Session, msg Message) error {
	name, reprompt := parseName(msg.Text)
	if reprompt != "" {
		return s.tgClient.SendMessage(reprompt, msg.UserID)
	}
	sess.Set(keyName, name)
	sess.State = session.AddDate
	return s.tgClient.SendMessage(enterDateMessage, msg.UserID)
}

func (s *Service) handleAddDate(_ context.Context, sess *session.Session, msg Message) error {
	date, ok := parseDate(msg.Text)
	if !ok {
		return s.tgClient.SendMessage(invalidDateMessage, msg.UserID)
	}
	sess.Set(keyDate, expense.FormatDate(date))
	sess.State = session.AddAmount
	return s.tgClient.SendMessage(enterAmountMessage, msg.UserID)
}

func (s *Service) handleAddAmount(ctx context.Context, sess *session.Session, msg Message) error {
	amount, ok := parseAmount(msg.Text)
	if !ok {
		return s.tgClient.SendMessage(invalidAmountMessage, msg.UserID)
	}
	name, _ := sess.Get(keyName)
	rawDate, _ := sess.Get(keyDate)
	date, ok := parseDate(rawDate)
	if !ok {
		logger.Error("session lost the expense date", zap.Int64("userID", msg.UserID))
		return s.finish(sess, msg.UserID, addFailedMessage)
	}

	rec, err := s.ledger.Add(ctx, expense.Draft{Name: name, Date: date, AmountLocal: amount})
	if err != nil {
		logger.Error("cannot add expense", zap.Int64("userID", msg.UserID), zap.Error(err))
		return s.finish(sess, msg.UserID, addFailedMessage)
	}
	logger.Info("expense added from chat", zap.Int64("userID", msg.UserID), zap.Int64("id", rec.ID))
	return s.finish(sess, msg.UserID, addedMessage)
}

func (s *Service) handleReportStart(_ context.Context, sess *session.Session, msg Message) error {
	date, ok := parseDate(msg.Text)
	if !ok {
		return s.tgClient.SendMessage(invalidDateMessage, msg.UserID)
	}
	sess.Set(keyReportStart, expense.FormatDate(date))
	sess.State = session.ReportEnd
	return s.tgClient.SendMessage(enterEndDateMessage, msg.UserID)
}

func (s *Service) handleReportEnd(ctx context.Context, sess *session.Session, msg Message) error {
	end, ok := parseDate(msg.Text)
	if !ok {
		return s.tgClient.SendMessage(invalidDateMessage, msg.UserID)
	}
	rawStart, _ := sess.Get(keyReportStart)
	start, ok := parseDate(rawStart)
	if !ok {
		logger.Error("session lost the report start date", zap.Int64("userID", msg.UserID))
		return s.finish(sess, msg.UserID, reportFailed)
	}
	if start.After(end) {
		return s.tgClient.SendMessage(startAfterEndMessage, msg.UserID)
	}

	exps, err := s.ledger.List(ctx, expense.Range{From: start, To: end})
	if err != nil {
		logger.Error("cannot list expenses", zap.Int64("userID", msg.UserID), zap.Error(err))
		return s.finish(sess, msg.UserID, reportFailed)
	}
	if len(exps) == 0 {
		return s.finish(sess, msg.UserID, noExpensesMessage)
	}

	report, err := s.exporter.Export(exps)
	if err != nil {
		logger.Error("cannot export expenses", zap.Int64("userID", msg.UserID), zap.Error(err))
		return s.finish(sess, msg.UserID, reportFailed)
	}
	s.archive(ctx, msg.UserID, report)

	err = s.tgClient.SendDocument(Document{
		Name:    report.FileName,
		Data:    report.Data,
		Caption: reportCaption(start, end, report),
	}, msg.UserID)
	sess.Reset()
	if err != nil {
		return err
	}
	return s.tgClient.SendKeyboard(welcomeMessage, menuButtons, msg.UserID)
}

// showExpensesForSelection sends every expense as a workbook so the user can pick an ID.
// The session stays in the menu when there is nothing to pick from.
func (s *Service) showExpensesForSelection(
	ctx context.Context,
	sess *session.Session,
	userID int64,
	next session.State,
	caption, emptyMessage string,
) error {
	exps, err := s.ledger.List(ctx, expense.Range{})
	if err != nil {
		logger.Error("cannot list expenses", zap.Int64("userID", userID), zap.Error(err))
		return s.finish(sess, userID, listFailed)
	}
	if len(exps) == 0 {
		return s.tgClient.SendMessage(emptyMessage, userID)
	}
	report, err := s.exporter.Export(exps)
	if err != nil {
		logger.Error("cannot export expenses", zap.Int64("userID", userID), zap.Error(err))
		return s.finish(sess, userID, listFailed)
	}

	sess.State = next
	return s.tgClient.SendDocument(Document{Name: report.FileName, Data: report.Data, Caption: caption}, userID)
}

func (s *Service) handleDeleteSelect(ctx context.Context, sess *session.Session, msg Message) error {
	id, ok := parseID(msg.Text)
	if !ok {
		return s.tgClient.SendMessage(invalidIDMessage, msg.UserID)
	}

	_, err := s.ledger.Delete(ctx, id)
	switch {
	case err == nil:
		return s.finish(sess, msg.UserID, deletedMessage)
	case customerr.IsNotFound(err):
		return s.finish(sess, msg.UserID, fmt.Sprintf(notFoundMessage, id))
	}
	logger.Error("cannot delete expense", zap.Int64("userID", msg.UserID), zap.Int64("id", id), zap.Error(err))
	return s.finish(sess, msg.UserID, delFailedMessage)
}

func (s *Service) handleEditSelect(ctx context.Context, sess *session.Session, msg Message) error {
	id, ok := parseID(msg.Text)
	if !ok {
		return s.tgClient.SendMessage(invalidIDMessage, msg.UserID)
	}

	exps, err := s.ledger.List(ctx, expense.Range{})
	if err != nil {
		logger.Error("cannot list expenses", zap.Int64("userID", msg.UserID), zap.Error(err))
		return s.finish(sess, msg.UserID, updFailedMessage)
	}
	current, found := findExpense(exps, id)
	if !found {
		return s.tgClient.SendMessage(unknownEditIDMessage, msg.UserID)
	}

	sess.Set(keyEditID, strconv.FormatInt(id, 10))
	sess.Set(keyCurrentName, current.Name)
	sess.Set(keyCurrentDate, expense.FormatDate(current.Date))
	sess.Set(keyCurrentAmount, current.AmountLocal.String())
	sess.State = session.EditName
	return s.tgClient.SendMessage(currentExpenseInfo(current), msg.UserID)
}

func (s *Service) handleEditName(_ context.Context, sess *session.Session, msg Message) error {
	if !isSkip(msg.Text) {
		name, reprompt := parseName(msg.Text)
		if reprompt != "" {
			return s.tgClient.SendMessage(reprompt, msg.UserID)
		}
		sess.Set(keyEditName, name)
	}
	sess.State = session.EditAmount
	return s.tgClient.SendMessage(enterNewAmountMessage, msg.UserID)
}

func (s *Service) handleEditAmount(ctx context.Context, sess *session.Session, msg Message) error {
	var patch expense.Patch
	if !isSkip(msg.Text) {
		amount, ok := parseAmount(msg.Text)
		if !ok {
			return s.tgClient.SendMessage(invalidAmountMessage, msg.UserID)
		}
		if current, _ := sess.Get(keyCurrentAmount); !decimalEquals(current, amount) {
			patch.AmountLocal = optional.Of(amount)
		}
	}
	if name, ok := sess.Get(keyEditName); ok {
		if current, _ := sess.Get(keyCurrentName); name != current {
			patch.Name = optional.Of(name)
		}
	}

	rawID, _ := sess.Get(keyEditID)
	id, ok := parseID(rawID)
	if !ok {
		logger.Error("session lost the expense id", zap.Int64("userID", msg.UserID))
		return s.finish(sess, msg.UserID, updFailedMessage)
	}
	if patch.IsEmpty() {
		return s.finish(sess, msg.UserID, nothingToEditMessage)
	}

	_, err := s.ledger.Update(ctx, id, patch)
	switch {
	case err == nil:
		return s.finish(sess, msg.UserID, updatedMessage)
	case customerr.IsNotFound(err):
		return s.finish(sess, msg.UserID, fmt.Sprintf(notFoundMessage, id))
	}
	logger.Error("cannot update expense", zap.Int64("userID", msg.UserID), zap.Int64("id", id), zap.Error(err))
	return s.finish(sess, msg.UserID, updFailedMessage)
}

// finish ends a flow: the session goes back to the menu with empty scratch whatever the outcome.
func (s *Service) finish(sess *session.Session, userID int64, text string) error {
	sess.Reset()
	if err := s.tgClient.SendMessage(text, userID); err != nil {
		return err
	}
	return s.tgClient.SendKeyboard(welcomeMessage, menuButtons, userID)
}

func (s *Service) archive(ctx context.Context, userID int64, report reports.Report) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, userID, report); err != nil {
		logger.Error("cannot archive report", zap.Int64("userID", userID), zap.Error(err))
	}
}
