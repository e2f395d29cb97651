package messages

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/reports"
)

type command int

const (
	commandUnknown command = iota
	commandAdd
	commandReport
	commandDelete
	commandEdit
)

var menuButtons = []string{
	"💵 Add Expense",
	"📈 Get Report",
	"🗑 Delete Expense",
	"✏️ Edit Expense",
}

var menuCommands = map[string]command{
	"add expense":    commandAdd,
	"/add":           commandAdd,
	"get report":     commandReport,
	"/report":        commandReport,
	"delete expense": commandDelete,
	"/delete":        commandDelete,
	"edit expense":   commandEdit,
	"/edit":          commandEdit,
}

var resetCommands = map[string]struct{}{
	"/start":  {},
	"/menu":   {},
	"/cancel": {},
}

var skipSentinels = map[string]struct{}{
	"-":    {},
	"skip": {},
}

var amountPattern = regexp.MustCompile(`^\d+([.,]\d{1,2})?$`)

// parseMenuCommand accepts the keyboard labels with or without their emoji, in any case.
func parseMenuCommand(text string) command {
	text = strings.TrimLeftFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '/'
	})
	return menuCommands[strings.ToLower(strings.TrimSpace(text))]
}

func isResetCommand(text string) bool {
	cmd := strings.ToLower(strings.TrimSpace(text))
	// commands in group chats may carry the bot name: /start@expense_bot
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	_, ok := resetCommands[cmd]
	return ok
}

func isSkip(text string) bool {
	_, ok := skipSentinels[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// parseName returns the name or the re-prompt to send.
func parseName(text string) (name, reprompt string) {
	name = strings.TrimSpace(text)
	if name == "" {
		return "", nameEmptyMessage
	}
	if expense.NameLength(name) > expense.MaxNameLength {
		return "", nameTooLongMessage
	}
	return name, ""
}

func parseDate(text string) (time.Time, bool) {
	date, err := expense.ParseDate(strings.TrimSpace(text))
	return date, err == nil
}

// parseAmount accepts a strictly positive plain number with up to two decimals,
// a comma or a dot as the decimal separator.
func parseAmount(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	if !amountPattern.MatchString(text) {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
	if err != nil || expense.CheckAmount(amount) != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}

func parseID(text string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decimalEquals(raw string, amount decimal.Decimal) bool {
	current, err := decimal.NewFromString(raw)
	return err == nil && current.Equal(amount)
}

func findExpense(exps []expense.Expense, id int64) (expense.Expense, bool) {
	for _, e := range exps {
		if e.ID == id {
			return e, true
		}
	}
	return expense.Expense{}, false
}

func currentExpenseInfo(e expense.Expense) string {
	return fmt.Sprintf("Current expense info:\n"+
		"📌 Name: %s\n"+
		"📅 Date: %s\n"+
		"💵 Amount: %s UAH\n\n"+
		"Enter new name (or send '-' to keep current):",
		e.Name, expense.FormatDate(e.Date), e.AmountLocal.StringFixed(2))
}

func reportCaption(start, end time.Time, report reports.Report) string {
	return fmt.Sprintf("📊 Expense report from %s to %s\n💵 Total: %s UAH (%s USD)",
		expense.FormatDate(start), expense.FormatDate(end),
		report.TotalLocal.StringFixed(2), report.TotalReference.StringFixed(2))
}
