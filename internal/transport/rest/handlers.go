package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/api/pb"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type detail struct {
	Detail string `json:"detail"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req pb.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail{Detail: "malformed request body"})
		return
	}
	draft, err := req.ToDraft()
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.ledger.Add(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.FromExpense(rec))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	exps, err := s.query.List(r.Context(), rng)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.FromExpenses(exps))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	exps, err := s.query.List(r.Context(), rng)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(exps) == 0 {
		writeJSON(w, http.StatusNotFound, detail{Detail: "No expenses found for this period."})
		return
	}
	report, err := s.exporter.Export(exps)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	w.Header().Set("X-Total-UAH", report.TotalLocal.StringFixed(2))
	w.Header().Set("X-Total-USD", report.TotalReference.StringFixed(2))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(report.Data); err != nil {
		logger.Error("failed to write report", zap.Error(err))
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	rec, err := s.ledger.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.FromExpense(rec))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req pb.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail{Detail: "malformed request body"})
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.ledger.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.FromExpense(rec))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := s.ledger.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail{Detail: "id must be an integer"})
		return 0, false
	}
	return id, true
}

func rangeFromQuery(r *http.Request) (expense.Range, error) {
	req := pb.ListExpensesRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	return req.ToRange()
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case customerr.IsValidation(err):
		writeJSON(w, http.StatusUnprocessableEntity, detail{Detail: validationMessage(err)})
	case customerr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, detail{Detail: "Expense not found"})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, detail{Detail: "Internal server error"})
	}
}

func validationMessage(err error) string {
	var vErr *customerr.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
