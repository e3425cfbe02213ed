package http

import (
	"errors"
	"net/http"
	"time"

	"saldo/internal/core"
	"saldo/internal/log"
	"saldo/internal/persistence"
	"saldo/internal/view"
)

type transactionJSON struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
	Type        core.Type  `json:"type"`
	Category    string     `json:"category"`
	Date        time.Time  `json:"date"`
}

type listResponse struct {
	Filter       view.Filter       `json:"filter"`
	Transactions []transactionJSON `json:"transactions"`
	Persistence  string            `json:"persistence,omitempty"`
}

type createResponse struct {
	Transaction transactionJSON `json:"transaction"`
	Persistence string          `json:"persistence,omitempty"`
}

type deleteResponse struct {
	Deleted     bool   `json:"deleted"`
	Persistence string `json:"persistence,omitempty"`
}

type summaryResponse struct {
	Income   core.Money `json:"income"`
	Expenses core.Money `json:"expenses"`
	Balance  core.Money `json:"balance"`
	Count    int        `json:"count"`
}

type categoriesResponse struct {
	Type       core.Type       `json:"type"`
	Categories []core.Category `json:"categories"`
}

func toJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Category:    tx.Category.String(),
		Date:        tx.Date,
	}
}

// persistenceState is the value of the "persistence" field and header.
func persistenceState(err error) string {
	if err != nil {
		return PersistenceDegraded
	}
	return ""
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilterParam(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs := view.Apply(s.store.List(), f)
	out := make([]transactionJSON, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toJSON(tx))
	}

	resp := listResponse{Filter: f, Transactions: out, Persistence: persistenceState(s.store.PersistenceErr())}
	if resp.Persistence != "" {
		w.Header().Set(HeaderPersistence, resp.Persistence)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := s.store.Add(ctx, ParseNewTransaction(p))
	var saveErr error
	switch {
	case err == nil:
	case errors.Is(err, core.ErrValidation):
		writeJSONError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	case errors.Is(err, persistence.ErrUnavailable):
		saveErr = err
	default:
		logger.LogError(ctx, "Add transaction failed", err, log.OpAdd, nil)
		writeJSONError(w, http.StatusInternalServerError, "could not add the transaction")
		return
	}

	resp := createResponse{Transaction: toJSON(tx), Persistence: persistenceState(saveErr)}
	if resp.Persistence != "" {
		w.Header().Set(HeaderPersistence, resp.Persistence)
	}
	w.Header().Set("Location", "/api/transactions/"+tx.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAPIGet(w http.ResponseWriter, r *http.Request) {
	tx, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "transaction not found")
		return
	}
	resp := createResponse{Transaction: toJSON(tx), Persistence: persistenceState(s.store.PersistenceErr())}
	if resp.Persistence != "" {
		w.Header().Set(HeaderPersistence, resp.Persistence)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	deleted, err := s.store.Delete(ctx, id)
	var saveErr error
	if err != nil {
		if !errors.Is(err, persistence.ErrUnavailable) {
			log.FromContext(ctx).LogError(ctx, "Delete transaction failed", err, log.OpDelete, nil)
			writeJSONError(w, http.StatusInternalServerError, "could not delete the transaction")
			return
		}
		saveErr = err
	}

	resp := deleteResponse{Deleted: deleted, Persistence: persistenceState(saveErr)}
	if resp.Persistence != "" {
		w.Header().Set(HeaderPersistence, resp.Persistence)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPISummary(w http.ResponseWriter, _ *http.Request) {
	sum := view.Aggregate(s.store.List())
	writeJSON(w, http.StatusOK, summaryResponse{
		Income:   sum.Income,
		Expenses: sum.Expenses,
		Balance:  sum.Balance,
		Count:    sum.Count,
	})
}

func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	t, err := core.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Type: t, Categories: core.CategoriesFor(t)})
}
