package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"saldo/internal/core"
	"saldo/internal/log"
	"saldo/internal/persistence"
	"saldo/internal/view"
)

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports 503 while changes cannot be saved durably.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.store.PersistenceErr(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("persistence unavailable"))
		return
	}
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilterParam(r.URL.Query())
	if err != nil {
		f = view.All
	}
	body, err := s.render("index.html", s.page(f))
	if err != nil {
		s.renderFailed(w, r, err)
		return
	}
	NewHTMXResponse().BodyHTML(body).Write(w)
}

func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilterParam(r.URL.Query())
	if err != nil {
		BadRequestError("Unknown filter").Write(w)
		return
	}
	body, err := s.render("transactions", s.page(f))
	if err != nil {
		s.renderFailed(w, r, err)
		return
	}
	NewHTMXResponse().BodyHTML(body).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request").Write(w)
		return
	}

	tx, err := s.store.Add(ctx, ParseNewTransaction(p))
	degraded := false
	switch {
	case err == nil:
	case errors.Is(err, core.ErrValidation):
		logger.DebugContext(ctx, "Rejected transaction",
			log.NewFields().WithError(err).WithErrorType(log.ErrorTypeValidation).WithOperation(log.OpAdd).ToSlice()...)
		UnprocessableEntityError(validationMessage(err)).Write(w)
		return
	case errors.Is(err, persistence.ErrUnavailable):
		degraded = true
	default:
		logger.LogError(ctx, "Add transaction failed", err, log.OpAdd, nil)
		InternalServerError("Could not add the transaction").Write(w)
		return
	}

	if !isPartialRequest(r) {
		s.redirectHome(w, r)
		return
	}

	body, err := s.render("transactions", s.page(s.currentFilter(r)))
	if err != nil {
		s.renderFailed(w, r, err)
		return
	}
	resp := NewHTMXResponse().
		TriggerTransactionCreated(tx.ID, tx.Type.String()).
		TriggerFormReset().
		TriggerSuccessNotification("Transaction added")
	if degraded {
		resp.PersistenceUnavailable()
	}
	resp.BodyHTML(body).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)
	id := r.PathValue("id")

	deleted, err := s.store.Delete(ctx, id)
	degraded := false
	if err != nil {
		if !errors.Is(err, persistence.ErrUnavailable) {
			logger.LogError(ctx, "Delete transaction failed", err, log.OpDelete, nil)
			InternalServerError("Could not delete the transaction").Write(w)
			return
		}
		degraded = true
	}
	if !isPartialRequest(r) {
		s.redirectHome(w, r)
		return
	}

	body, err := s.render("transactions", s.page(s.currentFilter(r)))
	if err != nil {
		s.renderFailed(w, r, err)
		return
	}
	resp := NewHTMXResponse()
	if deleted {
		resp.TriggerTransactionDeleted(id).TriggerSuccessNotification("Transaction deleted")
	}
	if degraded {
		resp.PersistenceUnavailable()
	}
	resp.BodyHTML(body).Write(w)
}

// page builds the view model from a fresh snapshot.
func (s *Server) page(f view.Filter) view.Page {
	p := view.BuildPage(s.store.List(), f, s.formatter)
	p.PersistenceDown = s.store.PersistenceErr() != nil
	return p
}

func (s *Server) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	log.FromContext(r.Context()).WithComponent(log.ComponentTemplate).
		LogError(r.Context(), "Template rendering failed", err, log.OpRender, nil)
	InternalServerError("Could not render the page").Write(w)
}

// currentFilter keeps the active list filter across mutations; an unknown
// value falls back to all.
func (s *Server) currentFilter(r *http.Request) view.Filter {
	f, err := ParseFilterParam(r.URL.Query())
	if err != nil {
		return view.All
	}
	return f
}

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if f := s.currentFilter(r); f != view.All {
		target += "?" + url.Values{"filter": {f.String()}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
