package api

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hakimelghazi/orderstats/internal/emails"
	"github.com/hakimelghazi/orderstats/internal/orders"
)

const maxBodyBytes = 1 << 20

type averageResponse struct {
	Average   float64 `json:"average"`
	Total     int     `json:"total"`
	Eligible  int     `json:"eligible"`
	Cancelled int     `json:"cancelled"`
	// set only when the caller asks for ?exact=true
	ExactAverage *decimal.Decimal `json:"exact_average,omitempty"`
}

type emailCountResponse struct {
	Count int `json:"count"`
	Total int `json:"total"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /orders/average
func (s *Server) handleAverage(w http.ResponseWriter, r *http.Request) {
	exact, ok := exactParam(w, r)
	if !ok {
		return
	}

	var recs []map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := decodeBody(dec, &recs); err != nil {
		writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	list, err := orders.DecodeOrders(recs)
	if err != nil {
		writeProblem(w, r, http.StatusBadRequest, "invalid_order", err.Error())
		return
	}
	s.writeSummary(w, r, list, exact)
}

// POST /emails/count
func (s *Server) handleCountEmails(w http.ResponseWriter, r *http.Request) {
	var candidates []any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decodeBody(dec, &candidates); err != nil {
		writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, emailCountResponse{
		Count: emails.ValidEmailCounter(candidates),
		Total: len(candidates),
	})
}

// GET /users/{id}/average-order-value
func (s *Server) handleUserAverage(w http.ResponseWriter, r *http.Request) {
	exact, ok := exactParam(w, r)
	if !ok {
		return
	}
	if s.store == nil {
		writeProblem(w, r, http.StatusServiceUnavailable, "store_unavailable", "no order store configured")
		return
	}

	userID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(userID); err != nil {
		writeProblem(w, r, http.StatusBadRequest, "validation_error", "id must be a valid uuid")
		return
	}

	list, err := s.store.ListByUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("list orders failed", zap.String("user_id", userID), zap.Error(err))
		writeProblem(w, r, http.StatusInternalServerError, "db_error", "could not load orders")
		return
	}
	s.writeSummary(w, r, list, exact)
}

func (s *Server) writeSummary(w http.ResponseWriter, r *http.Request, list []orders.Order, exact bool) {
	sum, err := orders.Summarize(list)
	switch {
	case errors.Is(err, orders.ErrEmptyInput):
		writeProblem(w, r, http.StatusUnprocessableEntity, "empty_input", err.Error())
		return
	case errors.Is(err, orders.ErrNoEligibleRecords):
		writeProblem(w, r, http.StatusUnprocessableEntity, "no_eligible_orders", err.Error())
		return
	case err != nil:
		writeProblem(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	// finite amounts can still sum past the float64 range
	if math.IsInf(sum.Average, 0) || math.IsNaN(sum.Average) {
		writeProblem(w, r, http.StatusUnprocessableEntity, "average_out_of_range", "order amounts overflow a float64 average")
		return
	}

	resp := averageResponse{
		Average:   sum.Average,
		Total:     sum.Total,
		Eligible:  sum.Eligible,
		Cancelled: sum.Cancelled,
	}
	if exact {
		avg, err := orders.AverageOrderValueDecimal(list)
		if err != nil {
			writeProblem(w, r, http.StatusUnprocessableEntity, "invalid_order", err.Error())
			return
		}
		resp.ExactAverage = &avg
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// decodeBody decodes exactly one JSON value and rejects anything after it.
func decodeBody(dec *json.Decoder, v any) error {
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must hold a single JSON value")
	}
	return nil
}

func exactParam(w http.ResponseWriter, r *http.Request) (bool, bool) {
	raw := r.URL.Query().Get("exact")
	if raw == "" {
		return false, true
	}
	exact, err := strconv.ParseBool(raw)
	if err != nil {
		writeProblem(w, r, http.StatusBadRequest, "validation_error", "exact must be a boolean")
		return false, false
	}
	return exact, true
}
