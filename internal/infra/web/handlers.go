package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
	"subsentry/internal/infra/logging"
	"subsentry/internal/usecase"
)

// subscriptionResponse is the wire shape of one subscription. Amount stays a
// string: presentation rounding is the client's concern, totals are the only
// figures rounded server-side.
type subscriptionResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Cadence         string `json:"cadence"`
	StartDate       string `json:"start_date"`
	NextRenewalDate string `json:"next_renewal_date"`
	Status          string `json:"status"`
	Category        string `json:"category,omitempty"`
}

func toSubscriptionResponse(s *model.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:              s.ID,
		Name:            s.Name,
		Amount:          s.Amount.String(),
		Currency:        string(s.Currency),
		Cadence:         string(s.Cadence),
		StartDate:       s.StartDate.Format("2006-01-02"),
		NextRenewalDate: s.NextRenewalDate.Format("2006-01-02"),
		Status:          string(s.Status),
		Category:        s.Category,
	}
}

type subscriptionRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Cadence   string `json:"cadence"`
	StartDate string `json:"start_date"`
	Category  string `json:"category"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := logging.UserID(ctx)

	target := model.USD
	if q := r.URL.Query().Get("currency"); q != "" {
		cur, err := model.ParseCurrency(q)
		if err != nil {
			http.Error(w, "Unsupported currency", http.StatusBadRequest)
			return
		}
		target = cur
	}

	// "now" enters the engine exactly once, here at the edge.
	summary, err := s.dashUC.Summary(ctx, userID, target, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("dashboard summary failed")
		http.Error(w, "Failed to compute dashboard", http.StatusInternalServerError)
		return
	}

	upcoming := make([]struct {
		subscriptionResponse
		DaysUntilRenewal int `json:"days_until_renewal"`
	}, 0, len(summary.UpcomingRenewals))
	for i := range summary.UpcomingRenewals {
		u := &summary.UpcomingRenewals[i]
		upcoming = append(upcoming, struct {
			subscriptionResponse
			DaysUntilRenewal int `json:"days_until_renewal"`
		}{toSubscriptionResponse(&u.Subscription), u.DaysUntil})
	}

	response := struct {
		TotalMonthlySpend   string      `json:"total_monthly_spend"`
		TotalYearlySpend    string      `json:"total_yearly_spend"`
		Currency            string      `json:"currency"`
		ActiveSubscriptions int         `json:"active_subscriptions"`
		UpcomingRenewals    interface{} `json:"upcoming_renewals"`
	}{
		TotalMonthlySpend:   summary.TotalMonthly.StringFixed(2),
		TotalYearlySpend:    summary.TotalYearly.StringFixed(2),
		Currency:            string(summary.Currency),
		ActiveSubscriptions: summary.ActiveCount,
		UpcomingRenewals:    upcoming,
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subs, err := s.subUC.List(ctx, logging.UserID(ctx))
	if err != nil {
		http.Error(w, "Failed to list subscriptions", http.StatusInternalServerError)
		return
	}

	out := make([]subscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, toSubscriptionResponse(&subs[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		Data  []subscriptionResponse `json:"data"`
		Total int                    `json:"total"`
	}{out, len(out)})
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := s.subUC.Create(ctx, logging.UserID(ctx), usecase.SubscriptionInput{
		Name:      req.Name,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Cadence:   req.Cadence,
		StartDate: req.StartDate,
		Category:  req.Category,
	}, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubscriptionResponse(sub))
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, err := s.subUC.Get(ctx, logging.UserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
}

func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := s.subUC.Update(ctx, logging.UserID(ctx), chi.URLParam(r, "id"), usecase.SubscriptionInput{
		Name:      req.Name,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Cadence:   req.Cadence,
		StartDate: req.StartDate,
		Category:  req.Category,
	}, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
}

func (s *Server) handleSetSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	sub, err := s.subUC.SetStatus(ctx, logging.UserID(ctx), chi.URLParam(r, "id"), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.subUC.Delete(ctx, logging.UserID(ctx), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidCadence),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
