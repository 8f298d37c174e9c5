package entitlements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthhq/hearthkit/pkg/billing"
	"github.com/hearthhq/hearthkit/pkg/entitlement"
	"github.com/hearthhq/hearthkit/pkg/platform"
)

// CheckoutAPI creates hosted web checkout sessions. billing.CheckoutClient
// implements it.
type CheckoutAPI interface {
	CreateSession(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutSession, error)
}

// billingStatusResponse is the wire shape of a household billing answer.
type billingStatusResponse struct {
	HasPremium  bool              `json:"has_premium"`
	Provider    string            `json:"provider,omitempty"`
	PremiumUser *premiumUserBody  `json:"premium_user,omitempty"`
	Household   *householdRefBody `json:"household,omitempty"`
}

type premiumUserBody struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name,omitempty"`
	Provider string    `json:"provider,omitempty"`
}

type householdRefBody struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

func billingStatusBody(status entitlement.HouseholdBillingStatus) billingStatusResponse {
	body := billingStatusResponse{
		HasPremium: status.HasPremium,
		Provider:   string(status.Provider),
	}
	if status.PremiumUser != nil {
		body.PremiumUser = &premiumUserBody{
			ID:       status.PremiumUser.ID,
			Name:     status.PremiumUser.Name,
			Provider: string(status.PremiumUser.Provider),
		}
	}
	if status.Household != nil {
		body.Household = &householdRefBody{
			ID:   status.Household.ID,
			Name: status.Household.Name,
		}
	}
	return body
}

type verifyPurchaseRequest struct {
	HouseholdID uuid.UUID `json:"household_id"`
	UserID      uuid.UUID `json:"user_id"`
	AppUserID   string    `json:"app_user_id"`
	UserName    string    `json:"user_name,omitempty"`
}

// Router mounts the entitlement HTTP surface:
//
//	GET  /households/{householdID}/billing-status
//	POST /purchases/verify
//	POST /checkout
//
// Every route runs behind the platform middleware so the client platform
// header is available downstream; the checkout client uses it to reject
// web checkout attempts from native apps.
func Router(svc *Service, checkout CheckoutAPI) chi.Router {
	r := chi.NewRouter()
	r.Use(platform.Middleware())

	r.Get("/households/{householdID}/billing-status", handleBillingStatus(svc))
	r.Post("/purchases/verify", handleVerifyPurchase(svc))
	if checkout != nil {
		r.Post("/checkout", handleCheckout(checkout))
	}

	return r
}

func handleBillingStatus(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_household_id", "household id must be a UUID")
			return
		}

		status, err := svc.BillingStatus(r.Context(), householdID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "billing_status_failed", "could not resolve billing status")
			return
		}
		respondJSON(w, http.StatusOK, billingStatusBody(status))
	}
}

func handleVerifyPurchase(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyPurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
			return
		}
		if req.HouseholdID == uuid.Nil || req.UserID == uuid.Nil || req.AppUserID == "" {
			respondError(w, http.StatusBadRequest, "missing_fields", "household_id, user_id and app_user_id are required")
			return
		}

		status, err := svc.VerifyPurchase(r.Context(), req.HouseholdID, req.UserID, req.AppUserID, req.UserName)
		switch {
		case errors.Is(err, ErrNoActiveEntitlement):
			respondError(w, http.StatusConflict, "no_active_entitlement", "the purchase could not be confirmed; retry or contact support")
		case errors.Is(err, billing.ErrSubscriberNotFound):
			respondError(w, http.StatusConflict, "no_active_entitlement", "the purchase could not be confirmed; retry or contact support")
		case err != nil:
			respondError(w, http.StatusBadGateway, "verification_failed", "purchase verification is temporarily unavailable")
		default:
			respondJSON(w, http.StatusOK, billingStatusBody(status))
		}
	}
}

func handleCheckout(checkout CheckoutAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req billing.CheckoutRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
				return
			}
		}

		session, err := checkout.CreateSession(r.Context(), req)
		switch {
		case errors.Is(err, billing.ErrCheckoutUnavailableOnMobile):
			respondError(w, http.StatusForbidden, "checkout_unavailable_on_mobile", "native apps purchase through the app store, not web checkout")
		case err != nil:
			respondError(w, http.StatusBadGateway, "checkout_failed", "could not create a checkout session")
		default:
			respondJSON(w, http.StatusOK, session)
		}
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}
