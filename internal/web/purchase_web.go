package web

import (
	"net/http"

	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type purchaseFormData struct {
	Session *response.SessionResponse
	Film    *response.FilmResponse
}

func (h *Handler) purchaseFormData(r *http.Request, sessionID string) (purchaseFormData, error) {
	var data purchaseFormData

	session, err := h.service.Session.GetByID(r.Context(), sessionID)
	if err != nil {
		return data, err
	}
	data.Session = session

	film, err := h.service.Film.GetByID(r.Context(), session.FilmID)
	if err == nil {
		data.Film = film
	}

	return data, nil
}

// CreatePurchasePage handles GET /create_purchase/{session_id}
func (h *Handler) CreatePurchasePage(w http.ResponseWriter, r *http.Request) {
	data, err := h.purchaseFormData(r, chi.URLParam(r, "session_id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.render(w, r, "create_purchase.html", data, "")
}

// CreatePurchase handles POST /create_purchase/{session_id}
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	v := viewerFromContext(r)

	buyerID, err := uuid.Parse(v.UserID)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	sessionID := chi.URLParam(r, "session_id")

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	req := request.CreatePurchaseRequest{
		Amount: utils.ParseInt(r.PostFormValue("amount"), 0),
	}

	if _, err := h.service.Purchase.Create(r.Context(), sessionID, buyerID, &req); err != nil {
		h.log.Warn("Web purchase failed",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("buyer_id", v.UserID))
		data, pageErr := h.purchaseFormData(r, sessionID)
		if pageErr != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		h.render(w, r, "create_purchase.html", data, err.Error())
		return
	}

	http.Redirect(w, r, "/cart", http.StatusFound)
}

type cartData struct {
	Purchases []response.PurchaseResponse
}

// Cart handles GET /cart, the caller's purchased tickets.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	v := viewerFromContext(r)

	buyerID, err := uuid.Parse(v.UserID)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	purchases, err := h.service.Purchase.ListByBuyer(r.Context(), buyerID)
	if err != nil {
		h.log.Error("Failed to load cart", zap.Error(err), zap.String("buyer_id", v.UserID))
		h.render(w, r, "cart.html", cartData{}, "Could not load your tickets.")
		return
	}

	h.render(w, r, "cart.html", cartData{Purchases: purchases}, "")
}
