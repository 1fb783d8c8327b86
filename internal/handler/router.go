package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/boostmarket/internal/middleware"
	"github.com/mmeshcher/boostmarket/internal/model"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса boostmarket.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Get("/ping", h.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Post("/payments/webhook", h.PaymentWebhook)

		r.Group(func(r chi.Router) {
			r.Use(h.tokens.Authenticate)

			r.Post("/quote", h.Quote)
			r.Post("/checkout", h.Checkout)

			r.Route("/orders", func(r chi.Router) {
				r.Use(custommiddleware.RequireAuth)

				r.Get("/", h.ListOrders)
				r.With(custommiddleware.RequireRole(model.RoleBooster, model.RoleAdmin)).Get("/available", h.AvailableOrders)
				r.Get("/{id}", h.GetOrder)
				r.Get("/{id}/messages", h.ListMessages)
				r.Get("/{id}/ws", h.ChatSocket)
				r.With(custommiddleware.RequireRole(model.RoleClient)).Post("/{id}/attach", h.AttachOrder)
				r.With(custommiddleware.RequireRole(model.RoleBooster)).Post("/{id}/claim", h.ClaimOrder)
				r.With(custommiddleware.RequireRole(model.RoleBooster)).Post("/{id}/proof", h.SubmitProof)
				r.With(custommiddleware.RequireRole(model.RoleClient, model.RoleAdmin)).Post("/{id}/cancel", h.CancelOrder)
			})

			r.Route("/booster", func(r chi.Router) {
				r.Use(custommiddleware.RequireRole(model.RoleBooster))

				r.Get("/me", h.MyBooster)
				r.Get("/wallet", h.MyWallet)
				r.Get("/withdrawals", h.ListWithdrawals)
				r.Post("/withdrawals", h.RequestWithdrawal)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(custommiddleware.RequireRole(model.RoleAdmin))

				r.Post("/orders/{id}/release", h.ReleaseOrder)
				r.Post("/orders/{id}/assign", h.AssignOrder)
				r.Post("/orders/{id}/review", h.ReviewOrder)
				r.Post("/orders/{id}/status", h.ForceStatus)

				r.Post("/boosters", h.CreateBooster)
				r.Put("/boosters/{id}", h.UpdateBooster)
				r.Post("/boosters/{id}/active", h.SetBoosterActive)
				r.Get("/boosters/{id}/wallet", h.BoosterWallet)

				r.Get("/withdrawals", h.ListWithdrawals)
				r.Post("/withdrawals/{id}/decide", h.DecideWithdrawal)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
