package handler

import (
	"net/http"
	"strconv"

	"github.com/mmeshcher/boostmarket/internal/middleware"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/mmeshcher/boostmarket/internal/service"
)

// MyBooster возвращает профиль вызывающего бустера.
func (h *Handler) MyBooster(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.MyBooster(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

// MyWallet возвращает баланс вызывающего бустера.
func (h *Handler) MyWallet(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.MyWallet(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}

// BoosterWallet возвращает баланс бустера для администратора.
func (h *Handler) BoosterWallet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid booster id")
		return
	}

	st, err := h.service.Wallet(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}

// CreateBooster создаёт профиль бустера.
func (h *Handler) CreateBooster(w http.ResponseWriter, r *http.Request) {
	var nb service.NewBooster
	if err := decodeJSON(r, &nb); err != nil {
		h.badRequest(w, "invalid booster body")
		return
	}

	b, err := h.service.CreateBooster(r.Context(), middleware.GetActor(r.Context()), nb)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, b)
}

// UpdateBooster обновляет статистику профиля бустера.
func (h *Handler) UpdateBooster(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid booster id")
		return
	}

	var stats model.BoosterStats
	if err := decodeJSON(r, &stats); err != nil {
		h.badRequest(w, "invalid booster body")
		return
	}

	b, err := h.service.UpdateBooster(r.Context(), middleware.GetActor(r.Context()), id, stats)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

type activeRequest struct {
	Active *bool `json:"active"`
}

// SetBoosterActive включает или выключает профиль бустера.
func (h *Handler) SetBoosterActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid booster id")
		return
	}

	var req activeRequest
	if err := decodeJSON(r, &req); err != nil || req.Active == nil {
		h.badRequest(w, "active flag is required")
		return
	}

	b, err := h.service.SetBoosterActive(r.Context(), middleware.GetActor(r.Context()), id, *req.Active)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

// RequestWithdrawal создаёт заявку бустера на вывод.
func (h *Handler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req service.WithdrawalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "invalid withdrawal body")
		return
	}

	wd, err := h.service.RequestWithdrawal(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, wd)
}

// ListWithdrawals возвращает заявки на вывод: бустеру свои, администратору с фильтром
// ?status=, ?booster_id= и ?limit=.
func (h *Handler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r)
	if !ok {
		h.badRequest(w, "invalid limit")
		return
	}

	q := r.URL.Query()
	f := model.WithdrawalFilter{
		Status: model.WithdrawalStatus(q.Get("status")),
		Limit:  limit,
	}
	if raw := q.Get("booster_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.badRequest(w, "invalid booster id")
			return
		}
		f.BoosterID = &id
	}

	list, err := h.service.ListWithdrawals(r.Context(), middleware.GetActor(r.Context()), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if len(list) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// DecideWithdrawal одобряет или отклоняет заявку на вывод.
func (h *Handler) DecideWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid withdrawal id")
		return
	}

	var d service.WithdrawalDecision
	if err := decodeJSON(r, &d); err != nil {
		h.badRequest(w, "invalid decision body")
		return
	}

	wd, err := h.service.DecideWithdrawal(r.Context(), middleware.GetActor(r.Context()), id, d)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wd)
}
