package httpapi

import "net/http"

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	member, err := currentMember(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userToDTO(member))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMe")
	defer span.End()

	member, err := currentMember(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req profileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	updated, err := h.userService.UpdateDisplayName(ctx, member.ID, req.DisplayName)
	if err != nil {
		h.fail(ctx, w, "update profile failed", err, "user_id", member.ID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userToDTO(updated))
}

func (h *Handler) LinkPaymentEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LinkPaymentEmail")
	defer span.End()

	member, err := currentMember(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req paymentEmailRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	updated, err := h.userService.LinkPaymentEmail(ctx, member.ID, req.PaymentEmail)
	if err != nil {
		h.fail(ctx, w, "link payment email failed", err, "user_id", member.ID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userToDTO(updated))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	users, err := h.userService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list users failed", err)
		return
	}
	items := make([]userDTO, 0, len(users))
	for _, u := range users {
		items = append(items, userToDTO(u))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAdmin")
	defer span.End()

	member, err := currentMember(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req setAdminRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	updated, err := h.userService.SetAdmin(ctx, member.ID, r.PathValue("userID"), *req.IsAdmin)
	if err != nil {
		h.fail(ctx, w, "set admin failed", err, "actor_id", member.ID, "user_id", r.PathValue("userID"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userToDTO(updated))
}
