package httpapi

import "net/http"

func (h *Handler) RunLockWeeksJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLockWeeksJob")
	defer span.End()

	locked, err := h.weekService.LockExpired(ctx)
	if err != nil {
		h.fail(ctx, w, "lock weeks job failed", err, "locked", len(locked))
		return
	}
	now := h.now()
	items := make([]weekSettingsDTO, 0, len(locked))
	for _, s := range locked {
		items = append(items, weekSettingsToDTO(s, now))
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"locked": items})
}

func (h *Handler) RunSendRemindersJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSendRemindersJob")
	defer span.End()

	summary, err := h.reminderService.SendDeadlineReminders(ctx)
	if err != nil {
		h.fail(ctx, w, "send reminders job failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"weeks":  summary.Weeks,
		"sent":   summary.Sent,
		"failed": summary.Failed,
	})
}
