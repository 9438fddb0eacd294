package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/domain/email"
)

func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendEmail")
	defer span.End()

	var req sendEmailRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.emailService.Send(ctx, email.Message{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
		From:    req.From,
	})
	if err != nil {
		h.fail(ctx, w, "send email failed", err, "recipients", len(req.To))
		return
	}
	// Mail callers read success and messageId at the top level; only
	// failures use the envelope.
	writeJSON(w, http.StatusOK, sendEmailResponse{Success: result.Success, MessageID: result.MessageID})
}
