package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	member, participant, err := memberParticipant(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := queryInt(r, "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.pickService.ListPicks(ctx, participant, season, week)
	if err != nil {
		h.fail(ctx, w, "list picks failed", err, "user_id", member.ID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, picksToDTO(picks))
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	member, participant, err := memberParticipant(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req pickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.pickService.SubmitPick(ctx, usecase.SubmitPickInput{
		Participant:  participant,
		GameID:       req.GameID,
		SelectedTeam: req.SelectedTeam,
		IsLock:       req.IsLock,
	})
	if err != nil {
		h.fail(ctx, w, "submit pick failed", err, "user_id", member.ID, "game_id", req.GameID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, pickToDTO(p))
}

func (h *Handler) UpdatePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePick")
	defer span.End()

	member, participant, err := memberParticipant(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req updatePickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pickID := r.PathValue("pickID")
	p, err := h.pickService.UpdatePick(ctx, usecase.UpdatePickInput{
		Participant:  participant,
		PickID:       pickID,
		GameID:       req.GameID,
		SelectedTeam: req.SelectedTeam,
		IsLock:       req.IsLock,
	})
	if err != nil {
		h.fail(ctx, w, "update pick failed", err, "user_id", member.ID, "pick_id", pickID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, pickToDTO(p))
}

func (h *Handler) DeletePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePick")
	defer span.End()

	member, participant, err := memberParticipant(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	pickID := r.PathValue("pickID")
	if err := h.pickService.DeletePick(ctx, participant, pickID); err != nil {
		h.fail(ctx, w, "delete pick failed", err, "user_id", member.ID, "pick_id", pickID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) SubmitAnonymousPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitAnonymousPicks")
	defer span.End()

	var req anonymousPicksRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.AnonymousPickInput, 0, len(req.Picks))
	for _, p := range req.Picks {
		inputs = append(inputs, usecase.AnonymousPickInput{
			GameID:       p.GameID,
			SelectedTeam: p.SelectedTeam,
			IsLock:       p.IsLock,
		})
	}
	created, err := h.pickService.SubmitAnonymousPicks(ctx, req.Email, inputs)
	if err != nil {
		h.fail(ctx, w, "submit anonymous picks failed", err, "picks", len(inputs))
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, picksToDTO(created))
}

func (h *Handler) ListAnonymousPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAnonymousPicks")
	defer span.End()

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(ctx, w, fmt.Errorf("%w: email is required", usecase.ErrInvalidInput))
		return
	}
	season, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := queryInt(r, "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.pickService.ListPicks(ctx, pick.AnonymousParticipant(email), season, week)
	if err != nil {
		h.fail(ctx, w, "list anonymous picks failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, picksToDTO(picks))
}
