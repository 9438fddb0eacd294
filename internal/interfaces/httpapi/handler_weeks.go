package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) GetWeekSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekSettings")
	defer span.End()

	season, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	settings, err := h.weekService.Get(ctx, season, week)
	if err != nil {
		h.fail(ctx, w, "get week settings failed", err, "season", season, "week", week)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, weekSettingsToDTO(settings, h.now()))
}

func (h *Handler) ListSeasonWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonWeeks")
	defer span.End()

	season, err := pathInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weeks, err := h.weekService.List(ctx, season)
	if err != nil {
		h.fail(ctx, w, "list week settings failed", err, "season", season)
		return
	}
	now := h.now()
	items := make([]weekSettingsDTO, 0, len(weeks))
	for _, s := range weeks {
		items = append(items, weekSettingsToDTO(s, now))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpsertWeekSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertWeekSettings")
	defer span.End()

	season, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req weekSettingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.weekService.Upsert(ctx, usecase.WeekSettingsInput{
		Season:    season,
		Week:      week,
		Deadline:  req.Deadline,
		PicksOpen: *req.PicksOpen,
		IsLocked:  req.IsLocked,
	})
	if err != nil {
		h.fail(ctx, w, "upsert week settings failed", err, "season", season, "week", week)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, weekSettingsToDTO(settings, h.now()))
}

func (h *Handler) LockWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockWeek")
	defer span.End()

	season, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	settings, err := h.weekService.Lock(ctx, season, week)
	if err != nil {
		h.fail(ctx, w, "lock week failed", err, "season", season, "week", week)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, weekSettingsToDTO(settings, h.now()))
}

func (h *Handler) OpenWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenWeek")
	defer span.End()

	season, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	settings, err := h.weekService.Open(ctx, season, week)
	if err != nil {
		h.fail(ctx, w, "open week failed", err, "season", season, "week", week)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, weekSettingsToDTO(settings, h.now()))
}
