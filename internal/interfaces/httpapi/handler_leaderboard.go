package httpapi

import "net/http"

func (h *Handler) SeasonLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeasonLeaderboard")
	defer span.End()

	season, err := pathInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	entries, err := h.leaderboardService.Season(ctx, season)
	if err != nil {
		h.fail(ctx, w, "season leaderboard failed", err, "season", season)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) WeekLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WeekLeaderboard")
	defer span.End()

	season, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	entries, err := h.leaderboardService.Week(ctx, season, week)
	if err != nil {
		h.fail(ctx, w, "week leaderboard failed", err, "season", season, "week", week)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}
