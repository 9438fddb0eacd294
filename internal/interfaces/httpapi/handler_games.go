package httpapi

import "net/http"

func (h *Handler) ListWeekGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekGames")
	defer span.End()

	season, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	games, err := h.gameService.ListByWeek(ctx, season, week)
	if err != nil {
		h.fail(ctx, w, "list games failed", err, "season", season, "week", week)
		return
	}

	now := h.now()
	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g, now))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	g, err := h.gameService.Get(ctx, r.PathValue("gameID"))
	if err != nil {
		h.fail(ctx, w, "get game failed", err, "game_id", r.PathValue("gameID"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g, h.now()))
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	var req gameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	g, err := h.gameService.Create(ctx, req.toInput())
	if err != nil {
		h.fail(ctx, w, "create game failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(g, h.now()))
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGame")
	defer span.End()

	var req gameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	g, err := h.gameService.Update(ctx, r.PathValue("gameID"), req.toInput())
	if err != nil {
		h.fail(ctx, w, "update game failed", err, "game_id", r.PathValue("gameID"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g, h.now()))
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGame")
	defer span.End()

	if err := h.gameService.Delete(ctx, r.PathValue("gameID")); err != nil {
		h.fail(ctx, w, "delete game failed", err, "game_id", r.PathValue("gameID"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) RecordScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordScore")
	defer span.End()

	var req scoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	g, summary, err := h.gameService.RecordScore(ctx, r.PathValue("gameID"), *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.fail(ctx, w, "record score failed", err, "game_id", r.PathValue("gameID"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, struct {
		Game    gameDTO         `json:"game"`
		Grading gradeSummaryDTO `json:"grading"`
	}{
		Game:    gameToDTO(g, h.now()),
		Grading: gradeSummaryDTO{Games: summary.Games, Picks: summary.Picks, Failed: summary.Failed},
	})
}

func (h *Handler) ResetWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetWeekScores")
	defer span.End()

	season, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	summary, err := h.gameService.ResetWeekScores(ctx, season, week)
	if err != nil {
		h.fail(ctx, w, "reset week scores failed", err, "season", season, "week", week)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int{"games": summary.Games, "picks": summary.Picks})
}

func (h *Handler) RegradeWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegradeWeek")
	defer span.End()

	season, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	summary, err := h.gameService.RegradeWeek(ctx, season, week)
	if err != nil {
		h.fail(ctx, w, "regrade week failed", err, "season", season, "week", week)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gradeSummaryDTO{Games: summary.Games, Picks: summary.Picks, Failed: summary.Failed})
}
