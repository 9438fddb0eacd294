package httpapi

import "net/http"

type routeGuards struct {
	verifier         TokenVerifier
	members          MemberResolver
	internalJobToken string
}

func (g routeGuards) auth(fn http.HandlerFunc) http.Handler {
	return RequireAuth(g.verifier, g.members, fn)
}

func (g routeGuards) admin(fn http.HandlerFunc) http.Handler {
	return RequireAuth(g.verifier, g.members, RequireAdmin(fn))
}

func (g routeGuards) job(fn http.HandlerFunc) http.Handler {
	return RequireInternalJobToken(g.internalJobToken, fn)
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{season}/weeks/{week}/games", handler.ListWeekGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("GET /v1/seasons/{season}/weeks", handler.ListSeasonWeeks)
	mux.HandleFunc("GET /v1/seasons/{season}/weeks/{week}/settings", handler.GetWeekSettings)
	mux.HandleFunc("GET /v1/seasons/{season}/leaderboard", handler.SeasonLeaderboard)
	mux.HandleFunc("GET /v1/seasons/{season}/weeks/{week}/leaderboard", handler.WeekLeaderboard)
	mux.HandleFunc("GET /v1/blog/posts", handler.ListPublishedPosts)
	mux.HandleFunc("GET /v1/blog/posts/{slug}", handler.GetPost)
	mux.HandleFunc("POST /v1/anonymous-picks", handler.SubmitAnonymousPicks)
	mux.HandleFunc("GET /v1/anonymous-picks", handler.ListAnonymousPicks)
}

func registerMemberRoutes(mux *http.ServeMux, handler *Handler, g routeGuards) {
	mux.Handle("GET /v1/me", g.auth(handler.GetMe))
	mux.Handle("PUT /v1/me", g.auth(handler.UpdateMe))
	mux.Handle("PUT /v1/me/payment-email", g.auth(handler.LinkPaymentEmail))
	mux.Handle("GET /v1/me/picks", g.auth(handler.ListMyPicks))
	mux.Handle("POST /v1/picks", g.auth(handler.SubmitPick))
	mux.Handle("PUT /v1/picks/{pickID}", g.auth(handler.UpdatePick))
	mux.Handle("DELETE /v1/picks/{pickID}", g.auth(handler.DeletePick))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, g routeGuards) {
	mux.Handle("POST /v1/admin/games", g.admin(handler.CreateGame))
	mux.Handle("PUT /v1/admin/games/{gameID}", g.admin(handler.UpdateGame))
	mux.Handle("DELETE /v1/admin/games/{gameID}", g.admin(handler.DeleteGame))
	mux.Handle("PUT /v1/admin/games/{gameID}/score", g.admin(handler.RecordScore))
	mux.Handle("POST /v1/admin/seasons/{season}/weeks/{week}/scores/reset", g.admin(handler.ResetWeekScores))
	mux.Handle("POST /v1/admin/seasons/{season}/weeks/{week}/scores/regrade", g.admin(handler.RegradeWeek))
	mux.Handle("PUT /v1/admin/seasons/{season}/weeks/{week}/settings", g.admin(handler.UpsertWeekSettings))
	mux.Handle("POST /v1/admin/seasons/{season}/weeks/{week}/lock", g.admin(handler.LockWeek))
	mux.Handle("POST /v1/admin/seasons/{season}/weeks/{week}/open", g.admin(handler.OpenWeek))
	mux.Handle("GET /v1/admin/users", g.admin(handler.ListUsers))
	mux.Handle("PUT /v1/admin/users/{userID}/admin", g.admin(handler.SetAdmin))
	mux.Handle("GET /v1/admin/blog/posts", g.admin(handler.ListAllPosts))
	mux.Handle("POST /v1/admin/blog/posts", g.admin(handler.CreatePost))
	mux.Handle("PUT /v1/admin/blog/posts/{postID}", g.admin(handler.UpdatePost))
	mux.Handle("POST /v1/admin/blog/posts/{postID}/publish", g.admin(handler.PublishPost))
	mux.Handle("DELETE /v1/admin/blog/posts/{postID}", g.admin(handler.DeletePost))
	mux.Handle("POST /v1/email/send", RequireAdminOrJobToken(g.verifier, g.members, g.internalJobToken, http.HandlerFunc(handler.SendEmail)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, g routeGuards) {
	mux.Handle("POST /v1/internal/jobs/lock-weeks", g.job(handler.RunLockWeeksJob))
	mux.Handle("POST /v1/internal/jobs/send-reminders", g.job(handler.RunSendRemindersJob))
}
