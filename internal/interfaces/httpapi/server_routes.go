package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures/day", handler.ListFixturesByDay)
	mux.HandleFunc("GET /v1/fixtures/range", handler.ListFixturesByRange)
	mux.HandleFunc("GET /v1/fixtures/upcoming", handler.ListUpcomingFixtures)
}

func registerViewerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/board", handler.GetBoard)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/overview", handler.GetOverview)
	mux.HandleFunc("GET /v1/teams/suggest", handler.SuggestTeams)
	mux.HandleFunc("GET /v1/sports", handler.ListSports)
	mux.HandleFunc("GET /v1/sports/{name}", handler.GetSport)
	mux.HandleFunc("GET /v1/region", handler.GetRegion)
}
