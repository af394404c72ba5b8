package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sporthub/sporthub/internal/httputil"
	"github.com/sporthub/sporthub/internal/middleware"
	"github.com/sporthub/sporthub/internal/service"
	"github.com/sporthub/sporthub/internal/store"
)

// app bundles the stores and services the route files close over.
type app struct {
	db *sqlx.DB

	users      *store.UserStore
	categories *store.SportCategoryStore
	feed       *store.FeedStore
	events     *store.EventStore
	venues     *store.VenueStore
	teams      *store.TeamStore
	bookings   *store.BookingStore

	teamService         *service.TeamService
	registrationService *service.RegistrationService
	bookingService      *service.BookingService
	engagementService   *service.EngagementService
}

func newRouter(database *sqlx.DB) http.Handler {
	teams := store.NewTeamStore(database)
	events := store.NewEventStore(database)
	venues := store.NewVenueStore(database)
	bookings := store.NewBookingStore(database)

	a := &app{
		db:         database,
		users:      store.NewUserStore(database),
		categories: store.NewSportCategoryStore(database),
		feed:       store.NewFeedStore(database),
		events:     events,
		venues:     venues,
		teams:      teams,
		bookings:   bookings,

		teamService:         service.NewTeamService(database, teams),
		registrationService: service.NewRegistrationService(database, events, teams),
		bookingService:      service.NewBookingService(database, bookings, venues),
		engagementService:   service.NewEngagementService(database),
	}

	metrics := middleware.NewMetrics("api")

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Instrument)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	a.mountUserRoutes(r)
	a.mountFeedRoutes(r)
	a.mountEventRoutes(r)
	a.mountVenueRoutes(r)
	a.mountTeamRoutes(r)
	a.mountBookingRoutes(r)

	return r
}

// parseIDParam reads a UUID URL parameter; a zero UUID means the param was
// malformed and a 400 has already been written.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httputil.BadRequest(w, "Invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func parseLimitOffset(r *http.Request) (int, int) {
	limit := 100
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func queryParam(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

func queryBool(r *http.Request, name string) *bool {
	if v := r.URL.Query().Get(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}

// writeServiceError maps domain errors onto HTTP statuses: missing
// entities are 404s, refused guards are 409s.
func writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, msg, err)
	case errors.Is(err, service.ErrNoSeats),
		errors.Is(err, service.ErrTeamFull),
		errors.Is(err, service.ErrCaptainLocked),
		errors.Is(err, service.ErrAlreadyMember):
		httputil.Conflict(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}
