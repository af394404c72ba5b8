package main

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/sporthub/sporthub/internal/httputil"
	"github.com/sporthub/sporthub/internal/store"
	"github.com/sporthub/sporthub/internal/validate"
)

type createEventRequest struct {
	Title               string     `json:"title" validate:"required,min=1,max=256"`
	Description         *string    `json:"description"`
	ImageURL            *string    `json:"image_url"`
	SportCategoryID     *string    `json:"sport_category_id" validate:"omitempty,uuid"`
	EventDate           time.Time  `json:"event_date" validate:"required"`
	RegistrationEndDate *time.Time `json:"registration_end_date"`
	Price               float64    `json:"price" validate:"gte=0"`
	TotalSeats          int        `json:"total_seats" validate:"gte=0"`
	Location            *string    `json:"location"`
	Longitude           *float64   `json:"longitude"`
	Latitude            *float64   `json:"latitude"`
	CompetitionRules    *string    `json:"competition_rules"`
	OwnerID             *string    `json:"owner_id" validate:"omitempty,uuid"`
}

type updateEventRequest struct {
	Title               *string    `json:"title" validate:"omitempty,min=1,max=256"`
	Description         *string    `json:"description"`
	ImageURL            *string    `json:"image_url"`
	EventDate           *time.Time `json:"event_date"`
	RegistrationEndDate *time.Time `json:"registration_end_date"`
	Price               *float64   `json:"price" validate:"omitempty,gte=0"`
	Location            *string    `json:"location"`
	CompetitionRules    *string    `json:"competition_rules"`
	Status              *string    `json:"status" validate:"omitempty,oneof=new active completed"`
}

type registerTeamRequest struct {
	IndividualFee float64 `json:"individual_fee" validate:"gte=0"`
	TeamFee       float64 `json:"team_fee" validate:"gte=0"`
}

type updateRegistrationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type updateRegistrationPaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid"`
}

type updateRegistrationFeesRequest struct {
	IndividualFee *float64 `json:"individual_fee" validate:"omitempty,gte=0"`
	TeamFee       *float64 `json:"team_fee" validate:"omitempty,gte=0"`
}

func (a *app) mountEventRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createEventRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			event := &community.Event{
				ID:                  uuid.New(),
				Title:               req.Title,
				Description:         req.Description,
				ImageURL:            req.ImageURL,
				EventDate:           req.EventDate,
				RegistrationEndDate: req.RegistrationEndDate,
				Price:               req.Price,
				AvailableSeats:      req.TotalSeats,
				TotalSeats:          req.TotalSeats,
				Location:            req.Location,
				Longitude:           req.Longitude,
				Latitude:            req.Latitude,
				CompetitionRules:    req.CompetitionRules,
				Status:              community.EventNew,
			}
			if req.SportCategoryID != nil {
				id := uuid.MustParse(*req.SportCategoryID)
				event.SportCategoryID = &id
			}
			if req.OwnerID != nil {
				id := uuid.MustParse(*req.OwnerID)
				event.OwnerID = &id
			}
			if err := a.events.CreateEvent(r.Context(), event); err != nil {
				httputil.InternalServerError(w, "Failed to create event", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, event)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			limit, offset := parseLimitOffset(r)
			filter := store.EventFilter{
				CategoryID: queryParam(r, "category_id"),
				OwnerID:    queryParam(r, "owner_id"),
			}
			if v := queryParam(r, "status"); v != nil {
				s := community.EventStatus(*v)
				filter.Status = &s
			}
			if v := queryParam(r, "min_date"); v != nil {
				if t, err := time.Parse(time.RFC3339, *v); err == nil {
					filter.MinDate = &t
				}
			}
			if v := queryParam(r, "max_date"); v != nil {
				if t, err := time.Parse(time.RFC3339, *v); err == nil {
					filter.MaxDate = &t
				}
			}
			events, err := a.events.ListEvents(r.Context(), filter, limit, offset)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list events", err)
				return
			}
			if events == nil {
				events = []community.Event{}
			}
			httputil.WriteJSON(w, http.StatusOK, events)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			event, err := a.events.GetEvent(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Event not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get event", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, event)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateEventRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			event, err := a.events.GetEvent(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Event not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get event", err)
				return
			}

			if req.Title != nil {
				event.Title = *req.Title
			}
			if req.Description != nil {
				event.Description = req.Description
			}
			if req.ImageURL != nil {
				event.ImageURL = req.ImageURL
			}
			if req.EventDate != nil {
				event.EventDate = *req.EventDate
			}
			if req.RegistrationEndDate != nil {
				event.RegistrationEndDate = req.RegistrationEndDate
			}
			if req.Price != nil {
				event.Price = *req.Price
			}
			if req.Location != nil {
				event.Location = req.Location
			}
			if req.CompetitionRules != nil {
				event.CompetitionRules = req.CompetitionRules
			}
			if req.Status != nil {
				event.Status = community.EventStatus(*req.Status)
			}
			if err := a.events.UpdateEvent(r.Context(), event); err != nil {
				httputil.InternalServerError(w, "Failed to update event", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, event)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			deleted, err := a.events.DeleteEvent(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to delete event", err)
				return
			}
			if !deleted {
				httputil.NotFound(w, "Event not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/likes/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			userID, ok := parseIDParam(w, r, "userID")
			if !ok {
				return
			}
			like, err := a.engagementService.LikeEvent(r.Context(), id, userID)
			if err != nil {
				writeServiceError(w, "Failed to like event", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, like)
		})

		r.Delete("/{id}/likes/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			userID, ok := parseIDParam(w, r, "userID")
			if !ok {
				return
			}
			removed, err := a.engagementService.UnlikeEvent(r.Context(), id, userID)
			if err != nil {
				writeServiceError(w, "Failed to unlike event", err)
				return
			}
			if !removed {
				httputil.NotFound(w, "Like not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/views", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			if err := a.engagementService.ViewEvent(r.Context(), id); err != nil {
				writeServiceError(w, "Failed to record view", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/registrations/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			userID, ok := parseIDParam(w, r, "userID")
			if !ok {
				return
			}
			reg, err := a.registrationService.RegisterForEvent(r.Context(), id, userID)
			if err != nil {
				writeServiceError(w, "Failed to register for event", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, reg)
		})

		r.Get("/{id}/registrations", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			regs, err := a.events.ListEventRegistrations(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list registrations", err)
				return
			}
			if regs == nil {
				regs = []community.EventRegistration{}
			}
			httputil.WriteJSON(w, http.StatusOK, regs)
		})

		r.Post("/{id}/teams/{teamID}/register", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			teamID, ok := parseIDParam(w, r, "teamID")
			if !ok {
				return
			}
			var req registerTeamRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			reg, err := a.registrationService.RegisterTeamForEvent(r.Context(), id, teamID, req.IndividualFee, req.TeamFee)
			if err != nil {
				writeServiceError(w, "Failed to register team for event", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, reg)
		})

		r.Get("/{id}/team-registrations", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var status *community.RegistrationStatus
			if v := queryParam(r, "status"); v != nil {
				s := community.RegistrationStatus(*v)
				status = &s
			}
			regs, err := a.events.ListTeamRegistrationsByEvent(r.Context(), id, status)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list team registrations", err)
				return
			}
			if regs == nil {
				regs = []community.EventTeamRegistration{}
			}
			httputil.WriteJSON(w, http.StatusOK, regs)
		})
	})

	r.Route("/team-registrations/{id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			reg, err := a.events.GetTeamRegistration(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Team registration not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get team registration", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, reg)
		})

		r.Put("/status", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateRegistrationStatusRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			reg, err := a.registrationService.UpdateTeamRegistrationStatus(r.Context(), id, community.RegistrationStatus(req.Status))
			if err != nil {
				writeServiceError(w, "Failed to update registration status", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, reg)
		})

		r.Put("/payment", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateRegistrationPaymentRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			reg, err := a.registrationService.UpdateTeamRegistrationPayment(r.Context(), id, community.PaymentStatus(req.PaymentStatus))
			if err != nil {
				writeServiceError(w, "Failed to update payment status", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, reg)
		})

		r.Put("/fees", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateRegistrationFeesRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			reg, err := a.registrationService.UpdateTeamRegistrationFees(r.Context(), id, req.IndividualFee, req.TeamFee)
			if err != nil {
				writeServiceError(w, "Failed to update fees", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, reg)
		})

		r.Get("/total", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			total, err := a.registrationService.CalculateTotal(r.Context(), id)
			if err != nil {
				writeServiceError(w, "Failed to calculate total", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, total)
		})

		r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			if err := a.registrationService.DeleteTeamRegistration(r.Context(), id); err != nil {
				writeServiceError(w, "Failed to delete team registration", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}
