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

type createVenueRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=256"`
	Description     *string `json:"description"`
	Address         *string `json:"address"`
	ImageURL        *string `json:"image_url"`
	OwnerID         *string `json:"owner_id" validate:"omitempty,uuid"`
	VenueType       *string `json:"venue_type"`
	SportCategoryID *string `json:"sport_category_id" validate:"omitempty,uuid"`
}

type updateVenueRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=256"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	ImageURL    *string `json:"image_url"`
	VenueType   *string `json:"venue_type"`
}

type createTimeSlotRequest struct {
	Date      time.Time `json:"date" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type updateTimeSlotRequest struct {
	Date        *time.Time `json:"date"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	IsAvailable *bool      `json:"is_available"`
}

type createVenueServiceRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=256"`
	Description *string `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type updateVenueServiceRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=256"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active"`
}

func (a *app) mountVenueRoutes(r chi.Router) {
	r.Route("/venues", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createVenueRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			venue := &community.Venue{
				ID:          uuid.New(),
				Name:        req.Name,
				Description: req.Description,
				Address:     req.Address,
				ImageURL:    req.ImageURL,
				VenueType:   req.VenueType,
			}
			if req.OwnerID != nil {
				id := uuid.MustParse(*req.OwnerID)
				venue.OwnerID = &id
			}
			if req.SportCategoryID != nil {
				id := uuid.MustParse(*req.SportCategoryID)
				venue.SportCategoryID = &id
			}
			if err := a.venues.CreateVenue(r.Context(), venue); err != nil {
				httputil.InternalServerError(w, "Failed to create venue", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, venue)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			limit, offset := parseLimitOffset(r)
			filter := store.VenueFilter{
				CategoryID: queryParam(r, "category_id"),
				VenueType:  queryParam(r, "venue_type"),
				OwnerID:    queryParam(r, "owner_id"),
			}
			venues, err := a.venues.ListVenues(r.Context(), filter, limit, offset)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list venues", err)
				return
			}
			if venues == nil {
				venues = []community.Venue{}
			}
			httputil.WriteJSON(w, http.StatusOK, venues)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			venue, err := a.venues.GetVenue(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Venue not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get venue", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, venue)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateVenueRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			venue, err := a.venues.GetVenue(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Venue not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get venue", err)
				return
			}

			if req.Name != nil {
				venue.Name = *req.Name
			}
			if req.Description != nil {
				venue.Description = req.Description
			}
			if req.Address != nil {
				venue.Address = req.Address
			}
			if req.ImageURL != nil {
				venue.ImageURL = req.ImageURL
			}
			if req.VenueType != nil {
				venue.VenueType = req.VenueType
			}
			if err := a.venues.UpdateVenue(r.Context(), venue); err != nil {
				httputil.InternalServerError(w, "Failed to update venue", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, venue)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			deleted, err := a.venues.DeleteVenue(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to delete venue", err)
				return
			}
			if !deleted {
				httputil.NotFound(w, "Venue not found", nil)
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
			like, err := a.engagementService.LikeVenue(r.Context(), id, userID)
			if err != nil {
				writeServiceError(w, "Failed to like venue", err)
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
			removed, err := a.engagementService.UnlikeVenue(r.Context(), id, userID)
			if err != nil {
				writeServiceError(w, "Failed to unlike venue", err)
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
			if err := a.engagementService.ViewVenue(r.Context(), id); err != nil {
				writeServiceError(w, "Failed to record view", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/time-slots", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req createTimeSlotRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			slot := &community.TimeSlot{
				ID:          uuid.New(),
				VenueID:     id,
				Date:        req.Date,
				StartTime:   req.StartTime,
				EndTime:     req.EndTime,
				IsAvailable: true,
			}
			if err := a.venues.CreateTimeSlot(r.Context(), slot); err != nil {
				httputil.InternalServerError(w, "Failed to create time slot", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, slot)
		})

		r.Get("/{id}/time-slots", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			filter := store.TimeSlotFilter{
				IsAvailable: queryBool(r, "is_available"),
			}
			if v := queryParam(r, "start_date"); v != nil {
				if t, err := time.Parse(time.RFC3339, *v); err == nil {
					filter.StartDate = &t
				}
			}
			if v := queryParam(r, "end_date"); v != nil {
				if t, err := time.Parse(time.RFC3339, *v); err == nil {
					filter.EndDate = &t
				}
			}
			slots, err := a.venues.ListTimeSlots(r.Context(), id, filter)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list time slots", err)
				return
			}
			if slots == nil {
				slots = []community.TimeSlot{}
			}
			httputil.WriteJSON(w, http.StatusOK, slots)
		})

		r.Post("/{id}/services", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req createVenueServiceRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			service := &community.VenueService{
				ID:          uuid.New(),
				VenueID:     id,
				Name:        req.Name,
				Description: req.Description,
				Price:       req.Price,
				IsActive:    true,
			}
			if err := a.venues.CreateVenueService(r.Context(), service); err != nil {
				httputil.InternalServerError(w, "Failed to create venue service", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, service)
		})

		r.Get("/{id}/services", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			services, err := a.venues.ListVenueServices(r.Context(), id, queryBool(r, "is_active"))
			if err != nil {
				httputil.InternalServerError(w, "Failed to list venue services", err)
				return
			}
			if services == nil {
				services = []community.VenueService{}
			}
			httputil.WriteJSON(w, http.StatusOK, services)
		})

		r.Get("/{id}/bookings", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var status *community.BookingStatus
			if v := queryParam(r, "status"); v != nil {
				s := community.BookingStatus(*v)
				status = &s
			}
			var startDate, endDate *time.Time
			if v := queryParam(r, "start_date"); v != nil {
				if t, err := time.Parse(time.RFC3339, *v); err == nil {
					startDate = &t
				}
			}
			if v := queryParam(r, "end_date"); v != nil {
				if t, err := time.Parse(time.RFC3339, *v); err == nil {
					endDate = &t
				}
			}
			bookings, err := a.bookings.ListVenueBookings(r.Context(), id, status, startDate, endDate)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list venue bookings", err)
				return
			}
			if bookings == nil {
				bookings = []community.Booking{}
			}
			httputil.WriteJSON(w, http.StatusOK, bookings)
		})
	})

	r.Route("/time-slots/{id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			slot, err := a.venues.GetTimeSlot(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Time slot not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get time slot", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, slot)
		})

		r.Put("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateTimeSlotRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			slot, err := a.venues.GetTimeSlot(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Time slot not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get time slot", err)
				return
			}

			if req.Date != nil {
				slot.Date = *req.Date
			}
			if req.StartTime != nil {
				slot.StartTime = *req.StartTime
			}
			if req.EndTime != nil {
				slot.EndTime = *req.EndTime
			}
			if req.IsAvailable != nil {
				slot.IsAvailable = *req.IsAvailable
			}
			if err := a.venues.UpdateTimeSlot(r.Context(), slot); err != nil {
				httputil.InternalServerError(w, "Failed to update time slot", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, slot)
		})

		r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			deleted, err := a.venues.DeleteTimeSlot(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to delete time slot", err)
				return
			}
			if !deleted {
				httputil.NotFound(w, "Time slot not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	r.Route("/venue-services/{id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			service, err := a.venues.GetVenueService(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Venue service not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get venue service", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, service)
		})

		r.Put("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateVenueServiceRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			service, err := a.venues.GetVenueService(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Venue service not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get venue service", err)
				return
			}

			if req.Name != nil {
				service.Name = *req.Name
			}
			if req.Description != nil {
				service.Description = req.Description
			}
			if req.Price != nil {
				service.Price = *req.Price
			}
			if req.IsActive != nil {
				service.IsActive = *req.IsActive
			}
			if err := a.venues.UpdateVenueService(r.Context(), service); err != nil {
				httputil.InternalServerError(w, "Failed to update venue service", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, service)
		})

		r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			deleted, err := a.venues.DeleteVenueService(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to delete venue service", err)
				return
			}
			if !deleted {
				httputil.NotFound(w, "Venue service not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}
