package main

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/sporthub/sporthub/internal/httputil"
	"github.com/sporthub/sporthub/internal/validate"
)

type createBookingRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	VenueID    string `json:"venue_id" validate:"required,uuid"`
	TimeSlotID string `json:"time_slot_id" validate:"required,uuid"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=created paid cancelled"`
}

func (a *app) mountBookingRoutes(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createBookingRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			booking, err := a.bookingService.CreateBooking(
				r.Context(),
				uuid.MustParse(req.UserID),
				uuid.MustParse(req.VenueID),
				uuid.MustParse(req.TimeSlotID),
			)
			if err != nil {
				writeServiceError(w, "Failed to create booking", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, booking)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			booking, err := a.bookings.GetBooking(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Booking not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get booking", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, booking)
		})

		r.Put("/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateBookingStatusRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			booking, err := a.bookingService.UpdateBookingStatus(r.Context(), id, community.BookingStatus(req.Status))
			if err != nil {
				writeServiceError(w, "Failed to update booking status", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, booking)
		})

		r.Post("/{id}/services/{serviceID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			serviceID, ok := parseIDParam(w, r, "serviceID")
			if !ok {
				return
			}
			bs, err := a.bookingService.AddService(r.Context(), id, serviceID)
			if err != nil {
				writeServiceError(w, "Failed to add service to booking", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, bs)
		})

		r.Delete("/{id}/services/{serviceID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			serviceID, ok := parseIDParam(w, r, "serviceID")
			if !ok {
				return
			}
			removed, err := a.bookingService.RemoveService(r.Context(), id, serviceID)
			if err != nil {
				writeServiceError(w, "Failed to remove service from booking", err)
				return
			}
			if !removed {
				httputil.NotFound(w, "Booking service not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/{id}/services", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			services, err := a.bookings.ListBookingServices(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list booking services", err)
				return
			}
			if services == nil {
				services = []community.BookingService{}
			}
			httputil.WriteJSON(w, http.StatusOK, services)
		})
	})
}
