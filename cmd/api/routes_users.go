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

type createUserRequest struct {
	Username  string  `json:"username" validate:"required,min=1,max=64"`
	Password  string  `json:"password" validate:"required,min=4"`
	AvatarURL *string `json:"avatar_url"`
}

type updateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=1,max=64"`
	Password  *string `json:"password" validate:"omitempty,min=4"`
	AvatarURL *string `json:"avatar_url"`
}

type createCategoryRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=64"`
	IconURL *string `json:"icon_url"`
}

func (a *app) mountUserRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createUserRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			user := &community.User{
				ID:        uuid.New(),
				Username:  req.Username,
				Password:  req.Password,
				AvatarURL: req.AvatarURL,
			}
			if err := a.users.CreateUser(r.Context(), user); err != nil {
				httputil.InternalServerError(w, "Failed to create user", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, user)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			limit, offset := parseLimitOffset(r)
			users, err := a.users.ListUsers(r.Context(), limit, offset)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list users", err)
				return
			}
			if users == nil {
				users = []community.User{}
			}
			httputil.WriteJSON(w, http.StatusOK, users)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			user, err := a.users.GetUser(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "User not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get user", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, user)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateUserRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			user, err := a.users.GetUser(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "User not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get user", err)
				return
			}

			if req.Username != nil {
				user.Username = *req.Username
			}
			if req.Password != nil {
				user.Password = *req.Password
			}
			if req.AvatarURL != nil {
				user.AvatarURL = req.AvatarURL
			}
			if err := a.users.UpdateUser(r.Context(), user); err != nil {
				httputil.InternalServerError(w, "Failed to update user", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, user)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			deleted, err := a.users.DeleteUser(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to delete user", err)
				return
			}
			if !deleted {
				httputil.NotFound(w, "User not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/followers", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			changed, err := a.users.IncrementFollowers(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to increment followers", err)
				return
			}
			if !changed {
				httputil.NotFound(w, "User not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Delete("/{id}/followers", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			// A zero counter is left at zero, not an error.
			if _, err := a.users.DecrementFollowers(r.Context(), id); err != nil {
				httputil.InternalServerError(w, "Failed to decrement followers", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/reviews", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			changed, err := a.users.IncrementReviews(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to increment reviews", err)
				return
			}
			if !changed {
				httputil.NotFound(w, "User not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/{id}/registrations", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			regs, err := a.events.ListUserRegistrations(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list registrations", err)
				return
			}
			if regs == nil {
				regs = []community.EventRegistration{}
			}
			httputil.WriteJSON(w, http.StatusOK, regs)
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
			bookings, err := a.bookings.ListUserBookings(r.Context(), id, status)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list bookings", err)
				return
			}
			if bookings == nil {
				bookings = []community.Booking{}
			}
			httputil.WriteJSON(w, http.StatusOK, bookings)
		})
	})

	r.Route("/sport-categories", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createCategoryRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			category := &community.SportCategory{
				ID:      uuid.New(),
				Name:    req.Name,
				IconURL: req.IconURL,
			}
			if err := a.categories.CreateCategory(r.Context(), category); err != nil {
				httputil.InternalServerError(w, "Failed to create category", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, category)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			limit, offset := parseLimitOffset(r)
			categories, err := a.categories.ListCategories(r.Context(), limit, offset)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list categories", err)
				return
			}
			if categories == nil {
				categories = []community.SportCategory{}
			}
			httputil.WriteJSON(w, http.StatusOK, categories)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			category, err := a.categories.GetCategory(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Category not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get category", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, category)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req createCategoryRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			category, err := a.categories.GetCategory(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Category not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get category", err)
				return
			}
			category.Name = req.Name
			if req.IconURL != nil {
				category.IconURL = req.IconURL
			}
			if err := a.categories.UpdateCategory(r.Context(), category); err != nil {
				httputil.InternalServerError(w, "Failed to update category", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, category)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			deleted, err := a.categories.DeleteCategory(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to delete category", err)
				return
			}
			if !deleted {
				httputil.NotFound(w, "Category not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}
