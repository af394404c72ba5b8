package main

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/sporthub/sporthub/internal/httputil"
	"github.com/sporthub/sporthub/internal/store"
	"github.com/sporthub/sporthub/internal/validate"
)

type createFeedItemRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=256"`
	ImageURL      *string `json:"image_url"`
	CategoryID    *string `json:"category_id" validate:"omitempty,uuid"`
	IsInteresting bool    `json:"is_interesting"`
}

type updateFeedItemRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=256"`
	ImageURL      *string `json:"image_url"`
	CategoryID    *string `json:"category_id" validate:"omitempty,uuid"`
	IsInteresting *bool   `json:"is_interesting"`
}

func (a *app) mountFeedRoutes(r chi.Router) {
	r.Route("/feed", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createFeedItemRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			item := &community.FeedItem{
				ID:            uuid.New(),
				Title:         req.Title,
				ImageURL:      req.ImageURL,
				IsInteresting: req.IsInteresting,
			}
			if req.CategoryID != nil {
				id := uuid.MustParse(*req.CategoryID)
				item.CategoryID = &id
			}
			if err := a.feed.CreateFeedItem(r.Context(), item); err != nil {
				httputil.InternalServerError(w, "Failed to create feed item", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, item)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			limit, offset := parseLimitOffset(r)
			filter := store.FeedFilter{
				CategoryID:    queryParam(r, "category_id"),
				IsInteresting: queryBool(r, "is_interesting"),
			}
			items, err := a.feed.ListFeedItems(r.Context(), filter, limit, offset)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list feed items", err)
				return
			}
			if items == nil {
				items = []community.FeedItem{}
			}
			httputil.WriteJSON(w, http.StatusOK, items)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			item, err := a.feed.GetFeedItem(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Feed item not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get feed item", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, item)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateFeedItemRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			item, err := a.feed.GetFeedItem(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Feed item not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get feed item", err)
				return
			}

			if req.Title != nil {
				item.Title = *req.Title
			}
			if req.ImageURL != nil {
				item.ImageURL = req.ImageURL
			}
			if req.CategoryID != nil {
				cid := uuid.MustParse(*req.CategoryID)
				item.CategoryID = &cid
			}
			if req.IsInteresting != nil {
				item.IsInteresting = *req.IsInteresting
			}
			if err := a.feed.UpdateFeedItem(r.Context(), item); err != nil {
				httputil.InternalServerError(w, "Failed to update feed item", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, item)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			deleted, err := a.feed.DeleteFeedItem(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to delete feed item", err)
				return
			}
			if !deleted {
				httputil.NotFound(w, "Feed item not found", nil)
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
			like, err := a.engagementService.LikeFeedItem(r.Context(), id, userID)
			if err != nil {
				writeServiceError(w, "Failed to like feed item", err)
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
			removed, err := a.engagementService.UnlikeFeedItem(r.Context(), id, userID)
			if err != nil {
				writeServiceError(w, "Failed to unlike feed item", err)
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
			if err := a.engagementService.ViewFeedItem(r.Context(), id); err != nil {
				writeServiceError(w, "Failed to record view", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}
