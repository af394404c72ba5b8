package main

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/sporthub/sporthub/internal/httputil"
	"github.com/sporthub/sporthub/internal/service"
	"github.com/sporthub/sporthub/internal/store"
	"github.com/sporthub/sporthub/internal/validate"
)

type createTeamRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=256"`
	SportCategoryID *string `json:"sport_category_id" validate:"omitempty,uuid"`
	CreatorID       string  `json:"creator_id" validate:"required,uuid"`
	Capacity        int     `json:"capacity" validate:"required,gt=0"`
	LogoURL         *string `json:"logo_url"`
	IsAutoTeam      bool    `json:"is_auto_team"`
	EventID         *string `json:"event_id" validate:"omitempty,uuid"`
}

type updateTeamRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=256"`
	LogoURL  *string `json:"logo_url"`
	Capacity *int    `json:"capacity" validate:"omitempty,gt=0"`
}

type addMemberRequest struct {
	UserID   string  `json:"user_id" validate:"required,uuid"`
	Role     string  `json:"role" validate:"omitempty,oneof=captain player"`
	Position *string `json:"position"`
}

type updateTeamMemberRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=captain player"`
	Position *string `json:"position"`
	Status   *string `json:"status"`
}

type joinRequestRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type handleRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type updateTeamStatsRequest struct {
	MatchesPlayed *int `json:"matches_played" validate:"omitempty,gte=0"`
	Wins          *int `json:"wins" validate:"omitempty,gte=0"`
	GoalsScored   *int `json:"goals_scored" validate:"omitempty,gte=0"`
}

func (a *app) mountTeamRoutes(r chi.Router) {
	r.Route("/teams", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createTeamRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			input := service.CreateTeamInput{
				Name:       req.Name,
				CreatorID:  uuid.MustParse(req.CreatorID),
				Capacity:   req.Capacity,
				LogoURL:    req.LogoURL,
				IsAutoTeam: req.IsAutoTeam,
			}
			if req.SportCategoryID != nil {
				id := uuid.MustParse(*req.SportCategoryID)
				input.SportCategoryID = &id
			}
			if req.EventID != nil {
				id := uuid.MustParse(*req.EventID)
				input.EventID = &id
			}
			team, err := a.teamService.CreateTeam(r.Context(), input)
			if err != nil {
				writeServiceError(w, "Failed to create team", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, team)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			limit, offset := parseLimitOffset(r)
			filter := store.TeamFilter{
				CategoryID: queryParam(r, "category_id"),
				EventID:    queryParam(r, "event_id"),
				IsAutoTeam: queryBool(r, "is_auto_team"),
			}
			teams, err := a.teams.ListTeams(r.Context(), filter, limit, offset)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list teams", err)
				return
			}
			if teams == nil {
				teams = []community.Team{}
			}
			httputil.WriteJSON(w, http.StatusOK, teams)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			team, err := a.teams.GetTeam(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Team not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get team", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, team)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateTeamRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			team, err := a.teams.GetTeam(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Team not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get team", err)
				return
			}

			if req.Name != nil {
				team.Name = *req.Name
			}
			if req.LogoURL != nil {
				team.LogoURL = req.LogoURL
			}
			if req.Capacity != nil {
				team.Capacity = *req.Capacity
			}
			if err := a.teams.UpdateTeam(r.Context(), team); err != nil {
				httputil.InternalServerError(w, "Failed to update team", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, team)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			deleted, err := a.teams.DeleteTeam(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to delete team", err)
				return
			}
			if !deleted {
				httputil.NotFound(w, "Team not found", nil)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/members", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req addMemberRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			role := community.RolePlayer
			if req.Role != "" {
				role = community.TeamRole(req.Role)
			}
			member, err := a.teamService.AddMember(r.Context(), id, uuid.MustParse(req.UserID), role, req.Position)
			if err != nil {
				writeServiceError(w, "Failed to add member", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, member)
		})

		r.Get("/{id}/members", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			members, err := a.teams.ListMembers(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list members", err)
				return
			}
			if members == nil {
				members = []community.TeamMember{}
			}
			httputil.WriteJSON(w, http.StatusOK, members)
		})

		r.Put("/{id}/members/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			userID, ok := parseIDParam(w, r, "userID")
			if !ok {
				return
			}
			var req updateTeamMemberRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			input := service.UpdateMemberInput{
				Position: req.Position,
				Status:   req.Status,
			}
			if req.Role != nil {
				role := community.TeamRole(*req.Role)
				input.Role = &role
			}
			member, err := a.teamService.UpdateMember(r.Context(), id, userID, input)
			if err != nil {
				writeServiceError(w, "Failed to update member", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, member)
		})

		r.Delete("/{id}/members/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			userID, ok := parseIDParam(w, r, "userID")
			if !ok {
				return
			}
			if err := a.teamService.RemoveMember(r.Context(), id, userID); err != nil {
				writeServiceError(w, "Failed to remove member", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/requests", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req joinRequestRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			request, err := a.teamService.RequestJoin(r.Context(), id, uuid.MustParse(req.UserID))
			if err != nil {
				writeServiceError(w, "Failed to create join request", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, request)
		})

		r.Get("/{id}/requests", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var status *community.RequestStatus
			if v := queryParam(r, "status"); v != nil {
				s := community.RequestStatus(*v)
				status = &s
			}
			requests, err := a.teams.ListRequests(r.Context(), id, status)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list requests", err)
				return
			}
			if requests == nil {
				requests = []community.TeamRequest{}
			}
			httputil.WriteJSON(w, http.StatusOK, requests)
		})

		r.Get("/{id}/stats", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			stats, err := a.teams.GetStats(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Team stats not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get team stats", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, stats)
		})

		r.Put("/{id}/stats", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var req updateTeamStatsRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if err := validate.Struct(req); err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}

			stats, err := a.teamService.UpdateStats(r.Context(), id, service.UpdateStatsInput{
				MatchesPlayed: req.MatchesPlayed,
				Wins:          req.Wins,
				GoalsScored:   req.GoalsScored,
			})
			if err != nil {
				writeServiceError(w, "Failed to update team stats", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, stats)
		})

		r.Get("/{id}/registrations", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			var status *community.RegistrationStatus
			if v := queryParam(r, "status"); v != nil {
				s := community.RegistrationStatus(*v)
				status = &s
			}
			regs, err := a.events.ListTeamRegistrationsByTeam(r.Context(), id, status)
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

	r.Put("/team-requests/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}
		var req handleRequestRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httputil.BadRequest(w, err.Error(), nil)
			return
		}

		request, err := a.teamService.HandleRequest(r.Context(), id, community.RequestStatus(req.Status))
		if err != nil {
			// The request row is updated even when the accepted member no
			// longer fits, so surface both when available.
			if request != nil && errors.Is(err, service.ErrTeamFull) {
				httputil.Conflict(w, "Request accepted but team is full", err)
				return
			}
			writeServiceError(w, "Failed to handle request", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, request)
	})
}
