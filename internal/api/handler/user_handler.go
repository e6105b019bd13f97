package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"campus_connect/internal/api/middleware"
	"campus_connect/internal/app/service"
	"campus_connect/internal/common"
	"campus_connect/internal/domain/model"
	"campus_connect/internal/domain/roles"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
	auth        *middleware.Auth
}

func NewUserHandler(userService *service.UserService, auth *middleware.Auth) *UserHandler {
	return &UserHandler{userService: userService, auth: auth}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(authed chi.Router) {
		authed.Use(h.auth.Authenticator)
		authed.Put("/me", h.updateProfile)

		authed.Group(func(admin chi.Router) {
			admin.Use(middleware.RequirePermission(roles.ActionManageUsers))
			admin.Get("/", h.listUsers)
		})
		authed.Group(func(admin chi.Router) {
			admin.Use(middleware.RequirePermission(roles.ActionApproveClubMember))
			admin.Post("/promote", h.promote)
			admin.Post("/demote", h.demote)
		})
	})
}

// RegisterAlumniRoutes mounts the public alumni directory.
func (h *UserHandler) RegisterAlumniRoutes(r chi.Router) {
	r.Get("/", h.listAlumni)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if users == nil {
		users = []model.User{}
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) promote(w http.ResponseWriter, r *http.Request) {
	var req service.PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.PromoteToClubMember(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type promoteResponse struct {
		Message string      `json:"message"`
		User    *model.User `json:"user"`
	}
	common.RespondWithJSON(w, http.StatusOK, promoteResponse{
		Message: fmt.Sprintf("User promoted to Club Member of %s", req.ClubName),
		User:    user,
	})
}

func (h *UserHandler) demote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.DemoteFromClubMember(r.Context(), req.UserID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type demoteResponse struct {
		Message string      `json:"message"`
		User    *model.User `json:"user"`
	}
	common.RespondWithJSON(w, http.StatusOK, demoteResponse{
		Message: "User demoted to regular student",
		User:    user,
	})
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) listAlumni(w http.ResponseWriter, r *http.Request) {
	alumni, err := h.userService.ListAlumni(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if alumni == nil {
		alumni = []model.User{}
	}
	common.RespondWithJSON(w, http.StatusOK, alumni)
}
