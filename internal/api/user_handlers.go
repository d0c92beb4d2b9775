package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"user-management/internal/apperr"
	"user-management/internal/database"
	"user-management/internal/models"
)

type UserRequest struct {
	FullName string `json:"fullName" validate:"required" example:"Jane Doe"`
	Username string `json:"username" validate:"required" example:"janedoe"`
}

func (s *Server) decodeUserRequest(r *http.Request) (*UserRequest, error) {
	var req UserRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		return nil, apperr.Validation("Invalid request body")
	}
	// a single JSON object only
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, apperr.Validation("Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("Both full name and username are required")
	}
	return &req, nil
}

// @Summary      Add a user
// @Description  Creates a user. The id is assigned by the database.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      UserRequest  true  "User to create"
// @Success      201   {object}  models.User
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /add-user [post]
func (s *Server) AddUserHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeUserRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Insert(r.Context(), req.FullName, req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// @Summary      List users
// @Description  Returns the users matching every given filter (exact match). Without filters all users are returned. No match yields 404 with an empty array.
// @Tags         users
// @Produce      json
// @Param        id        query     int     false  "User id"
// @Param        fullName  query     string  false  "Full name"
// @Param        username  query     string  false  "Username"
// @Success      200       {array}   models.User
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {array}   models.User
// @Failure      500       {object}  ErrorResponse
// @Router       /users [get]
func (s *Server) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filter := database.UserFilter{
		ID:       id,
		FullName: optional(r, "fullName"),
		Username: optional(r, "username"),
	}

	users, err := s.users.Find(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(users) == 0 {
		writeJSON(w, http.StatusNotFound, []models.User{})
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// @Summary      Update a user
// @Description  Rewrites full name and username of the user with the given id. The query form also accepts oldName and then updates rows matching the id or the old full name.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      int          false  "User id"
// @Param        oldName  query     string       false  "Current full name"
// @Param        user     body      UserRequest  true   "New values"
// @Success      204
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /update-user/{id} [put]
// @Router       /update-user [put]
func (s *Server) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeUserRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rawID := chi.URLParam(r, "id")
	if rawID == "" {
		rawID = r.URL.Query().Get("id")
	}
	id, err := parseID(rawID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sel := database.UpdateSelector{ID: id, OldName: optional(r, "oldName")}
	if sel.IsEmpty() {
		s.writeError(w, r, apperr.Validation("ID or old name is required"))
		return
	}

	affected, err := s.users.Update(r.Context(), sel, req.FullName, req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if affected == 0 {
		s.writeError(w, r, apperr.NotFound("User not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Delete a user
// @Description  Deletes the user with the given id, or with the given username when no id is supplied.
// @Tags         users
// @Produce      json
// @Param        id        path      int     false  "User id"
// @Param        username  query     string  false  "Username"
// @Success      204
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /delete-user/{id} [delete]
// @Router       /delete-user [delete]
func (s *Server) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	if rawID == "" {
		rawID = r.URL.Query().Get("id")
	}
	id, err := parseID(rawID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sel := database.DeleteSelector{ID: id, Username: optional(r, "username")}
	if sel.IsEmpty() {
		s.writeError(w, r, apperr.Validation("ID or username is required"))
		return
	}

	affected, err := s.users.Delete(r.Context(), sel)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if affected == 0 {
		s.writeError(w, r, apperr.NotFound("User not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
