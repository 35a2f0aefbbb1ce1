package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mbenali/jobboard/internal/server/middleware"
	"github.com/mbenali/jobboard/internal/types"
)

// handleRegister creates a new account and signs it in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.userService.Register(r.Context(), &req)
	if err != nil {
		s.serviceError(w, err, "Failed to create account")
		return
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error("failed to generate token", zap.String("user_id", user.ID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	s.successResponse(w, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

// handleLogin authenticates an account and returns a signed token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.userService.Login(r.Context(), &req)
	if err != nil {
		s.serviceError(w, err, "Failed to log in")
		return
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error("failed to generate token", zap.String("user_id", user.ID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	s.successResponse(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

// handleUpdateUser changes an account's name or password. Callers may only
// update their own account, regardless of role.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := parsePathUUID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if userID != session.UserID {
		s.errorResponse(w, http.StatusForbidden, "Access denied")
		return
	}

	var req types.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.userService.Update(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, err, "Failed to update account")
		return
	}

	s.successResponse(w, http.StatusOK, map[string]any{"user": user})
}
