package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetUserData returns the caller's document, or 204 if they have never
// synced.
func (s *Server) handleGetUserData(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	data, found, err := s.store.GetUserData(r.Context(), userID)
	if err != nil {
		s.log.Error("loading user data", "user", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage error"})
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleSaveUserData validates and stores the caller's document. History is
// pruned and updatedAt stamped server-side, so clients that skip either still
// converge.
func (s *Server) handleSaveUserData(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	var data models.UserData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := models.ValidateUserData(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	data.History = models.PruneHistory(data.History, time.Now())
	data.UpdatedAt = time.Now().UnixMilli()

	if err := s.store.UpsertUserData(r.Context(), userID, data); err != nil {
		s.log.Error("saving user data", "user", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updatedAt": data.UpdatedAt})
}

// handleDeleteUserData removes the caller's document.
func (s *Server) handleDeleteUserData(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	if err := s.store.DeleteUserData(r.Context(), userID); err != nil {
		s.log.Error("deleting user data", "user", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
