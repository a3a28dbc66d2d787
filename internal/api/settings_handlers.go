// Package api provides settings and emergency unlock handlers for CurioGate
// endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/curiogate/curiogate/internal/models"
)

// profileHandler handles GET and PUT /settings/profile
func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.profileHandler: processing request", "method", r.Method)

	switch r.Method {
	case http.MethodGet:
		p, err := s.st.GetChildProfile()
		if err != nil {
			slog.Error("Server.profileHandler: read failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to read profile")
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(p))
	case http.MethodPut:
		var req models.ProfileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON format")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.st.UpdateChildProfile(models.ChildProfile{Age: req.Age, Gender: req.Gender}); err != nil {
			slog.Error("Server.profileHandler: update failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Profile updated", nil))
	default:
		w.Header().Set("Allow", "GET, PUT")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// interestsHandler handles PUT /settings/interests
func (s *Server) interestsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.interestsHandler: processing request", "method", r.Method)
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", http.MethodPut)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.InterestUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.st.UpdateInterests(req.Interests); err != nil {
		slog.Error("Server.interestsHandler: update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update interests")
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Interests updated", nil))
}

// setPinHandler handles POST /settings/pin
func (s *Server) setPinHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.setPinHandler: processing request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.PinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.st.SetPin(req.Pin); err != nil {
		slog.Error("Server.setPinHandler: store failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store PIN")
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("PIN updated", nil))
}

// verifyPinHandler handles POST /settings/pin/verify
func (s *Server) verifyPinHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.verifyPinHandler: processing request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.PinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	valid, err := s.st.VerifyPin(req.Pin)
	if err != nil {
		slog.Error("Server.verifyPinHandler: verification failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to verify PIN")
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]bool{"valid": valid}))
}

// emergencyUnlockHandler handles POST /unlock/emergency
func (s *Server) emergencyUnlockHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.emergencyUnlockHandler: processing request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.EmergencyUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	valid, err := s.st.VerifyPin(req.Pin)
	if err != nil {
		slog.Error("Server.emergencyUnlockHandler: PIN verification failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to verify PIN")
		return
	}
	if !valid {
		slog.Warn("Server.emergencyUnlockHandler: invalid PIN")
		writeError(w, http.StatusForbidden, "Invalid PIN")
		return
	}

	if err := s.st.LogEmergencyUnlock(req.Reason); err != nil {
		slog.Error("Server.emergencyUnlockHandler: logging failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log unlock")
		return
	}

	count, err := s.st.GetEmergencyUnlockCount()
	if err != nil {
		slog.Warn("Server.emergencyUnlockHandler: count read failed", "error", err)
		count = 0
	}

	// Parent alert is best effort; the unlock proceeds either way.
	if err := s.notifier.NotifyEmergencyUnlock(r.Context(), req.Reason, count); err != nil {
		slog.Warn("Server.emergencyUnlockHandler: parent alert failed", "error", err)
	}

	slog.Info("Server.emergencyUnlockHandler: emergency unlock granted", "count", count)
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]interface{}{"unlock": true, "count": count}))
}

// emergencyUnlockCountHandler handles GET /unlock/emergency/count
func (s *Server) emergencyUnlockCountHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.emergencyUnlockCountHandler: processing request", "method", r.Method)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	count, err := s.st.GetEmergencyUnlockCount()
	if err != nil {
		slog.Error("Server.emergencyUnlockCountHandler: count read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read unlock count")
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]int{"count": count}))
}
