package httpapi

import (
	"net/http"

	"anidex.org/internal/audit"
)

type createTokenRequest struct {
	DisplayName string `json:"display_name"`
}

type createAdminTokenRequest struct {
	DisplayName    string `json:"display_name"`
	AdminMasterKey string `json:"admin_master_key"`
}

type recoverUserRequest struct {
	RecoveryKey string `json:"recovery_key"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (a *API) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	var req createTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := a.auth.Issue(r.Context(), req.DisplayName)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.token_created", map[string]any{
		"display_name": req.DisplayName,
	})
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (a *API) handleCreateAdminToken(w http.ResponseWriter, r *http.Request) {
	var req createAdminTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := a.auth.IssueAdmin(r.Context(), req.DisplayName, req.AdminMasterKey)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.admin_token_created", map[string]any{
		"display_name": req.DisplayName,
	})
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (a *API) handleRecoverUser(w http.ResponseWriter, r *http.Request) {
	var req recoverUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := a.auth.Recover(r.Context(), req.RecoveryKey)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.user_recovered", nil)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (a *API) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":              identity.ID,
		"display_name":    identity.DisplayName,
		"role":            identity.Role.String(),
		"mal_profile":     identity.MalProfile,
		"anilist_profile": identity.AnilistProfile,
	})
}

func (a *API) handleRecoveryKey(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	key, err := a.auth.RecoveryKey(r.Context(), identity.ID)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.recovery_key_issued", nil)
	writeJSON(w, http.StatusOK, map[string]any{"recovery_key": key})
}
