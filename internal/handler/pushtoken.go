package handler

import "net/http"

// pushTokenRequest is the PUT /api/v1/push-tokens body.
type pushTokenRequest struct {
	DeviceID string `json:"device_id"`
	Token    string `json:"token"`
}

// PutPushToken handles PUT /api/v1/push-tokens.
// Registration is an upsert on device_id, so re-registering refreshes the
// stored token in place. Responds 204: the caller learns nothing useful
// from the stored row.
func (s *Server) PutPushToken(w http.ResponseWriter, r *http.Request) {
	var req pushTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "request body is invalid: "+err.Error())
		return
	}

	if _, err := s.notifier.RegisterDevice(r.Context(), req.DeviceID, req.Token); err != nil {
		respondError(w, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
