package handlers

import (
	"log/slog"
	"net/http"
)

// AuditHandler serves the movie audit log.
type AuditHandler struct {
	Repo   AuditStore
	Logger *slog.Logger
}

// ListAudit returns the most recent audit entries, newest first.
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Repo.List(r.Context())
	if err != nil {
		internalError(w, r, h.Logger, "list audit failed", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
