// handlers/audit_handler.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dangtoan2205/asset-manager-sub000/authz"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

// ListAuditLogs returns the most recent audit entries, newest first.
func ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpViewAudit) {
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := stores.Audit.List(ctx, limit)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}
