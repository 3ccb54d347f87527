// handlers/health_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

var startTime = time.Now()

// HealthCheck is unauthenticated and used by load balancers.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(startTime).Round(time.Second).String(),
	})
}
