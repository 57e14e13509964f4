package controller

import (
	"net/http"

	"github.com/flavr-travel/flavr-backend/internal/cache"
	apperrors "github.com/flavr-travel/flavr-backend/internal/errors"
	"github.com/flavr-travel/flavr-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// DashboardController serves the bulk payload the dashboard loads on start:
// every collection in one response, plus a manual refresh trigger.
type DashboardController struct {
	store *cache.Store
}

func NewDashboardController(store *cache.Store) *DashboardController {
	return &DashboardController{store: store}
}

// Snapshot returns every collection in one payload
// GET /api/v1/dashboard/snapshot
func (ctrl *DashboardController) Snapshot(c *gin.Context) {
	snapshot := ctrl.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"data":    snapshot,
		"loading": ctrl.store.Loading(),
	})
}

// Refresh forces a full re-fetch of every collection
// POST /api/v1/dashboard/refresh
func (ctrl *DashboardController) Refresh(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.store.Refresh(); err != nil {
		log.Error("Manual cache refresh failed", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalCacheError,
			"Could not refresh data, showing the last known state")
		return
	}

	log.Info("Manual cache refresh completed", nil)

	c.JSON(http.StatusOK, gin.H{
		"message":        "Data refreshed",
		"last_refreshed": ctrl.store.LastRefreshed(),
	})
}
