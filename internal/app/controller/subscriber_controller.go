package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/flavr-travel/flavr-backend/internal/app/service"
	apperrors "github.com/flavr-travel/flavr-backend/internal/errors"
	"github.com/flavr-travel/flavr-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SubscriberController struct {
	subscriberService service.SubscriberService
}

func NewSubscriberController(subscriberService service.SubscriberService) *SubscriberController {
	return &SubscriberController{
		subscriberService: subscriberService,
	}
}

// List returns all newsletter subscribers, newest first
// GET /api/v1/subscribers
func (ctrl *SubscriberController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	subscribers := ctrl.subscriberService.List()
	response := gin.H{
		"subscribers": subscribers,
		"total":       len(subscribers),
	}

	// Signups land from the public site between refreshes, so the badge
	// count comes from the database rather than the cached list.
	if liveTotal, err := ctrl.subscriberService.Count(); err != nil {
		log.Warn("Failed to count subscribers", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		response["live_total"] = liveTotal
	}

	c.JSON(http.StatusOK, response)
}

// Export streams the subscriber list as an xlsx download
// GET /api/v1/subscribers/export
func (ctrl *SubscriberController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	f, err := ctrl.subscriberService.ExportXLSX()
	if err != nil {
		log.Error("Failed to build subscriber export", err, nil)
		apperrors.InternalError(c, "Failed to export subscribers")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("subscribers-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream subscriber export", err, nil)
		return
	}

	log.Info("Subscriber export downloaded", map[string]interface{}{
		"filename": filename,
	})
}
