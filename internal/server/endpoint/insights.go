package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/insightd/internal/errors"
	"github.com/skillsenselab/insightd/internal/insight"
	"github.com/skillsenselab/insightd/internal/service"
	"github.com/skillsenselab/insightd/internal/validation"
)

// StrategyHeader selects the extraction strategy per request.
const StrategyHeader = "X-Extraction-Strategy"

// InsightsRequest is the POST /insights request body.
type InsightsRequest struct {
	InteractionURL string   `json:"interaction_url" validate:"required"`
	Trackers       []string `json:"trackers" validate:"required,min=1"`
}

// Insights returns the handler for insight extraction requests. It answers
// 202 while the transcription job is running, 200 with the extracted
// insights once it completed, and 400 for request or job failures. Requests
// without a strategy header use defaultStrategy.
func Insights(svc *service.InsightService, defaultStrategy insight.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InsightsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, errors.Validation("request body must be valid JSON").WithCause(err))
			return
		}
		if err := validation.Validate(&req); err != nil {
			respondWithError(c, err)
			return
		}

		strategy := defaultStrategy
		if header := c.GetHeader(StrategyHeader); header != "" {
			var err error
			strategy, err = insight.ParseStrategy(header)
			if err != nil {
				respondWithError(c, errors.InvalidInput(StrategyHeader, err.Error()))
				return
			}
		}

		result, err := svc.Process(c.Request.Context(), service.Request{
			InteractionURL: req.InteractionURL,
			Trackers:       req.Trackers,
			Strategy:       strategy,
		})
		if err != nil {
			respondWithError(c, err)
			return
		}

		switch result.Status {
		case service.StatusCompleted:
			c.JSON(http.StatusOK, gin.H{"insights": result.Insights})
		case service.StatusStarted:
			c.JSON(http.StatusAccepted, gin.H{
				"transcription_status": string(result.Status),
				"job_name":             result.JobID,
			})
		default:
			c.JSON(http.StatusAccepted, gin.H{
				"transcription_status": string(result.Status),
			})
		}
	}
}
