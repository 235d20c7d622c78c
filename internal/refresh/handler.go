package refresh

import (
	"errors"
	"net/http"
	"time"

	httperr "github.com/aevon-lab/tally/internal/core/errors"
	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/gin-gonic/gin"
)

// RefreshAllResponse is the body of POST /v1/rollups/refresh.
type RefreshAllResponse struct {
	Results   []Result `json:"results"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	ElapsedMS int64    `json:"elapsed_ms"`
}

// RegisterRoutes registers the admin refresh endpoints.
func (c *Coordinator) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/rollups/refresh", c.HandleRefreshAll)
	r.POST("/v1/rollups/:name/refresh", c.HandleRefreshOne)
}

// HandleRefreshAll handles POST /v1/rollups/refresh. It always answers 200;
// per-rollup outcomes are in the body.
func (c *Coordinator) HandleRefreshAll(ctx *gin.Context) {
	start := time.Now()
	results := c.RefreshAll(ctx.Request.Context())

	resp := RefreshAllResponse{Results: results, ElapsedMS: time.Since(start).Milliseconds()}
	for _, res := range results {
		if res.Status == StatusSucceeded {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	ctx.JSON(http.StatusOK, resp)
}

// HandleRefreshOne handles POST /v1/rollups/:name/refresh.
func (c *Coordinator) HandleRefreshOne(ctx *gin.Context) {
	name := ctx.Param("name")

	res, err := c.RefreshOne(ctx.Request.Context(), name)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, res)
	case errors.Is(err, rollup.ErrUnknownRollup):
		ctx.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpRollupNotFoundError,
			Message:   "Unknown rollup",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrRefreshInProgress):
		ctx.JSON(http.StatusConflict, httperr.ErrorResponse{
			ErrorType: httperr.HttpRefreshInProgressError,
			Message:   "Refresh already in progress",
			Details:   res,
		})
	default:
		ctx.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpRefreshFailedError,
			Message:   "Rollup refresh failed",
			Details:   res,
		})
	}
}
