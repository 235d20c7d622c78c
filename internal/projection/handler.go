package projection

import (
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/tally/internal/core/errors"
	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all read-only rollup routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/rollups", s.HandleSummaries)
	r.GET("/v1/rollups/:name", s.HandleSummary)
	r.GET("/v1/rollups/:name/rows", s.HandleList)
	r.GET("/v1/dashboard", s.HandleDashboard)
}

// HandleSummaries handles GET /v1/rollups
func (s *Service) HandleSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rollups": s.Summaries()})
}

// HandleSummary handles GET /v1/rollups/:name
func (s *Service) HandleSummary(c *gin.Context) {
	resp, err := s.Summary(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleList handles GET /v1/rollups/:name/rows
// Query parameters: limit, offset
func (s *Service) HandleList(c *gin.Context) {
	var req ListRequest

	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.List(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleDashboard handles GET /v1/dashboard
func (s *Service) HandleDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, s.Dashboard())
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid rollup query",
			Details:   err.Error(),
		})
	case errors.Is(err, rollup.ErrUnknownRollup):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpRollupNotFoundError,
			Message:   "Unknown rollup",
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to read rollup",
			Details:   err.Error(),
		})
	}
}
