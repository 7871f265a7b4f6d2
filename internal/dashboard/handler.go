package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/shopadmin/shopadmin/internal/core/errors"
)

// RegisterRoutes registers the dashboard API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/dashboard")
	g.GET("/stats", s.HandleStats)
	g.GET("/pie", s.HandlePieCharts)
	g.GET("/bar", s.HandleBarCharts)
	g.GET("/line", s.HandleLineCharts)
}

// HandleStats handles GET /dashboard/stats
func (s *Service) HandleStats(c *gin.Context) {
	stats, err := s.DashboardStats(c.Request.Context())
	if err != nil {
		reportFailed(c, ReportStats, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// HandlePieCharts handles GET /dashboard/pie
func (s *Service) HandlePieCharts(c *gin.Context) {
	charts, err := s.PieCharts(c.Request.Context())
	if err != nil {
		reportFailed(c, ReportPie, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "charts": charts})
}

// HandleBarCharts handles GET /dashboard/bar
func (s *Service) HandleBarCharts(c *gin.Context) {
	charts, err := s.BarCharts(c.Request.Context())
	if err != nil {
		reportFailed(c, ReportBar, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "charts": charts})
}

// HandleLineCharts handles GET /dashboard/line
func (s *Service) HandleLineCharts(c *gin.Context) {
	charts, err := s.LineCharts(c.Request.Context())
	if err != nil {
		reportFailed(c, ReportLine, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "charts": charts})
}

func reportFailed(c *gin.Context, report string, err error) {
	slog.Error("[Dashboard] Failed to build report", "report", report, "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   "Failed to build " + report + " report",
		Details:   err.Error(),
	})
}
