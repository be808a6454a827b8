package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/igorcrp/alpha-quant/helpers"
	"github.com/igorcrp/alpha-quant/models"
	"github.com/igorcrp/alpha-quant/services"
)

const version = "1.0.0"

var periodTokens = []string{"1m", "2m", "3m", "6m", "1y", "2y", "3y", "5y", "ytd", "mtd", "wtd", "1w", "2w"}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": version,
	})
}

func (s *Server) periods(c *gin.Context) {
	type periodInfo struct {
		Token           string `json:"token"`
		Label           string `json:"label"`
		MonthlyAnalysis bool   `json:"monthlyAnalysis"`
	}

	infos := make([]periodInfo, 0, len(periodTokens))
	for _, token := range periodTokens {
		infos = append(infos, periodInfo{
			Token:           token,
			Label:           helpers.PeriodLabel(token),
			MonthlyAnalysis: helpers.IsValidForMonthlyAnalysis(token),
		})
	}
	c.JSON(http.StatusOK, infos)
}

func (s *Server) indexes(c *gin.Context) {
	c.JSON(http.StatusOK, s.indexCache.Quotes())
}

func (s *Server) runAnalysis(c *gin.Context) {
	var params models.AnalysisParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	runID, results, err := s.analysisService.Run(params, nil)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runId":       runID,
		"resultCount": len(results),
	})
}

// results serves the sorted, paginated, tier-gated list of the current
// run. Sort and paging inputs from free accounts are ignored by the
// view layer itself.
func (s *Server) results(c *gin.Context) {
	subscribed := s.subscribed(c)

	view := services.NewResultViewService(subscribed)
	view.SetResults(s.analysisService.Results())

	if field := c.Query("sortField"); field != "" {
		view.SetSort(field, c.Query("sortDir") != "desc")
	}
	if sizeParam := c.Query("pageSize"); sizeParam != "" {
		if size, err := strconv.Atoi(sizeParam); err == nil {
			view.SetPageSize(size)
		}
	}
	if pageParam := c.Query("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			view.SetPage(page)
		}
	}

	if !view.HasResults() {
		c.JSON(http.StatusOK, gin.H{
			"hasResults": false,
			"message":    "No results found. Run an analysis first.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hasResults":     true,
		"runId":          s.analysisService.RunID(),
		"subscribed":     subscribed,
		"results":        view.VisibleResults(),
		"page":           view.Page(),
		"pageSize":       view.PageSize(),
		"totalPages":     view.TotalPages(),
		"pageWindow":     view.PageWindow(),
		"showPagination": view.ShowPagination(),
		"sortField":      view.SortField(),
		"ascending":      view.Ascending(),
	})
}

func (s *Server) assetDetail(c *gin.Context) {
	params := s.analysisService.LastParams()
	if s.analysisService.RunID() == "" {
		c.JSON(http.StatusConflict, gin.H{
			"error": "no analysis run available",
		})
		return
	}

	assetCode := c.Param("assetCode")
	detail, err := s.analysisService.FetchDetail(assetCode, params)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	metrics := s.metricsService.Calculate(detail.AnalysisResult, params)
	c.JSON(http.StatusOK, gin.H{
		"detail":  detail,
		"metrics": metrics,
	})
}

func (s *Server) subscribed(c *gin.Context) bool {
	email := c.GetHeader("X-Account-Email")
	if email == "" {
		return false
	}
	return s.subscriptions.IsSubscribed(email)
}
