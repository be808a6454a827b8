package webserver

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/igorcrp/alpha-quant/interfaces"
	"github.com/igorcrp/alpha-quant/services"
)

// Server is the HTTP face of the analysis engine. Authentication and
// billing terminate upstream; the only account input honored here is
// the forwarded account email the tier gate reads.
type Server struct {
	analysisService *services.AnalysisService
	subscriptions   interfaces.SubscriptionService
	indexCache      *services.IndexCacheService
	metricsService  services.MetricsService
	router          *gin.Engine
}

func NewServer(analysisService *services.AnalysisService, subscriptions interfaces.SubscriptionService,
	indexCache *services.IndexCacheService) *Server {

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		analysisService: analysisService,
		subscriptions:   subscriptions,
		indexCache:      indexCache,
		metricsService:  services.NewMetricsService(),
		router:          gin.Default(),
	}

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/periods", s.periods)
		v1.GET("/indexes", s.indexes)

		v1.POST("/analysis", s.runAnalysis)
		v1.GET("/analysis/results", s.results)
		v1.GET("/analysis/detail/:assetCode", s.assetDetail)
	}

	return s
}

// Router is exposed for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
