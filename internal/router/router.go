package router

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"praxis-cashier-api/internal/handler"
	"praxis-cashier-api/internal/metrics"
	"praxis-cashier-api/internal/middleware"
	"praxis-cashier-api/internal/utils"
)

type Deps struct {
	Praxis    *handler.PraxisHandler
	History   *handler.HistoryHandler
	Health    *handler.HealthHandler
	Metrics   *metrics.Metrics
	PublicDir string
	// TrustedProxies may set X-Forwarded-For and X-Real-IP; empty trusts none.
	TrustedProxies []string
	AppLog         *logrus.Logger
	AccessLog      *logrus.Logger
	ErrorLog       *logrus.Logger
}

func New(d Deps) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.Use(middleware.Trace(), middleware.Recover(d.AppLog), middleware.RequestLogger(d.AccessLog, d.ErrorLog))

	r.GET("/health", d.Health.Get)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api")
	{
		api.POST("/praxis/init", d.Praxis.Init)
		api.POST("/praxis/webhook", d.Praxis.Webhook)
		api.GET("/history", d.History.List)
	}

	r.NoRoute(staticFallback(d.PublicDir))
	return r, nil
}

// staticFallback serves files from dir and answers any other GET with
// dir/index.html.
func staticFallback(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, utils.Response{OK: false, Error: "not_found"})
			return
		}
		p := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			c.File(p)
			return
		}
		c.File(index)
	}
}
