// Package serve implements the serve command, a small HTTP server that
// exposes the generated feed documents.
package serve

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"pagefeed/cmd/common"
	"pagefeed/internal/app"
	"pagefeed/internal/sources"
)

const contentTypeRSS = "application/rss+xml; charset=utf-8"

// Command returns the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve generated feeds over HTTP",
		Long: `Start an HTTP server exposing /feeds/:source (the generated RSS
document for that source) and /health. The server only reads feed
files; generation stays with the sync and schedule commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			router := newRouter(deps)

			deps.Logger.Info("HTTP server starting",
				"addr", deps.Config.ServerAddress,
				"sources", len(deps.Sources))

			if serveErr := router.Run(deps.Config.ServerAddress); serveErr != nil &&
				!errors.Is(serveErr, http.ErrServerClosed) {
				return serveErr
			}
			return nil
		},
	}
}

// newRouter builds the gin router for the feed server.
func newRouter(deps *common.CommandDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/feeds/:source", func(c *gin.Context) {
		src := sources.FindByID(deps.Sources, c.Param("source"))
		if src == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown source"})
			return
		}

		path := app.FeedPath(deps.Config, src)
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "feed not generated yet"})
			return
		}

		c.Header("Content-Type", contentTypeRSS)
		c.File(path)
	})

	return router
}
