package handler

import (
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/verdant-labs/plantdex/internal/middleware"
)

type RouterDeps struct {
	Plants *PlantHandler
	Tags   *TagHandler
	Assets *AssetHandler
	Upload *UploadHandler

	CORSAllowlist   []string
	UploadRateLimit time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(deps.CORSAllowlist))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	api := router.Group("/api")
	api.GET("/plants/", deps.Plants.List)
	api.POST("/plants/", deps.Plants.Create)
	api.GET("/plants/:id/", deps.Plants.Get)
	api.POST("/plants/:id/", deps.Plants.Update)
	api.DELETE("/plants/:id/", deps.Plants.Delete)
	api.POST("/plants/:id/add/", deps.Plants.AddTag)
	api.GET("/plants/:id/notes/html/", deps.Plants.NotesHTML)

	api.GET("/tags/", deps.Tags.List)
	api.POST("/tags/", deps.Tags.Create)
	api.GET("/tags/:id/", deps.Tags.Get)

	api.GET("/assets/", deps.Assets.List)

	router.POST("/upload/", middleware.RateLimit(deps.UploadRateLimit), deps.Upload.Upload)

	return router
}
