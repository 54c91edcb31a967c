package routers

import (
	"github.com/docfold/docfold/middleware"
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/util"
	"github.com/docfold/docfold/routers/controllers"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// InitRouter builds the API engine.
func InitRouter() *gin.Engine {
	if !conf.SystemConfig.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.InitializeHandling())
	r.Use(middleware.Logging())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/file/upload"})))
	initCORS(r)

	return initMasterRouter(r)
}

// initCORS enables cross origin requests when origins are configured.
func initCORS(router *gin.Engine) {
	if len(conf.CORSConfig.AllowOrigins) == 0 || conf.CORSConfig.AllowOrigins[0] == "UNSET" {
		return
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.CORSConfig.AllowOrigins,
		AllowMethods:     conf.CORSConfig.AllowMethods,
		AllowHeaders:     conf.CORSConfig.AllowHeaders,
		AllowCredentials: conf.CORSConfig.AllowCredentials,
		ExposeHeaders:    append([]string{middleware.CorrelationHeader}, conf.CORSConfig.ExposeHeaders...),
	}))
	util.Log().Info("CORS enabled for %v.", conf.CORSConfig.AllowOrigins)
}

func initMasterRouter(r *gin.Engine) *gin.Engine {
	v1 := r.Group("/api/v1")
	v1.Use(middleware.CurrentUser())
	v1.Use(middleware.CacheControl())

	site := v1.Group("site")
	{
		site.GET("ping", controllers.Ping)
	}

	auth := v1.Group("")
	auth.Use(middleware.AuthRequired())
	{
		directory := auth.Group("directory")
		{
			// List children, "root" for the scope root
			directory.GET(":id", controllers.ListDirectory)
			directory.PUT("", controllers.CreateDirectory)
		}

		file := auth.Group("file")
		{
			file.POST("upload", controllers.FileUpload)
		}

		object := auth.Group("object")
		{
			object.POST("copy", controllers.Copy)
			object.PATCH("move", controllers.Move)
			object.POST("rename", controllers.Rename)
			object.DELETE("", controllers.Delete)
			object.PATCH("archive", controllers.Archive)
			object.PATCH("unarchive", controllers.Unarchive)
		}

		user := auth.Group("user")
		{
			user.GET("notification", controllers.ListNotifications)
		}
	}

	return r
}
