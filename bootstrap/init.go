package bootstrap

import (
	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/cache"
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/crontab"
	"github.com/gin-gonic/gin"
)

// Init loads the config at path and brings up every dependency.
func Init(path string) {
	InitApplication()
	conf.Init(path)
	// release mode unless debugging
	if !conf.SystemConfig.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	dependencies := []struct {
		name    string
		factory func()
	}{
		{"cache", cache.Init},
		{"catalog", model.Init},
		{"object store", InitObjectStore},
		{"crontab", crontab.Init},
	}

	for _, dependency := range dependencies {
		dependency.factory()
	}
}
