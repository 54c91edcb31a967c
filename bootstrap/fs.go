package bootstrap

import (
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/filesystem"
	"github.com/docfold/docfold/pkg/filesystem/driver/s3"
	"github.com/docfold/docfold/pkg/util"
)

// InitObjectStore connects the configured bucket as the default object store.
func InitObjectStore() {
	handler, err := s3.New(conf.ObjectStoreConfig, util.Log().CopyWithPrefix("[S3]"))
	if err != nil {
		util.Log().Panic("Failed to initialize object store: %s", err)
	}

	filesystem.DefaultHandler = handler
	util.Log().Info("Object store bucket %q connected.", handler.Bucket())
}
