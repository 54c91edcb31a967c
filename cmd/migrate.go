package cmd

import (
	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/cache"
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the catalog schema and default rows, then exit",
	Run: func(cmd *cobra.Command, args []string) {
		conf.Init(confPath)
		cache.Init()
		model.Init()
		util.Log().Info("Catalog schema is up to date with version %s.", conf.RequiredDBVersion)
	},
}
