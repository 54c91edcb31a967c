package cmd

import (
	"os"

	"github.com/docfold/docfold/bootstrap"
	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/cache"
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/crontab"
	"github.com/docfold/docfold/pkg/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(jobCmd)
}

var jobCmd = &cobra.Command{
	Use:       "job [name]",
	Short:     "Run one scheduled job immediately, e.g. cron_orphan_collect",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"cron_orphan_collect", "cron_garbage_collect"},
	Run: func(cmd *cobra.Command, args []string) {
		conf.Init(confPath)
		cache.Init()
		model.Init()
		bootstrap.InitObjectStore()

		if err := crontab.Run(args[0]); err != nil {
			util.Log().Error("%s", err)
			os.Exit(1)
		}
	},
}
