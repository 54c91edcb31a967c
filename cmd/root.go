package cmd

import (
	"fmt"
	"os"

	"github.com/docfold/docfold/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	confPath string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&confPath, "conf", "c", util.RelativePath("conf.ini"), "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&util.UseWorkingDir, "use-working-dir", "w", false, "Use working directory, instead of executable directory")
}

var rootCmd = &cobra.Command{
	Use:   "docfold",
	Short: "docfold is a multi-tenant document store backed by S3",
	Long: `Multi-tenant document store keeping its catalog in a relational database
and file contents in an S3 compatible bucket.`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

// Execute runs the command line, defaulting to the server command.
func Execute() {
	cmd, _, err := rootCmd.Find(os.Args[1:])
	// redirect to default server cmd if no cmd is given
	if err == nil && cmd.Use == rootCmd.Use && cmd.Flags().Parse(os.Args[1:]) != pflag.ErrHelp {
		args := append([]string{"server"}, os.Args[1:]...)
		rootCmd.SetArgs(args)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
