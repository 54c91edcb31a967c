package bootstrap

import (
	"fmt"

	"github.com/docfold/docfold/pkg/conf"
)

// InitApplication prints the banner.
func InitApplication() {
	fmt.Print(`
     _            __       _     _
  __| | ___   ___/ _| ___ | | __| |
 / _  |/ _ \ / __| |_ / _ \| |/ _  |
| (_| | (_) | (__|  _| (_) | | (_| |
 \__,_|\___/ \___|_|  \___/|_|\__,_|

   V` + conf.BackendVersion + `
================================================

`)
}
