package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/resmon/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(styleBrand.Render("resmon") + " " + styleVersion.Render(buildinfo.Version))
		fmt.Println(styleLabel.Render("  Commit:  ") + styleValue.Render(buildinfo.CommitHash))
		fmt.Println(styleLabel.Render("  Built:   ") + styleValue.Render(buildinfo.BuildDate))
		fmt.Println(styleLabel.Render("  OS/Arch: ") + styleValue.Render(fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))
		fmt.Println(styleLabel.Render("  Go:      ") + styleValue.Render(runtime.Version()))
	},
}
