package tools

import (
	"fmt"

	"github.com/Manu343726/regmap/pkg/generator"
	_ "github.com/Manu343726/regmap/pkg/generator/cenums"
	"github.com/spf13/cobra"
)

var generatorsCmd = &cobra.Command{
	Use:   "generators",
	Short: "List the available output generators",
	Run: func(cmd *cobra.Command, args []string) {
		for _, entry := range generator.All() {
			fmt.Printf("%v\t%v\n", entry.First, entry.Second.Description())
		}
	},
}

func init() {
	ToolsCmd.AddCommand(generatorsCmd)
}
