package tools

import (
	"fmt"
	"os"

	"github.com/Manu343726/regmap/pkg/regmap/listing"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs map-file",
	Short: "Show the documentation of a register map listing",
	Long: `Parses a YAML register map listing and dumps a human readable description of
the whole map: shared enums, register blocks and per register bit layout
diagrams.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := listing.ParseFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error loading register map:", err)
			os.Exit(1)
		}

		docs, err := m.DocString()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error formatting documentation:", err)
			os.Exit(1)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				fmt.Println("Error creating file:", err)
				os.Exit(1)
			}
			defer file.Close()
			fmt.Fprintln(file, docs)
		} else {
			fmt.Println(docs)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
