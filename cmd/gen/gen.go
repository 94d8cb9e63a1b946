package gen

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Manu343726/regmap/pkg/generator"
	_ "github.com/Manu343726/regmap/pkg/generator/cenums"
	"github.com/Manu343726/regmap/pkg/regmap/listing"
	"github.com/Manu343726/regmap/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorSuccess = color.New(color.FgGreen)
)

var generatorName string
var outputFile string
var preview bool

// GenCmd represents the gen command
var GenCmd = &cobra.Command{
	Use:   "gen map-file [-- generator args]",
	Short: "Generate source code from a register map listing",
	Long: `Parses a YAML register map listing, validates it and runs the selected output
generator over it. Generation is deterministic: the same listing always
produces byte identical output.

By default the generated text is written to stdout; use --output to write it
to a file instead, or --preview to print it to the terminal with syntax
highlighting.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := listing.ParseFile(args[0])

		if err != nil {
			colorError.Fprintf(os.Stderr, "error loading register map: %v\n", err)
			os.Exit(1)
		}

		name := generatorName

		if name == "" {
			name = viper.GetString("generator")
		}

		if name == "" {
			name = "c-enums"
		}

		g, err := generator.Lookup(name)

		if err != nil {
			colorError.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		slog.Debug("running generator", "generator", name, "device", m.DeviceName, "blocks", m.Blocks.Len())

		text, err := g.Generate(m, args[1:])

		if err != nil {
			colorError.Fprintf(os.Stderr, "error generating output: %v\n", err)
			os.Exit(2)
		}

		switch {
		case preview:
			utils.PrintHighlightedCCode(text + "\n")
		case outputFile == "":
			fmt.Println(text)
		default:
			if err := os.WriteFile(outputFile, []byte(text+"\n"), 0644); err != nil {
				colorError.Fprintf(os.Stderr, "error writing output file: %v\n", err)
				os.Exit(2)
			}

			colorSuccess.Fprintf(os.Stderr, "%v written\n", outputFile)
		}
	},
}

func init() {
	GenCmd.Flags().StringVarP(&generatorName, "generator", "g", "", "Output generator to run. Defaults to the 'generator' config value, or c-enums")
	GenCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file. If not specified, the generated text is dumped to stdout")
	GenCmd.Flags().BoolVarP(&preview, "preview", "p", false, "Print the generated code to the terminal with syntax highlighting")
}
