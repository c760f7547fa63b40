package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"nq2jld/internal/config"
	"nq2jld/internal/millers"
	"nq2jld/internal/summoner"
	"nq2jld/internal/summoner/acquire"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// converter applies command line overrides on top of the config
func converter(cmd *cobra.Command) (summoner.Converter, error) {
	v1 := viper.New()
	if cfg, _ := cmd.Flags().GetString("cfg"); cfg != "" {
		var err error
		if v1, err = config.ReadConfigPath(cfg); err != nil {
			return summoner.Converter{}, err
		}
	}
	conv, err := summoner.NewConverter(v1)
	if err != nil {
		return conv, err
	}

	flags := cmd.Flags()
	if flags.Changed("type-literals") {
		conv.Convert.TypeLiterals, _ = flags.GetString("type-literals")
		if _, err := conv.Convert.Policy(); err != nil {
			return conv, err
		}
	}
	if flags.Changed("pretty") {
		conv.Convert.Pretty, _ = flags.GetBool("pretty")
	}
	if flags.Changed("graph") {
		conv.Convert.Graph, _ = flags.GetBool("graph")
	}
	if flags.Changed("verify") {
		conv.Convert.Verify, _ = flags.GetBool("verify")
	}
	return conv, nil
}

func openInput(ctx context.Context, cmd *cobra.Command, location, format string) (acquire.Input, error) {
	if location == "-" {
		if format == "" {
			format = config.NQuads
		}
		format, err := acquire.DetectFormat(format, "")
		if err != nil {
			return acquire.Input{}, err
		}
		return acquire.Input{Body: io.NopCloser(cmd.InOrStdin()), Format: format}, nil
	}

	src := config.Source{Name: location, SourceType: config.FileSource, URL: location, Format: format}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		src.SourceType = config.URLSource
		src.Rude, _ = cmd.Flags().GetBool("rude")
	}
	return acquire.Opener{}.Open(ctx, src)
}

var convertCmd = &cobra.Command{
	Use:   "convert [FILE|URL|-]",
	Short: "Convert one N-Quads or JSON-LD input to JSON-LD node objects",
	Long: `Convert reads one input, from a file, a url or stdin when FILE is - or
missing, and writes the JSON-LD node objects to stdout or --output.
`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		location := "-"
		if len(args) == 1 {
			location = args[0]
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		selectPath, _ := cmd.Flags().GetString("select")

		conv, err := converter(cmd)
		if err != nil {
			return err
		}

		in, err := openInput(cmd.Context(), cmd, location, format)
		if err != nil {
			return err
		}
		defer in.Body.Close()

		render := millers.RenderOptions{Select: selectPath, Graph: conv.Convert.Graph, Pretty: conv.Convert.Pretty}
		out, nodes, err := conv.Run(in.Body, in.Format, render)
		if err != nil {
			return err
		}
		log.Debug("converted ", location, " into ", nodes, " nodes")

		if output != "" {
			return os.WriteFile(output, out, 0o644)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
		return err
	},
}

func init() {
	convertCmd.Flags().String("format", "", "input format (nquads | ntriples | turtle | jsonld), detected from the extension when empty")
	convertCmd.Flags().String("output", "", "write to this file instead of stdout")
	convertCmd.Flags().Bool("pretty", false, "pretty print the output")
	convertCmd.Flags().Bool("graph", false, "wrap the node objects in {\"@graph\": [...]}")
	convertCmd.Flags().String("select", "", "JSONPath applied to the converted node array")
	convertCmd.Flags().String("type-literals", "keep", "rdf:type statements with literal objects: keep (as null) | skip")
	convertCmd.Flags().Bool("verify", false, "warn when the output does not round trip to the input statements")
	rootCmd.AddCommand(convertCmd)
}
