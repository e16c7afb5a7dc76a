package cmd

import (
	"context"
	"io"

	"github.com/go-spatial/gridoverlay/grid"
	"github.com/go-spatial/gridoverlay/internal/urlutil"
	"github.com/spf13/cobra"
)

var (
	// Attributes is the command to print the attribute set of a grid
	Attributes = &cobra.Command{
		Use:   "attributes",
		Short: "Print the attribute set of a grid",
		Long: `Print the attribute set of a grid as TOML. With --file the attribute file at the
given path or url is checked and printed with every key filled in, otherwise the
grid named by --grid is read from its provider.`,
		RunE: attributesCmdRunE,
	}

	attributesFile string
)

func init() {
	Attributes.Flags().StringVar(&attributesFile, "file", "", "attribute file to read instead of a configured grid")
}

func readAttributesFile(location string) (cfg grid.Config, err error) {
	aURL, err := urlutil.Parse(location)
	if err != nil {
		return cfg, err
	}
	err = urlutil.VisitReader(aURL, func(r io.Reader) error {
		var e error
		cfg, e = grid.ReadAttributes(r)
		return e
	})
	return cfg, err
}

func attributesCmdRunE(cmd *cobra.Command, args []string) error {
	if attributesFile != "" {
		cfg, err := readAttributesFile(attributesFile)
		if err != nil {
			return ErrExitWith{Err: err, Msg: "error reading attributes", ExitCode: 2}
		}
		return grid.WriteAttributes(cmd.OutOrStdout(), cfg)
	}

	if gridName == "" {
		return ErrExitWith{Msg: "one of --grid or --file is required", ExitCode: 1, ShowUsage: true}
	}
	_, o, err := loadOverlay()
	if err != nil {
		return err
	}
	l, err := o.Layer(context.Background(), gridName)
	if err != nil {
		return ErrExitWith{Err: err, Msg: "error reading grid " + gridName, ExitCode: 2}
	}
	return grid.WriteAttributes(cmd.OutOrStdout(), l.Config())
}
