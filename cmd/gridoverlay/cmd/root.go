package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-spatial/gridoverlay"
	"github.com/go-spatial/gridoverlay/config"
	"github.com/go-spatial/gridoverlay/internal/urlutil"
	cmdconfig "github.com/go-spatial/gridoverlay/cmd/gridoverlay/config"
	"github.com/spf13/cobra"
)

var (
	// Flags
	configFile string
	gridName   string
	workDir    string
)

func init() {
	Root.PersistentFlags().StringVar(&configFile, "config", "config.toml", "config file to use")
	Root.PersistentFlags().StringVar(&gridName, "grid", "", "the grid to use, all grids when empty")
	Root.Flags().StringVarP(&workDir, "workdir", "o", "", "workdir relative file stores write to")

	Root.AddCommand(Server)
	Root.AddCommand(Attributes)
}

// Root is the main cobra command
var Root = &cobra.Command{
	Use:   "gridoverlay",
	Short: "gridoverlay generates rotated, labeled map grids",
	Long: `gridoverlay generates the lines and labels of rotated rectangular map grids
and writes them out as GeoJSON, SVG and attribute files.`,
	RunE: rootCmdRunE,
}

// loadOverlay loads the config file and builds the overlay it describes
func loadOverlay() (config.Config, *gridoverlay.Overlay, error) {
	aURL, err := urlutil.Parse(configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	conf, err := config.LoadAndValidate(aURL)
	if err != nil {
		return conf, nil, ErrExitWith{
			Err:      err,
			Msg:      "error loading config",
			ExitCode: 1,
		}
	}
	o, err := cmdconfig.Load(conf)
	if err != nil {
		return conf, nil, ErrExitWith{
			Err:       err,
			Msg:       "error loading config",
			ExitCode:  1,
			ShowUsage: true,
		}
	}
	return conf, o, nil
}

func gridNames(o *gridoverlay.Overlay) []string {
	name := strings.ToLower(strings.TrimSpace(gridName))
	if name == "" {
		return o.Grids()
	}
	return []string{name}
}

func rootCmdRunE(cmd *cobra.Command, args []string) error {
	_, o, err := loadOverlay()
	if err != nil {
		return err
	}

	if workDir != "" {
		if err := os.Chdir(workDir); err != nil {
			return ErrExitWith{
				Err:      err,
				Msg:      fmt.Sprintf("error changing to working dir (%v), aborting", workDir),
				ExitCode: 3,
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, name := range gridNames(o) {
		files, err := o.Generate(ctx, name)
		if err != nil {
			if e, ok := err.(gridoverlay.ErrUnknownGridName); ok {
				fmt.Fprintf(cmd.OutOrStderr(), "\terror unknown grid name `%v`\n", string(e))
				fmt.Fprintf(cmd.OutOrStderr(), "\tknown grids\n")
				for _, gnm := range o.Grids() {
					fmt.Fprintf(cmd.OutOrStderr(), "\t\t%v\n", gnm)
				}
			}
			return ErrExitWith{
				Err:      err,
				Msg:      fmt.Sprintf("error generating grid %v", name),
				ExitCode: 2,
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "GeoJSON File: %v\n", files.GeoJSON)
		fmt.Fprintf(cmd.OutOrStdout(), "SVG File: %v\n", files.SVG)
		fmt.Fprintf(cmd.OutOrStdout(), "Attributes File: %v\n", files.Attributes)
	}
	return nil
}
