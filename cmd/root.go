package cmd

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mybundle/pkg/config"
	"mybundle/pkg/logging"
	"mybundle/pkg/version"
)

// app carries what every command needs once the root flags are parsed.
type app struct {
	fs         billy.Filesystem
	cfg        *config.Config
	debug      bool
	configPath string
	log        *zap.Logger // overrides the global logger when set
}

func (a *app) logger() *zap.Logger {
	if a.log != nil {
		return a.log
	}
	return logging.Logger
}

// NewRootCmd builds the command tree. Paths handed to fs are absolute.
func NewRootCmd(fs billy.Filesystem) *cobra.Command {
	return newRootCmd(&app{fs: fs})
}

func newRootCmd(a *app) *cobra.Command {

	root := &cobra.Command{
		Use:   version.AppName,
		Short: "Bundle source files into a single file",
		Long: `mybundle scans the current directory tree, keeps the source files of the
requested languages and concatenates them into one bundle file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Setup(a.debug, version.AppName, version.Get().Version); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			a.cfg, err = config.Load(cwd, a.configPath)
			if err != nil {
				return err
			}
			a.logger().Debug("Loaded configuration",
				zap.Strings("exclude", a.cfg.Exclude),
				zap.String("excludeMatch", a.cfg.ExcludeMatch),
				zap.String("languageMatch", a.cfg.LanguageMatch))
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable development logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a config file (default ./.mybundle.yaml)")

	root.AddCommand(
		newBundleCmd(a),
		newCreateRspCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against the real filesystem.
func Execute(args []string) error {
	root := NewRootCmd(osfs.New("/"))
	root.SetArgs(args)
	return root.Execute()
}
