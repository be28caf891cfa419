package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-scorer/internal/criteria"
	"github.com/spigell/resume-scorer/internal/report"
)

const (
	app       = "resume-scorer"
	envPrefix = "RESUME_SCORER"
)

// ErrConfig marks a configuration file that could not be read or decoded.
var ErrConfig = errors.New("configuration error")

type Config struct {
	CriteriaFile string `mapstructure:"criteria-file"`
	Format       string `mapstructure:"format"`
	Verbose      bool   `mapstructure:"verbose"`
	NoColor      bool   `mapstructure:"no-color"`
	Parallel     bool   `mapstructure:"parallel"`
}

var (
	// Used for flags.
	cfgFile string
	// configErr is reported by the commands that need the configuration.
	configErr error

	rootCmd = &cobra.Command{
		Use:   app + " [flags] <resume.pdf>",
		Short: "resume-scorer scores a PDF resume against a weighted set of criteria",
		Long: `resume-scorer extracts the text of a PDF resume and scores it against
a fixed, weighted set of criteria: contact details, section completeness,
skill keywords, experience, education and length.

Exit codes: 0 scored, 2 file not found, 3 unreadable or not a PDF,
4 invalid configuration, 1 any other failure.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "debug logging to stderr")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("criteria-file", "", "a file with scoring criteria replacing the built-in ones")

	rootCmd.Flags().BoolP("verbose", "v", false, "print sub-scores, evidence and the candidate profile")
	rootCmd.Flags().StringP("format", "f", "text", "report format: "+strings.Join(report.Formats(), ", "))
	rootCmd.Flags().Bool("no-color", false, "disable colored output")
	rootCmd.Flags().Bool("parallel", false, "run the feature extractors concurrently")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("criteria-file", rootCmd.PersistentFlags().Lookup("criteria-file"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("no-color", rootCmd.Flags().Lookup("no-color"))
	viper.BindPFlag("parallel", rootCmd.Flags().Lookup("parallel"))
}

func initConfig() {
	configErr = nil

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional unless it was asked for explicitly.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		configErr = fmt.Errorf("%w: %w", ErrConfig, err)
	}
}

func getConfig() (*Config, error) {
	if configErr != nil {
		return nil, configErr
	}

	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return config, nil
}

// loadCriteria picks the criteria source: an explicit criteria file, the
// criteria key of the config file, or the built-in set.
func loadCriteria(v *viper.Viper, file string) (*criteria.Set, error) {
	switch {
	case file != "":
		return criteria.LoadFile(file)
	case v.IsSet("criteria"):
		return criteria.Load(v)
	default:
		return criteria.Default()
	}
}
