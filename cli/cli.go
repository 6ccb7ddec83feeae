package cli

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/gclaussn/go-bpmn-events/parse"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	envLookupAllowed = "envLookupAllowed" // flag level annotation that allows an environment variable lookup
	envPrefix        = "GO_BPMN_EVENTS_"
	program          = "go-bpmn-events"

	outputJson  = "json"
	outputTable = "table"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("flag")
	})
	return validate
}

func New(version string) *Cli {
	cli := Cli{
		version: version,
		parser:  parse.New(parse.EventSupportHandler{}),
	}

	cli.rootCmd = newRootCmd(&cli)

	return &cli
}

type Cli struct {
	version string

	rootCmd *cobra.Command

	parser       *parse.Parser
	debugEnabled bool
}

func (c *Cli) Execute() int {
	if err := c.rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func (c *Cli) help(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

func newRootCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   program,
		Short: "Inspect the event listeners, which are attached to BPMN elements",
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true

			var err error
			c.Flags().VisitAll(func(f *pflag.Flag) {
				if f.Changed {
					return
				}
				if _, ok := f.Annotations[envLookupAllowed]; !ok {
					return
				}

				// e.g. bpmn-process-id -> GO_BPMN_EVENTS_BPMN_PROCESS_ID
				key := envPrefix + strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_")

				if value, ok := os.LookupEnv(key); ok {
					if setErr := f.Value.Set(value); setErr != nil && err == nil {
						err = fmt.Errorf("invalid value of environment variable %s: %v", key, setErr)
					}
				}
			})

			return err
		},
		RunE: cli.help,
	}

	c.PersistentFlags().BoolVar(&cli.debugEnabled, "debug", false, "Log parsed BPMN elements")
	c.PersistentFlags().SetAnnotation("debug", envLookupAllowed, nil)

	c.AddCommand(newInspectCmd(cli))
	c.AddCommand(newTypesCmd(cli))
	c.AddCommand(newVersionCmd(cli))

	return &c
}

func newVersionCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(c *cobra.Command, _ []string) {
			c.Println(cli.version)
		},
	}

	return &c
}

func (c *Cli) debugf(format string, v ...any) {
	if c.debugEnabled {
		log.Printf(format, v...)
	}
}
