package cli

import (
	"slices"

	"github.com/gclaussn/go-bpmn-events/model"
	"github.com/gclaussn/go-bpmn-events/parse"
	"github.com/spf13/cobra"
)

func newTypesCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   "types",
		Short: "List the BPMN element types, listeners are attached to",
		Run: func(c *cobra.Command, _ []string) {
			handledTypes := parse.EventSupportHandler{}.HandledTypes()

			slices.SortFunc(handledTypes, func(a model.ElementType, b model.ElementType) int {
				return int(a) - int(b)
			})

			for _, elementType := range handledTypes {
				c.Println(elementType.String())
			}
		},
	}

	return &c
}
