package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gclaussn/go-bpmn-events/model"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	BpmnFileName  string `flag:"bpmn-file" validate:"required"`
	BpmnProcessId string `flag:"bpmn-process-id" validate:"required"`
	Output        string `flag:"output" validate:"oneof=table json"`
}

func newInspectCmd(cli *Cli) *cobra.Command {
	var options inspectOptions

	c := cobra.Command{
		Use:   "inspect",
		Short: "Parse a BPMN process and list the attached event listeners",
		RunE: func(c *cobra.Command, _ []string) error {
			if err := validate.Struct(options); err != nil {
				return fmt.Errorf("invalid options: %v", err)
			}

			bpmnFile, err := os.Open(options.BpmnFileName)
			if err != nil {
				return fmt.Errorf("failed to open BPMN file %s: %v", options.BpmnFileName, err)
			}

			defer bpmnFile.Close()

			bpmnModel, err := model.New(bpmnFile)
			if err != nil {
				return fmt.Errorf("failed to parse BPMN XML: %v", err)
			}

			if err := cli.parser.Parse(bpmnModel, options.BpmnProcessId); err != nil {
				return err
			}

			processElement, _ := bpmnModel.ProcessById(options.BpmnProcessId)

			bpmnElements := processElement.AllElements()
			for _, bpmnElement := range bpmnElements {
				if cli.parser.HandlesType(bpmnElement.Type) {
					cli.debugf("parsed %s %s: %d execution listeners, %d task listeners", bpmnElement.Type, bpmnElement.Id, len(bpmnElement.ExecutionListeners), len(bpmnElement.TaskListeners))
				} else {
					cli.debugf("skipped %s %s", bpmnElement.Type, bpmnElement.Id)
				}
			}

			views := newListenerViews(bpmnElements)

			if options.Output == outputJson {
				b, err := json.MarshalIndent(views, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal listeners: %v", err)
				}

				c.Println(string(b))
				return nil
			}

			table := newTable([]string{
				"ELEMENT ID",
				"ELEMENT TYPE",
				"KIND",
				"EVENT",
				"EVENT TYPE",
			})

			for _, view := range views {
				table.addRow([]string{
					view.ElementId,
					view.ElementType.String(),
					view.Kind,
					string(view.Event),
					view.EventType.String(),
				})
			}

			c.Print(table.format())
			return nil
		},
	}

	c.Flags().StringVar(&options.BpmnFileName, "bpmn-file", "", "Path to a BPMN XML file")
	c.Flags().StringVar(&options.BpmnProcessId, "bpmn-process-id", "", "ID of the process element within the BPMN XML")
	c.Flags().StringVar(&options.Output, "output", outputTable, "Output format: table or json")

	c.Flags().SetAnnotation("output", envLookupAllowed, nil)

	c.MarkFlagRequired("bpmn-file")
	c.MarkFlagRequired("bpmn-process-id")

	c.MarkFlagFilename("bpmn-file", ".bpmn", ".bpmn20.xml", ".xml")

	return &c
}
