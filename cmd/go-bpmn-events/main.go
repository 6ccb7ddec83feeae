/*
go-bpmn-events is a CLI for inspecting the event listeners, which are attached to the elements of a BPMN process.

Usage:

	go-bpmn-events [flags]
	go-bpmn-events [command]

Available Commands:

	completion  Generate the autocompletion script for the specified shell
	help        Help about any command
	inspect     Parse a BPMN process and list the attached event listeners
	types       List the BPMN element types, listeners are attached to
	version     Show version

Flags:

	    --debug   Log parsed BPMN elements
	-h, --help    help for go-bpmn-events

Use "go-bpmn-events [command] --help" for more information about a command.
*/
package main

import (
	"log"
	"os"

	"github.com/gclaussn/go-bpmn-events/cli"
)

var (
	version = "unknown-version"
)

func main() {
	log.SetOutput(os.Stderr)

	cli := cli.New(version)
	os.Exit(cli.Execute())
}
