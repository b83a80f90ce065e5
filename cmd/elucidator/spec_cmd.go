package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/spec"
)

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Parse and render specification text",
}

var specParseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse a full designation(...) specification and print its canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := spec.Parse(args[0])
		if err != nil {
			printParseError(err)
			return fmt.Errorf("parse failed")
		}
		pterm.Success.Printfln("parsed designation %q with %d member(s)", s.Designation, len(s.Members))
		pterm.Println(s.Canonical())
		return nil
	},
}

func printParseError(err error) {
	e, ok := errs.AsError(err)
	if !ok {
		pterm.Error.Println(err.Error())
		return
	}
	if e.Offset >= 0 {
		pterm.Error.Printfln("%s at byte %d (near %q): %s", e.Kind, e.Offset, e.Lexeme, e.Message)
	} else {
		pterm.Error.Printfln("%s: %s", e.Kind, e.Message)
	}
}

func init() {
	specCmd.AddCommand(specParseCmd)
}
