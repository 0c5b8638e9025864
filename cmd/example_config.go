package cmd

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/urfave/cli/v3"
)

//go:embed fimgen.example.yaml
var exampleConfig string

// ExampleConfigCommand returns the example-config subcommand.
func ExampleConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "example-config",
		Usage: "print an annotated config file for generate",
		Description: "Print every config key with its default value.\n\n" +
			"Examples:\n" +
			"  fimgen example-config > fimgen.yaml\n" +
			"  fimgen generate --config fimgen.yaml",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprint(stdout(cmd), exampleConfig)
			return err
		},
	}
}
