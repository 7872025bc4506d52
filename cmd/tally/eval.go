package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/tally/internal/cli"
	"github.com/spf13/cobra"
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval [buttons...]",
	Short: "Press a button sequence and print the final display",
	Long: `Presses a full button sequence non-interactively and prints the resulting
display value. Unknown buttons and division by zero exit with status 1.

Example:
  tally eval "5 + 3 ="
  tally eval 12.5 "*" 2 =`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		sequence := strings.Join(args, " ")

		if err := cli.RunEval(os.Stdout, sequence, debug); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
