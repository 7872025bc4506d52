package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tally/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive calculator",
	Long:  `Starts a calculator session on the terminal. Type button labels separated by spaces ("5 + 3 =") and the display is printed after each line.`,
	Run: func(cmd *cobra.Command, args []string) {
		headless, _ := cmd.Flags().GetBool("headless")
		debug, _ := cmd.Flags().GetBool("debug")

		if err := cli.RunSession(cli.RunOptions{Headless: headless, Debug: debug}); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, no prompts, strict IO)")

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
}
