package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abyxtask/taskctl/cmd/taskctl/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskctl",
		Short: "Task backend client",
		Long:  `taskctl manages your projects and tasks through the task backend's REST API, with deadlines shown in the Jalali calendar.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewAuthCommands()...)
	rootCmd.AddCommand(commands.NewProfileCommand())
	rootCmd.AddCommand(commands.NewWhoamiCommand())
	rootCmd.AddCommand(commands.NewProjectCommand())
	rootCmd.AddCommand(commands.NewTaskCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
