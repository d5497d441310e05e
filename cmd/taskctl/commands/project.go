package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abyxtask/taskctl/internal/domain/entities"
	"github.com/abyxtask/taskctl/internal/jalali"
)

// NewProjectCommand creates the project management command.
func NewProjectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
		Long:  "List, create, edit and delete projects",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		Run: func(cmd *cobra.Command, args []string) {
			s := newSession()
			defer s.close()

			projects, err := s.client.Projects().List(background())
			if err != nil {
				fail(err)
			}

			if len(projects) == 0 {
				fmt.Println("No projects yet.")
				return
			}

			for _, p := range projects {
				state := "open"
				if p.State {
					state = "done"
				}
				fmt.Printf("%s  %s (%s, %d members, created %s)\n",
					p.ID, p.Name, state, len(p.Users), jalaliDay(p.CreatedAt))
			}
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")

			s := newSession()
			defer s.close()

			msg, err := s.client.Projects().Create(background(), entities.Project{Name: name})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}
	createCmd.Flags().String("name", "", "Project name (required)")
	createCmd.MarkFlagRequired("name")

	editCmd := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Edit a project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			done, _ := cmd.Flags().GetBool("done")

			s := newSession()
			defer s.close()

			msg, err := s.client.Projects().Edit(background(), args[0], entities.Project{
				Name:  name,
				State: done,
			})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}
	editCmd.Flags().String("name", "", "New project name")
	editCmd.Flags().Bool("done", false, "Mark the project finished")

	deleteCmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := newSession()
			defer s.close()

			msg, err := s.client.Projects().Delete(background(), args[0])
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	projectCmd.AddCommand(listCmd)
	projectCmd.AddCommand(createCmd)
	projectCmd.AddCommand(editCmd)
	projectCmd.AddCommand(deleteCmd)
	return projectCmd
}

// jalaliDay renders a backend timestamp as a Jalali "day month year" string,
// falling back to the raw value when it does not parse.
func jalaliDay(datetime string) string {
	datePart, _, err := jalali.SplitDateTime(datetime)
	if err != nil {
		return datetime
	}

	d, err := jalali.FromGregorian(datePart)
	if err != nil {
		return datetime
	}

	month, err := jalali.MonthName(d.Month)
	if err != nil {
		return d.String()
	}
	return fmt.Sprintf("%d %s %d", d.Day, month, d.Year)
}
