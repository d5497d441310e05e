package commands

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/abyxtask/taskctl/internal/api"
	"github.com/abyxtask/taskctl/internal/domain/entities"
	"github.com/abyxtask/taskctl/internal/jalali"
)

// NewTaskCommand creates the task management command.
func NewTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
		Long:  "List, add, update and delete tasks inside a project",
	}

	taskCmd.AddCommand(newTaskListCommand())
	taskCmd.AddCommand(newTaskAddCommand())
	taskCmd.AddCommand(newTaskUpdateCommand())
	taskCmd.AddCommand(newTaskDeleteCommand())
	return taskCmd
}

func newTaskListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "Show the project's task board",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := newSession()
			defer s.close()

			tasks, err := s.client.Tasks().List(background(), args[0])
			if err != nil {
				// 404 is the backend's way of saying the board is empty.
				if api.IsStatus(err, http.StatusNotFound) {
					fmt.Println("No tasks yet.")
					return
				}
				fail(err)
			}

			for _, status := range []entities.TaskStatus{
				entities.TaskStatusTodo,
				entities.TaskStatusInProgress,
				entities.TaskStatusDone,
			} {
				fmt.Printf("== %s\n", status.Label())
				for _, t := range tasks {
					if t.Status == status {
						printTask(t)
					}
				}
			}
		},
	}
}

// printTask renders one board card: title, Jalali due date, and the live
// countdown with its remaining fraction.
func printTask(t entities.Task) {
	fmt.Printf("  %s  %s\n", t.ID, t.Title)

	start, err := parseStart(t.StartDatetime)
	if err != nil {
		return
	}

	endDatePart, endTime, err := jalali.SplitDateTime(t.EndDatetime)
	if err != nil {
		return
	}
	endYear, endMonth, endDay, err := jalali.SplitDate(endDatePart)
	if err != nil {
		return
	}

	label, fraction, err := jalali.CalculateTimeDifference(endYear, endMonth, endDay, endTime, start)
	if err != nil {
		return
	}

	fmt.Printf("      due %s %s\n", jalaliDay(t.EndDatetime), endTime)
	fmt.Printf("      %s (%.0f%% remaining)\n", label, fraction*100)
}

// parseStart rebuilds the task's start instant from its wire datetime, as a
// Tehran wall-clock time.
func parseStart(datetime string) (time.Time, error) {
	datePart, clock, err := jalali.SplitDateTime(datetime)
	if err != nil {
		return time.Time{}, err
	}

	year, month, day, err := jalali.SplitDate(datePart)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(year, time.Month(month), day, t.Hour(), t.Minute(), 0, 0, jalali.Tehran()), nil
}

func newTaskAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a task with a Jalali deadline window",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			title, _ := cmd.Flags().GetString("title")
			desc, _ := cmd.Flags().GetString("desc")
			startDate, _ := cmd.Flags().GetString("start-date")
			startTime, _ := cmd.Flags().GetString("start-time")
			endDate, _ := cmd.Flags().GetString("end-date")
			endTime, _ := cmd.Flags().GetString("end-time")
			weight, _ := cmd.Flags().GetString("weight")
			tags, _ := cmd.Flags().GetStringSlice("tags")

			startDatetime, err := jalali.ToGregorian(startDate, startTime)
			if err != nil {
				log.Fatalf("Invalid start: %v", err)
			}
			endDatetime, err := jalali.ToGregorian(endDate, endTime)
			if err != nil {
				log.Fatalf("Invalid end: %v", err)
			}

			s := newSession()
			defer s.close()

			msg, err := s.client.Tasks().Create(background(), args[0], entities.Task{
				Title:         title,
				Description:   desc,
				Status:        entities.TaskStatusTodo,
				StartDatetime: startDatetime,
				EndDatetime:   endDatetime,
				TaskWeight:    weight,
				Tags:          tags,
				ProjectID:     args[0],
			})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("desc", "", "Task description")
	cmd.Flags().String("start-date", "", "Start date, Jalali Y-M-D (required)")
	cmd.Flags().String("start-time", "09:00", "Start time, HH:MM")
	cmd.Flags().String("end-date", "", "End date, Jalali Y-M-D (required)")
	cmd.Flags().String("end-time", "18:00", "End time, HH:MM")
	cmd.Flags().String("weight", "0", "Task weight")
	cmd.Flags().StringSlice("tags", nil, "Comma-separated tags")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("start-date")
	cmd.MarkFlagRequired("end-date")
	return cmd
}

func newTaskUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <project-id> <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			title, _ := cmd.Flags().GetString("title")
			desc, _ := cmd.Flags().GetString("desc")
			status, _ := cmd.Flags().GetString("status")
			progress, _ := cmd.Flags().GetInt("progress")

			task := entities.Task{
				Title:       title,
				Description: desc,
				Progress:    progress,
			}
			if status != "" {
				task.Status = entities.TaskStatus(status)
				if !task.Status.IsValid() {
					log.Fatalf("Invalid status %q: want pending, inProgress or completed", status)
				}
			}

			s := newSession()
			defer s.close()

			msg, err := s.client.Tasks().Update(background(), args[0], args[1], task)
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("desc", "", "New description")
	cmd.Flags().String("status", "", "New status (pending, inProgress, completed)")
	cmd.Flags().Int("progress", 0, "Progress percentage")
	return cmd
}

func newTaskDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id> <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			s := newSession()
			defer s.close()

			msg, err := s.client.Tasks().Delete(background(), args[0], args[1])
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}
}
