package main

import (
	"fmt"
	"strconv"
	"strings"

	"uzazi-salama-backend/section"

	"github.com/spf13/cobra"
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Daily self-care reminders",
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		reminders, src, err := sess.engine.Reminders(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		for _, r := range reminders.Entries {
			state := renderMuted("off")
			if r.Enabled {
				state = renderPass("on ")
			}
			fmt.Printf("%d. %s %-30s %s\n", r.ID, state, section.ReminderLabel(r.Type, sess.lang), renderMuted(strings.Join(r.Times, ", ")))
		}
		return nil
	},
}

var reminderToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Turn a reminder on or off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid reminder id %q", args[0])
		}

		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.ToggleReminder(ctx, sess.sc(), id)
		if err != nil {
			return err
		}
		printWritten("Reminder", w)
		return nil
	},
}

func init() {
	reminderCmd.AddCommand(reminderListCmd, reminderToggleCmd)
}
