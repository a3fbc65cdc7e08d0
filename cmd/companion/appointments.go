package main

import (
	"fmt"

	"uzazi-salama-backend/section"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var appointmentCmd = &cobra.Command{
	Use:     "appointment",
	Aliases: []string{"appt"},
	Short:   "Prenatal appointments",
}

func appointmentFlags(fs *pflag.FlagSet) {
	fs.String("date", "", "date as YYYY-MM-DD")
	fs.String("time", "", "time as HH:MM")
	fs.String("type", string(section.AppointmentRoutine), "routine, ultrasound, lab, consultation or other")
	fs.String("provider", "", "doctor or midwife")
	fs.String("location", "", "clinic or hospital")
	fs.String("notes", "", "notes")
	fs.StringArray("question", nil, "question to ask (repeatable)")
}

// applyAppointmentFlags copies the flags that were set onto a
func applyAppointmentFlags(fs *pflag.FlagSet, a *section.Appointment) {
	fields := map[string]*string{
		"date":     &a.Date,
		"time":     &a.Time,
		"provider": &a.Provider,
		"location": &a.Location,
		"notes":    &a.Notes,
	}
	for name, dst := range fields {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	if fs.Changed("question") {
		a.Questions, _ = fs.GetStringArray("question")
	}
	if fs.Changed("type") || a.Type == "" {
		t, _ := fs.GetString("type")
		a.Type = section.AppointmentType(t)
	}
}

var appointmentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule an appointment",
	RunE: func(cmd *cobra.Command, args []string) error {
		var a section.Appointment
		applyAppointmentFlags(cmd.Flags(), &a)

		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.CreateAppointment(ctx, sess.sc(), a)
		if err != nil {
			return fmt.Errorf("appointment not saved: %w", err)
		}
		printWritten("Appointment", w)
		return nil
	},
}

var appointmentUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		appts, _, err := sess.engine.Appointments(ctx, sess.sc())
		if err != nil {
			return err
		}
		a, ok := section.FindAppointment(appts, args[0])
		if !ok {
			return fmt.Errorf("appointment %s not found", args[0])
		}
		applyAppointmentFlags(cmd.Flags(), &a)

		w, err := sess.engine.UpdateAppointment(ctx, sess.sc(), a)
		if err != nil {
			return fmt.Errorf("appointment not updated: %w", err)
		}
		printWritten("Appointment", w)
		return nil
	},
}

var appointmentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.DeleteAppointment(ctx, sess.sc(), args[0])
		if err != nil {
			return fmt.Errorf("appointment not deleted: %w", err)
		}
		printWritten("Appointment removal", w)
		return nil
	},
}

var appointmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show appointments",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		appts, src, err := sess.engine.Appointments(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		if len(appts.Entries) == 0 {
			fmt.Println(renderMuted("No appointments scheduled"))
			return nil
		}
		for _, a := range appts.Entries {
			fmt.Printf("%s %-5s %-13s %s\n", a.Date, a.Time, renderAccent(string(a.Type)), renderMuted(a.ID))
			if a.Provider != "" || a.Location != "" {
				fmt.Printf("    %s %s\n", a.Provider, a.Location)
			}
			if a.Notes != "" {
				fmt.Printf("    %s\n", a.Notes)
			}
			for _, q := range a.Questions {
				fmt.Printf("    ? %s\n", q)
			}
		}
		return nil
	},
}

func init() {
	appointmentFlags(appointmentAddCmd.Flags())
	appointmentFlags(appointmentUpdateCmd.Flags())
	_ = appointmentAddCmd.MarkFlagRequired("date")

	appointmentCmd.AddCommand(appointmentAddCmd, appointmentUpdateCmd, appointmentDeleteCmd, appointmentListCmd)
}
