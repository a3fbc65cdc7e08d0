package main

import (
	"fmt"

	"uzazi-salama-backend/section"

	"github.com/spf13/cobra"
)

var kickCmd = &cobra.Command{
	Use:   "kick",
	Short: "Baby kick counter",
}

var kickRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one kick",
	RunE: func(cmd *cobra.Command, args []string) error {
		elapsed, _ := cmd.Flags().GetInt("session-time")

		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.RecordKick(ctx, sess.sc(), section.Kick{SessionTime: elapsed})
		if err != nil {
			return err
		}
		printWritten("Kick", w)
		if kicks, ok := w.Value.(section.KicksSection); ok && len(kicks.Sessions) > 0 {
			today := kicks.Sessions[0]
			fmt.Printf("  %s: %d kicks\n", today.Date, len(today.Kicks))
		}
		return nil
	},
}

var kickListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show kick sessions by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		kicks, src, err := sess.engine.Kicks(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		if len(kicks.Sessions) == 0 {
			fmt.Println(renderMuted("No kicks recorded yet"))
			return nil
		}
		for _, s := range kicks.Sessions {
			fmt.Printf("%s  %s kicks  %s\n", s.Date, renderAccent(fmt.Sprintf("%3d", len(s.Kicks))),
				renderMuted(fmt.Sprintf("%dm%02ds", s.Duration/60, s.Duration%60)))
		}
		return nil
	},
}

var kickClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all kick history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.Clear(ctx, sess.sc(), section.KindKicks)
		if err != nil {
			return err
		}
		printWritten("Empty kick history", w)
		return nil
	},
}

var kickInsightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Kick frequency and pattern",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		kicks, src, err := sess.engine.Kicks(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		insights, ok := section.AnalyzeKicks(kicks, nowUTC(), sess.lang)
		if !ok {
			fmt.Println(renderMuted("Record at least five kicks to see insights"))
			return nil
		}
		fmt.Printf("Today:            %d kicks\n", insights.TotalToday)
		fmt.Printf("Average interval: %.1f minutes\n", insights.AvgIntervalMinutes)
		fmt.Printf("Pattern:          %s\n", renderAccent(string(insights.Pattern)))
		if insights.Warning != "" {
			fmt.Printf("%s %s\n", renderWarn("⚠"), insights.Warning)
		}
		return nil
	},
}

func init() {
	kickRecordCmd.Flags().Int("session-time", 0, "seconds elapsed in the current counting session")
	kickCmd.AddCommand(kickRecordCmd, kickListCmd, kickClearCmd, kickInsightsCmd)
}
