package main

import (
	"errors"
	"fmt"
	"time"

	"uzazi-salama-backend/section"
	"uzazi-salama-backend/syncengine"

	"github.com/spf13/cobra"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

var contractionCmd = &cobra.Command{
	Use:   "contraction",
	Short: "Contraction timer",
}

var contractionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start timing a contraction",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		if err := sess.engine.StartContraction(ctx, sess.sc(), nowUTC()); err != nil {
			return err
		}
		fmt.Printf("%s Contraction started at %s; run 'uzazi contraction stop' when it ends\n",
			renderAccent("⏱"), time.Now().Format("15:04:05"))
		return nil
	},
}

var contractionStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop timing and save the contraction",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.StopContraction(ctx, sess.sc(), nowUTC())
		if errors.Is(err, syncengine.ErrNoActiveContraction) {
			return errors.New("no contraction in progress; run 'uzazi contraction start' first")
		}
		if err != nil {
			return err
		}
		printWritten("Contraction", w)
		if s, ok := w.Value.(section.ContractionsSection); ok && len(s.Entries) > 0 {
			last := s.Entries[len(s.Entries)-1]
			fmt.Printf("  Duration: %ds\n", last.Duration)
			printAnalysis(s)
		}
		return nil
	},
}

var contractionListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show timed contractions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		s, src, err := sess.engine.Contractions(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		if start, ok, err := sess.engine.ActiveContraction(ctx, sess.sc()); err == nil && ok {
			fmt.Printf("%s In progress since %s\n", renderAccent("⏱"), start.Local().Format("15:04:05"))
		}
		if len(s.Entries) == 0 {
			fmt.Println(renderMuted("No contractions recorded yet"))
			return nil
		}
		for i := len(s.Entries) - 1; i >= 0; i-- {
			c := s.Entries[i]
			fmt.Printf("%s  %3ds\n", c.StartTime.Local().Format("2006-01-02 15:04:05"), c.Duration)
		}
		return nil
	},
}

var contractionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all contraction history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.Clear(ctx, sess.sc(), section.KindContractions)
		if err != nil {
			return err
		}
		if err := sess.local.Clear(ctx, syncengine.KeyActiveContraction); err != nil {
			return err
		}
		printWritten("Empty contraction history", w)
		return nil
	},
}

var contractionAnalysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Labour progress from recent contractions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		s, src, err := sess.engine.Contractions(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		if !printAnalysis(s) {
			fmt.Println(renderMuted("Time at least two contractions to see an analysis"))
		}
		return nil
	},
}

func printAnalysis(s section.ContractionsSection) bool {
	a, ok := section.AnalyzeContractions(s, sess.lang)
	if !ok {
		return false
	}
	fmt.Printf("  Average interval: %.1f min, average duration: %.1f min\n", a.AvgIntervalMinutes, a.AvgDurationMinutes)
	if a.Status == section.LabourActive {
		fmt.Printf("%s %s\n", renderWarn("⚠"), a.Message)
	} else {
		fmt.Printf("  %s\n", a.Message)
	}
	return true
}

func init() {
	contractionCmd.AddCommand(contractionStartCmd, contractionStopCmd, contractionListCmd, contractionClearCmd, contractionAnalysisCmd)
}
