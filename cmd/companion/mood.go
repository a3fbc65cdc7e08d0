package main

import (
	"fmt"

	"uzazi-salama-backend/section"

	"github.com/spf13/cobra"
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Daily mood journal",
}

var moodSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Record today's mood, replacing any earlier entry for the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		mood, _ := cmd.Flags().GetString("mood")
		notes, _ := cmd.Flags().GetString("notes")
		date, _ := cmd.Flags().GetString("date")

		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.SaveMood(ctx, sess.sc(), section.MoodEntry{
			Date:  date,
			Mood:  section.Mood(mood),
			Notes: notes,
		})
		if err != nil {
			return err
		}
		printWritten("Mood", w)
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show mood history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		moods, src, err := sess.engine.Moods(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		if len(moods.Entries) == 0 {
			fmt.Println(renderMuted("No moods recorded yet"))
			return nil
		}
		for _, e := range moods.Entries {
			fmt.Printf("%s  %-12s %s\n", e.Date, renderAccent(section.MoodLabel(e.Mood, sess.lang)), renderMuted(e.Notes))
		}
		return nil
	},
}

var moodInsightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Most common mood of the past week",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		moods, src, err := sess.engine.Moods(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		insights, ok := section.AnalyzeMoods(moods)
		if !ok {
			fmt.Println(renderMuted("Record at least three moods to see insights"))
			return nil
		}
		fmt.Printf("Most common: %s (%d of %d days)\n",
			renderAccent(section.MoodLabel(insights.MostCommon, sess.lang)), insights.Count, insights.Total)
		return nil
	},
}

func init() {
	moodSaveCmd.Flags().String("mood", "", "one of happy, calm, sad, anxious, tired, angry, nauseous, excited")
	moodSaveCmd.Flags().String("notes", "", "optional notes")
	moodSaveCmd.Flags().String("date", "", "date as YYYY-MM-DD (default today)")
	_ = moodSaveCmd.MarkFlagRequired("mood")

	moodCmd.AddCommand(moodSaveCmd, moodListCmd, moodInsightsCmd)
}
