package main

import (
	"fmt"
	"strconv"

	"uzazi-salama-backend/section"

	"github.com/spf13/cobra"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Hospital bag and nursery checklists",
}

func parseList(s string) (section.ChecklistList, error) {
	list, ok := section.ParseChecklistList(s)
	if !ok {
		return "", fmt.Errorf("unknown checklist %q (use hospitalBag or nursery)", s)
	}
	return list, nil
}

var checklistListCmd = &cobra.Command{
	Use:   "list [hospitalBag|nursery]",
	Short: "Show checklist items",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lists := []section.ChecklistList{section.ListHospitalBag, section.ListNursery}
		if len(args) == 1 {
			list, err := parseList(args[0])
			if err != nil {
				return err
			}
			lists = []section.ChecklistList{list}
		}

		ctx, cancel := sess.ctx()
		defer cancel()
		prep, src, err := sess.engine.BabyPrep(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		for _, list := range lists {
			categories := prep.List(list)
			fmt.Printf("%s  %s\n", renderHeader(string(list)), renderMuted(fmt.Sprintf("%d%%", section.ChecklistProgress(categories))))
			for _, c := range categories {
				fmt.Printf("  %s\n", renderAccent(c.Category))
				for _, item := range c.Items {
					mark := "[ ]"
					if item.Checked {
						mark = renderPass("[x]")
					}
					fmt.Printf("    %s %d. %s\n", mark, item.ID, item.Text)
				}
			}
		}
		return nil
	},
}

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle <hospitalBag|nursery> <category> <item-id>",
	Short: "Check or uncheck an item",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := parseList(args[0])
		if err != nil {
			return err
		}
		itemID, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[2])
		}

		ctx, cancel := sess.ctx()
		defer cancel()
		w, err := sess.engine.ToggleChecklistItem(ctx, sess.sc(), list, args[1], itemID)
		if err != nil {
			return err
		}
		printWritten("Checklist", w)
		return nil
	},
}

var checklistProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completion of both checklists",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		prep, src, err := sess.engine.BabyPrep(ctx, sess.sc())
		if err != nil {
			return err
		}
		printSource(src)
		fmt.Printf("Hospital bag: %s\n", renderAccent(fmt.Sprintf("%d%%", section.ChecklistProgress(prep.HospitalBag))))
		fmt.Printf("Nursery:      %s\n", renderAccent(fmt.Sprintf("%d%%", section.ChecklistProgress(prep.Nursery))))
		return nil
	},
}

func init() {
	checklistCmd.AddCommand(checklistListCmd, checklistToggleCmd, checklistProgressCmd)
}
