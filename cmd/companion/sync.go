package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"uzazi-salama-backend/section"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Inspect synced data",
}

var syncShowCmd = &cobra.Command{
	Use:   "show <kind>",
	Short: "Print one section as JSON and where it was read from",
	Long: `Print one section as JSON. kind is one of mood, kicks, contractions,
appointments, babyPrep or reminders.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := section.ParseKind(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := sess.ctx()
		defer cancel()
		snap, err := sess.engine.Read(ctx, sess.sc(), kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s source: %s\n", renderMuted("#"), snap.Source)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Value)
	},
}

var syncExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save a snapshot of your account data on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sess.api.Token() == "" {
			return errors.New("sign in first with 'uzazi login'")
		}
		ctx, cancel := sess.ctx()
		defer cancel()
		export, err := sess.api.CreateExport(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s Export created: %s (%d bytes, %d sections)\n",
			renderPass("✓"), export.StoragePath, export.Size, len(export.Sections))
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncShowCmd, syncExportCmd)
}
