package main

import (
	"errors"
	"fmt"

	"uzazi-salama-backend/syncengine"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func renderPass(s string) string   { return passStyle.Render(s) }
func renderWarn(s string) string   { return warnStyle.Render(s) }
func renderAccent(s string) string { return accentStyle.Render(s) }
func renderMuted(s string) string  { return mutedStyle.Render(s) }
func renderHeader(s string) string { return headerStyle.Render(s) }

// printWritten reports where a write landed
func printWritten(what string, w syncengine.Written) {
	switch w.Target {
	case syncengine.TargetRemote:
		fmt.Printf("%s %s saved to your account\n", renderPass("✓"), what)
	case syncengine.TargetLocal:
		fmt.Printf("%s %s saved on this device\n", renderPass("✓"), what)
	case syncengine.TargetLocalFallback:
		reason := "server unreachable"
		if errors.Is(w.Cause, syncengine.ErrUnauthenticated) {
			reason = "session expired, run 'uzazi login'"
		}
		fmt.Printf("%s %s saved on this device only (%s)\n", renderWarn("⚠"), what, reason)
	}
}

func printSource(src syncengine.Source) {
	if src == syncengine.SourceLocalFallback {
		fmt.Printf("%s showing data stored on this device; the server could not be reached\n", renderWarn("⚠"))
	}
}
