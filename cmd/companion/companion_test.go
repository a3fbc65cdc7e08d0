package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"uzazi-salama-backend/mirror"
	"uzazi-salama-backend/section"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAppointmentFlagsOnlyChanged(t *testing.T) {
	fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
	appointmentFlags(fs)
	require.NoError(t, fs.Parse([]string{"--notes", "bring scan results"}))

	a := section.Appointment{
		ID:       "a1",
		Date:     "2024-05-10",
		Time:     "09:00",
		Type:     section.AppointmentUltrasound,
		Provider: "Dr. Mwangi",
	}
	applyAppointmentFlags(fs, &a)

	assert.Equal(t, "bring scan results", a.Notes)
	assert.Equal(t, "2024-05-10", a.Date)
	assert.Equal(t, "Dr. Mwangi", a.Provider)
	assert.Equal(t, section.AppointmentUltrasound, a.Type)
}

func TestApplyAppointmentFlagsDefaultType(t *testing.T) {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	appointmentFlags(fs)
	require.NoError(t, fs.Parse([]string{"--date", "2024-05-10"}))

	var a section.Appointment
	applyAppointmentFlags(fs, &a)
	assert.Equal(t, "2024-05-10", a.Date)
	assert.Equal(t, section.AppointmentRoutine, a.Type)
}

func TestApplyAppointmentFlagsQuestions(t *testing.T) {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	appointmentFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--date", "2024-05-10",
		"--question", "How is baby growing?",
		"--question", "Is my iron ok, or do I need supplements?",
	}))

	a := section.Appointment{Questions: []string{"old"}}
	applyAppointmentFlags(fs, &a)
	assert.Equal(t, []string{"How is baby growing?", "Is my iron ok, or do I need supplements?"}, a.Questions)
}

func TestDefaultMirrorPath(t *testing.T) {
	t.Setenv("HOME", "/home/mama")

	p, err := defaultMirrorPath(mirror.BackendSQLite)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/mama", ".uzazi", "mirror.db"), p)

	p, err = defaultMirrorPath(mirror.BackendFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/mama", ".uzazi", "mirror"), p)
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	runErr := fn()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

func TestKickRecordAndList(t *testing.T) {
	t.Setenv("UZAZI_API_URL", "http://127.0.0.1:1/api")
	dir := t.TempDir()
	base := []string{"--mirror-backend", "file", "--mirror", dir}

	for i := 0; i < 2; i++ {
		out, err := captureStdout(t, func() error {
			return run(append([]string{"kick", "record", "--session-time", "30"}, base...))
		})
		require.NoError(t, err)
		assert.Contains(t, out, "saved on this device")
	}

	out, err := captureStdout(t, func() error {
		return run(append([]string{"kick", "list"}, base...))
	})
	require.NoError(t, err)
	assert.Contains(t, out, "2 kicks")

	local, err := mirror.NewFileMirror(dir)
	require.NoError(t, err)
	raw, ok, err := local.Read(context.Background(), section.MirrorKeyKicks)
	require.NoError(t, err)
	require.True(t, ok)
	var sessions []section.KickSession
	require.NoError(t, json.Unmarshal(raw, &sessions))
	require.Len(t, sessions, 1)
	assert.Len(t, sessions[0].Kicks, 2)
}

func TestFailedCommandReleasesMirror(t *testing.T) {
	t.Setenv("UZAZI_API_URL", "http://127.0.0.1:1/api")
	path := filepath.Join(t.TempDir(), "mirror.db")
	base := []string{"--mirror-backend", "sqlite", "--mirror", path}

	_, err := captureStdout(t, func() error {
		return run(append([]string{"reminder", "toggle", "99"}, base...))
	})
	require.ErrorIs(t, err, section.ErrNotFound)
	assert.Nil(t, sess)

	_, err = captureStdout(t, func() error {
		return run(append([]string{"reminder", "toggle", "1"}, base...))
	})
	require.NoError(t, err)
	assert.Nil(t, sess)

	local, err := mirror.OpenSQLite(path)
	require.NoError(t, err)
	defer local.Close()
	raw, ok, err := local.Read(context.Background(), section.MirrorKeyReminders)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"enabled":false`)
}
