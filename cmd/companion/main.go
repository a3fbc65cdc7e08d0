package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"uzazi-salama-backend/client"
	"uzazi-salama-backend/logger"
	"uzazi-salama-backend/mirror"
	"uzazi-salama-backend/section"
	"uzazi-salama-backend/syncengine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Mirror keys holding the signed-in identity
const (
	keyAuthToken = "authToken"
	keyAuthUser  = "authUser"
)

var (
	v    = viper.New()
	sess *session
)

var rootCmd = &cobra.Command{
	Use:   "uzazi",
	Short: "Uzazi Salama pregnancy companion",
	Long: `Track moods, baby kicks, contractions, appointments, checklists and
reminders. Data syncs to your account when you are signed in and stays on
this device when you are not or when the server cannot be reached.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		sess = s
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "http://localhost:5001/api", "Uzazi Salama API base URL")
	flags.String("mirror", "", "local mirror location (default ~/.uzazi/mirror or ~/.uzazi/mirror.db)")
	flags.String("mirror-backend", string(mirror.BackendFile), "local mirror backend: file or sqlite")
	flags.Duration("timeout", client.DefaultTimeout, "API request timeout")
	flags.String("lang", string(section.LangEnglish), "display language: en or sw")
	flags.String("log-level", "warn", "log level")

	v.SetEnvPrefix("UZAZI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		registerCmd, loginCmd, logoutCmd, whoamiCmd,
		moodCmd, kickCmd, contractionCmd, appointmentCmd,
		checklistCmd, reminderCmd, syncCmd,
	)
}

// session bundles what every command needs
type session struct {
	local  mirror.Mirror
	api    *client.Client
	engine *syncengine.Engine
	log    *zap.SugaredLogger
	lang   section.Language
	userID string
}

func openSession() (*session, error) {
	log, err := logger.New(logger.Config{Level: v.GetString("log-level")})
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	backend := mirror.Backend(v.GetString("mirror-backend"))
	path := v.GetString("mirror")
	if path == "" {
		path, err = defaultMirrorPath(backend)
		if err != nil {
			return nil, err
		}
	}
	local, err := mirror.Open(mirror.Config{Backend: backend, Path: path})
	if err != nil {
		return nil, fmt.Errorf("failed to open local mirror: %w", err)
	}

	ctx := context.Background()
	token, _, err := local.Read(ctx, keyAuthToken)
	if err != nil {
		mirror.Close(local)
		return nil, err
	}
	userID, _, err := local.Read(ctx, keyAuthUser)
	if err != nil {
		mirror.Close(local)
		return nil, err
	}

	lang := section.ParseLanguage(v.GetString("lang"))
	api := client.New(v.GetString("api-url"),
		client.WithTimeout(v.GetDuration("timeout")),
		client.WithToken(string(token)),
	)
	return &session{
		local: local,
		api:   api,
		engine: syncengine.New(api,
			syncengine.WithLogger(log),
			syncengine.WithLanguage(lang),
		),
		log:    log,
		lang:   lang,
		userID: string(userID),
	}, nil
}

func defaultMirrorPath(backend mirror.Backend) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory, pass --mirror: %w", err)
	}
	if backend == mirror.BackendSQLite {
		return filepath.Join(home, ".uzazi", "mirror.db"), nil
	}
	return filepath.Join(home, ".uzazi", "mirror"), nil
}

func (s *session) close() {
	if err := mirror.Close(s.local); err != nil {
		s.log.Warnw("failed to close local mirror", "error", err)
	}
	_ = s.log.Sync()
}

// sc returns the sync context for this invocation
func (s *session) sc() syncengine.SyncContext {
	return syncengine.SyncContext{
		Authenticated: s.api.Token() != "",
		UserID:        s.userID,
		Local:         s.local,
	}
}

// ctx bounds one command; each engine call may issue a read and a write
func (s *session) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*v.GetDuration("timeout"))
}

// run executes one command line and always releases the session, including
// when the command fails
func run(args []string) error {
	rootCmd.SetArgs(args)
	defer func() {
		if sess != nil {
			sess.close()
			sess = nil
		}
	}()
	return rootCmd.Execute()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
