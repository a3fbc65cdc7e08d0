package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"uzazi-salama-backend/models"
	"uzazi-salama-backend/syncengine"

	"github.com/spf13/cobra"
)

func (s *session) saveIdentity(ctx context.Context, user *models.User) error {
	if err := s.local.Write(ctx, keyAuthToken, []byte(s.api.Token())); err != nil {
		return err
	}
	if user != nil {
		s.userID = user.ID.String()
	}
	return s.local.Write(ctx, keyAuthUser, []byte(s.userID))
}

func passwordFrom(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("UZAZI_PASSWORD")
	}
	if password == "" {
		return "", errors.New("--password or UZAZI_PASSWORD is required")
	}
	return password, nil
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFrom(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		week, _ := cmd.Flags().GetInt("week")

		ctx, cancel := sess.ctx()
		defer cancel()
		user, err := sess.api.Register(ctx, models.RegisterRequest{
			Name:          name,
			Email:         email,
			Phone:         phone,
			Password:      password,
			PregnancyWeek: week,
			Language:      string(sess.lang),
		})
		if err != nil {
			return err
		}
		if err := sess.saveIdentity(ctx, user); err != nil {
			return err
		}
		fmt.Printf("%s Welcome, %s\n", renderPass("✓"), user.Name)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in so data syncs to your account",
	Long: `Sign in with email and password. Data recorded on this device before
signing in stays on the device and is not uploaded to the account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFrom(cmd)
		if err != nil {
			return err
		}
		email, _ := cmd.Flags().GetString("email")

		ctx, cancel := sess.ctx()
		defer cancel()
		user, err := sess.api.Login(ctx, email, password)
		if errors.Is(err, models.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		if err != nil {
			return err
		}
		if err := sess.saveIdentity(ctx, user); err != nil {
			return err
		}
		fmt.Printf("%s Signed in as %s\n", renderPass("✓"), user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sess.ctx()
		defer cancel()
		for _, key := range []string{keyAuthToken, keyAuthUser} {
			if err := sess.local.Clear(ctx, key); err != nil {
				return err
			}
		}
		fmt.Printf("%s Signed out; new records stay on this device\n", renderPass("✓"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sess.api.Token() == "" {
			fmt.Println("Not signed in; data is kept on this device")
			return nil
		}
		ctx, cancel := sess.ctx()
		defer cancel()
		user, err := sess.api.Me(ctx)
		if errors.Is(err, syncengine.ErrUnauthenticated) {
			fmt.Printf("%s Session expired, run 'uzazi login'\n", renderWarn("⚠"))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", renderHeader(user.Name))
		fmt.Printf("  Email:    %s\n", user.Email)
		if user.Phone != "" {
			fmt.Printf("  Phone:    %s\n", user.Phone)
		}
		fmt.Printf("  Week:     %d\n", user.PregnancyWeek)
		if user.DueDate != nil {
			fmt.Printf("  Due date: %s\n", user.DueDate.Format("2006-01-02"))
		}
		fmt.Printf("  Language: %s\n", user.Language)
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "your name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("phone", "", "phone number")
	registerCmd.Flags().String("password", "", "password (or UZAZI_PASSWORD)")
	registerCmd.Flags().Int("week", 0, "current pregnancy week")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().String("email", "", "email address")
	loginCmd.Flags().String("password", "", "password (or UZAZI_PASSWORD)")
	_ = loginCmd.MarkFlagRequired("email")
}
