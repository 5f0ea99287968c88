package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/codemaster/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update codemaster to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		target, _ := cmd.Flags().GetString("to")
		current := currentVersion()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if checkOnly {
			res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: current})
			if err != nil {
				return err
			}
			if !res.UpdateAvailable {
				fmt.Printf("codemaster %s is up to date.\n", current)
				return nil
			}
			fmt.Printf("codemaster %s is available (you have %s).\n%s\n", res.LatestVersion, current, res.ReleaseURL)
			return nil
		}

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: current,
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Println("Already running the latest version.")
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo codemaster update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("to", "", "Install a specific release tag instead of the latest")
}
