package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "fieldosctl",
	Short:         "Terminal client for the FieldOS field-service platform",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(watchCmd)
}
