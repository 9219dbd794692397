package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adli-inc/adli/internal/interfaces/cli/migrate"
	"github.com/adli-inc/adli/internal/interfaces/cli/server"
	"github.com/adli-inc/adli/internal/interfaces/cli/token"
)

// @title Adli API
// @version 1.0
// @description Public intake and staff panel for agency requests.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "adli",
		Short: "Adli - agency request registry",
		Long:  `Adli accepts requests from companies, routes them through the agency chancellery and tracks their execution.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
