package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/campusnav/core/cmd/api/commands"
)

// @title CampusNav API
// @version 1.0
// @description Campus navigation backend: locations, routes, users and notifications
// @termsOfService https://github.com/campusnav/core/blob/main/LICENSE

// @contact.name CampusNav Support
// @contact.url https://github.com/campusnav/core

// @license.name MIT
// @license.url https://github.com/campusnav/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "campusnav",
		Short: "CampusNav API Server",
		Long:  `CampusNav serves campus locations, routes between them, user accounts and change notifications, all kept in CSV files.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewRouteCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
