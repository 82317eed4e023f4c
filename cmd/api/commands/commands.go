package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/campusnav/core/internal/adapters/repository"
	"github.com/campusnav/core/internal/application/services"
	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/config"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/infrastructure/metrics"
	"github.com/campusnav/core/internal/infrastructure/server"
	"github.com/campusnav/core/internal/infrastructure/storage"
	"github.com/campusnav/core/internal/ports"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the CampusNav API server",
		Long:  "Start the CampusNav API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create users directly in the users file",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			if username == "" || email == "" || password == "" {
				log.Fatal("Username, email and password are required")
			}

			cfg, appLogger, m, data := bootstrap()
			defer appLogger.Close()

			err := createUser(cmd.Context(), cmd.OutOrStdout(), cfg, appLogger, m, data, ports.UserForm{
				Username: username,
				Email:    email,
				Role:     entities.UserRole(role),
				Password: password,
			})
			if err != nil {
				log.Fatal(err)
			}
		},
	}

	createUserCmd.Flags().String("username", "", "Username (required)")
	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	createUserCmd.Flags().String("role", "admin", "User role (student, staff, admin, visitor)")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewRouteCommand creates the route lookup command
func NewRouteCommand() *cobra.Command {
	routeCmd := &cobra.Command{
		Use:   "route",
		Short: "Route commands",
	}

	findCmd := &cobra.Command{
		Use:   "find",
		Short: "Find direct routes between two locations",
		Run: func(cmd *cobra.Command, args []string) {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			accessibleOnly, _ := cmd.Flags().GetBool("accessible-only")

			_, appLogger, _, data := bootstrap()
			defer appLogger.Close()

			q := ports.RouteQuery{Start: start, End: end, AccessibleOnly: accessibleOnly}
			if err := findRoute(cmd.Context(), cmd.OutOrStdout(), appLogger, data, q); err != nil {
				log.Fatal(err)
			}
		},
	}

	findCmd.Flags().String("start", "", "Start location")
	findCmd.Flags().String("end", "", "End location")
	findCmd.Flags().Bool("accessible-only", false, "Only consider accessible routes")

	routeCmd.AddCommand(findCmd)
	return routeCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CampusNav version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("CampusNav Core %s\n", Version)
		},
	}
}

// bootstrap loads configuration and opens the data directory
func bootstrap() (*config.Config, *logger.Logger, *metrics.Metrics, *storage.DataDir) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	m := metrics.New()

	data, err := storage.New(cfg.Storage, m)
	if err != nil {
		appLogger.Fatalw("Failed to open data directory", "error", err)
	}

	return cfg, appLogger, m, data
}

func runServer() {
	cfg, appLogger, m, data := bootstrap()
	defer appLogger.Close()

	if !cfg.Metrics.Enabled {
		m = nil
	}

	srv, err := server.New(cfg, data, m, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting CampusNav API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"data_dir", data.Root(),
	)

	go func() {
		if err := srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Server shutdown failed", "error", err)
	}
}

// createUser submits a new user through the user form, hashing the password
// with the configured algorithm
func createUser(ctx context.Context, out io.Writer, cfg *config.Config, appLogger *logger.Logger, m *metrics.Metrics, data *storage.DataDir, form ports.UserForm) error {
	hasher, err := services.NewPasswordHasher(cfg.Security.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}

	notifier := services.NewNotifier(repository.NewNotificationRepository(data, appLogger), cfg.Notifier, m, appLogger)
	userService := services.NewUserService(repository.NewUserRepository(data, appLogger), notifier, hasher, appLogger)

	user, err := userService.NewForm().Submit(ctx, form)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(out, "User created successfully:\n")
	fmt.Fprintf(out, "  ID: %d\n", user.ID)
	fmt.Fprintf(out, "  Username: %s\n", user.Username)
	fmt.Fprintf(out, "  Role: %s\n", user.Role)
	return nil
}

// findRoute prints the direct routes matching q as JSON
func findRoute(ctx context.Context, out io.Writer, appLogger *logger.Logger, data *storage.DataDir, q ports.RouteQuery) error {
	finder := services.NewRouteFinder(repository.NewRouteRepository(data, appLogger), appLogger)
	result, err := finder.Find(ctx, q)
	if err != nil {
		return fmt.Errorf("route lookup failed: %w", err)
	}

	if result.Best == nil {
		fmt.Fprintln(out, "No route found")
		return nil
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}
