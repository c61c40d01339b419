package cli

import (
	"fmt"
	"os"

	"bookstore-service/config"
	"bookstore-service/database"
	"bookstore-service/logger"
	"bookstore-service/repository"
	"bookstore-service/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCreateAdminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long:  "Create an administrator account. The password may also be given in ADMIN_PASSWORD.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password (or ADMIN_PASSWORD) are required")
			}

			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Env)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.Connect(cfg, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			tx := repository.NewGormTransactor(db)
			cartService := services.NewCartService(repository.NewGormCartRepository(db), repository.NewGormBookRepository(db), tx, log)
			userService := services.NewUserService(repository.NewGormUserRepository(db), cartService, tx, nil, log)

			admin, svcErr := userService.CreateAdmin(cmd.Context(), email, password)
			if svcErr != nil {
				return svcErr
			}
			log.Info("Administrator ready", zap.String("user_id", admin.ID.String()), zap.String("email", admin.Email))
			fmt.Fprintln(cmd.OutOrStdout(), admin.ID.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "administrator email")
	cmd.Flags().StringVar(&password, "password", "", "administrator password")
	return cmd
}
