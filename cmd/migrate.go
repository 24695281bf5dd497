package main

import (
	"flowstudio"
	"flowstudio/internal/api/models"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the flow tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		envfile, _ := cmd.Flags().GetString("env")
		flowstudio.InitConfig(envfile)
		return migrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func migrate() error {
	if err := flowstudio.DB.AutoMigrate(
		&models.FlowContainer{},
		&models.FlowNode{},
	); err != nil {
		return err
	}
	flowstudio.Logger.Info().Msg("Database migrated successfully")
	return nil
}
