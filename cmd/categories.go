package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var categoriesSaveTo string

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the active category set in matcher priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := initRegistry()
		if err != nil {
			return err
		}

		if categoriesSaveTo != "" {
			if err := reg.SaveFile(categoriesSaveTo); err != nil {
				return err
			}
			zap.L().Info("custom categories written", zap.String("path", categoriesSaveTo))
		}

		return printJSON(reg.Ordered())
	},
}

func init() {
	categoriesCmd.Flags().StringVar(&categoriesSaveTo, "save", "", "also write custom categories to this YAML file")
	rootCmd.AddCommand(categoriesCmd)
}
