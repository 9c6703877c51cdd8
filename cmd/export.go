package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doclens/doclens/internal/export"
	"github.com/doclens/doclens/internal/store"
)

var (
	exportOut      string
	exportCategory string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session documents to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		docs, err := st.ListDocuments(ctx, store.DocumentFilter{Category: exportCategory, Limit: 1000})
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			zap.L().Warn("no documents to export")
		}

		if err := export.WriteDocuments(exportOut, docs); err != nil {
			return err
		}
		zap.L().Info("export written", zap.String("path", exportOut), zap.Int("documents", len(docs)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "doclens.xlsx", "output workbook path")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "only export documents in this category")
	rootCmd.AddCommand(exportCmd)
}
