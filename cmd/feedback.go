package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doclens/doclens/internal/classify"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <document-id> <category-id> <correct|incorrect>",
	Short: "Tune a category from a user verdict on a stored classification",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		docID, categoryID, verdict := args[0], args[1], args[2]

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		reg, err := initRegistry()
		if err != nil {
			return err
		}

		doc, err := st.GetDocument(ctx, docID)
		if err != nil {
			return err
		}
		category, ok := reg.Get(categoryID)
		if !ok {
			return eris.Errorf("unknown category: %s", categoryID)
		}

		updated, err := classify.IncorporateFeedback(*category, doc.Content, classify.Feedback(verdict))
		if err != nil {
			return err
		}
		if err := reg.Update(&updated); err != nil {
			return err
		}
		if err := st.RecordFeedback(ctx, docID, categoryID, verdict); err != nil {
			return err
		}
		if cfg.Categories.File != "" && updated.IsCustom {
			if err := reg.SaveFile(cfg.Categories.File); err != nil {
				return err
			}
			zap.L().Info("custom categories written", zap.String("path", cfg.Categories.File))
		}

		return printJSON(updated)
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
}
