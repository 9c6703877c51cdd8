package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doclens/doclens/internal/model"
)

var (
	classifyExplain bool
	classifySave    bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Classify a single text document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		reg, err := initRegistry()
		if err != nil {
			return err
		}

		result := initEngine().Classify(string(data), reg.Ordered(), classifyExplain)

		if classifySave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			doc := model.NewDocument(args[0], string(data), result)
			if err := st.SaveDocument(ctx, doc); err != nil {
				return err
			}
			zap.L().Info("document saved", zap.String("id", doc.ID))
		}

		return printJSON(result)
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyExplain, "explain", false, "include keyword rationale and highlighted text")
	classifyCmd.Flags().BoolVar(&classifySave, "save", false, "persist the document to the session store")
	rootCmd.AddCommand(classifyCmd)
}
