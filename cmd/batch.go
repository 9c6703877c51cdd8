package main

import (
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/doclens/doclens/internal/classify"
	"github.com/doclens/doclens/internal/model"
)

var batchExplain bool

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Classify multiple documents concurrently",
	Long:  "Classifies each file, persists the results, and reports cross-document anomalies and relationships over the batch.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reg, err := initRegistry()
		if err != nil {
			return err
		}
		engine := initEngine()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		categories := reg.Ordered()

		var mu sync.Mutex
		docs := make([]model.DocumentMetadata, 0, len(args))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Batch.MaxConcurrentFiles)
		for _, path := range args {
			g.Go(func() error {
				data, err := os.ReadFile(path)
				if err != nil {
					return eris.Wrapf(err, "read %s", path)
				}
				result := engine.Classify(string(data), categories, batchExplain)
				doc := model.NewDocument(path, string(data), result)
				if err := st.SaveDocument(gctx, doc); err != nil {
					return err
				}
				zap.L().Info("classified",
					zap.String("file", path),
					zap.String("category", result.Category),
					zap.Float64("confidence", result.Confidence))
				mu.Lock()
				docs = append(docs, doc)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		return printJSON(map[string]any{
			"documents": docs,
			"anomalies": classify.SessionAnomalies(docs),
			"groups":    classify.FindRelationships(docs),
		})
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchExplain, "explain", false, "include keyword rationale per document")
	rootCmd.AddCommand(batchCmd)
}
