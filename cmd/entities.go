package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/classify"
)

var entitiesLimit int

var entitiesCmd = &cobra.Command{
	Use:   "entities <file>",
	Short: "Extract named entities from a text document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		entities := classify.ExtractEntities(string(data)).TopN(entitiesLimit)
		return printJSON(entities)
	},
}

func init() {
	entitiesCmd.Flags().IntVar(&entitiesLimit, "limit", classify.DefaultEntityLimit, "maximum entities to report")
	rootCmd.AddCommand(entitiesCmd)
}
