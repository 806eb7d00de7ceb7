package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Load the taxonomy and report index size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		_, det := setup()

		if err := det.Load(cmd.Context()); err != nil {
			return fail(err)
		}

		st := det.Stats()
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"entries": st.Entries,
				"vocab":   st.VocabSize,
			})
		}
		fmt.Printf("entries: %d\nvocabulary: %d tokens\n", st.Entries, st.VocabSize)
		return nil
	},
}
