package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silver-fir/taxon/internal/engine/index"
	"github.com/silver-fir/taxon/internal/model"
)

var (
	detectTop         int
	detectMinDepth    int
	detectTemperature float64
	detectNoHeur      bool
	detectBest        bool
)

var detectCmd = &cobra.Command{
	Use:   "detect <item title>",
	Short: "Rank taxonomy categories for an item title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, det := setup()
		ctx := cmd.Context()

		if err := det.Load(ctx); err != nil {
			return fail(err)
		}

		title := strings.Join(args, " ")

		if detectBest {
			match, err := det.DetectCategory(title)
			if err != nil {
				return fail(err)
			}
			return printBest(match)
		}

		opts := index.Options{
			TopK:              detectTop,
			MinDepth:          detectMinDepth,
			Temperature:       detectTemperature,
			DisableHeuristics: detectNoHeur,
		}
		// Unset flags fall back to the operator's configured defaults.
		if opts.TopK == 0 {
			opts.TopK = cfg.Detect.TopK
		}
		if opts.MinDepth == 0 {
			opts.MinDepth = cfg.Detect.MinDepth
		}
		if opts.Temperature == 0 {
			opts.Temperature = cfg.Detect.Temperature
		}
		if !cmd.Flags().Changed("no-heuristics") {
			opts.DisableHeuristics = !cfg.Detect.Heuristics
		}

		candidates, err := det.Detect(title, opts)
		if err != nil {
			return fail(err)
		}
		return printCandidates(candidates)
	},
}

func init() {
	detectCmd.Flags().IntVar(&detectTop, "top", 0, "max candidates to return")
	detectCmd.Flags().IntVar(&detectMinDepth, "min-depth", 0, "exclude categories shallower than this")
	detectCmd.Flags().Float64Var(&detectTemperature, "temperature", 0, "softmax temperature (lower is sharper)")
	detectCmd.Flags().BoolVar(&detectNoHeur, "no-heuristics", false, "disable depth and leaf-phrase score adjustments")
	detectCmd.Flags().BoolVar(&detectBest, "best", false, "print only the single best category")
}

func printBest(match model.Match) error {
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"id":   match.ID,
			"path": match.Path,
		})
	}
	fmt.Printf("%d\t%s\n", match.ID, strings.Join(match.Path, " > "))
	return nil
}

// candidateOut is the CLI's JSON shape for one candidate.
type candidateOut struct {
	ID          int      `json:"id"`
	Path        []string `json:"path"`
	Leaf        string   `json:"leaf"`
	Depth       int      `json:"depth"`
	Score       float64  `json:"score"`
	Probability float64  `json:"probability"`
}

func printCandidates(candidates []model.Candidate) error {
	if jsonOutput {
		out := make([]candidateOut, len(candidates))
		for i, c := range candidates {
			out[i] = candidateOut{
				ID:          c.ID,
				Path:        c.Path,
				Leaf:        c.Leaf,
				Depth:       c.Depth,
				Score:       c.Score,
				Probability: c.Probability,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}
	for _, c := range candidates {
		fmt.Printf("%6.4f  %6.4f  %d\t%s\n",
			c.Probability, c.Score, c.ID, strings.Join(c.Path, " > "))
	}
	return nil
}
