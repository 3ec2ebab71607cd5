package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"schelling/internal/textstats"
)

func newTweetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweets",
		Short: "Count entities and n-grams in a JSON file of tweets",
	}
	cmd.PersistentFlags().String("file", "", "JSON array of tweets")
	cmd.MarkPersistentFlagRequired("file")

	cmd.AddCommand(
		newTweetsEntitiesCmd(),
		newTweetsNGramsCmd(),
		newTweetsSalientCmd(),
	)
	return cmd
}

// loadTweets reads the --file tweets and builds an analyzer from the
// configured word filter.
func loadTweets(cmd *cobra.Command) ([]textstats.Tweet, *textstats.Analyzer, error) {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	path, _ := cmd.Flags().GetString("file")
	tweets, err := textstats.LoadTweets(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded tweets", "file", path, "count", len(tweets))
	return tweets, textstats.NewAnalyzer(cfg.Text), nil
}

func newTweetsEntitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Top-k or minimum-count entities, e.g. --entity hashtags.text",
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, a, err := loadTweets(cmd)
			if err != nil {
				return err
			}
			spec, _ := cmd.Flags().GetString("entity")
			desc, err := textstats.ParseEntityDesc(spec)
			if err != nil {
				return err
			}
			var result []string
			if cmd.Flags().Changed("min-count") {
				minCount, _ := cmd.Flags().GetInt("min-count")
				result, err = a.MinCountEntities(tweets, desc, minCount)
			} else {
				k, _ := cmd.Flags().GetInt("k")
				result, err = a.TopKEntities(tweets, desc, k)
			}
			if err != nil {
				return err
			}
			return printList(cmd, result)
		},
	}
	cmd.Flags().String("entity", "hashtags.text", "Entity kind.key, suffix :cs for case-sensitive")
	cmd.Flags().Int("k", 10, "Number of entities to report")
	cmd.Flags().Int("min-count", 0, "Report every entity occurring at least this often instead of the top k")
	return cmd
}

func newTweetsNGramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ngrams",
		Short: "Top-k or minimum-count n-grams with stop words removed",
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, a, err := loadTweets(cmd)
			if err != nil {
				return err
			}
			n, _ := cmd.Flags().GetInt("n")
			caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
			var result []string
			if cmd.Flags().Changed("min-count") {
				minCount, _ := cmd.Flags().GetInt("min-count")
				result, err = a.MinCountNGrams(tweets, n, caseSensitive, minCount)
			} else {
				k, _ := cmd.Flags().GetInt("k")
				result, err = a.TopKNGrams(tweets, n, caseSensitive, k)
			}
			if err != nil {
				return err
			}
			return printList(cmd, result)
		},
	}
	cmd.Flags().Int("n", 2, "N-gram length")
	cmd.Flags().Bool("case-sensitive", false, "Keep the original case")
	cmd.Flags().Int("k", 10, "Number of n-grams to report")
	cmd.Flags().Int("min-count", 0, "Report every n-gram occurring at least this often instead of the top k")
	return cmd
}

func newTweetsSalientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salient",
		Short: "Salient n-grams of each tweet by tf-idf",
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, a, err := loadTweets(cmd)
			if err != nil {
				return err
			}
			n, _ := cmd.Flags().GetInt("n")
			caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
			threshold, _ := cmd.Flags().GetFloat64("threshold")
			salient := a.SalientNGrams(tweets, n, caseSensitive, threshold)

			out := cmd.OutOrStdout()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(out).Encode(salient)
			}
			for i, grams := range salient {
				fmt.Fprintf(out, "%d\t%s\n", i, strings.Join(grams, " | "))
			}
			return nil
		},
	}
	cmd.Flags().Int("n", 1, "N-gram length")
	cmd.Flags().Bool("case-sensitive", false, "Keep the original case")
	cmd.Flags().Float64("threshold", 1.0, "Minimum tf-idf score (exclusive)")
	return cmd
}

func printList(cmd *cobra.Command, items []string) error {
	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		if items == nil {
			items = []string{}
		}
		return json.NewEncoder(out).Encode(items)
	}
	return writeLines(out, items)
}

func writeLines(w io.Writer, items []string) error {
	for _, it := range items {
		if _, err := fmt.Fprintln(w, it); err != nil {
			return err
		}
	}
	return nil
}
