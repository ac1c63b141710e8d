package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	textvec "github.com/kailas-cloud/textvec/pkg/sdk"
)

func checkCmd(flags *globalFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run every endpoint against the server and report the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.client(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			info, err := c.Info(cmd.Context())
			if err != nil {
				return fmt.Errorf("server at %s is not reachable: %w", flags.url, err)
			}
			fmt.Fprintf(out, "Server is up: %s (%s)\n", info.Message, info.Version)

			texts := loadTexts(file, out)
			failed := runChecks(cmd.Context(), c, texts, out)
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(checks))
			}
			fmt.Fprintf(out, "All %d checks passed\n", len(checks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultTextsFile, "file with one text per line")
	return cmd
}

type check struct {
	name string
	run  func(ctx context.Context, c *textvec.Client, texts []string) (string, error)
}

var checks = []check{
	{"tf-idf", func(ctx context.Context, c *textvec.Client, texts []string) (string, error) {
		res, err := c.Vectorize().TFIDF(ctx, firstN(texts, 3), textvec.WithMaxFeatures(20))
		return fmt.Sprintf("matrix %v, %d terms", res.Shape, len(res.Vocabulary)), err
	}},
	{"bag-of-words", func(ctx context.Context, c *textvec.Client, texts []string) (string, error) {
		res, err := c.Vectorize().BagOfWords(ctx, firstN(texts, 3), textvec.WithMaxFeatures(20))
		return fmt.Sprintf("matrix %v", res.Shape), err
	}},
	{"lsa", func(ctx context.Context, c *textvec.Client, texts []string) (string, error) {
		res, err := c.Vectorize().LSA(ctx, firstN(texts, 5),
			textvec.WithMaxFeatures(30), textvec.WithComponents(2))
		return fmt.Sprintf("explained variance %.4f", res.Variance), err
	}},
	{"word2vec", func(ctx context.Context, c *textvec.Client, texts []string) (string, error) {
		res, err := c.Vectorize().Embeddings(ctx, firstN(texts, 5),
			textvec.WithMaxFeatures(25), textvec.WithComponents(3))
		return fmt.Sprintf("%d embeddings", len(res.Embeddings)), err
	}},
	{"tokenize", func(ctx context.Context, c *textvec.Client, _ []string) (string, error) {
		tokens, err := c.Annotate().Tokenize(ctx,
			"The quick brown fox jumps over the lazy dog while programming in Python.")
		return fmt.Sprintf("%d tokens, first %q", len(tokens), firstN(tokens, 5)), err
	}},
	{"stem", func(ctx context.Context, c *textvec.Client, _ []string) (string, error) {
		stems, err := c.Annotate().Stem(ctx, "running jumping laughing programmer studying computers")
		return fmt.Sprintf("%q", stems), err
	}},
	{"lemmatize", func(ctx context.Context, c *textvec.Client, _ []string) (string, error) {
		lemmas, err := c.Annotate().Lemmatize(ctx, "boys were running quickly in beautiful parks with dogs")
		return fmt.Sprintf("%q", lemmas), err
	}},
	{"pos_tag", func(ctx context.Context, c *textvec.Client, _ []string) (string, error) {
		tagged, err := c.Annotate().POSTag(ctx, "Beautiful cats run fast in green gardens near big cities")
		if len(tagged) > 3 {
			tagged = tagged[:3]
		}
		return fmt.Sprintf("first tags %v", tagged), err
	}},
	{"ner", func(ctx context.Context, c *textvec.Client, _ []string) (string, error) {
		entities, err := c.Annotate().NER(ctx, "John Smith works in New York at Google company with Mary Johnson")
		if len(entities) == 0 {
			return "no entities found", err
		}
		return fmt.Sprintf("entities %v", entities), err
	}},
}

// runChecks runs every check and returns the number of failures.
func runChecks(ctx context.Context, c *textvec.Client, texts []string, out io.Writer) int {
	failed := 0
	for i, ch := range checks {
		summary, err := ch.run(ctx, c, texts)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%d. %-13s FAIL  %v\n", i+1, ch.name, err)
			continue
		}
		fmt.Fprintf(out, "%d. %-13s OK    %s\n", i+1, ch.name, summary)
	}
	return failed
}
