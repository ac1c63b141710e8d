package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	textvec "github.com/kailas-cloud/textvec/pkg/sdk"
)

func vectorizeCmd(flags *globalFlags) *cobra.Command {
	var (
		file        string
		maxFeatures int
		components  int
	)

	cmd := &cobra.Command{
		Use:       "vectorize <tf-idf|bag-of-words|lsa|word2vec> [text...]",
		Short:     "Vectorize texts given as arguments or read from --file (\"-\" for stdin)",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"tf-idf", "bag-of-words", "lsa", "word2vec"},
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args[1:]
			if len(texts) == 0 {
				var err error
				if texts, err = readTextsFrom(file, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			c, err := flags.client(cmd)
			if err != nil {
				return err
			}

			var opts []textvec.VectorizeOption
			if cmd.Flags().Changed("max-features") {
				opts = append(opts, textvec.WithMaxFeatures(maxFeatures))
			}
			if cmd.Flags().Changed("components") {
				opts = append(opts, textvec.WithComponents(components))
			}

			ctx := cmd.Context()
			var res any
			switch args[0] {
			case "tf-idf":
				res, err = c.Vectorize().TFIDF(ctx, texts, opts...)
			case "bag-of-words":
				res, err = c.Vectorize().BagOfWords(ctx, texts, opts...)
			case "lsa":
				res, err = c.Vectorize().LSA(ctx, texts, opts...)
			case "word2vec":
				res, err = c.Vectorize().Embeddings(ctx, texts, opts...)
			default:
				return fmt.Errorf("unknown method %q", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file with one text per line (\"-\" for stdin)")
	cmd.Flags().IntVar(&maxFeatures, "max-features", 100, "vocabulary size cap")
	cmd.Flags().IntVar(&components, "components", 5, "latent dimensions for lsa and word2vec")
	return cmd
}

func readTextsFrom(file string, stdin io.Reader) ([]string, error) {
	switch file {
	case "":
		return nil, fmt.Errorf("no texts given: pass them as arguments or use --file")
	case "-":
		return readTexts(stdin)
	default:
		f, err := os.Open(file) //nolint:gosec // path comes from the operator
		if err != nil {
			return nil, fmt.Errorf("open texts file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return readTexts(f)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
