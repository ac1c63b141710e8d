package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func annotateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "annotate <tokenize|stem|lemmatize|pos_tag|ner> <text...>",
		Short:     "Annotate a single text",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"tokenize", "stem", "lemmatize", "pos_tag", "ner"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.client(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			text := strings.Join(args[1:], " ")
			var res any
			switch args[0] {
			case "tokenize":
				res, err = c.Annotate().Tokenize(ctx, text)
			case "stem":
				res, err = c.Annotate().Stem(ctx, text)
			case "lemmatize":
				res, err = c.Annotate().Lemmatize(ctx, text)
			case "pos_tag":
				res, err = c.Annotate().POSTag(ctx, text)
			case "ner":
				res, err = c.Annotate().NER(ctx, text)
			default:
				return fmt.Errorf("unknown operation %q", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}
