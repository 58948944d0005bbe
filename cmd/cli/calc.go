package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iho/gocalc/internal/usecase"
)

func calcCmd(v *viper.Viper) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "calc <name>",
		Short: "Evaluate a calculator on a JSON input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := languageFrom(v)
			if err != nil {
				return err
			}

			uc := usecase.NewCalculatorUseCase(usecase.NewLoanUseCase(nil, nil, nil), nil, nil)
			out, err := uc.Evaluate(cmd.Context(), usecase.EvaluateInput{
				Name:     args[0],
				Payload:  json.RawMessage(input),
				Language: lang,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Title, out.Summary)
			return printJSON(cmd.OutOrStdout(), out.Result)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", `Calculator input as JSON, e.g. '{"total_cost":"1000","final_value":"1250"}'`)
	_ = cmd.MarkFlagRequired("input")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := languageFrom(v)
			if err != nil {
				return err
			}

			uc := usecase.NewCalculatorUseCase(usecase.NewLoanUseCase(nil, nil, nil), nil, nil)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tTITLE")
			for _, c := range uc.ListCalculators(lang) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Category, c.Title)
			}
			return tw.Flush()
		},
	})

	return cmd
}
