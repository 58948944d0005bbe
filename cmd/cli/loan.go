package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iho/gocalc/internal/domain"
	"github.com/iho/gocalc/internal/usecase"
)

func addLoanFlags(cmd *cobra.Command) {
	cmd.Flags().String("principal", "", "Loan principal")
	cmd.Flags().String("rate", "", "Annual interest rate in percent")
	cmd.Flags().Int("months", 0, "Term in months")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("months")
}

func loanTermsFromFlags(cmd *cobra.Command) (domain.LoanTerms, error) {
	principalStr, _ := cmd.Flags().GetString("principal")
	rateStr, _ := cmd.Flags().GetString("rate")
	months, _ := cmd.Flags().GetInt("months")

	principal, err := decimal.NewFromString(principalStr)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("%w: principal %q is not a number", domain.ErrInvalidInput, principalStr)
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("%w: rate %q is not a number", domain.ErrInvalidInput, rateStr)
	}

	return domain.LoanTerms{Principal: principal, AnnualRatePercent: rate, TermMonths: months}, nil
}

func languageFrom(v *viper.Viper) (domain.Language, error) {
	return domain.ParseLanguage(v.GetString("lang"))
}

func paymentCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Compute the monthly installment of a loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := loanTermsFromFlags(cmd)
			if err != nil {
				return err
			}
			lang, err := languageFrom(v)
			if err != nil {
				return err
			}

			payment, err := usecase.NewLoanUseCase(nil, nil, nil).PeriodicPayment(cmd.Context(), terms)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Monthly payment: %s (%s)\n", domain.FormatCurrency(payment, lang), payment.StringFixed(domain.MoneyPlaces))
			return nil
		},
	}
	addLoanFlags(cmd)
	return cmd
}

func scheduleCmd(v *viper.Viper) *cobra.Command {
	var (
		window int
		yearly bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule of a loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := loanTermsFromFlags(cmd)
			if err != nil {
				return err
			}
			lang, err := languageFrom(v)
			if err != nil {
				return err
			}

			result, err := usecase.NewLoanUseCase(nil, nil, nil).BuildSchedule(cmd.Context(), usecase.ScheduleInput{
				Terms:    terms,
				Language: lang,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			if yearly {
				fmt.Fprintln(tw, "Year\tPrincipal\tInterest\tBalance\t")
				for _, y := range result.YearlySummary() {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", y.Year, money(y.Principal), money(y.Interest), money(y.ClosingBalance))
				}
			} else {
				fmt.Fprintln(tw, "Month\tPayment\tPrincipal\tInterest\tBalance\t")
				for _, p := range result.Window(window) {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", p.Period, money(p.Payment), money(p.Principal), money(p.Interest), money(p.RemainingBalance))
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%s\n", usecase.ScheduleSummary(result, lang))
			return nil
		},
	}
	addLoanFlags(cmd)
	cmd.Flags().IntVar(&window, "window", 12, "Rows to print (0 prints all)")
	cmd.Flags().BoolVar(&yearly, "yearly", false, "Print yearly totals instead of monthly rows")
	return cmd
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}
