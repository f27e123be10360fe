package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shoresh/familytree-api/internal/service"
)

func newBirthdaysCmd(opts *cliOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "birthdays",
		Short: "Print the upcoming birthdays",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApplication(cmd.Context(), func(app *application) error {
				n := limit
				if n < 1 {
					n = app.config.Birthdays.UpcomingLimit
				}
				people, err := app.personService.UpcomingBirthdays(cmd.Context(), n)
				if err != nil {
					return err
				}
				return printBirthdays(cmd.OutOrStdout(), people)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of birthdays to list (default from config)")
	return cmd
}

func printBirthdays(w io.Writer, people []service.PersonView) error {
	if len(people) == 0 {
		_, err := fmt.Fprintln(w, "No upcoming birthdays.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBIRTHDAY\tDATE\tIN")
	for i := range people {
		p := &people[i]
		when := "today"
		if days := *p.DaysUntilBirthday; days == 1 {
			when = "tomorrow"
		} else if days > 1 {
			when = fmt.Sprintf("%d days", days)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.FullName(), p.BirthDisplay, p.NextBirthday, when)
	}
	return tw.Flush()
}
