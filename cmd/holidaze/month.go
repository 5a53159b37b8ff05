package main

import (
	"context"

	"github.com/spf13/cobra"

	"holidaze/internal/app/dto"
	calendarapp "holidaze/internal/app/handlers/calendar"
	"holidaze/internal/app/queries"
	"holidaze/internal/domain/calendar"
)

func newMonthCmd() *cobra.Command {
	var (
		venueID  string
		month    string
		checkIn  string
		checkOut string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print one month of a venue's availability calendar",
		Example: `  holidaze month --venue 5c1f... --month 2024-08
  holidaze month --venue 5c1f... --check-in 2024-08-10 --check-out 2024-08-14`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := calendarapp.GetMonthQuery{VenueID: venueID}
			if month != "" {
				cursor, err := calendar.ParseMonth(month)
				if err != nil {
					return err
				}
				query.Month = cursor
			}
			sel, err := calendar.ParseSelection(checkIn, checkOut)
			if err != nil {
				return err
			}
			query.Selection = sel

			return withApplication(cmd, func(ctx context.Context, app *application) error {
				result, err := queries.Ask[calendarapp.GetMonthQuery, dto.CalendarMonth](ctx, app.queries, query)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				renderMonth(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&venueID, "venue", "", "venue id")
	cmd.Flags().StringVar(&month, "month", "", "month to show (YYYY-MM), defaults to the current month")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the render model as JSON")
	selectionFlags(cmd, &checkIn, &checkOut)
	_ = cmd.MarkFlagRequired("venue")
	return cmd
}
