package main

import (
	"context"

	"github.com/spf13/cobra"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/dto"
	calendarapp "holidaze/internal/app/handlers/calendar"
	"holidaze/internal/domain/calendar"
)

func newSelectCmd() *cobra.Command {
	var (
		venueID  string
		date     string
		checkIn  string
		checkOut string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Apply one day click to a check-in/check-out selection",
		Example: `  holidaze select --venue 5c1f... --date 2024-08-10
  holidaze select --venue 5c1f... --check-in 2024-08-10 --date 2024-08-14`,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := calendar.ParseDate(date)
			if err != nil {
				return err
			}
			current, err := calendar.ParseSelection(checkIn, checkOut)
			if err != nil {
				return err
			}
			command := calendarapp.SelectDayCommand{VenueID: venueID, Day: day, Current: current}

			return withApplication(cmd, func(ctx context.Context, app *application) error {
				result, err := commands.Dispatch[calendarapp.SelectDayCommand, dto.Selection](ctx, app.commands, command)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				renderTransition(cmd.OutOrStdout(), day, current, result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&venueID, "venue", "", "venue id")
	cmd.Flags().StringVar(&date, "date", "", "clicked day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resulting selection as JSON")
	selectionFlags(cmd, &checkIn, &checkOut)
	_ = cmd.MarkFlagRequired("venue")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
