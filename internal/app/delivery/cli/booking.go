package cli

import (
	"carerouter-service/internal/pkg/dto/requests"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	nearby := &cobra.Command{
		Use:   "nearby",
		Short: "Search support resources near you",
		RunE:  withApp(runNearby),
	}
	nearby.Flags().Float64("lat", 0, "Latitude to search around")
	nearby.Flags().Float64("lng", 0, "Longitude to search around")
	nearby.Flags().String("filters", "", "Backend resource filters")

	RootCmd.AddCommand(
		nearby,
		&cobra.Command{
			Use:   "locations",
			Short: "List providers you can book with",
			RunE:  withApp(runLocations),
		},
		&cobra.Command{
			Use:   "slots <location-id>",
			Short: "Show available times at a provider",
			Args:  cobra.ExactArgs(1),
			RunE:  withApp(runSlots),
		},
		&cobra.Command{
			Use:   "book <location-id> <slot-number>",
			Short: "Book one of the times listed by slots",
			Args:  cobra.ExactArgs(2),
			RunE:  withApp(runBook),
		},
		&cobra.Command{
			Use:   "confirmation",
			Short: "Show the confirmation of your last booking",
			RunE:  withApp(runConfirmation),
		},
	)
}

func runLocations(cmd *cobra.Command, args []string, a *app) error {
	for _, location := range a.bookings.Locations(cmd.Context()) {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", location.ID, location.Name)
	}
	return nil
}

func runNearby(cmd *cobra.Command, args []string, a *app) error {
	request := &requests.NearbyResources{}
	request.Filters, _ = cmd.Flags().GetString("filters")
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		request.Lat, request.Lng = &lat, &lng
	}

	nearby, err := a.bookings.Nearby(cmd.Context(), a.clientID, request)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(nearby.Resources) == 0 {
		fmt.Fprintln(out, "No resources found.")
		return nil
	}
	for i, resource := range nearby.Resources {
		fmt.Fprintf(out, "%3d) %s\n", i+1, resource.Name)
		if contact := resource.ContactValue(); contact != "" {
			fmt.Fprintf(out, "     %s\n", contact)
		}
	}
	return nil
}

func runSlots(cmd *cobra.Command, args []string, a *app) error {
	availability, err := a.bookings.Availability(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", availability.Location.Name)
	for i, slot := range availability.Slots {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d) %s\n", i+1, slot.Label)
	}
	return nil
}

func runBook(cmd *cobra.Command, args []string, a *app) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("slot number must be a number: %w", err)
	}
	availability, err := a.bookings.Availability(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if n < 1 || n > len(availability.Slots) {
		return fmt.Errorf("slot number must be between 1 and %d", len(availability.Slots))
	}
	slot := availability.Slots[n-1]

	receipt, _, err := a.bookings.Finalize(cmd.Context(), a.clientID, &requests.FinalizeBooking{
		LocationID: availability.Location.ID,
		Date:       slot.Date,
		Time:       slot.Time,
	})
	if err != nil {
		return err
	}
	a.log.WithField("location_id", receipt.Location.ID).Debug("booking saved")
	fmt.Fprintf(cmd.OutOrStdout(), "Booked %s at %s. Run `carerouter confirmation` for details.\n", slot.Label, receipt.PlaceName)
	return nil
}

func runConfirmation(cmd *cobra.Command, args []string, a *app) error {
	confirmation, redirect, err := a.bookings.Confirmation(cmd.Context(), a.clientID)
	if err != nil {
		return err
	}
	if redirect != "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No booking to confirm. Run `carerouter locations` to book one.")
		return nil
	}

	receipt := confirmation.Receipt
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Booking Confirmed!")
	fmt.Fprintf(out, "  Location: %s\n", receipt.PlaceName)
	fmt.Fprintf(out, "  Time:     %s\n", receipt.Slot)
	fmt.Fprintf(out, "  Directions: %s\n", confirmation.DirectionsURL)
	return nil
}
