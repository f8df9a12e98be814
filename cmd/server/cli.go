package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/codyseavey/sneaker-tracker/internal/models"
	"github.com/codyseavey/sneaker-tracker/internal/services"
)

var trendColor = map[models.Trend]lipgloss.Color{
	models.TrendUp:   lipgloss.Color("#8BC34A"),
	models.TrendDown: lipgloss.Color("#e53935"),
}

func (a *app) listCmd() *cobra.Command {
	var (
		brand     string
		watchlist bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shoes in the tracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeStore, err := a.openTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			cmds := []services.Command{services.SetBrandFilter{Brand: brand}}
			if watchlist {
				cmds = append([]services.Command{services.SelectMode{Mode: models.ModeWatchlist}}, cmds...)
			}
			screen, err := dispatchAll(cmd, tracker, cmds...)
			if err != nil {
				return err
			}
			printCards(cmd.OutOrStdout(), screen)
			return nil
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "only show this brand")
	cmd.Flags().BoolVar(&watchlist, "watchlist", false, "only show watched shoes")
	return cmd
}

func (a *app) inventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "List your inventory, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeStore, err := a.openTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			screen, err := dispatchAll(cmd, tracker, services.SelectMode{Mode: models.ModeInventory})
			if err != nil {
				return err
			}
			printInventory(cmd.OutOrStdout(), screen)
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a shoe's prices, trend and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeStore, err := a.openTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			screen, err := dispatchAll(cmd, tracker, services.OpenDetail{ID: args[0]})
			if err != nil {
				return err
			}
			if screen.Detail == nil {
				return fmt.Errorf("shoe %q not found", args[0])
			}
			printDetail(cmd.OutOrStdout(), *screen.Detail)
			return nil
		},
	}
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <id>",
		Short: "Add a shoe to the watchlist, or remove it if already watched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeStore, err := a.openTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			id := args[0]
			if _, err := dispatchAll(cmd, tracker, services.ToggleWatch{ID: id}); err != nil {
				return err
			}
			if tracker.IsWatched(id) {
				fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Stopped watching %s\n", id)
			}
			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var fields services.InventoryFields
	var price, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a shoe you own or want to buy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeStore, err := a.openTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			fields.Price = services.PriceInput(price)
			fields.Status = models.InventoryStatus(status)
			before, err := dispatchAll(cmd, tracker, services.SelectMode{Mode: models.ModeInventory})
			if err != nil {
				return err
			}
			after, err := dispatchAll(cmd, tracker, services.AddInventory{Fields: fields})
			if err != nil {
				return err
			}

			existing := make(map[string]bool, len(before.Inventory))
			for _, card := range before.Inventory {
				existing[card.ID] = true
			}
			for _, card := range after.Inventory {
				if !existing[card.ID] {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", card.ID, card.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Name, "name", "", "shoe name (required)")
	cmd.Flags().StringVar(&fields.Brand, "brand", "", "brand (required)")
	cmd.Flags().StringVar(&fields.Size, "size", "", "size, e.g. 10.5")
	cmd.Flags().StringVar(&price, "price", "", "price paid or target price")
	cmd.Flags().StringVar(&status, "status", string(models.StatusOwned), "owned or target")
	return cmd
}

func (a *app) brandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List the brands in the tracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeStore, err := a.openTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			for _, brand := range tracker.Brands() {
				fmt.Fprintln(cmd.OutOrStdout(), brand)
			}
			return nil
		},
	}
}

func dispatchAll(cmd *cobra.Command, tracker *services.Tracker, cmds ...services.Command) (models.Screen, error) {
	screen := tracker.Render()
	for _, c := range cmds {
		var err error
		screen, err = tracker.Dispatch(cmd.Context(), c)
		if err != nil {
			return screen, err
		}
	}
	return screen, nil
}

func printCards(w io.Writer, screen models.Screen) {
	if screen.EmptyMessage != "" {
		fmt.Fprintln(w, screen.EmptyMessage)
		return
	}
	for _, card := range screen.Cards {
		mark := " "
		if card.Watched {
			mark = "★"
		}
		fmt.Fprintf(w, "%s %-20s %-40s %-12s retail %-6s last %s\n",
			mark, card.ID, card.Name, card.Brand, card.RetailPrice, card.LastPrice)
	}
}

func printInventory(w io.Writer, screen models.Screen) {
	if screen.EmptyMessage != "" {
		fmt.Fprintln(w, screen.EmptyMessage)
		return
	}
	for _, card := range screen.Inventory {
		fmt.Fprintf(w, "%-22s %-30s %-12s size %-5s %-6s %s\n",
			card.ID, card.Name, card.Brand, card.Size, card.Price, card.StatusLabel)
	}
}

// printDetail styles for w's own terminal; non-terminal writers get plain text.
func printDetail(w io.Writer, d models.ShoeDetail) {
	r := lipgloss.NewRenderer(w)
	fmt.Fprintln(w, r.NewStyle().Bold(true).Render(d.Name))
	fmt.Fprintf(w, "Brand:        %s\n", d.Brand)
	fmt.Fprintf(w, "Release date: %s\n", d.ReleaseDate)
	fmt.Fprintf(w, "Retail:       %s\n", d.RetailPrice)
	fmt.Fprintf(w, "Last sale:    %s\n", d.LastPrice)
	trend := d.TrendLabel
	if color, ok := trendColor[d.Trend]; ok {
		trend = r.NewStyle().Foreground(color).Render(trend)
	}
	fmt.Fprintf(w, "Trend:        %s\n", trend)
	if d.EmptyHistory != "" {
		fmt.Fprintln(w, d.EmptyHistory)
		return
	}
	fmt.Fprintln(w, "History:")
	for _, h := range d.History {
		fmt.Fprintf(w, "  %s\n", h.Text)
	}
}
