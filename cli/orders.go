package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookbazaar/app/domain"
	"bookbazaar/cli/output"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and review orders",
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Order everything in the cart",
	Long: `Place an order for the current cart contents. The server prices each
line from the live catalog, decrements stock, and empties the cart.`,
	Args: cobra.NoArgs,
	RunE: runOrderPlace,
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past orders",
	Args:  cobra.NoArgs,
	RunE:  runOrderList,
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderPlaceCmd)
	orderCmd.AddCommand(orderListCmd)
}

func runOrderPlace(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	items := app.Cart.Items()
	if len(items) == 0 {
		printer.Print("Your cart is empty; nothing to order.")
		return nil
	}

	request := make([]domain.OrderRequestItem, 0, len(items))
	for _, item := range items {
		request = append(request, domain.OrderRequestItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		})
	}

	order, err := app.API.PlaceOrder(cmd.Context(), app.Session.Token(), request)
	if err != nil {
		return fmt.Errorf("placing order: %w", err)
	}

	// The server emptied the cart; drop the local mirror without a
	// round trip, then reconcile with the server when it is reachable
	app.Cart.Clear()
	app.Cart.Load(cmd.Context())

	printer.Success("Order %s placed, total %s", order.ID, formatPrice(order.Total))
	return nil
}

func runOrderList(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	orders, err := app.API.ListOrders(cmd.Context(), app.Session.Token())
	if err != nil {
		return fmt.Errorf("listing orders: %w", err)
	}

	if len(orders) == 0 {
		printer.Print("No orders yet.")
		return nil
	}

	for _, order := range orders {
		printer.Header(fmt.Sprintf("Order %s (%s, %s)",
			order.ID, order.CreatedAt.Format("2006-01-02"), order.Status))

		table := output.NewTable([]string{"TITLE", "AUTHOR", "PRICE", "QTY"})
		for _, item := range order.Items {
			table.AddRow([]string{
				item.Title,
				item.Author,
				formatPrice(item.Price),
				strconv.Itoa(item.Quantity),
			})
		}
		table.Render()
		printer.Print("Total: %s", printer.Bold(formatPrice(order.Total)))
	}
	return nil
}
