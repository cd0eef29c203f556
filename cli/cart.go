package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"bookbazaar/cli/output"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
	Long: `The cart lives on the server and is mirrored locally, so it follows
the signed-in account across machines. Every mutation is confirmed
against the server before the local mirror updates.`,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current cart",
	Args:  cobra.NoArgs,
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <book-id>",
	Short: "Add a book to the cart",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), uuidArg("book")),
	RunE:  runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id> <quantity>",
	Short: "Change a cart line's quantity",
	Args:  cobra.MatchAll(cobra.ExactArgs(2), uuidArg("cart item")),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), uuidArg("cart item")),
	RunE:  runCartRemove,
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
}

func runCartShow(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	renderCart(app)
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	// Resolve the title so the confirmation names the book
	title := args[0]
	if book, err := app.API.GetBook(cmd.Context(), app.Session.APIKey(), args[0]); err == nil {
		title = book.Title
	}

	app.Cart.AddItem(cmd.Context(), args[0], title)
	renderCart(app)
	return nil
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		printer.Error("Quantity must be a number")
		return nil
	}

	app.Cart.SetQuantity(cmd.Context(), args[0], quantity)
	renderCart(app)
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	app.Cart.RemoveItem(cmd.Context(), args[0])
	renderCart(app)
	return nil
}

func renderCart(app *appContext) {
	items := app.Cart.Items()
	if len(items) == 0 {
		printer.Print("Your cart is empty.")
		return
	}

	table := output.NewTable([]string{"ITEM ID", "TITLE", "AUTHOR", "PRICE", "QTY", "SUBTOTAL"})
	for _, item := range items {
		table.AddRow([]string{
			item.ID,
			item.Title,
			item.Author,
			formatPrice(item.Price),
			strconv.Itoa(item.Quantity),
			formatPrice(item.Price * float64(item.Quantity)),
		})
	}
	table.Render()
	printer.Print("\n%d item(s), total %s", app.Cart.TotalItems(), printer.Bold(formatPrice(app.Cart.TotalPrice())))
}
