package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookbazaar/app/domain"
	"bookbazaar/cli/output"
	"bookbazaar/client/api"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Browse and manage the catalog",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in the catalog",
	Long: `List catalog books, optionally filtered.

Examples:
  bazaarctl books list
  bazaarctl books list --search dune
  bazaarctl books list --genre Sci-Fi --max-price 20`,
	Args: cobra.NoArgs,
	RunE: runBooksList,
}

var booksShowCmd = &cobra.Command{
	Use:   "show <book-id>",
	Short: "Show a single book",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), uuidArg("book")),
	RunE:  runBooksShow,
}

var booksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog (admin)",
	Args:  cobra.NoArgs,
	RunE:  runBooksAdd,
}

var booksUpdateCmd = &cobra.Command{
	Use:   "update <book-id>",
	Short: "Update a catalog book (admin)",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), uuidArg("book")),
	RunE:  runBooksUpdate,
}

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "Remove a book from the catalog (admin)",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), uuidArg("book")),
	RunE:  runBooksDelete,
}

func init() {
	rootCmd.AddCommand(booksCmd)
	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksShowCmd)
	booksCmd.AddCommand(booksAddCmd)
	booksCmd.AddCommand(booksUpdateCmd)
	booksCmd.AddCommand(booksDeleteCmd)

	booksListCmd.Flags().String("search", "", "match title or author")
	booksListCmd.Flags().String("genre", "", "filter by genre")
	booksListCmd.Flags().Float64("min-price", 0, "minimum price")
	booksListCmd.Flags().Float64("max-price", 0, "maximum price")

	for _, c := range []*cobra.Command{booksAddCmd, booksUpdateCmd} {
		c.Flags().String("title", "", "book title")
		c.Flags().String("author", "", "book author")
		c.Flags().String("genre", "", "book genre")
		c.Flags().String("description", "", "book description")
		c.Flags().Float64("price", 0, "price")
		c.Flags().Int("stock", 0, "units in stock")
		c.Flags().String("image-url", "", "cover image URL")
	}
	_ = booksAddCmd.MarkFlagRequired("title")
	_ = booksAddCmd.MarkFlagRequired("author")
	_ = booksAddCmd.MarkFlagRequired("genre")
	_ = booksAddCmd.MarkFlagRequired("price")
}

func runBooksList(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	// Listing is public; an API key only identifies the caller
	if err := app.Session.Resolve(cmd.Context()); err != nil {
		logger.Debug("session resolve failed", "error", err)
	}

	filter := domain.BookFilter{}
	filter.Search, _ = cmd.Flags().GetString("search")
	filter.Genre, _ = cmd.Flags().GetString("genre")
	filter.MinPrice, _ = cmd.Flags().GetFloat64("min-price")
	filter.MaxPrice, _ = cmd.Flags().GetFloat64("max-price")

	books, err := app.API.ListBooks(cmd.Context(), app.Session.APIKey(), filter)
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}

	if len(books) == 0 {
		printer.Print("No books matched.")
		return nil
	}

	table := output.NewTable([]string{"ID", "TITLE", "AUTHOR", "GENRE", "PRICE", "STOCK", "RATING"})
	for _, b := range books {
		table.AddRow([]string{
			b.ID.String(),
			b.Title,
			b.Author,
			b.Genre,
			formatPrice(b.Price),
			strconv.Itoa(b.Stock),
			formatRating(b.AverageRating, b.ReviewCount),
		})
	}
	table.Render()
	return nil
}

func runBooksShow(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Session.Resolve(cmd.Context()); err != nil {
		logger.Debug("session resolve failed", "error", err)
	}

	book, err := app.API.GetBook(cmd.Context(), app.Session.APIKey(), args[0])
	if err != nil {
		return fmt.Errorf("fetching book: %w", err)
	}

	printer.Header(book.Title)
	printer.Print("Author:  %s", book.Author)
	printer.Print("Genre:   %s", book.Genre)
	printer.Print("Price:   %s", formatPrice(book.Price))
	printer.Print("Stock:   %d", book.Stock)
	printer.Print("Rating:  %s", formatRating(book.AverageRating, book.ReviewCount))
	if book.Description != "" {
		printer.Print("\n%s", book.Description)
	}
	return nil
}

func runBooksAdd(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	book, err := app.API.CreateBook(cmd.Context(), app.Session.Token(), bookInputFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("creating book: %w", err)
	}

	printer.Success("Added %q (%s)", book.Title, book.ID)
	return nil
}

func runBooksUpdate(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	// Fetch current values so unset flags keep their server state
	current, err := app.API.GetBook(cmd.Context(), app.Session.APIKey(), args[0])
	if err != nil {
		return fmt.Errorf("fetching book: %w", err)
	}

	input := api.BookInput{
		Title:       current.Title,
		Author:      current.Author,
		Genre:       current.Genre,
		Description: current.Description,
		Price:       current.Price,
		Stock:       current.Stock,
		ImageURL:    current.ImageURL,
	}
	overlayBookFlags(cmd, &input)

	book, err := app.API.UpdateBook(cmd.Context(), app.Session.Token(), args[0], input)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}

	printer.Success("Updated %q", book.Title)
	return nil
}

func runBooksDelete(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	if err := app.API.DeleteBook(cmd.Context(), app.Session.Token(), args[0]); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	printer.Success("Deleted book %s", args[0])
	return nil
}

func bookInputFromFlags(cmd *cobra.Command) api.BookInput {
	var input api.BookInput
	input.Title, _ = cmd.Flags().GetString("title")
	input.Author, _ = cmd.Flags().GetString("author")
	input.Genre, _ = cmd.Flags().GetString("genre")
	input.Description, _ = cmd.Flags().GetString("description")
	input.Price, _ = cmd.Flags().GetFloat64("price")
	input.Stock, _ = cmd.Flags().GetInt("stock")
	input.ImageURL, _ = cmd.Flags().GetString("image-url")
	return input
}

func overlayBookFlags(cmd *cobra.Command, input *api.BookInput) {
	if cmd.Flags().Changed("title") {
		input.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("author") {
		input.Author, _ = cmd.Flags().GetString("author")
	}
	if cmd.Flags().Changed("genre") {
		input.Genre, _ = cmd.Flags().GetString("genre")
	}
	if cmd.Flags().Changed("description") {
		input.Description, _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("price") {
		input.Price, _ = cmd.Flags().GetFloat64("price")
	}
	if cmd.Flags().Changed("stock") {
		input.Stock, _ = cmd.Flags().GetInt("stock")
	}
	if cmd.Flags().Changed("image-url") {
		input.ImageURL, _ = cmd.Flags().GetString("image-url")
	}
}

func formatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

func formatRating(avg *float64, count *int) string {
	if avg == nil || count == nil || *count == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d)", *avg, *count)
}
