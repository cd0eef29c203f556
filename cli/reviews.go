package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Read and write book reviews",
}

var reviewListCmd = &cobra.Command{
	Use:   "list <book-id>",
	Short: "List reviews for a book",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), uuidArg("book")),
	RunE:  runReviewList,
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <book-id> <rating> [comment...]",
	Short: "Review a book (rating 1-5)",
	Args:  cobra.MatchAll(cobra.MinimumNArgs(2), uuidArg("book")),
	RunE:  runReviewAdd,
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <review-id>",
	Short: "Delete a review you wrote",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), uuidArg("review")),
	RunE:  runReviewDelete,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewAddCmd)
	reviewCmd.AddCommand(reviewDeleteCmd)
}

func runReviewList(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Session.Resolve(cmd.Context()); err != nil {
		logger.Debug("session resolve failed", "error", err)
	}

	reviews, err := app.API.ListReviews(cmd.Context(), app.Session.APIKey(), args[0])
	if err != nil {
		return fmt.Errorf("listing reviews: %w", err)
	}

	if len(reviews) == 0 {
		printer.Print("No reviews yet.")
		return nil
	}

	for _, review := range reviews {
		stars := strings.Repeat("★", review.Rating) + strings.Repeat("☆", 5-review.Rating)
		printer.Print("%s  %s  %s", stars, printer.Bold(review.Username),
			printer.Dim(review.CreatedAt.Format("2006-01-02")))
		if review.Comment != "" {
			printer.Print("  %s", review.Comment)
		}
		printer.Print("  %s", printer.Dim("id: "+review.ID.String()))
	}
	return nil
}

func runReviewAdd(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be a number between 1 and 5")
	}
	comment := strings.Join(args[2:], " ")

	if err := app.API.CreateReview(cmd.Context(), app.Session.Token(), args[0], rating, comment); err != nil {
		return fmt.Errorf("posting review: %w", err)
	}

	printer.Success("Review posted")
	return nil
}

func runReviewDelete(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	if err := app.API.DeleteReview(cmd.Context(), app.Session.Token(), args[0]); err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}

	printer.Success("Review deleted")
	return nil
}
