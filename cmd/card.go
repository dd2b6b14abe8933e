package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/gradewise/internal/calcerr"
	"github.com/abhisek/gradewise/internal/spacedrep"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/ui/components"
	"github.com/abhisek/gradewise/internal/ui/theme"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage flashcards and their SM-2 review schedule",
}

var cardAddCmd = &cobra.Command{
	Use:   "add <front> [back]",
	Short: "Add a flashcard",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		card := &store.Flashcard{Front: args[0], CreatedAt: now()}
		if len(args) == 2 {
			card.Back = args[1]
		}
		card.State.EaseFactor = cfg.Scheduler.InitialEase

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.FlashcardRepo().Create(cmd.Context(), card); err != nil {
			return err
		}
		logger.Info("card added", zap.String("id", card.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", shortID(card.ID))
		return nil
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every flashcard with its schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := loadCards(cmd)
		if err != nil {
			return err
		}
		w := output(cmd)
		if len(cards) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("No cards yet. Add one with `gradewise card add`."))
			return nil
		}
		printCards(w, cards)
		return nil
	},
}

var cardDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List flashcards due for review, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := loadCards(cmd)
		if err != nil {
			return err
		}

		byID := make(map[string]store.Flashcard, len(cards))
		states := make([]spacedrep.ReviewState, 0, len(cards))
		for _, c := range cards {
			byID[c.ID] = c
			states = append(states, c.State)
		}

		due := spacedrep.DueCards(states, now())
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(due) > limit {
			due = due[:limit]
		}

		w := output(cmd)
		if len(due) == 0 {
			fmt.Fprintln(w, theme.Good.Render("Nothing due. Come back later."))
			return nil
		}
		dueCards := make([]store.Flashcard, 0, len(due))
		for _, rs := range due {
			dueCards = append(dueCards, byID[rs.CardID])
		}
		printCards(w, dueCards)
		return nil
	},
}

var cardReviewCmd = &cobra.Command{
	Use:   "review <card-id>",
	Short: "Record a review and reschedule the card",
	Long: "Grade recall either directly with --quality (0-5 or a name such as\n" +
		"\"good\") or from a quiz answer with --correct/--wrong and --confidence (1-5).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := reviewQuality(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.FlashcardRepo()
		card, err := repo.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		next, log, err := spacedrep.Review(card.State, q, now())
		if err != nil {
			return err
		}
		if err := repo.SaveReview(cmd.Context(), next, log); err != nil {
			return err
		}
		logger.Info("card reviewed",
			zap.String("id", card.ID),
			zap.Stringer("quality", q),
			zap.Int("interval", next.Interval),
			zap.Float64("ease", next.EaseFactor))

		w := output(cmd)
		style := theme.Good
		if q < spacedrep.PassingQuality {
			style = theme.Bad
		}
		fmt.Fprintf(w, "%s  %s\n", style.Render(q.String()), card.Front)
		fmt.Fprintf(w, "Next review in %d day(s) on %s (ease %.2f)\n",
			next.Interval, next.NextReview.Format(dateLayout), next.EaseFactor)
		return nil
	},
}

var cardHistoryCmd = &cobra.Command{
	Use:   "history <card-id>",
	Short: "Show a card's review history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.FlashcardRepo()
		card, err := repo.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logs, err := repo.Reviews(cmd.Context(), card.ID)
		if err != nil {
			return err
		}

		w := output(cmd)
		heading(w, truncate(card.Front, 60), 60)
		if len(logs) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("Never reviewed."))
			return nil
		}
		fmt.Fprintf(w, "%-16s  %-10s  %8s  %5s\n", "Reviewed", "Quality", "Interval", "Ease")
		for _, l := range logs {
			fmt.Fprintf(w, "%-16s  %-10s  %8d  %5.2f\n",
				l.ReviewedAt.Local().Format("2006-01-02 15:04"), l.Quality, l.Interval, l.EaseFactor)
		}
		return nil
	},
}

var cardStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := loadCards(cmd)
		if err != nil {
			return err
		}
		states := make([]spacedrep.ReviewState, 0, len(cards))
		for _, c := range cards {
			states = append(states, c.State)
		}
		ds := spacedrep.Summarize(states, now())

		w := output(cmd)
		heading(w, "Deck", 40)
		label := func(s string) string { return theme.Label.Render(fmt.Sprintf("%-14s", s)) }
		fmt.Fprintf(w, "%s %d\n", label("Cards"), ds.Total)
		fmt.Fprintf(w, "%s %d\n", label("New"), ds.New)
		fmt.Fprintf(w, "%s %d\n", label("Due"), ds.Due)
		fmt.Fprintf(w, "%s %d\n", label("Overdue"), ds.Overdue)
		fmt.Fprintf(w, "%s %.2f\n", label("Mean ease"), ds.MeanEase)
		fmt.Fprintf(w, "%s %.1f days\n", label("Mean interval"), ds.MeanInterval)
		if ds.Total > 0 {
			reviewed := float64(ds.Total-ds.New) / float64(ds.Total)
			fmt.Fprintln(w, components.NewProgressBar("reviewed", reviewed, true, 40).View())
		}
		return nil
	},
}

func init() {
	cardDueCmd.Flags().Int("limit", 0, "Show at most this many cards (0 = all)")

	cardReviewCmd.Flags().String("quality", "", "Recall quality: 0-5 or blackout|wrong|wrong-easy|hard|good|perfect")
	cardReviewCmd.Flags().Bool("correct", false, "The answer was correct")
	cardReviewCmd.Flags().Bool("wrong", false, "The answer was wrong")
	cardReviewCmd.Flags().Int("confidence", 0, "Confidence in a correct answer, 1-5")
	cardReviewCmd.MarkFlagsMutuallyExclusive("quality", "correct")
	cardReviewCmd.MarkFlagsMutuallyExclusive("quality", "wrong")
	cardReviewCmd.MarkFlagsMutuallyExclusive("correct", "wrong")

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardDueCmd)
	cardCmd.AddCommand(cardReviewCmd)
	cardCmd.AddCommand(cardHistoryCmd)
	cardCmd.AddCommand(cardStatsCmd)
}

func reviewQuality(cmd *cobra.Command) (spacedrep.Quality, error) {
	flags := cmd.Flags()
	if flags.Changed("quality") {
		s, _ := flags.GetString("quality")
		return spacedrep.ParseQuality(s)
	}
	correct, _ := flags.GetBool("correct")
	wrong, _ := flags.GetBool("wrong")
	if !correct && !wrong {
		return 0, calcerr.New("card review", calcerr.ErrInvalidInput, "one of --quality, --correct or --wrong is required")
	}
	confidence, _ := flags.GetInt("confidence")
	return spacedrep.QualityFromAnswer(correct, confidence)
}

func loadCards(cmd *cobra.Command) ([]store.Flashcard, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.FlashcardRepo().List(cmd.Context())
}

func printCards(w io.Writer, cards []store.Flashcard) {
	t := now()
	fmt.Fprintf(w, "%-8s  %-36s  %-9s  %8s  %5s  %s\n", "ID", "Front", "Status", "Interval", "Ease", "Next")
	fmt.Fprintln(w, theme.Rule.Render("────────────────────────────────────────────────────────────────────────────────"))
	for _, c := range cards {
		st := c.State.Status(t)
		status := theme.Status(st).Render(fmt.Sprintf("%-9s", st))
		next := "-"
		if c.State.NextReview != nil {
			next = c.State.NextReview.Local().Format(dateLayout)
			if st == spacedrep.StatusScheduled {
				next += fmt.Sprintf(" (in %dd)", c.State.DaysUntilReview(t))
			}
		}
		fmt.Fprintf(w, "%-8s  %-36s  %s  %8d  %5.2f  %s\n",
			shortID(c.ID), truncate(c.Front, 36), status, c.State.Interval, c.State.EaseFactor, next)
	}
}
