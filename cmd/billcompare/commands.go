package main

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"BillCompare/internal/app"
	"BillCompare/internal/catalog"
	"BillCompare/internal/compare"
	"BillCompare/internal/config"
	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
	"BillCompare/internal/render"
	"BillCompare/internal/usecase"
)

func serveCmd(application *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the bill data-source API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.Serve(cmd.Context())
		},
	}
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "first month, YYYY-MM (default: latest months)")
	cmd.Flags().String("end", "", "last month, YYYY-MM")
}

func rangeFlags(cmd *cobra.Command) ports.RangeQuery {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	return ports.RangeQuery{Start: start, End: end}
}

// loadSession fetches the pool through the API or, with --local, the store.
func loadSession(cmd *cobra.Command, application *app.Application) (*compare.Session, func() error, error) {
	local, _ := cmd.Flags().GetBool("local")
	cmp, closeFn, err := application.Comparison(cmd.Context(), local)
	if err != nil {
		return nil, nil, err
	}
	session, err := cmp.Refresh(cmd.Context(), rangeFlags(cmd))
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return session, closeFn, nil
}

func compareCmd(application *app.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <source-file>",
		Short: "Compare the latest versions of a bill",
		Long: `Compare shows, article by article, what each selected version of a bill
adds to the current law. Versions are the latest bill per proposing party or
branch of government among bills that amend the same law.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := loadSession(cmd, application)
			if err != nil {
				return err
			}
			defer closeFn()

			labels, _ := cmd.Flags().GetStringSlice("versions")
			affs := make([]domain.Affiliation, 0, len(labels))
			for _, label := range labels {
				aff, ok := domain.ParseAffiliation(strings.TrimSpace(label))
				if !ok {
					return fmt.Errorf("unknown version %q (one of %s)", label, affiliationList())
				}
				affs = append(affs, aff)
			}

			view, err := usecase.SelectView(session, args[0], affs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asHTML, _ := cmd.Flags().GetBool("html"); asHTML {
				layout := application.Layout()
				if v, _ := cmd.Flags().GetString("layout"); v != "" {
					layout = render.ParseLayout(v)
				}
				_, err := fmt.Fprintln(out, render.View(view, layout))
				return err
			}
			return render.WriteText(out, view)
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().StringSlice("versions", nil, "versions to compare, e.g. 行政院,民主進步黨 (default: all)")
	cmd.Flags().Bool("html", false, "print the HTML rendering")
	cmd.Flags().String("layout", "", "HTML layout: desktop or mobile")
	return cmd
}

func versionsCmd(application *app.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions <source-file>",
		Short: "List the comparable versions of a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := loadSession(cmd, application)
			if err != nil {
				return err
			}
			defer closeFn()

			base, err := session.FindBySource(args[0])
			if err != nil {
				return err
			}
			versions := session.SelectBase(base)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d versions)\n", session.BaseTitle(), len(versions))
			for _, v := range versions.Ordered() {
				fmt.Fprintf(out, "  %-6s %s\n", v.Affiliation, v.Bill.SourceFile)
			}
			return nil
		},
	}
	addRangeFlags(cmd)
	return cmd
}

func searchCmd(application *app.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search bills by title or reason",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := loadSession(cmd, application)
			if err != nil {
				return err
			}
			defer closeFn()

			query := strings.Join(args, " ")
			var results []domain.Bill
			if broad, _ := cmd.Flags().GetBool("people"); broad {
				results = catalog.Search(session.Pool(), query)
			} else {
				results = session.Search(query)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d bills match %q\n", len(results), query)
			for _, b := range results {
				fmt.Fprintf(out, "  %s  [%s]  %s\n", b.SourceFile, session.Roster().VersionLabel(b), compare.BillTitle(b))
			}
			return nil
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().Bool("people", false, "also match proposers and cosigners")
	return cmd
}

func statsCmd(application *app.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show category, progress and party statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := loadSession(cmd, application)
			if err != nil {
				return err
			}
			defer closeFn()

			pool := session.Pool()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Bills: %d\n", len(pool))

			fmt.Fprintln(out, "\nCategories:")
			counts := catalog.CategoryCounts(pool)
			codes := make([]string, 0, len(counts))
			for code := range counts {
				codes = append(codes, code)
			}
			sort.Slice(codes, func(i, j int) bool { return counts[codes[i]] > counts[codes[j]] })
			for _, code := range codes {
				label := domain.CategoryDefinitions[code]
				if label == "" {
					label = code
				}
				fmt.Fprintf(out, "  %-20s %d\n", label, counts[code])
			}

			fmt.Fprintln(out, "\nProgress:")
			progress := catalog.ProgressCounts(pool)
			for _, class := range domain.ProgressClasses {
				fmt.Fprintf(out, "  %-8s %d\n", class, progress[class])
			}

			fmt.Fprintln(out, "\nParties:")
			stats := catalog.PartyStats(pool, session.Legislators())
			for _, bucket := range catalog.PartyBuckets {
				fmt.Fprintf(out, "  %-16s %d\n", bucket, stats.PartyCounts[bucket])
			}
			fmt.Fprintf(out, "  independent participation: %.1f%%\n", stats.IndependentParticipationRate*100)

			fmt.Fprintln(out, "\nMost amended:")
			for i, entry := range catalog.TitleRanking(pool) {
				fmt.Fprintf(out, "  %2d. %s (%d)\n", i+1, entry.Title, entry.Count)
			}

			class, _ := cmd.Flags().GetString("progress")
			if class == "" {
				return nil
			}
			if !slices.Contains(domain.ProgressClasses, class) {
				return fmt.Errorf("progress class %q: %w", class, domain.ErrInvalidInput)
			}
			category, _ := cmd.Flags().GetString("category")
			matches := catalog.FilterProgress(pool, class, category)
			fmt.Fprintf(out, "\n%s: %d\n", class, len(matches))
			for _, b := range matches {
				fmt.Fprintf(out, "  %s  %s\n", b.SourceFile, compare.BillTitle(b))
			}
			return nil
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().String("progress", "", "list bills in this progress class (一讀, 委員會審議, 二讀, 三讀, 其他)")
	cmd.Flags().String("category", "", "with --progress, only bills tagged with this category code")
	return cmd
}

func importCmd(application *app.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy monthly bill files into the SQL archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := application.Config()
			from := config.StoreConfig{Kind: config.StoreDir, Dir: cfg.Store.Dir}
			to := config.StoreConfig{Kind: config.StoreSQL, DSN: cfg.Store.DSN}
			if dir, _ := cmd.Flags().GetString("from-dir"); dir != "" {
				from.Dir = dir
			}
			if dsn, _ := cmd.Flags().GetString("to-dsn"); dsn != "" {
				to.DSN = dsn
			}
			if toBucket, _ := cmd.Flags().GetBool("to-bucket"); toBucket {
				to = config.StoreConfig{Kind: config.StoreS3, Bucket: cfg.Store.Bucket}
			}

			result, err := application.Import(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d bills across %d months (batch %s)\n",
				result.Bills, result.Months, result.BatchID)
			return nil
		},
	}
	cmd.Flags().String("from-dir", "", "directory of monthly JSON files (default: store.dir)")
	cmd.Flags().String("to-dsn", "", "archive DSN, sqlite path or postgres URL (default: store.dsn)")
	cmd.Flags().Bool("to-bucket", false, "import into the configured bucket instead")
	return cmd
}

func affiliationList() string {
	labels := make([]string, len(domain.Affiliations))
	for i, a := range domain.Affiliations {
		labels[i] = string(a)
	}
	return strings.Join(labels, ", ")
}
