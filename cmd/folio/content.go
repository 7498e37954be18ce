package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/views"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/i18n"
)

var (
	listKind string
	listLang string
	dryRun   bool
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and maintain the content store",
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the items visible in one language",
	Long: `Resolves the manifest with the configured strategy and prints what the
list page shows for --kind in --lang.`,
	Example: "  folio content list --kind articles --lang fr",
	RunE: func(cmd *cobra.Command, _ []string) error {
		kind, err := content.ParseKind(listKind)
		if err != nil {
			return err
		}
		catalogue, err := views.NewCatalogue()
		if err != nil {
			return err
		}
		lang, ok := catalogue.Normalize(listLang)
		if !ok {
			return fmt.Errorf("unsupported language %q", listLang)
		}

		s, err := openCommandStack(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		items, err := s.catalog.List(cmd.Context(), kind, lang)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tLANG\tTITLE\tPATH")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Slug, it.Lang, it.Title, it.Path)
		}
		return w.Flush()
	},
}

var contentCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest against the configured strategy",
	Long: `Fetches the manifest and reports items the strategy cannot resolve,
items in an unsupported language, and slugs used twice within a language.
Exits non-zero when anything is reported.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openCommandStack(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		snap, err := s.index.Load(cmd.Context())
		if err != nil {
			return err
		}

		problems := content.Check(snap.Index, s.strategy, []string{i18n.EN, i18n.FR})
		for _, p := range problems {
			fmt.Fprintln(cmd.OutOrStdout(), p.String())
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d manifest problem(s)", len(problems))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "manifest ok (%d articles, %d showcases, strategy %s)\n",
			len(snap.Index.Articles), len(snap.Index.Showcases), s.strategy.Name())
		return nil
	},
}

var contentBuildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Rebuild index.json from the storage bucket",
	Long: `Lists the articles/ and showcases/ prefixes of the bucket, reads each
document title (front matter, else the first "# " heading) and writes
index.json back to the bucket. With --dry-run the manifest is printed instead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openCommandStack(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if s.store == nil {
			return errors.New("storage.bucket is required to build the index")
		}

		b := content.NewBuilder(s.store, content.WithBuilderLogger(s.log))
		idx, err := b.Build(cmd.Context())
		if err != nil {
			return err
		}

		if dryRun {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(idx)
		}
		if err := b.Write(cmd.Context(), idx); err != nil {
			return err
		}
		s.log.Info("index written",
			slog.String("bucket", s.cfg.Storage.Bucket),
			slog.Int("articles", len(idx.Articles)),
			slog.Int("showcases", len(idx.Showcases)),
		)
		return nil
	},
}

func init() {
	contentListCmd.Flags().StringVar(&listKind, "kind", string(content.KindArticles), "articles or showcases (alias: projects)")
	contentListCmd.Flags().StringVar(&listLang, "lang", i18n.DefaultLang, "language to resolve")
	contentBuildIndexCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the manifest instead of writing it")

	contentCmd.AddCommand(contentListCmd, contentCheckCmd, contentBuildIndexCmd)
	rootCmd.AddCommand(contentCmd)
}

// openCommandStack loads the config and logs to stderr.
func openCommandStack(cmd *cobra.Command) (*stack, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStack(cmd.Context(), cfg, newLogger(cfg, cmd.ErrOrStderr()))
}
