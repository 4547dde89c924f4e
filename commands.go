package main

import (
    "fmt"
    "log/slog"
    "path/filepath"
    "strings"
    "time"

    "github.com/pkg/errors"
    "github.com/spf13/cobra"

    "tradematch-seo/catalog"
    "tradematch-seo/database"
    "tradematch-seo/graph"
    "tradematch-seo/linking"
    "tradematch-seo/metrics"
    "tradematch-seo/patcher"
    "tradematch-seo/report"
    "tradematch-seo/rollout"
    "tradematch-seo/sitemap"
)

func (a *app) loadCatalog() (*catalog.Catalog, error) {
    locations, err := catalog.LoadLocations(a.cfg.LocationsCSV, a.cfg.ExpectedLocations)
    if err != nil {
        return nil, err
    }
    slog.Info("Loaded locations", "count", len(locations), "path", a.cfg.LocationsCSV)
    return catalog.Default(locations), nil
}

func newPatchCmd(a *app) *cobra.Command {
    cmd := &cobra.Command{
        Use:   "patch",
        Short: "Recompute internal links for every generated page and write hub pages",
        RunE: func(cmd *cobra.Command, args []string) error {
            flags := cmd.Flags()
            if flags.Changed("workers") {
                a.cfg.Workers, _ = flags.GetInt("workers")
            }
            if flags.Changed("locations-csv") {
                a.cfg.LocationsCSV, _ = flags.GetString("locations-csv")
            }
            if flags.Changed("debug-path") {
                a.cfg.DebugPath, _ = flags.GetString("debug-path")
            }
            if flags.Changed("metrics-path") {
                a.cfg.MetricsPath, _ = flags.GetString("metrics-path")
            }
            if err := a.cfg.Validate(); err != nil {
                return err
            }
            return a.runPatch(cmd)
        },
    }

    cmd.Flags().Int("workers", 0, "concurrent page workers (WORKERS)")
    cmd.Flags().String("locations-csv", "", "locations CSV (LOCATIONS_CSV)")
    cmd.Flags().String("debug-path", "", "link graph debug artifact (DEBUG_PATH)")
    cmd.Flags().String("metrics-path", "", "Prometheus textfile output (METRICS_PATH)")
    return cmd
}

func (a *app) runPatch(cmd *cobra.Command) error {
    ctx := cmd.Context()
    cfg := a.cfg

    c, err := a.loadCatalog()
    if err != nil {
        return err
    }

    run := graph.NewRun(cfg.BaseURL)
    reg := metrics.NewRegistry()
    slog.Info("Starting link patch", "run_id", run.ID, "pages_dir", cfg.PagesDir, "workers", cfg.Workers)

    stats, err := patcher.New(linking.NewEngine(c), run, reg, cfg.PagesDir, cfg.Workers).Run(ctx)
    if err != nil {
        return errors.Wrap(err, "patch run failed")
    }

    if err := run.WriteArtifact(cfg.DebugPath); err != nil {
        return err
    }

    if cfg.DatabaseURL != "" {
        store, err := database.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
        if err != nil {
            return err
        }
        defer store.Close()

        if err := store.SaveRun(ctx, run); err != nil {
            return err
        }
        slog.Info("Saved link graph", "run_id", run.ID, "driver", cfg.DatabaseDriver)
    }

    if cfg.MetricsPath != "" {
        if err := reg.WriteTextfile(cfg.MetricsPath); err != nil {
            return err
        }
    }

    w := cmd.OutOrStdout()
    fmt.Fprintln(w, "✅ Internal link patch complete")
    fmt.Fprintf(w, "Pages patched: %d (unchanged %d, missing %d, errors %d)\n",
        stats.PagesPatched, stats.PagesUnchanged, stats.PagesSkipped, stats.Errors)
    fmt.Fprintf(w, "Hub pages: %d\n", stats.HubPages)
    fmt.Fprintf(w, "Orphans: %d\n", len(run.Orphans()))
    fmt.Fprintf(w, "Debug map: %s\n", cfg.DebugPath)
    fmt.Fprintf(w, "Duration: %s\n", stats.Duration.Round(time.Millisecond))
    return nil
}

func newSitemapCmd(a *app) *cobra.Command {
    cmd := &cobra.Command{
        Use:   "sitemap",
        Short: "Write phased sitemaps and their indexes",
        RunE: func(cmd *cobra.Command, args []string) error {
            if cmd.Flags().Changed("url-limit") {
                a.cfg.SitemapURLLimit, _ = cmd.Flags().GetInt("url-limit")
            }
            if err := a.cfg.Validate(); err != nil {
                return err
            }

            c, err := a.loadCatalog()
            if err != nil {
                return err
            }

            dir := a.cfg.PhasedSitemapDir()
            results, err := sitemap.Write(dir, a.cfg.BaseURL, a.cfg.SitemapURLLimit, sitemap.BuildPhases(c, a.cfg.BaseURL), time.Now())
            if err != nil {
                return err
            }

            w := cmd.OutOrStdout()
            fmt.Fprintln(w, "✅ Phased sitemaps generated")
            for _, res := range results {
                fmt.Fprintf(w, "%s: %d URLs in %d files\n", res.Name, res.URLs, len(res.Files))
            }
            fmt.Fprintf(w, "Master index: %s\n", filepath.Join(dir, sitemap.MasterIndexName))
            return nil
        },
    }

    cmd.Flags().Int("url-limit", 0, "maximum URLs per sitemap file (SITEMAP_URL_LIMIT)")
    return cmd
}

func newRolloutCmd(a *app) *cobra.Command {
    defaults := rollout.DefaultThresholds()

    cmd := &cobra.Command{
        Use:   "rollout",
        Short: "Gate phased sitemaps on Search Console exports",
        RunE: func(cmd *cobra.Command, args []string) error {
            flags := cmd.Flags()
            opts := rollout.Options{
                Dir:     a.cfg.PhasedSitemapDir(),
                BaseURL: a.cfg.BaseURL,
                Now:     time.Now(),
            }
            opts.SitemapsReport, _ = flags.GetString("sitemaps-report")
            opts.PagesReport, _ = flags.GetString("pages-report")
            opts.Thresholds.MinIndexRatio, _ = flags.GetFloat64("min-index-ratio")
            opts.Thresholds.MaxSoft404, _ = flags.GetFloat64("max-soft404")
            opts.Thresholds.MaxDuplicate, _ = flags.GetFloat64("max-duplicate")
            opts.Thresholds.MaxDiscovered, _ = flags.GetFloat64("max-discovered")

            state, err := rollout.Run(opts)
            if err != nil {
                return err
            }

            w := cmd.OutOrStdout()
            fmt.Fprintln(w, "✅ Rollout gating complete")
            fmt.Fprintf(w, "Unlocked phases: %s\n", strings.Join(state.UnlockedPhases, ", "))
            if len(state.Alerts) > 0 {
                fmt.Fprintln(w, "⚠️  Alerts:")
                for _, alert := range state.Alerts {
                    fmt.Fprintf(w, "- %s\n", alert)
                }
            }
            return nil
        },
    }

    flags := cmd.Flags()
    flags.String("sitemaps-report", "", "Search Console sitemaps CSV export")
    flags.String("pages-report", "", "Search Console pages CSV export")
    flags.Float64("min-index-ratio", defaults.MinIndexRatio, "indexed ratio needed to unlock the next phase")
    flags.Float64("max-soft404", defaults.MaxSoft404, "soft 404 ratio alert threshold")
    flags.Float64("max-duplicate", defaults.MaxDuplicate, "duplicate ratio alert threshold")
    flags.Float64("max-discovered", defaults.MaxDiscovered, "discovered-not-indexed ratio alert threshold")
    return cmd
}

func newReportCmd(a *app) *cobra.Command {
    cmd := &cobra.Command{
        Use:   "report",
        Short: "Summarise a link graph debug artifact, optionally against a previous one",
        RunE: func(cmd *cobra.Command, args []string) error {
            current, _ := cmd.Flags().GetString("current")
            if current == "" {
                current = a.cfg.DebugPath
            }
            previous, _ := cmd.Flags().GetString("previous")

            cur, err := report.Load(current)
            if err != nil {
                return err
            }
            if previous == "" {
                report.Print(cmd.OutOrStdout(), cur)
                return nil
            }

            prev, err := report.Load(previous)
            if err != nil {
                return err
            }
            report.Compare(cmd.OutOrStdout(), prev, cur)
            return nil
        },
    }

    cmd.Flags().String("current", "", "debug artifact to summarise (defaults to DEBUG_PATH)")
    cmd.Flags().String("previous", "", "earlier debug artifact to compare against")
    return cmd
}
