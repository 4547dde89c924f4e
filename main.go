package main

import (
    "context"
    "log/slog"
    "os"
    "os/signal"
    "strings"
    "syscall"

    "github.com/spf13/cobra"

    "tradematch-seo/config"
)

type app struct {
    cfg *config.Config
}

func newRootCmd() *cobra.Command {
    a := &app{}

    root := &cobra.Command{
        Use:           "tmseo",
        Short:         "Internal link weighting, phased sitemaps and rollout gating for generated pages",
        SilenceUsage:  true,
        SilenceErrors: true,
        PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
            return a.load(cmd)
        },
    }

    flags := root.PersistentFlags()
    flags.String("pages-dir", "", "generated pages directory (PAGES_DIR)")
    flags.String("base-url", "", "public site URL (BASE_URL)")
    flags.String("log-level", "", "debug, info, warn or error (LOG_LEVEL)")

    root.AddCommand(
        newPatchCmd(a),
        newSitemapCmd(a),
        newRolloutCmd(a),
        newReportCmd(a),
    )
    return root
}

// load reads configuration and applies persistent flag overrides.
func (a *app) load(cmd *cobra.Command) error {
    cfg, err := config.Load()
    if err != nil {
        return err
    }

    flags := cmd.Flags()
    if flags.Changed("pages-dir") {
        dir, _ := flags.GetString("pages-dir")
        cfg.SetPagesDir(dir)
    }
    if flags.Changed("base-url") {
        cfg.BaseURL, _ = flags.GetString("base-url")
    }
    if flags.Changed("log-level") {
        level, _ := flags.GetString("log-level")
        cfg.LogLevel = strings.ToLower(level)
    }
    if err := cfg.Validate(); err != nil {
        return err
    }

    slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
        Level: cfg.SlogLevel(),
    })))

    a.cfg = cfg
    return nil
}

func main() {
    // Setup graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    if err := newRootCmd().ExecuteContext(ctx); err != nil {
        slog.Error("Command failed", "error", err)
        os.Exit(1)
    }
}
