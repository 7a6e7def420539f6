package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"wish-archive/core/reconcile"
	"wish-archive/feature/gachalog"
	"wish-archive/feature/gachalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the refresh command
	refreshQuery    string
	refreshStrategy string
	yesConfirm      bool
)

// refreshCmd pulls the remote gacha log into the archive.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh an archive from the remote gacha log",
	Long: `Pages through the remote gacha log of every query type and merges it into the archive.

The lazy strategy appends only records newer than the stored ones and stops at
the first overlap. The aggressive strategy refetches everything and replaces the
stored tail; it asks for confirmation unless --yes is given.

Examples:
  # Append new records
  refresh --query "authkey=...&lang=zh-cn"

  # Replace the stored tail with auto-confirm (non-interactive)
  refresh --query "authkey=..." --strategy aggressive --yes`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVarP(&refreshQuery, "query", "q", "", "Auth query string or full gacha log URL")
	refreshCmd.Flags().StringVarP(&refreshStrategy, "strategy", "s", string(reconcile.StrategyLazy), "Merge strategy (lazy, aggressive)")
	refreshCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	_ = refreshCmd.MarkFlagRequired("query")

	RootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	strategy, err := reconcile.ParseStrategy(refreshStrategy)
	if err != nil {
		return err
	}

	cfg, l, err := loadLogger()
	if err != nil {
		return err
	}
	defer l.Sync()

	// Ctrl+C cancels the run; committed types stay committed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, cfg, l)
	if err != nil {
		return err
	}

	if strategy == reconcile.StrategyAggressive && !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Starting refresh", zap.String("strategy", string(strategy)))

	result, err := rt.service.Refresh(ctx, refreshQuery, strategy, progressLogger(l))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			l.Warn("Refresh cancelled")
		}
		return fmt.Errorf("refresh failed: %w", err)
	}

	printRefreshResult(l, result)
	return nil
}

// progressLogger reports every progress snapshot at debug level.
func progressLogger(l *zap.Logger) gachalog.ProgressSink {
	return func(state models.FetchState) {
		l.Debug("Refresh progress",
			zap.Stringer("query_type", state.QueryType),
			zap.Int("page_items", len(state.Items)),
			zap.Bool("auth_expired", state.AuthExpired),
		)
	}
}

// printRefreshResult prints a summary of the refresh using the logger.
func printRefreshResult(l *zap.Logger, result *gachalog.RefreshResult) {
	if result.State.AuthExpired {
		l.Warn("Auth query expired; the interrupted query type was not saved",
			zap.Stringer("query_type", result.State.QueryType))
	}

	if result.Archive == nil {
		l.Info("Refresh completed, no archive was touched")
		return
	}

	l.Info("Refresh completed",
		zap.String("uid", result.Archive.UID),
		zap.Bool("changed", result.Changed),
	)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  The aggressive strategy replaces stored records. Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
