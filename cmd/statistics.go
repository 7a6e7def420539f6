package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"wish-archive/feature/statistics"

	"github.com/spf13/cobra"
)

// statisticsCmd prints the statistics report of one archive.
var statisticsCmd = &cobra.Command{
	Use:   "statistics UID",
	Short: "Compute the pity statistics of an archive",
	Long:  `Aggregates every stored record of the archive into per-pool summaries, banner histories and tallies. Prints metrics by default or the full report with --json.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, logg, err := loadLogger()
		if err != nil {
			return err
		}
		defer logg.Sync()

		rt, err := bootstrap(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}

		report, err := rt.service.Statistics(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("statistics failed: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printReport(report)
		return nil
	},
}

func init() {
	statisticsCmd.Flags().Bool("json", false, "Output the full report as JSON")
	RootCmd.AddCommand(statisticsCmd)
}

func printReport(r *statistics.Report) {
	fmt.Println("\n=== Wish Statistics ===")
	fmt.Printf("Total Pulls: %d\n", r.TotalCount)
	for _, p := range []statistics.PoolSummary{r.Permanent, r.AvatarEvent, r.WeaponEvent} {
		fmt.Printf("\n[%s]\n", p.Name)
		fmt.Printf("Pulls: %d  Orange: %d  Purple: %d  Blue: %d\n", p.TotalCount, p.OrangeCount, p.PurpleCount, p.BlueCount)
		fmt.Printf("Last Orange: %d  Last Purple: %d  Average Orange: %.2f\n", p.LastOrangePull, p.LastPurplePull, p.AverageOrangePull)
		for _, e := range p.Events {
			up := ""
			if e.IsUp {
				up = "up"
			}
			fmt.Printf("  %-16s %3d  %-2s  %s\n", e.Item.Name, e.Pity, up, e.Time.Format("2006-01-02 15:04:05"))
		}
	}
	if r.Unresolved > 0 {
		fmt.Printf("\nUnresolved: %d\n", r.Unresolved)
	}
}
