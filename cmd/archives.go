package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// archivesCmd lists the stored archives.
var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List the stored archives",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadLogger()
		if err != nil {
			return err
		}
		defer logg.Sync()

		rt, err := bootstrap(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}

		archives, err := rt.service.Archives(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list archives: %w", err)
		}

		if len(archives) == 0 {
			fmt.Println("No archives stored.")
			return nil
		}

		fmt.Println("\n=== Archives ===")
		for _, a := range archives {
			selected := ""
			if a.IsSelected {
				selected = "*"
			}
			fmt.Printf("%1s %-12s created %s\n", selected, a.UID, a.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(archivesCmd)
}
