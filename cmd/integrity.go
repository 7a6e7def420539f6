package cmd

import (
	"context"
	"fmt"
	"os"

	"wish-archive/core/database"
	"wish-archive/core/storage"
	"wish-archive/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the catalog and the archive database",
	Long:  `Checks that the metadata documents exist in the bucket and that the archive schema matches the expected tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), true, true)
	},
}

// catalogCheckCmd represents the integrity catalog command
var catalogCheckCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check the metadata documents",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCheckCmd represents the integrity schema command
var schemaCheckCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the archive database schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(catalogCheckCmd, schemaCheckCmd)
}

func runIntegrityChecks(ctx context.Context, runCatalog, runSchema bool) {
	cfg, logg, err := loadLogger()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	// Database is optional for the catalog check
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := integrity.NewService(client, cfg.Storage.Bucket, cfg.Catalog.Prefix, logg, db)

	if runCatalog {
		logg.Info("Checking metadata documents...", zap.String("prefix", cfg.Catalog.Prefix))
		missing, err := svc.CheckCatalog(ctx)
		if err != nil {
			logg.Fatal("Catalog check failed", zap.Error(err))
		}

		if len(missing) == 0 {
			logg.Info("Metadata documents are present.")
		} else {
			logg.Warn("Missing metadata documents detected", zap.Strings("missing", missing))
		}
	}

	if runSchema {
		logg.Info("Checking archive schema integrity...", zap.String("driver", cfg.Database.Driver))
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
			return
		}

		if report.Matched {
			logg.Info("Archive schema matches expected definition.", zap.String("dialect", report.Dialect))
			return
		}

		logg.Warn("Archive schema mismatches found", zap.String("dialect", report.Dialect))
		for table, tblReport := range report.Tables {
			if tblReport.Status == "ok" {
				continue
			}
			if len(tblReport.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
			}
			if len(tblReport.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
	}
}
