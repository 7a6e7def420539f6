// Package config provides configuration management for the Wish Archive.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file (via godotenv). Defaults come from the `default`
// struct tags of every partial configuration.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: archive database driver and connection details
//   - Storage: S3/MinIO credentials and the bucket holding the metadata catalog
//   - Catalog: object prefix and cache TTL for metadata
//   - Fetch: gacha log API region, page size and rate-limit delays
//   - Statistics: optional YAML file overriding pool pity settings
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Fetch.Region)
package config
