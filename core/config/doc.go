// Package config provides configuration management for the Migration Manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Source: MongoDB connection details for the document store
//   - Database: MySQL connection details for the relational store
//   - Storage: S3/MinIO credentials for the report archive
//   - Log: Logging level and format
//   - Reconcile: worker count, per-call timeout, mappings file
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Host)
package config
