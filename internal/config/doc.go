// Package config provides configuration management for gradecli.
// It loads settings from multiple sources, validates them, and compiles the
// lookup tables that drive record extraction and subject classification.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority), optionally seeded from .env
//  2. A YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern GRADES_* for namespacing:
//
//	GRADES_LOGGING_LEVEL=debug
//	GRADES_PATHS_OUTPUT_DIR=/srv/admissions/reports
//	GRADES_EXTRACTION_MALFORMED_DATES=fail
//	GRADES_EXTRACTION_WORKERS=4
//
// Lookup tables are only read from the YAML file.
//
// # Lookup Tables
//
// Lookups holds the allow-lists of exam names, the detailed-record marker
// strings and the per-category subject mappings. Compile turns them into an
// immutable LookupTables value which is passed explicitly to the extractor
// and classifier. Compile also rejects sheet titles a workbook cannot hold,
// including the title of the report's summary sheet:
//
//	tables, err := cfg.Lookups.Compile()
//	if err != nil {
//	    return err
//	}
//	extractor := extraction.NewExtractor(tables, extraction.SkipMalformedDates, logger)
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
