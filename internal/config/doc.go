// Package config provides configuration structures and utilities for reportpipe.
// It defines the main options for report generation defaults, delivery
// settings, and history archiving, plus the loader for the .reportpipe file.
package config
