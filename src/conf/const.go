// Package conf contains the constants and the driver configuration that are
// shared across packages.
package conf

import (
	"fmt"
	"time"
)

const (
	// SEMCVERSION is the version of the semc application.
	SEMCVERSION = "semc 0.1.0"
	// SEMCVERSIONMAJORN is the major version.
	SEMCVERSIONMAJORN = 0
	// SEMCVERSIONMINORN is the minor version.
	SEMCVERSIONMINORN = 1
	// SEMCVERSIONPATCHN is the patch version.
	SEMCVERSIONPATCHN = 0
	// DEFAULTTIMEFORMAT is the strftime layout of the report header.
	DEFAULTTIMEFORMAT = "%Y-%m-%d %H:%M:%S"
	// PRELUDENAME is the file name reported for errors inside the built-in prelude.
	PRELUDENAME = "<prelude>"
)

// FullVersion returns the version and copyright.
func FullVersion() string {
	return fmt.Sprintf("%v Copyright (C) %v", SEMCVERSION, time.Now().Year())
}

// Copyright is the copyright to be written out in the CLI.
func Copyright() string {
	return fmt.Sprintf("Copyright (C) %v", time.Now().Year())
}
