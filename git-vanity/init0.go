package main

import (
	. "github.com/spf13/pflag"
	"os"
	"runtime"
)

var pDir, pJobs, pNoCodesDefault = ".", 0, false
var pHelp, pDebug, pDryRun, pNoCodes, pQuiet, pTime, pVerbose bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true", "-q":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		noCodes()
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	StringVarP(&pDir, "dir", "C", ".",
		purp+"run as if started in this repository directory"+zero)

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	BoolVarP(&pDryRun, "dry-run", "n", false,
		purp+"search only; do not write the forged commit"+zero)

	IntVarP(&pJobs, "jobs", "j", runtime.NumCPU(),
		purp+"number of parallel search workers"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	BoolVarP(&pQuiet, "quiet", "q", false,
		purp+"suppress diagnostics and print ONLY the new digest"+zero+
			n+"(enables --no-codes)")

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken and hash rate of the search"+zero)

	BoolVarP(&pVerbose, "verbose", "v", false,
		purp+"log search progress to stderr"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
}

func noCodes() {
	pNoCodes = true
	yell, purp, und, zero = "", "", "", ""
}
