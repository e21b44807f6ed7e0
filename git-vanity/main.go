package main

import (
	"context"
	"errors"
	. "fmt"
	"github.com/p7r0x7/shavanity"
	"github.com/p7r0x7/shavanity/gitobj"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
	"github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently render this menu in most terminal windows, its content
// should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "git-vanity" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "Forge git commits whose ids begin with a chosen prefix.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-nt] [-C <dir>] [-j <int>] [--quiet|no-codes|verbose] REF PREFIX"+n+n+
			"Options:"+n)
	PrintDefaults()
	Fprint(os.Stderr, n+"REF is any revision git understands; its commit is rewritten with an added"+n+
		"`bruteforce` header and stored alongside it. PREFIX is 1 to 40 hex characters"+n+
		"(64 in sha256 repositories). No references are moved: point a branch at the"+n+
		"printed id yourself, e.g. `git reset --hard <id>`."+n)
}

// This program forges a commit for the command-line operator: it reads REF, searches for a
// rewrite whose id starts with PREFIX, and writes the result as a loose object.
func program() int {
	Parse()
	pVerbose = pVerbose || pDebug
	if pDebug {
		cf, err := os.Create("cpu.prof")
		if err != nil {
			panic(err)
		}
		_ = pprof.StartCPUProfile(cf)
		defer pprof.StopCPUProfile()
	}

	if pHelp || NArg() == 0 {
		help()
		return success
	}
	log := newLogger()
	if NArg() != 2 {
		log.Errorf("expected REF and PREFIX, got %d arguments", NArg())
		return invalid
	}
	ref, prefix := Arg(0), Arg(1)

	/* Reject malformed prefixes before touching the repository. */
	if _, err := parsePrefix(prefix, shavanity.SHA256.Size()); err != nil {
		log.WithError(err).Error("bad prefix")
		return invalid
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := gitobj.Open(ctx, pDir)
	if err != nil {
		log.WithError(err).Error("opening repository")
		return failure
	}
	alg := store.Algorithm()
	target, err := parsePrefix(prefix, alg.Size())
	if err != nil {
		log.WithError(err).Error("bad prefix")
		return invalid
	}

	id, raw, err := store.Read(ctx, ref)
	if err != nil {
		log.WithError(err).Error("reading ", ref)
		return failure
	}
	prepared, err := shavanity.Prepare(raw)
	if err != nil {
		log.WithError(err).Errorf("preparing %s (%s)", ref, id)
		return failure
	}

	log.WithFields(logrus.Fields{"ref": ref, "commit": id, "prefix": target.String(),
		"format": alg.String()}).Info("searching")
	searcher := &shavanity.Searcher{Algorithm: alg, Workers: pJobs, Logger: log}
	result, err := searcher.Search(ctx, prepared, target)
	switch {
	case errors.Is(err, context.Canceled):
		log.WithField("attempts", result.Attempts).Warn("search interrupted")
		return failure
	case err != nil:
		log.WithError(err).Error("searching")
		return failure
	}

	verb, path := "found commit: ", ""
	if !pDryRun {
		if path, err = store.Write(result.Digest, result.Buffer); err != nil {
			log.WithError(err).Error("writing forged commit")
			return failure
		}
		verb = "wrote commit: "
	}

	if pQuiet {
		Println(result.Digest)
		return success
	}
	delta := ""
	if pTime {
		delta = " (" + result.Elapsed.Truncate(time.Millisecond).String() + ", " +
			fmtRate(result.Attempts, result.Elapsed) + ")"
	}
	Print(verb, yell, result.Digest, zero)
	if path != "" {
		if pNoCodes {
			Print("  ", filepath.Clean(path))
		} else {
			Print("  ", und, vainpath.Simplify(path), zero)
		}
	}
	Print(delta, n)
	return success
}

// parsePrefix validates PREFIX for a digest of size bytes. Unlike the library, the command line
// wants at least one digit: an empty prefix would forge a commit for nothing.
func parsePrefix(prefix string, size int) (shavanity.Target, error) {
	if prefix == "" {
		return shavanity.Target{}, Errorf("%w: PREFIX is empty", shavanity.ErrInvalidPrefix)
	}
	return shavanity.ParseTarget(prefix, size)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{DisableColors: pNoCodes, DisableTimestamp: true}
	switch {
	case pQuiet:
		l.Level = logrus.ErrorLevel
	case pVerbose:
		l.Level = logrus.DebugLevel
	default:
		l.Level = logrus.WarnLevel
	}
	return l
}

// fmtRate renders digests per second with an SI prefix.
func fmtRate(attempts uint64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "∞ H/s"
	}
	rate := float64(attempts) / elapsed.Seconds()
	for _, unit := range []string{"H/s", "kH/s", "MH/s", "GH/s"} {
		if rate < 1000 || unit == "GH/s" {
			return Sprintf("%.4g %s", rate, unit)
		}
		rate /= 1000
	}
	return ""
}
