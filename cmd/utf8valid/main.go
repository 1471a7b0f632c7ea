// Command utf8valid reports files that are not well-formed UTF-8.
//
// Usage:
//
//	utf8valid [flags] [path ...]
//
// Each path is a file or a directory to walk; with no path, or with "-",
// standard input is checked. For every ill-formed input one line is printed:
//
//	path:offset: ill-formed UTF-8 ("\xC0\xAF")
//
// where offset is the start of the first ill-formed subsequence and the
// quoted bytes are its maximal subpart. The exit status is 0 when every
// input is well-formed, 1 when some input is not, and 2 on usage or I/O
// errors.
//
// With -replace, inputs are instead copied to standard output with every
// maximal subpart of ill-formed input replaced by U+FFFD. With
// -conformance FILE, a fixture file of labelled cases is run.
//
// Defaults come from the environment: UTF8VALID_CHUNK_SIZE,
// UTF8VALID_BLOCK_SIZE, UTF8VALID_ASCII_FAST_PATH, UTF8VALID_INCLUDE,
// UTF8VALID_EXCLUDE and UTF8VALID_LOG_LEVEL.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/happy-sdk/happy/pkg/strings/humanize"

	"github.com/coregx/utf8valid/conformance"
	"github.com/coregx/utf8valid/internal/conv"
	"github.com/coregx/utf8valid/simd"
	"github.com/coregx/utf8valid/transcode"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type app struct {
	chunkSize int
	logger    *slog.Logger
	stdin     io.Reader
	stdout    io.Writer
	filter    *filter
	check     *checker

	invalid int
	failed  int
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, "utf8valid:", err)
		return exitError
	}

	flags := flag.NewFlagSet("utf8valid", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "bytes read per validation step (e.g. 4096, 64KiB)")
	flags.IntVar(&cfg.BlockSize, "block-size", cfg.BlockSize, "ASCII fast-path block size (8, 16, 32 or 64)")
	flags.BoolVar(&cfg.ASCIIFastPath, "ascii-fast-path", cfg.ASCIIFastPath, "skip pure-ASCII blocks")
	flags.StringVar(&cfg.Include, "include", cfg.Include, "comma-separated glob patterns of files to check when walking directories")
	flags.StringVar(&cfg.Exclude, "exclude", cfg.Exclude, "comma-separated glob patterns of files to skip when walking directories")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	replace := flags.Bool("replace", false, "copy inputs to stdout, replacing ill-formed input with U+FFFD")
	fixture := flags.String("conformance", "", "run the conformance fixture `file` and exit")
	if err := flags.Parse(args); err != nil {
		return exitError
	}

	if err := cfg.validate(); err != nil {
		fmt.Fprintln(stderr, "utf8valid:", err)
		return exitError
	}
	level, _ := cfg.level()
	chunkSize, _ := cfg.chunkBytes()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *fixture != "" {
		return runConformance(*fixture, stdout, logger)
	}

	f, err := newFilter(splitPatterns(cfg.Include), splitPatterns(cfg.Exclude))
	if err != nil {
		logger.Error("invalid filter", "error", err)
		return exitError
	}
	c, err := newChecker(cfg.validatorConfig(), chunkSize)
	if err != nil {
		logger.Error("invalid validator configuration", "error", err)
		return exitError
	}

	logger.Debug("validator ready", "chunk", humanize.IBytes(conv.IntToUint64(chunkSize)), "block", cfg.BlockSize,
		"ascii_fast_path", cfg.ASCIIFastPath, "avx2", simd.HasAVX2())

	a := &app{
		chunkSize: chunkSize,
		logger:    logger,
		stdin:     stdin,
		stdout:    stdout,
		filter:    f,
		check:     c,
	}

	paths := flags.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	for _, p := range paths {
		if *replace {
			a.replacePath(p)
		} else {
			a.checkPath(p)
		}
	}

	logger.Debug("done", "inputs", len(paths), "invalid", a.invalid, "errors", a.failed)
	switch {
	case a.failed > 0:
		return exitError
	case a.invalid > 0:
		return exitInvalid
	default:
		return exitOK
	}
}

func (a *app) checkPath(p string) {
	if p == "-" {
		a.checkReader("<stdin>", a.stdin)
		return
	}

	info, err := os.Stat(p)
	if err != nil {
		a.logger.Error("cannot stat input", "path", p, "error", err)
		a.failed++
		return
	}
	if !info.IsDir() {
		a.checkFile(p)
		return
	}

	err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			a.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			a.failed++
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(p, path)
		if relErr != nil {
			rel = path
		}
		if !a.filter.match(rel) {
			a.logger.Debug("filtered out", "path", path)
			return nil
		}
		a.checkFile(path)
		return nil
	})
	if err != nil {
		a.logger.Error("walking directory", "path", p, "error", err)
		a.failed++
	}
}

func (a *app) checkFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		a.logger.Error("cannot open input", "path", path, "error", err)
		a.failed++
		return
	}
	defer f.Close()
	a.checkReader(path, f)
}

func (a *app) checkReader(name string, r io.Reader) {
	found, n, err := a.check.check(r)
	if err != nil {
		a.logger.Error("reading input", "path", name, "offset", n, "error", err)
		a.failed++
		return
	}
	if found == nil {
		a.logger.Debug("well-formed", "path", name, "size", humanize.IBytes(conv.Int64ToUint64(n)))
		return
	}

	a.invalid++
	fmt.Fprintf(a.stdout, "%s:%d: %s (\"%s\")\n", name, found.offset, found.message(), conformance.Escape(found.bad))
}

func (a *app) replacePath(p string) {
	var r io.Reader = a.stdin
	if p != "-" {
		f, err := os.Open(p)
		if err != nil {
			a.logger.Error("cannot open input", "path", p, "error", err)
			a.failed++
			return
		}
		defer f.Close()
		r = f
	}

	tr, err := transcode.NewReader(r, transcode.WithReplacement(), transcode.WithBufferSize(a.chunkSize))
	if err != nil {
		a.logger.Error("creating reader", "error", err)
		a.failed++
		return
	}
	n, err := io.Copy(a.stdout, tr)
	if err != nil {
		a.logger.Error("copying input", "path", p, "error", err)
		a.failed++
		return
	}
	a.logger.Debug("replaced", "path", p, "size", humanize.IBytes(conv.Int64ToUint64(n)))
}

func runConformance(path string, stdout io.Writer, logger *slog.Logger) int {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("cannot open fixture", "path", path, "error", err)
		return exitError
	}
	defer f.Close()

	report, err := conformance.Run(f)
	if err != nil {
		logger.Error("running fixture", "path", path, "error", err)
		return exitError
	}
	for _, fail := range report.Failures {
		fmt.Fprintln(stdout, fail)
	}
	fmt.Fprintln(stdout, report)
	if !report.OK() {
		return exitInvalid
	}
	return exitOK
}
