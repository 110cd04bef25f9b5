// marc2ld resolves MARC21 authority records against LOC, VIAF, ISNI and
// OCLC and writes one RDF graph per record.
//
// $ zstdcat authorities.xml.zst | marc2ld -f turtle > authorities.ttl
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/miku/marc2ld"
	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/graph"
	"github.com/miku/marc2ld/lookup"
	"github.com/miku/marc2ld/marc"
	"github.com/miku/marc2ld/pproc/record"
	"github.com/miku/marc2ld/resolve"
	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
)

var (
	configFile   = flag.String("c", "", "config file (default: XDG config dir)")
	format       = flag.String("f", "ntriples", "output format: ntriples, turtle, jsonld")
	outputFile   = flag.String("o", "", "output file, compressed if it ends with .zst (default: stdout)")
	reportFile   = flag.String("r", "", "write one JSON report line per record to this file")
	numWorkers   = flag.Int("w", 0, "number of workers (default: from config)")
	getLOC       = flag.Bool("loc", false, "retrieve LOC descriptions")
	getVIAF      = flag.Bool("viaf", false, "follow LOC to VIAF")
	getISNI      = flag.Bool("isni", false, "follow VIAF to ISNI")
	getOCLC      = flag.Bool("oclc", false, "walk OCLC identities and creative works")
	authToWorks  = flag.Bool("works", false, "attribute roles and works for each creative work (implies -oclc)")
	verbose      = flag.Bool("v", false, "verbose output")
	showVersion  = flag.Bool("version", false, "show version")
	maxTokenSize = flag.Int("x", 16*1024*1024, "max bytes per record")
	binaryInput  = flag.Bool("b", false, "input is binary MARC21 (ISO 2709) instead of MARCXML")
)

var help = `marc2ld turns MARC21 authority records into linked data

Reads MARCXML or binary MARC21 (-b) from files or stdin (plain, .gz or .zst),
resolves each record and writes its graph. Records that cannot be resolved are
logged and skipped.

Examples:

    $ marc2ld -loc -viaf -isni authorities.xml > out.nt
    $ marc2ld -f jsonld -oclc -works -r report.jsonl authorities.xml.gz
    $ marc2ld -b -o out.nt.zst authorities.mrc

Usage:

`

// stats counts records over all workers.
type stats struct {
	total    int64
	ok       int64
	skipped  int64
	warnings int64
}

// reportEntry is the per record line written to the report file.
type reportEntry struct {
	*resolve.Result
	Entity     string            `json:"entity"`
	Identities map[string]string `json:"identities,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

func newReportEntry(r *resolve.Result) reportEntry {
	entry := reportEntry{
		Result:     r,
		Entity:     r.Entity.String(),
		Identities: make(map[string]string),
	}
	for k, id := range r.Identities {
		if id.Resolved() {
			entry.Identities[k.String()] = id.IRI
		}
	}
	for _, w := range r.Warnings {
		entry.Warnings = append(entry.Warnings, w.Error())
	}
	return entry
}

// reporter serializes report lines from concurrent workers.
type reporter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (r *reporter) Report(result *resolve.Result) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(newReportEntry(result))
}

// openFile opens a file for reading, transparently decompressing gzip and
// zstd by extension.
func openFile(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(filename, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(filename, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []io.Closer{f}, release: zr.Close}, nil
	default:
		return f, nil
	}
}

// readCloser closes a decompressor and its underlying file.
type readCloser struct {
	io.Reader
	closers []io.Closer
	release func()
}

func (r *readCloser) Close() error {
	if r.release != nil {
		r.release()
	}
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// decodeFunc turns the bytes of a single record into a record.
type decodeFunc func([]byte) (*marc.Record, error)

// processFunc resolves a single record and serializes its graph. Record level
// failures are logged and counted, they never stop the batch.
func processFunc(decode decodeFunc, cfg *config.Config, fetch resolve.Fetcher, f graph.Format, rep *reporter, st *stats, logger *logrus.Logger) record.ProcessFunc {
	return func(ctx context.Context, p []byte) ([]byte, error) {
		atomic.AddInt64(&st.total, 1)
		rec, err := decode(p)
		if err != nil {
			atomic.AddInt64(&st.skipped, 1)
			logger.WithError(err).Warn("skipping unparsable record")
			return nil, nil
		}
		result, err := resolve.NewSession(rec, cfg, fetch, logger).Run(ctx)
		if err != nil {
			if resolve.IsFatal(err) {
				atomic.AddInt64(&st.skipped, 1)
				logger.WithError(err).Warn("skipping record")
				return nil, nil
			}
			return nil, err
		}
		var buf bytes.Buffer
		if err := graph.Write(&buf, result.Graph, f); err != nil {
			atomic.AddInt64(&st.skipped, 1)
			logger.WithError(err).WithField("id", result.ID).Warn("skipping record with unserializable graph")
			return nil, nil
		}
		atomic.AddInt64(&st.ok, 1)
		atomic.AddInt64(&st.warnings, int64(len(result.Warnings)))
		for _, w := range result.Warnings {
			logger.WithField("session", result.Session).Info(w)
		}
		if err := rep.Report(result); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// applyFlags overrides config values with flags that were set.
func applyFlags(cfg *config.Config) {
	cfg.GetLOC = cfg.GetLOC || *getLOC
	cfg.GetVIAF = cfg.GetVIAF || *getVIAF
	cfg.GetISNI = cfg.GetISNI || *getISNI
	cfg.GetOCLC = cfg.GetOCLC || *getOCLC || *authToWorks
	cfg.OCLCAuthToWorks = cfg.OCLCAuthToWorks || *authToWorks
	if *numWorkers > 0 {
		cfg.Workers = *numWorkers
	}
}

func parseFormat(s string) (graph.Format, error) {
	switch f := graph.Format(strings.ToLower(s)); f {
	case graph.FormatNTriples, graph.FormatTurtle, graph.FormatJSONLD:
		return f, nil
	case "nt":
		return graph.FormatNTriples, nil
	case "ttl":
		return graph.FormatTurtle, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, help)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(marc2ld.Version)
		os.Exit(0)
	}
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	applyFlags(cfg)
	outFormat, err := parseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}
	var readers []io.Reader
	if flag.NArg() == 0 {
		readers = append(readers, os.Stdin)
	}
	for _, filename := range flag.Args() {
		rc, err := openFile(filename)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		readers = append(readers, rc)
	}
	var w io.Writer = os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
		if strings.HasSuffix(*outputFile, ".zst") {
			zw, err := zstd.NewWriter(f)
			if err != nil {
				log.Fatal(err)
			}
			defer zw.Close()
			w = zw
		}
	}
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	var rep *reporter
	if *reportFile != "" {
		f, err := os.Create(*reportFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		rbw := bufio.NewWriter(f)
		defer rbw.Flush()
		rep = &reporter{enc: json.NewEncoder(rbw)}
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	var (
		st     stats
		decode decodeFunc = marc.ParseRecord
		opts              = []record.ProcessorOption{
			record.WithWorkers(cfg.Workers),
			record.WithMaxTokenSize(*maxTokenSize),
		}
	)
	if *binaryInput {
		decode = marc.DecodeBinary
		opts = append(opts, record.WithSplitFunc(marc.SplitBinary))
	}
	proc := record.NewProcessor(processFunc(decode, cfg, lookup.New(cfg), outFormat, rep, &st, logger), opts...)
	if err := proc.Process(ctx, io.MultiReader(readers...), bw); err != nil {
		logger.WithError(err).Error("processing failed")
		bw.Flush()
		os.Exit(1)
	}
	logger.WithFields(logrus.Fields{
		"total":    st.total,
		"ok":       st.ok,
		"skipped":  st.skipped,
		"warnings": st.warnings,
		"config":   enabledLookups(cfg),
	}).Info("done")
}

// enabledLookups names the optional lookups switched on, for the summary.
func enabledLookups(cfg *config.Config) string {
	var names []string
	for name, on := range map[string]bool{
		"loc":   cfg.GetLOC,
		"viaf":  cfg.GetVIAF,
		"isni":  cfg.GetISNI,
		"oclc":  cfg.GetOCLC,
		"works": cfg.OCLCAuthToWorks,
	} {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
