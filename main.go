package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/andareed/siftly-dash/config"
	"github.com/andareed/siftly-dash/dataset"
	"github.com/andareed/siftly-dash/logging"
	"github.com/andareed/siftly-dash/session"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

var Version = "dev"

var (
	logFile    = flag.String("debug", "", "write debug logs to file")
	configPath = flag.String("config", config.DefaultPath(), "config file (YAML)")
	refPath    = flag.String("ref", "", "reference file to compare against")
	fromFlag   = flag.String("from", "", "load only rows at or after this time (display zone)")
	toFlag     = flag.String("to", "", "load only rows at or before this time (display zone)")
	timeCol    = flag.String("time-col", "", "use this column as the time axis")
)

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
		cfg.LogLevel = "debug"
	}

	cleanup, err := logging.SetupLogging(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	logging.Infof("sfdash %s: started", Version)

	progress := make(chan dataset.Stage, progressBuffer)
	loc := cfg.Location()
	sess := session.New(session.Options{
		ActiveLimit:  cfg.ActiveLimit,
		Downsample:   cfg.Downsample,
		Location:     loc,
		SniffBytes:   cfg.SniffBytes,
		NumericRatio: cfg.NumericRatio,
		Progress:     progressReporter(progress),
	})
	if err := applyLoadRange(sess, *fromFlag, *toFlag, loc); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	sess.SetTimeColumn(*timeCol)

	m := newModel(sess, cfg, progress)

	if args := flag.Args(); len(args) > 0 {
		if err := preload(m, args[0], *refPath); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", describeError(err))
			logging.Errorf("preload: %v", err)
			os.Exit(1)
		}
	} else if *refPath != "" {
		fmt.Fprintln(os.Stderr, "Usage: sfdash [flags] <data.csv|.tsv|.dat> (--ref needs a data file)")
		os.Exit(1)
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		logging.Errorf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}
}

// preload parses the primary and reference files in parallel before the
// UI starts.
func preload(m *model, path, ref string) error {
	var primary, reference *dataset.Dataset
	opts := m.sess.LoadOptions()

	g := new(errgroup.Group)
	g.Go(func() error {
		ds, err := dataset.Load(path, opts)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		primary = ds
		return nil
	})
	if ref != "" {
		refOpts := opts
		refOpts.Range = dataset.TimeRange{}
		refOpts.TimeColumn = ""
		g.Go(func() error {
			ds, err := dataset.Load(ref, refOpts)
			if err != nil {
				return fmt.Errorf("load reference %s: %w", ref, err)
			}
			reference = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.sess.Install(primary)
	m.data.path = path
	if reference != nil {
		m.sess.EnableCompare()
		if err := m.sess.InstallReference(reference); err != nil {
			return err
		}
		m.data.refPath = ref
	}
	return nil
}

func applyLoadRange(sess *session.Session, from, to string, loc *time.Location) error {
	if from == "" && to == "" {
		return nil
	}
	var start, end *time.Time
	if from != "" {
		t, ok := parseRangeInput(from, loc)
		if !ok {
			return errors.New("invalid --from time: " + from)
		}
		start = &t
	}
	if to != "" {
		t, ok := parseRangeInput(to, loc)
		if !ok {
			return errors.New("invalid --to time: " + to)
		}
		end = &t
	}
	return sess.SetTimeRange(start, end)
}
