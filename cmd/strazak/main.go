package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/config"
	"github.com/dharsanguruparan/strazak/internal/export"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/logging"
	"github.com/dharsanguruparan/strazak/internal/s3storage"
	"github.com/dharsanguruparan/strazak/internal/shell"
	"github.com/dharsanguruparan/strazak/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand(os.Stdin, os.Stdout)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "strazak: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every command of one invocation.
type app struct {
	in  *bufio.Reader
	out io.Writer

	apiURL      string
	pageSize    int
	downloadDir string
	logLevel    string
	yes         bool

	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
	client    *client.Client
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out}
	cmd := &cobra.Command{
		Use:   "strazak",
		Short: "Fire-brigade departures and roster client",
		Long: `strazak talks to the records backend: it imports departure spreadsheets, browses and edits
departures and firefighters, exports them and generates departure cards.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}
	cmd.SetOut(out)
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.apiURL, "api-url", "", "Backend base URL (overrides STRAZAK_API_URL)")
	pf.IntVar(&a.pageSize, "page-size", 0, "Rows per page (overrides STRAZAK_PAGE_SIZE)")
	pf.StringVar(&a.downloadDir, "download-dir", "", "Where downloads are saved (overrides STRAZAK_DOWNLOAD_DIR)")
	pf.StringVar(&a.logLevel, "log-level", "", "silent, error, warn, info or debug (overrides STRAZAK_LOG_LEVEL)")
	pf.BoolVarP(&a.yes, "yes", "y", false, "Answer yes to every confirmation")

	cmd.AddCommand(
		newHealthCmd(a),
		newInfoCmd(a),
		newStatsCmd(a),
		newFilesCmd(a),
		newRecordsCmd(a),
		newDeparturesCmd(a),
		newFirefightersCmd(a),
		newSettingsCmd(a),
		newInspectCmd(a),
	)
	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger
// and API client.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.apiURL
	}
	if flags.Changed("page-size") {
		cfg.PageSize = a.pageSize
	}
	if flags.Changed("download-dir") {
		cfg.DownloadDir = a.downloadDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	a.log, a.logCloser = log, closer

	c, err := client.New(cfg.APIURL,
		client.WithLogger(log),
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithRequestIDHeader(cfg.RequestIDHeader),
	)
	if err != nil {
		return err
	}
	a.client = c
	log.WithField("api_url", c.BaseURL()).Debug("client ready")
	return nil
}

// confirmer asks on the command's input unless --yes was given.
func (a *app) confirmer() listing.Confirmer {
	if a.yes {
		return listing.Always
	}
	return listing.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(a.out, "%s [t/N]: ", prompt)
		line, err := a.in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(a.out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "t", "tak", "y", "yes":
			return true
		}
		return false
	})
}

// desktop reports whether browse dialogs are available: forced by
// configuration, otherwise asked from the backend.
func (a *app) desktop(ctx context.Context) bool {
	if a.cfg.Desktop {
		return true
	}
	env, err := a.client.System.Environment(ctx)
	if err != nil {
		a.log.WithError(err).Debug("environment check failed, assuming browser mode")
		return false
	}
	return env.IsDesktop
}

func (a *app) store() storage.Store {
	return storage.NewFileStore(a.cfg.StateFile)
}

func (a *app) departures() (*shell.Departures, error) {
	return shell.NewDepartures(a.store(), a.client.Files, a.client.Data, a.cfg.PageSize, a.log)
}

// exporter saves into the download directory and, when configured, copies
// every download to the archive bucket.
func (a *app) exporter(ctx context.Context) *export.Exporter {
	opts := []export.Option{export.WithLogger(a.log)}
	if a.cfg.Archive.Enabled() {
		archive, err := s3storage.New(a.cfg.Archive)
		if err == nil {
			err = archive.EnsureBucket(ctx)
		}
		if err != nil {
			a.log.WithError(err).Warn("archive disabled")
		} else {
			a.log.WithField("bucket", archive.Bucket()).Debug("archiving downloads")
			opts = append(opts, export.WithArchive(archive))
		}
	}
	return export.New(a.client.Data, a.client.Firefighters, export.DirSink{Dir: a.cfg.DownloadDir}, opts...)
}

// userError carries the message shown for err.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func described(err error, describe func(error) string) error {
	if err == nil {
		return nil
	}
	var ue *userError
	if errors.As(err, &ue) {
		return err
	}
	return &userError{msg: describe(err), err: err}
}
