package main

import (
	"bytes"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ReconfigureIO/hlsflow/config"
	"github.com/ReconfigureIO/hlsflow/models"
	"github.com/ReconfigureIO/hlsflow/service/hlsreport"
	"github.com/ReconfigureIO/hlsflow/service/render"
	"github.com/ReconfigureIO/hlsflow/service/storage"
	"github.com/ReconfigureIO/hlsflow/service/storage/s3"
	"github.com/ReconfigureIO/hlsflow/service/storage/uri"
)

const stdout = "stdout"

type reportFlags struct {
	output  string
	extra   string
	timing  string
	sortBy  []string
	columns []string
	verbose bool
}

var (
	flags reportFlags

	RootCmd = &cobra.Command{
		Use:           "hls-report paths...",
		Short:         "Summarize HLS synthesis reports of one or more build directories",
		Args:          cobra.MinimumNArgs(1),
		RunE:          report,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	version string
)

func init() {
	f := RootCmd.Flags()
	f.StringVarP(&flags.output, "output", "o", stdout, "stdout, or a .json, .csv, .tsv, .md or .html file (local or s3://bucket/key)")
	f.StringVarP(&flags.extra, "extra", "e", "", "JSON file of extra fields keyed by epoch=N identifiers")
	f.StringSliceVarP(&flags.sortBy, "sort-by", "s", nil, "columns to sort by, comma separated or repeated (-s Latency,_LUT), prefix with _ for descending")
	f.StringSliceVarP(&flags.columns, "columns", "c", nil, "columns to show in order, comma separated or repeated (-c Latency,LUT)")
	f.StringVarP(&flags.timing, "timing-report", "t", "", "timing summary report to merge, relative to each build directory")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output")
}

func report(cmd *cobra.Command, args []string) error {
	conf, err := config.ParseEnvConfig()
	if err != nil {
		return err
	}
	if err := config.SetupLogging(version, conf, flags.verbose); err != nil {
		return err
	}

	width := render.TerminalWidth(os.Stdout, conf.Flow.Render.TerminalWidth)
	return flags.run(conf, args, os.Stdout, width)
}

func (f reportFlags) run(conf *config.Config, paths []string, out io.Writer, width int) error {
	var format render.Format
	if f.output != stdout {
		var err error
		// fail before any build directory is read
		format, err = render.FormatFor(f.output)
		if err != nil {
			return err
		}
	}

	records, err := hlsreport.Loader{TimingReport: f.timing}.LoadAll(paths)
	if err != nil {
		return err
	}

	if f.extra != "" {
		info, err := readExtra(f.extra, conf.Flow.Storage)
		if err != nil {
			return err
		}
		if err := info.Apply(records); err != nil {
			return err
		}
	}

	table := models.Assemble(records)
	if len(f.sortBy) > 0 {
		if err := table.SortBy(f.sortBy); err != nil {
			return err
		}
	}
	if len(f.columns) > 0 {
		if err := table.Project(f.columns); err != nil {
			return err
		}
	}

	if f.output == stdout {
		if len(f.columns) == 0 {
			table.HidePrefix("avail_")
		}
		return render.Terminal(out, table, width)
	}

	var buf bytes.Buffer
	if err := render.Export(&buf, format, records, table); err != nil {
		return err
	}
	service, key, err := uri.Resolve(f.output, conf.Flow.Storage)
	if err != nil {
		return err
	}
	location, err := storage.UploadWithRetry(service, key, buf.Bytes())
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"records": len(records),
		"output":  location,
	}).Info("report written")
	return nil
}

func readExtra(location string, conf s3.ServiceConfig) (hlsreport.ExtraInfo, error) {
	service, key, err := uri.Resolve(location, conf)
	if err != nil {
		return nil, err
	}
	rc, err := service.Download(key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return hlsreport.ReadExtraInfo(rc)
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
