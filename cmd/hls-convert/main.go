package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ReconfigureIO/hlsflow/config"
	"github.com/ReconfigureIO/hlsflow/service/convert"
)

var (
	opts    = convert.DefaultOptions()
	verbose bool

	RootCmd = &cobra.Command{
		Use:           "hls-convert model",
		Short:         "Generate a patched HLS project from a trained model",
		Args:          cobra.ExactArgs(1),
		RunE:          convertModel,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	version string
)

func init() {
	f := RootCmd.Flags()
	f.BoolVarP(&opts.UseDA, "use-da4ml", "d", opts.UseDA, "use the distributed arithmetic strategy")
	f.IntVar(&opts.DelayConstraint, "delay-constraint", opts.DelayConstraint, "delay constraint for distributed arithmetic")
	f.StringVarP(&opts.OutputDir, "output-dir", "o", opts.OutputDir, "directory the HLS project is generated in")
	f.Float64VarP(&opts.ClockPeriod, "clock-period", "p", opts.ClockPeriod, "target clock period in ns")
	f.IntVar(&opts.ForceLatency, "force-latency", opts.ForceLatency, "pin the top function latency to this many cycles, 0 to leave it free")
	f.StringVar(&opts.ProjectName, "project", opts.ProjectName, "name of the generated project")
	f.BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func convertModel(cmd *cobra.Command, args []string) error {
	conf, err := config.ParseEnvConfig()
	if err != nil {
		return err
	}
	if err := config.SetupLogging(version, conf, verbose); err != nil {
		return err
	}

	converter, err := convert.New(conf.Flow.Convert)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		select {
		case sig := <-sigs:
			log.WithField("signal", sig).Warn("stopping toolchain")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	opts.ModelPath = args[0]
	return converter.Convert(ctx, opts)
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
