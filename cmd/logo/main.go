package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/batch"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/config"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var log = logger.Std()

var (
	flagEnv     = flag.String("env", ".env", "dotenv file with LOGO_* settings")
	flagVerbose = flag.Bool("v", false, "debug logging")
	flagTrace   = flag.Bool("trace", false, "trace logging, includes job state changes")
	flagDumpFSM = flag.Bool("dump-fsm", false, "write graphviz src of the job lifecycle and exit")
)

type command struct {
	desc string
	run  func(ctx context.Context, cfg *config.Config, args []string) error
}

var commands = map[string]command{
	"synth":      {"render a logo", runSynth},
	"process":    {"strip, recolour and crop an existing raster", runProcess},
	"crop":       {"crop a raster to its visible content", runCrop},
	"letterbox":  {"fit a raster into a transparent square", runLetterbox},
	"variations": {"render presets or recolours of a raster in parallel", runVariations},
	"match":      {"rank presets by perceptual distance to a reference", runMatch},
	"inspect":    {"print pixel statistics of a raster", runInspect},
	"presets":    {"list presets", runPresets},
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [flags] command [command flags] args\n\ncommands:\n", os.Args[0])
	names := maps.Keys(commands)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-11s %s\n", name, commands[name].desc)
	}
	fmt.Fprintln(out, "\nflags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	switch {
	case *flagTrace:
		log.SetLevel(logrus.TraceLevel)
	case *flagVerbose:
		log.SetLevel(logrus.DebugLevel)
	}

	if *flagDumpFSM {
		fmt.Println(batch.LifecycleGraph())
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		log.Errorf("unknown command %q", args[0])
		usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if err := cfg.LoadEnv(*flagEnv); err != nil {
		log.WithError(err).Fatal("config.LoadEnv")
	}

	ctx, ctxCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer ctxCancel()
	ctx, entry := logger.WithField(ctx, "cmd", args[0])

	if err := cmd.run(ctx, cfg, args[1:]); err != nil {
		entry.WithError(err).Error("failed")
		ctxCancel()
		os.Exit(1)
	}
}
