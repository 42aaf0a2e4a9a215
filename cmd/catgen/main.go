// Command catgen generates the managed (Java) and manual (C++) catalog
// class trees from a class descriptor document.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/syssam/catgen/compiler/gen"
	"github.com/syssam/catgen/compiler/gen/cpp"
	"github.com/syssam/catgen/compiler/gen/java"
	"github.com/syssam/catgen/compiler/load"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	spec        string
	javaOut     string
	cppOut      string
	javaSupport string
	cppSupport  string
	javaPackage string
	workers     int
	watch       bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "catgen",
		Short:        "Generate managed and manual catalog classes from a descriptor document",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if opts.watch {
				return watchAndRun(cmd.Context(), log, opts)
			}
			return run(cmd.Context(), log, opts)
		},
	}
	cmd.Flags().StringVar(&opts.spec, "spec", "", "class descriptor document (YAML)")
	cmd.Flags().StringVar(&opts.javaOut, "java-out", "", "managed-backend output root")
	cmd.Flags().StringVar(&opts.cppOut, "cpp-out", "", "manual-backend output root")
	cmd.Flags().StringVar(&opts.javaSupport, "java-support", "", "managed-backend static support file root")
	cmd.Flags().StringVar(&opts.cppSupport, "cpp-support", "", "manual-backend static support file root")
	cmd.Flags().StringVar(&opts.javaPackage, "package", "", "package qualifying the managed-backend files")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "number of parallel file writers (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "regenerate when the descriptor document changes")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	for _, name := range []string{"spec", "java-out", "cpp-out", "package"} {
		cobra.CheckErr(cmd.MarkFlagRequired(name))
	}
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

func run(ctx context.Context, log *zap.Logger, opts *options) error {
	classes, err := load.FromFile(opts.spec)
	if err != nil {
		return err
	}
	graph, err := gen.NewGraph(classes)
	if err != nil {
		return err
	}
	cfg, err := gen.NewConfig(
		gen.WithJavaOut(opts.javaOut),
		gen.WithCppOut(opts.cppOut),
		gen.WithSupportRoots(opts.javaSupport, opts.cppSupport),
		gen.WithJavaPackage(opts.javaPackage),
		gen.WithWorkers(opts.workers),
		gen.WithLogger(log),
	)
	if err != nil {
		return err
	}
	return gen.NewGenerator(cfg, graph).
		AddBackend(java.New(cfg)).
		AddBackend(cpp.New(cfg)).
		Generate(ctx)
}

// watchAndRun regenerates on every change to the descriptor document. A
// failing run is logged and the watch keeps going; the next save gets a
// fresh chance.
func watchAndRun(ctx context.Context, log *zap.Logger, opts *options) error {
	if err := run(ctx, log, opts); err != nil {
		log.Error("generation failed", zap.Error(err))
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()
	// Watch the directory, not the file: editors replace files on save,
	// which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(opts.spec)); err != nil {
		return err
	}
	log.Info("watching descriptor document", zap.String("spec", opts.spec))
	specName := filepath.Base(opts.spec)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != specName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Info("descriptor changed, regenerating", zap.String("event", event.Op.String()))
			if err := run(ctx, log, opts); err != nil {
				log.Error("generation failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", zap.Error(err))
		}
	}
}
