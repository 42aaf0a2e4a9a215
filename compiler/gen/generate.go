package gen

import (
	"context"

	"go.uber.org/zap"
)

// Generator orchestrates a single batch run: render every file for every
// registered backend in memory, then clear the output roots, copy the static
// support files, and write the rendered trees. Rendering fully precedes
// writing so a classification, resolution or emission failure never leaves
// the two backends in a mutually inconsistent state.
type Generator struct {
	cfg      *Config
	graph    *Graph
	backends []Backend
}

// NewGenerator creates a generator for the resolved graph. Backends are
// registered with AddBackend before calling Generate.
func NewGenerator(cfg *Config, g *Graph) *Generator {
	return &Generator{cfg: cfg, graph: g}
}

// AddBackend registers a backend for the run.
func (g *Generator) AddBackend(b Backend) *Generator {
	if b != nil {
		g.backends = append(g.backends, b)
	}
	return g
}

// Generate runs the whole batch. It validates the configuration, renders
// both trees, then writes them. Any error is fatal for the run.
func (g *Generator) Generate(ctx context.Context) error {
	if err := g.cfg.validate(); err != nil {
		return err
	}
	if len(g.backends) == 0 {
		return NewConfigError("Backends", nil, "no backend registered: call AddBackend() before Generate()")
	}
	log := g.cfg.Logger

	rendered := make([][]File, len(g.backends))
	for i, b := range g.backends {
		files, err := b.Files(g.graph)
		if err != nil {
			return err
		}
		rendered[i] = files
		log.Debug("rendered backend",
			zap.String("backend", b.Name()),
			zap.Int("files", len(files)))
	}

	for i, b := range g.backends {
		if err := g.writeBackend(ctx, b, rendered[i]); err != nil {
			return err
		}
		log.Info("backend written",
			zap.String("backend", b.Name()),
			zap.String("out", b.OutDir()),
			zap.Int("classes", len(g.graph.Nodes)),
			zap.Int("files", len(rendered[i])))
	}
	return nil
}

func (g *Generator) writeBackend(ctx context.Context, b Backend, files []File) error {
	if err := prepareRoot(b.Name(), b.OutDir()); err != nil {
		return err
	}
	if err := copySupport(b.Name(), b.SupportDir(), b.OutDir(), b.SupportFiles()); err != nil {
		return err
	}
	return writeFiles(ctx, b.Name(), b.OutDir(), files, g.cfg.Workers)
}
