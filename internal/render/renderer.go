package render

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/logger"
)

// Renderer builds the layout once per export and hands it to a pipeline.
// Failures are logged here and returned as *Error.
type Renderer struct {
	engine PDFEngine
	log    logger.Logger
}

func New(engine PDFEngine, log logger.Logger) *Renderer {
	return &Renderer{engine: engine, log: log}
}

// Engine returns the configured PDF engine name.
func (r *Renderer) Engine() string { return r.engine.Name() }

func (r *Renderer) PDF(ctx context.Context, doc *domain.Resume) ([]byte, error) {
	start := time.Now()
	out, err := r.engine.RenderPDF(ctx, Build(doc))
	if err != nil {
		return nil, r.fail("PDF", err)
	}
	r.log.Debug("pdf rendered",
		logger.String("engine", r.engine.Name()),
		logger.Int("bytes", len(out)),
		logger.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (r *Renderer) HTML(_ context.Context, doc *domain.Resume) ([]byte, error) {
	out, err := HTML(Build(doc))
	if err != nil {
		return nil, r.fail("HTML", err)
	}
	return out, nil
}

func (r *Renderer) fail(format string, err error) error {
	r.log.Error("render failed",
		logger.String("format", format),
		logger.String("engine", r.engine.Name()),
		logger.Error(err))
	return &Error{Format: format, Message: err.Error(), Cause: err}
}
