package store

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/vitae/internal/logger"
)

// CopyResult counts what Copy did.
type CopyResult struct {
	Copied  int
	Skipped int // already present in the destination
}

// Copy writes every document listed by src into dst. Identifiers already
// present in dst are left alone unless overwrite is set.
func Copy(ctx context.Context, src, dst Store, overwrite bool, log logger.Logger) (CopyResult, error) {
	var res CopyResult
	log.Info("copying resumes",
		logger.String("from", src.Kind()),
		logger.String("to", dst.Kind()),
		logger.Bool("overwrite", overwrite))

	summaries, err := src.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list source: %w", err)
	}
	if len(summaries) == 0 {
		log.Info("no resumes found in source")
		return res, nil
	}

	existing := map[string]bool{}
	if !overwrite {
		present, err := dst.List(ctx)
		if err != nil {
			return res, fmt.Errorf("list destination: %w", err)
		}
		for _, s := range present {
			existing[s.ID] = true
		}
	}

	for _, s := range summaries {
		if existing[s.ID] {
			res.Skipped++
			continue
		}
		doc, err := src.Load(ctx, s.ID)
		if err != nil {
			return res, fmt.Errorf("load %s: %w", s.ID, err)
		}
		if err := dst.Save(ctx, s.ID, doc); err != nil {
			return res, fmt.Errorf("save %s: %w", s.ID, err)
		}
		res.Copied++
	}

	log.Info("copied resumes",
		logger.Int("copied", res.Copied),
		logger.Int("skipped", res.Skipped))
	return res, nil
}
