package app

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/cslgen/internal/ctxlog"
	"github.com/specialistvlad/cslgen/internal/translate"
)

// Run translates the configured input, echoes the rendered text to the
// output writer and, when asked, checks the search space.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "input", a.config.InputPath, "skin", a.config.Skin)

	res, err := a.translator.Translate(ctx, translate.Options{
		InputPath:  a.config.InputPath,
		Skin:       a.config.Skin,
		OutputPath: a.config.OutputPath,
	})
	if err != nil {
		return err
	}

	if _, err := io.WriteString(a.outW, res.Text); err != nil {
		return fmt.Errorf("echoing output: %w", err)
	}

	if a.config.Check {
		report, err := a.explorer.Explore(ctx, res.Program)
		if err != nil {
			return fmt.Errorf("checking search space: %w", err)
		}
		a.logger.Info("Search space checked.",
			"problem", report.Problem,
			"variables", report.Variables,
			"total", report.Total,
			"checked", report.Checked,
			"legal", report.Legal,
			"truncated", report.Truncated,
		)
		if report.Legal == 0 && !report.Truncated {
			a.logger.Warn("Search space has no legal points.", "problem", report.Problem)
		}
		for i, point := range report.Sample {
			a.logger.Debug("Legal point.", "index", i, "variables", report.Variables, "values", point)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
