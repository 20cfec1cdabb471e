package cmd

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/router"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/script"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/view"
)

// session is an editor after a script has run.
type session struct {
	Editor   *editor.Editor
	Camera   *view.Camera
	Registry *prometheus.Registry
	Log      *slog.Logger
}

// newSession builds an editor from the settings. When path is not empty the
// script at path is run against it.
func newSession(cmd *cobra.Command, path string) (*session, error) {
	_, cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	log := newLogger()
	reg := prometheus.NewRegistry()
	ed := editor.New(cfg,
		editor.WithLogger(log),
		editor.WithMetrics(editor.NewMetrics(reg)),
		editor.WithRouterOptions(router.WithMetrics(router.NewMetrics(reg))),
	)
	s := &session{Editor: ed, Camera: view.NewCamera(800, 600), Registry: reg, Log: log}

	if path != "" {
		if err := script.RunFile(ed, s.Camera, log, path); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return s, nil
}

// writeStats prints every collected metric in the Prometheus text format.
func (s *session) writeStats(cmd *cobra.Command) error {
	families, err := s.Registry.Gather()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
