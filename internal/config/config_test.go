package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/render"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}

	ec, err := cfg.EditorConfig()
	if err != nil {
		t.Fatal(err)
	}
	if ec.Policy != obstacle.Both || ec.Batch != editor.Frozen || ec.Drag != editor.Live {
		t.Errorf("editor config = %+v", ec)
	}
	if ec.Extent != grid.DefaultExtent {
		t.Errorf("extent = %+v", ec.Extent)
	}
	if ec.Router.Budget != time.Second || !ec.Router.Simplify {
		t.Errorf("router config = %+v", ec.Router)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := Default()
	cfg.Policy = "wires"
	cfg.Batch = "sequential"
	cfg.Drag = "deferred"
	cfg.Budget = "250ms"
	cfg.Theme = "dark"

	if err := SaveConfigTo(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip: got %+v, want %+v", got, cfg)
	}

	ec, err := got.EditorConfig()
	if err != nil {
		t.Fatal(err)
	}
	if ec.Policy != obstacle.Wires || ec.Batch != editor.Sequential || ec.Drag != editor.Deferred {
		t.Errorf("editor config = %+v", ec)
	}
	if ec.Router.Budget != 250*time.Millisecond {
		t.Errorf("budget = %v", ec.Router.Budget)
	}
	if th, _ := got.RenderTheme(); th != render.ThemeDark {
		t.Errorf("theme = %v", th)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"policy": "components"}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Policy != "components" || cfg.Batch != "frozen" || !cfg.Simplify {
		t.Errorf("got %+v", cfg)
	}
}

func TestInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFrom(path); err == nil {
		t.Error("expected parse error")
	}

	for _, cfg := range []*AppConfig{
		{Policy: "sideways"},
		{Batch: "random"},
		{Drag: "sometimes"},
		{Budget: "soon"},
	} {
		if _, err := cfg.EditorConfig(); err == nil {
			t.Errorf("%+v: expected error", cfg)
		}
	}
}
