package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func parse(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"run"})
	if err != nil {
		t.Fatalf("find run: %v", err)
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveDefaultPreset(t *testing.T) {
	st, err := resolve(parse(t))
	if err != nil {
		t.Fatal(err)
	}
	if st.source != defaultPreset {
		t.Errorf("expected source %s, got %s", defaultPreset, st.source)
	}
	if names := strings.Join(st.bodies.Names(), ","); names != "Earth,Sun" {
		t.Errorf("unexpected bodies %s", names)
	}
	if st.cfg.Integrator != "leapfrog" {
		t.Errorf("preset integrator should be kept, got %s", st.cfg.Integrator)
	}
}

func TestResolveFlagsOverridePreset(t *testing.T) {
	st, err := resolve(parse(t, "--preset", "inner", "--integrator", "euler", "--factor", "4", "--ticks", "10"))
	if err != nil {
		t.Fatal(err)
	}
	if st.cfg.Integrator != "euler" || st.cfg.Factor != 4 || st.cfg.Ticks != 10 {
		t.Errorf("flags not applied: %+v", st.cfg)
	}
	if st.cfg.Scale != 8e9 {
		t.Errorf("unset flag overrode preset scale: %g", st.cfg.Scale)
	}
	if len(st.bodies) != 5 {
		t.Errorf("expected 5 bodies, got %d", len(st.bodies))
	}
}

func TestResolveBodiesFile(t *testing.T) {
	st, err := resolve(parse(t, "--bodies", "../../data/planets.csv", "--include-sun", "--only", "Earth,Mars"))
	if err != nil {
		t.Fatal(err)
	}
	if st.source != "planets" {
		t.Errorf("expected source planets, got %s", st.source)
	}
	if names := strings.Join(st.bodies.Names(), ","); names != "Sun,Earth,Mars" {
		t.Errorf("unexpected bodies %s", names)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown preset", []string{"--preset", "nope"}, "unknown preset"},
		{"preset and config", []string{"--preset", "inner", "--config", "x.yaml"}, "mutually exclusive"},
		{"bad factor", []string{"--factor", "0"}, "factor"},
		{"bad integrator", []string{"--integrator", "rk4"}, "rk4"},
		{"missing bodies file", []string{"--bodies", "missing.csv"}, "missing.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve(parse(t, tt.args...))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected %q in %v", tt.msg, err)
			}
		})
	}
}

func TestDownsample(t *testing.T) {
	data := make([]float64, 1000)
	for i := range data {
		data[i] = float64(i)
	}
	out := downsample(data, 80)
	if len(out) != 80 {
		t.Fatalf("expected 80 points, got %d", len(out))
	}
	if out[0] != 0 || out[79] != 999 {
		t.Errorf("endpoints not kept: %g, %g", out[0], out[79])
	}
	if got := downsample(data[:10], 80); len(got) != 10 {
		t.Errorf("short input should be returned as is")
	}
}
