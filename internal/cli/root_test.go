package cli

import (
	"testing"
)

func TestCommandConstructors(t *testing.T) {
	tests := []struct {
		name string
		use  string
	}{
		{name: "plan", use: "plan [map-file]"},
		{name: "map", use: "map"},
		{name: "render", use: "render [map-file]"},
		{name: "explore", use: "explore [map-file]"},
		{name: "serve", use: "serve"},
		{name: "cache", use: "cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var use string
			switch tt.name {
			case "plan":
				use = newPlanCmd().Use
			case "map":
				use = newMapCmd().Use
			case "render":
				use = newRenderCmd().Use
			case "explore":
				use = newExploreCmd().Use
			case "serve":
				use = newServeCmd().Use
			case "cache":
				use = newCacheCmd().Use
			}
			if use != tt.use {
				t.Errorf("Use = %q, want %q", use, tt.use)
			}
		})
	}
}

func TestPlanCmdRequiredFlags(t *testing.T) {
	cmd := newPlanCmd()

	for _, flag := range []string{"start", "goal", "format", "output", "no-cache", "refresh", "quiet"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("plan command missing --%s flag", flag)
		}
	}
}

func TestMapCmdSubcommands(t *testing.T) {
	cmd := newMapCmd()

	want := map[string]bool{"validate": false, "show": false, "convert": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("map command missing %q subcommand", name)
		}
	}
}

func TestServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()

	if f := cmd.Flags().Lookup("addr"); f == nil || f.DefValue != ":8080" {
		t.Errorf("serve --addr default = %v, want :8080", f)
	}
	for _, flag := range []string{"redis", "mongo", "mongo-db", "no-cache"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("serve command missing --%s flag", flag)
		}
	}
}
