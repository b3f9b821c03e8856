package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/cryptonews-reader/internal/app"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

var renderNow = time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("PROVIDERS_FILE", filepath.Join(dir, "providers.yaml"))
	t.Setenv("PUBLISHERS_FILE", filepath.Join(dir, "publishers.yaml"))

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "missing.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "reader dev") {
		t.Fatalf("output = %q", out)
	}
}

func TestSaveAndSavedCommands(t *testing.T) {
	out, err := execute(t, "save", "42")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out, "article 42 saved") {
		t.Fatalf("output = %q", out)
	}

	out, err = execute(t, "saved")
	if err != nil {
		t.Fatalf("saved: %v", err)
	}
	if !strings.Contains(out, "No saved articles") {
		t.Fatalf("output = %q", out)
	}
}

func TestCommandsRejectBadInput(t *testing.T) {
	if _, err := execute(t, "list", "--filter", "moon"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
	if _, err := execute(t, "show", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if _, err := execute(t, "save"); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestRenderListWithBanner(t *testing.T) {
	st := app.InitialState(app.SampleArticles(renderNow), domain.NewSavedIDs(2)).
		FetchFailed(domain.NewFetchError("HTTP 500", nil), app.SampleArticles(renderNow)).
		WithQuery("eth")

	var buf bytes.Buffer
	renderList(&buf, st, st.Visible(), renderNow)
	out := buf.String()

	for _, want := range []string{
		"Live news unavailable (HTTP 500). Showing sample articles.",
		"Ethereum 2.0 Upgrade",
		"[ETH]",
		"★",
		"1 hour ago",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Cardano") {
		t.Fatalf("unfiltered article rendered:\n%s", out)
	}
}

func TestRenderListEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderList(&buf, app.State{Filter: domain.FilterSaved}, nil, renderNow)
	if !strings.Contains(buf.String(), "No articles found matching your criteria") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestRenderDetail(t *testing.T) {
	samples := app.SampleArticles(renderNow)
	var buf bytes.Buffer
	renderDetail(&buf, samples[0], samples[1:3], true, renderNow)
	out := buf.String()

	for _, want := range []string{
		"Bitcoin Surges Past $50,000",
		"Sarah Johnson",
		"5 min read",
		"Tags: Bitcoin, Cryptocurrency",
		"★ saved",
		"Related Articles",
		"#2 Ethereum 2.0",
		"Read original: https://example.com/bitcoin-surge",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail output missing %q:\n%s", want, out)
		}
	}
}
