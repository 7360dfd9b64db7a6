package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-optgroup/components/optgroups"
	"github.com/goliatone/go-formgen-optgroup/pkg/renderers/tui"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type scriptedDriver struct {
	selects [][]int
	inputs  []string
	options [][]string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	return value, nil
}

func (d *scriptedDriver) next(cfg tui.SelectConfig) ([]int, error) {
	d.options = append(d.options, cfg.Options)
	if len(d.selects) == 0 {
		return nil, errors.New("no selection scripted")
	}
	picked := d.selects[0]
	d.selects = d.selects[1:]
	return picked, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	picked, err := d.next(cfg)
	if err != nil {
		return -1, err
	}
	return picked[0], nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg tui.SelectConfig) ([]int, error) {
	return d.next(cfg)
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func useDriver(t *testing.T, driver tui.PromptDriver) {
	t.Helper()
	previous := newPromptDriver
	newPromptDriver = func(io.Writer) tui.PromptDriver { return driver }
	t.Cleanup(func() { newPromptDriver = previous })
}

func TestRender_LocalizedGroupedHTML(t *testing.T) {
	out, err := execute(t, "render", "--lang", "de-DE", "--theme", "plain")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<optgroup label="Vegetables">`,
		"Lauch",
		"Bitte wählen ...",
		"Gericht",
		"/assets/optgroup-vanilla.css",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRender_DisplayToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "form.html")
	out, err := execute(t, "render", "--display", "--value", "dish=kale", "--output", target)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Kale") {
		t.Fatalf("expected selected term in display output:\n%s", data)
	}
}

func TestPrompt_JSON(t *testing.T) {
	driver := &scriptedDriver{
		selects: [][]int{{4}, {1, 4}, {3}},
		inputs:  []string{"no onions"},
	}
	useDriver(t, driver)

	out, err := execute(t, "prompt")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	want := `{"dish":"leek","extras":["pear","kale"],"notes":"no onions","size":"large"}` + "\n"
	if out != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
	if got := driver.options[0][4]; got != "Vegetables"+tui.GroupSeparator+"Leek" {
		t.Fatalf("unexpected grouped label %q", got)
	}
}

func TestPrompt_FormFormat(t *testing.T) {
	useDriver(t, &scriptedDriver{
		selects: [][]int{{1}, {}, {2}},
		inputs:  []string{""},
	})

	out, err := execute(t, "prompt", "--format", "form")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	want := "form.widgets.dish=apple&form.widgets.extras-empty-marker=1&form.widgets.notes=&form.widgets.size=regular\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestPrompt_UnknownFormat(t *testing.T) {
	if _, err := execute(t, "prompt", "--format", "xml"); err == nil || !strings.Contains(err.Error(), `unknown format "xml"`) {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestOptions_SearchTranslated(t *testing.T) {
	out, err := execute(t, "options", "--lang", "de-DE", "--query", "kohl")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	var groups []optgroups.Group
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want := []optgroups.Group{{
		Label:   "Vegetables",
		Options: []optgroups.Option{{Value: "kale", Label: "Grünkohl"}},
	}}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_LimitAndList(t *testing.T) {
	out, err := execute(t, "options", "--limit", "4")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	var groups []optgroups.Group
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(groups) != 2 || len(groups[0].Options) != 3 || len(groups[1].Options) != 1 {
		t.Fatalf("unexpected groups %+v", groups)
	}

	out, err = execute(t, "options", "--list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	if err := json.Unmarshal([]byte(out), &names); err != nil {
		t.Fatalf("decode names: %v", err)
	}
	if diff := cmp.Diff([]string{"menu"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_UnknownVocabulary(t *testing.T) {
	if _, err := execute(t, "options", "--vocabulary", "drinks"); err == nil {
		t.Fatal("expected unknown vocabulary error")
	}
}
