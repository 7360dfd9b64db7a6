package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/testsupport"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets/optgroup"
)

type captureRenderer struct {
	name    string
	form    model.FormModel
	options render.RenderOptions
	calls   int
}

func (r *captureRenderer) Name() string {
	if r.name == "" {
		return "capture"
	}
	return r.name
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.calls++
	r.form = form
	r.options = opts
	return []byte(form.OperationID), nil
}

func groupedForm() model.FormModel {
	field := testsupport.FoodField()
	field.Metadata[model.MetadataOptgroup] = "true"
	return model.FormModel{OperationID: "order", Fields: []model.Field{field}}
}

func TestGenerate_DecoratesAndFillsDefaults(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	vocabularies := testsupport.FoodRegistry(t)
	translator := testsupport.StubTranslator{"Apple": "Apfel"}

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithVocabularies(vocabularies),
		WithTranslator(translator),
	)

	form := groupedForm()
	out, err := orch.Generate(context.Background(), Request{
		Form:          &form,
		RenderOptions: render.RenderOptions{Locale: "de"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "order" {
		t.Fatalf("unexpected output %q", out)
	}

	if got := renderer.form.Fields[0].Metadata[model.MetadataWidget]; got != optgroup.WidgetName {
		t.Fatalf("expected widget decorated as %q, got %q", optgroup.WidgetName, got)
	}
	if _, ok := form.Fields[0].Metadata[model.MetadataWidget]; ok {
		t.Fatalf("caller form mutated: %+v", form.Fields[0].Metadata)
	}
	if renderer.options.Vocabularies == nil || renderer.options.Translator == nil {
		t.Fatalf("expected vocabularies and translator filled, got %+v", renderer.options)
	}
	if renderer.options.Locale != "de" {
		t.Fatalf("expected locale preserved, got %q", renderer.options.Locale)
	}
	if renderer.options.Theme != nil {
		t.Fatalf("expected no theme without selector")
	}
}

func TestGenerate_LoadsFormFromFS(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	fsys := fstest.MapFS{
		"form.yaml": {Data: []byte("operationId: from-fs\nfields:\n  - name: food\n    type: string\n")},
	}

	orch := New(WithRegistry(registry), WithDefaultRenderer(renderer.Name()))
	out, err := orch.Generate(context.Background(), Request{FormFS: fsys, FormPath: "form.yaml"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "from-fs" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGenerate_Errors(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	orch := New(WithRegistry(registry), WithDefaultRenderer(renderer.Name()))
	form := groupedForm()

	tests := []struct {
		name string
		ctx  context.Context
		req  Request
		want string
	}{
		{name: "missing form", ctx: context.Background(), req: Request{}, want: "form or form path is required"},
		{name: "unknown renderer", ctx: context.Background(), req: Request{Form: &form, Renderer: "pdf"}, want: `renderer "pdf"`},
		{name: "missing file", ctx: context.Background(), req: Request{FormFS: fstest.MapFS{}, FormPath: "nope.yaml"}, want: "load form"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orch.Generate(tt.ctx, tt.req)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, Request{Form: &form}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer should not run on errors, got %d calls", renderer.calls)
	}
}

func TestGenerate_DefaultVanillaRenderer(t *testing.T) {
	orch := New(WithVocabularies(testsupport.FoodRegistry(t)))
	if diff := cmp.Diff([]string{"vanilla"}, orch.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	form := groupedForm()
	out, err := orch.Generate(context.Background(), Request{Form: &form})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`<optgroup label="Fruit">`, `<optgroup label="Veg">`, "optgroup-widget"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestGenerate_AppliesTransformerBeforeDecorators(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	var seen string
	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithSchemaTransformer(TransformerFunc(func(_ context.Context, form *model.FormModel) error {
			seen = form.Fields[0].Metadata[model.MetadataWidget]
			form.Fields[0].Label = "Dish"
			return nil
		})),
		WithUIDecorators(model.DecoratorFunc(func(form *model.FormModel) error {
			form.Summary = "decorated"
			return nil
		})),
	)

	form := groupedForm()
	if _, err := orch.Generate(context.Background(), Request{Form: &form}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if seen != "" {
		t.Fatalf("transformer saw decorated widget %q", seen)
	}
	if renderer.form.Fields[0].Label != "Dish" || renderer.form.Summary != "decorated" {
		t.Fatalf("unexpected form: %+v", renderer.form)
	}
}
