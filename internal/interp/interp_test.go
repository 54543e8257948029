package interp_test

import (
	"fmt"
	"testing"

	"chirp/internal/args"
	"chirp/internal/diag"
	"chirp/internal/grammar"
	"chirp/internal/interp"
	"chirp/internal/source"
)

// recorder captures the scene-builder event stream as strings.
type recorder struct {
	next   interp.EntityID
	events []string
	// fail maps method names to the error ApplyMethod should return
	fail map[string]error
}

func (r *recorder) SpawnEntity() interp.EntityID {
	id := r.next
	r.next++
	r.events = append(r.events, fmt.Sprintf("spawn %d", id))
	return id
}

func (r *recorder) SetParent(child, parent interp.EntityID) {
	r.events = append(r.events, fmt.Sprintf("parent %d -> %d", child, parent))
}

func (r *recorder) ApplyMethod(entity interp.EntityID, ctx *interp.MethodCtx) error {
	if err, ok := r.fail[string(ctx.Name)]; ok {
		return err
	}
	r.events = append(r.events, fmt.Sprintf("method %d %s %s", entity, ctx.Name, ctx.Args))
	return nil
}

func run(t *testing.T, input string, opts interp.Options) (*recorder, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("main.chirp", []byte(input)))
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	res := grammar.ParseFile(file, grammar.Options{Reporter: reporter})
	if !res.Ok {
		t.Fatalf("parse failed for %q: %v", input, bag.Items())
	}
	rec := &recorder{}
	if opts.Reporter == nil {
		opts.Reporter = reporter
	}
	ok := interp.Interpret(res.File, res.Templates, rec, opts)
	return rec, bag, ok
}

func expectEvents(t *testing.T, rec *recorder, want []string) {
	t.Helper()
	if len(rec.events) != len(want) {
		t.Fatalf("expected %d events, got %d:\n%v", len(want), len(rec.events), rec.events)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], rec.events[i])
		}
	}
}

func expectError(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Errorf("expected a %v diagnostic, got %v", code, bag.Items())
}

func TestEmptyFile(t *testing.T) {
	rec, _, ok := run(t, "", interp.Options{})
	if !ok {
		t.Error("empty file should interpret cleanly")
	}
	expectEvents(t, rec, nil)
}

func TestStatementEventOrder(t *testing.T) {
	rec, _, ok := run(t, `Root(row) { Button("OK") Button("Cancel") }`, interp.Options{})
	if !ok {
		t.Fatal("expected a clean run")
	}
	expectEvents(t, rec, []string{
		"spawn 0",
		"method 0 row ",
		"spawn 1",
		"parent 1 -> 0",
		`method 1 named "OK"`,
		"spawn 2",
		"parent 2 -> 0",
		`method 2 named "Cancel"`,
	})
}

func TestStringHeadNamesEntity(t *testing.T) {
	rec, _, ok := run(t, `"Menu"(row)`, interp.Options{})
	if !ok {
		t.Fatal("expected a clean run")
	}
	expectEvents(t, rec, []string{
		"spawn 0",
		`method 0 named "Menu"`,
		"method 0 row ",
	})
}

func TestNamedUnescapes(t *testing.T) {
	rec, _, _ := run(t, `Root("line\none")`, interp.Options{})
	expectEvents(t, rec, []string{
		"spawn 0",
		"method 0 named \"line\none\"",
	})
}

func TestMethodArgsVerbatim(t *testing.T) {
	rec, _, _ := run(t, "Root(margin(9px, 20%))", interp.Options{})
	expectEvents(t, rec, []string{
		"spawn 0",
		"method 0 margin (9px, 20%)",
	})
}

func TestTemplateSubstitution(t *testing.T) {
	rec, _, ok := run(t, `fn button(txt) { Button(label(txt) width(40px)) }
Root { button!("OK") }`, interp.Options{})
	if !ok {
		t.Fatal("expected a clean run")
	}
	expectEvents(t, rec, []string{
		"spawn 0",
		"spawn 1",
		"parent 1 -> 0",
		`method 1 label ("OK")`,
		"method 1 width (40px)",
	})
}

func TestTemplateCallSiteExtras(t *testing.T) {
	rec, _, ok := run(t, `fn card() { Panel(pad(2px)) }
card!()(row) { Icon }`, interp.Options{})
	if !ok {
		t.Fatal("expected a clean run")
	}
	expectEvents(t, rec, []string{
		"spawn 0",
		"method 0 pad (2px)",
		"method 0 row ",
		"spawn 1",
		"parent 1 -> 0",
	})
}

func TestExtrasUseCallerBindings(t *testing.T) {
	rec, _, ok := run(t, `fn inner() { Box }
fn outer(x) { inner!()(pad(x)) }
outer!(9px)`, interp.Options{})
	if !ok {
		t.Fatal("expected a clean run")
	}
	// pad(x) is written inside outer, so x resolves to outer's argument
	expectEvents(t, rec, []string{
		"spawn 0",
		"method 0 pad (9px)",
	})
}

func TestExtrasStopAtChildCalls(t *testing.T) {
	rec, _, ok := run(t, `fn b() { Spacer }
fn a() { Box { b!() } }
a!()(hidden)`, interp.Options{})
	if !ok {
		t.Fatal("expected a clean run")
	}
	// hidden belongs to the a!() call site; b!() is in child position, so
	// the Spacer it spawns must not pick it up again
	expectEvents(t, rec, []string{
		"spawn 0",
		"method 0 hidden ",
		"spawn 1",
		"parent 1 -> 0",
	})
}

func TestExtrasChainThroughRootCalls(t *testing.T) {
	rec, _, ok := run(t, `fn inner() { Box }
fn outer() { inner!()(pad(2px)) }
outer!()(row)`, interp.Options{})
	if !ok {
		t.Fatal("expected a clean run")
	}
	// inner's body root collects both call sites, innermost first
	expectEvents(t, rec, []string{
		"spawn 0",
		"method 0 pad (2px)",
		"method 0 row ",
	})
}

func TestForwardedParameter(t *testing.T) {
	rec, _, ok := run(t, `fn leaf(v) { Leaf(set(v)) }
fn wrap(v) { leaf!(v) }
wrap!("deep")`, interp.Options{})
	if !ok {
		t.Fatal("expected a clean run")
	}
	expectEvents(t, rec, []string{
		"spawn 0",
		`method 0 set ("deep")`,
	})
}

func TestForwardReferenceRejected(t *testing.T) {
	_, bag, ok := run(t, `fn a() { b!() }
fn b() { B }
a!()`, interp.Options{})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpNoSuchTemplate)
}

func TestSelfRecursionRejected(t *testing.T) {
	_, bag, ok := run(t, `fn a() { a!() }
a!()`, interp.Options{})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpNoSuchTemplate)
}

func TestExpansionDepthLimit(t *testing.T) {
	input := `fn c1() { C }
fn c2() { c1!() }
fn c3() { c2!() }
c3!()`

	if _, _, ok := run(t, input, interp.Options{MaxDepth: 3}); !ok {
		t.Error("a chain exactly at the limit should succeed")
	}

	_, bag, ok := run(t, input, interp.Options{MaxDepth: 2})
	if ok {
		t.Fatal("a chain one past the limit should fail")
	}
	expectError(t, bag, diag.InterpTemplateRecursion)
}

func TestTemplateArity(t *testing.T) {
	_, bag, ok := run(t, `fn one(a) { A }
one!("x", "y")`, interp.Options{})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpTemplateArity)
	found := false
	for _, d := range bag.Items() {
		if d.Message == "template 'one' takes 1 arguments, got 2" {
			found = true
		}
	}
	if !found {
		t.Errorf("unexpected arity message: %v", bag.Items())
	}
}

func TestNoSuchTemplate(t *testing.T) {
	_, bag, ok := run(t, `missing!("x")`, interp.Options{})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpNoSuchTemplate)
}

func TestUppercaseMethodRejected(t *testing.T) {
	rec, bag, ok := run(t, "Root(Bad row)", interp.Options{})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpUppercaseMethod)
	// the walk continues past the bad method
	expectEvents(t, rec, []string{
		"spawn 0",
		"method 0 row ",
	})
}

func TestNoSuchMethodMapsToNameSpan(t *testing.T) {
	fs := source.NewFileSet()
	input := "Root(missing)"
	file := fs.Get(fs.AddVirtual("main.chirp", []byte(input)))
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	res := grammar.ParseFile(file, grammar.Options{Reporter: reporter})
	rec := &recorder{fail: map[string]error{
		"missing": &interp.NoSuchMethodError{Name: "missing"},
	}}

	if interp.Interpret(res.File, res.Templates, rec, interp.Options{Reporter: reporter}) {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpNoSuchMethod)
	d := bag.Items()[0]
	if got := string(file.Slice(d.Primary)); got != "missing" {
		t.Errorf("diagnostic should point at the method name, got %q", got)
	}
}

func TestCountErrorMapsToArgsSpan(t *testing.T) {
	fs := source.NewFileSet()
	input := "Root(margin(1px))"
	file := fs.Get(fs.AddVirtual("main.chirp", []byte(input)))
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	res := grammar.ParseFile(file, grammar.Options{Reporter: reporter})
	rec := &recorder{fail: map[string]error{
		"margin": &args.CountError{Expected: 2, Got: 1},
	}}

	if interp.Interpret(res.File, res.Templates, rec, interp.Options{Reporter: reporter}) {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.ArgCountMismatch)
	d := bag.Items()[0]
	if got := string(file.Slice(d.Primary)); got != "(1px)" {
		t.Errorf("diagnostic should point at the argument list, got %q", got)
	}
}

func TestCodeHandle(t *testing.T) {
	handles := interp.NewHandles()
	handles.RegisterCode("sidebar", func(sb interp.SceneBuilder, parent interp.EntityID) error {
		id := sb.SpawnEntity()
		sb.SetParent(id, parent)
		return nil
	})

	rec, _, ok := run(t, "Root { code(sidebar) }", interp.Options{Handles: handles})
	if !ok {
		t.Fatal("expected a clean run")
	}
	expectEvents(t, rec, []string{
		"spawn 0",
		"spawn 1",
		"parent 1 -> 0",
	})
}

func TestCodeHandleMissing(t *testing.T) {
	_, bag, ok := run(t, "code(nope)", interp.Options{Handles: interp.NewHandles()})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpCodeNotPresent)
}

func TestCodeHandleError(t *testing.T) {
	handles := interp.NewHandles()
	handles.RegisterCode("boom", func(interp.SceneBuilder, interp.EntityID) error {
		return fmt.Errorf("wired wrong")
	})
	_, bag, ok := run(t, "code(boom)", interp.Options{Handles: handles})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpDispatch)
}

// fakeResolver resolves every path to the same parsed library file.
type fakeResolver struct {
	files map[string]*interp.ResolvedFile
	err   error
}

func (r *fakeResolver) Resolve(path []byte) (*interp.ResolvedFile, error) {
	if r.err != nil {
		return nil, r.err
	}
	rf, ok := r.files[string(path)]
	if !ok {
		return nil, fmt.Errorf("no such file '%s'", path)
	}
	return rf, nil
}

func parseLib(t *testing.T, name, input string) *interp.ResolvedFile {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(input)))
	res := grammar.ParseFile(file, grammar.Options{})
	if !res.Ok {
		t.Fatalf("library parse failed for %q", input)
	}
	return &interp.ResolvedFile{Src: file, Templates: res.Templates}
}

func TestImportAdoptsPubTemplates(t *testing.T) {
	resolver := &fakeResolver{files: map[string]*interp.ResolvedFile{
		"widgets": parseLib(t, "widgets.chirp", `pub fn card(txt) { Card(title(txt)) }`),
	}}

	rec, _, ok := run(t, `use widgets/ {card as panel}
panel!("hi")`, interp.Options{Resolver: resolver})
	if !ok {
		t.Fatal("expected a clean run")
	}
	expectEvents(t, rec, []string{
		"spawn 0",
		`method 0 title ("hi")`,
	})
}

func TestImportRequiresPub(t *testing.T) {
	resolver := &fakeResolver{files: map[string]*interp.ResolvedFile{
		"widgets": parseLib(t, "widgets.chirp", `fn hidden() { H }`),
	}}
	_, bag, ok := run(t, `use widgets/ {hidden}
Root`, interp.Options{Resolver: resolver})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpImportFailed)
}

func TestImportCycleCode(t *testing.T) {
	resolver := &fakeResolver{err: fmt.Errorf("wrap: %w", interp.ErrImportCycle)}
	_, bag, ok := run(t, `use a/ {b}
Root`, interp.Options{Resolver: resolver})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpImportCycle)
}

func TestImportWithoutResolver(t *testing.T) {
	_, bag, ok := run(t, `use a/ {b}
Root`, interp.Options{})
	if ok {
		t.Fatal("expected failure")
	}
	expectError(t, bag, diag.InterpImportFailed)
}

func TestImportedTemplateCallableAnywhere(t *testing.T) {
	resolver := &fakeResolver{files: map[string]*interp.ResolvedFile{
		"lib": parseLib(t, "lib.chirp", `pub fn leaf() { Leaf }`),
	}}
	// leaf is adopted with ordinal -1, so calling it from the first local
	// fn is fine even though no local definition precedes it
	rec, _, ok := run(t, `use lib/ {leaf}
fn wrap() { Wrap { leaf!() } }
wrap!()`, interp.Options{Resolver: resolver})
	if !ok {
		t.Fatal("expected a clean run")
	}
	expectEvents(t, rec, []string{
		"spawn 0",
		"spawn 1",
		"parent 1 -> 0",
	})
}

func TestImportKey(t *testing.T) {
	cases := map[string]string{
		"widgets":          "widgets",
		"widgets/":         "widgets",
		`"shared/widgets"`: "shared/widgets",
		`"widgets/"`:       "widgets",
		"'widgets'":        "widgets",
	}
	for raw, want := range cases {
		if got := string(interp.ImportKey([]byte(raw))); got != want {
			t.Errorf("ImportKey(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestImportQuotedPath(t *testing.T) {
	resolver := &fakeResolver{files: map[string]*interp.ResolvedFile{
		"shared/widgets": parseLib(t, "widgets.chirp", `pub fn card() { Card }`),
	}}
	_, _, ok := run(t, `use "shared/widgets" {card}
card!()`, interp.Options{Resolver: resolver})
	if !ok {
		t.Fatal("expected a clean run")
	}
}
