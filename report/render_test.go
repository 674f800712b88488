package report

import "testing"

func TestRender_UnknownTokenPassesThrough(t *testing.T) {
	got := Render("<h1>{{name}}</h1><p>{{missing}}</p>", FieldMap{"name": "Ana"})
	want := "<h1>Ana</h1><p>{{missing}}</p>"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_TokenWhitespaceOptional(t *testing.T) {
	fields := FieldMap{"name": "Ana"}
	for _, template := range []string{"{{name}}", "{{ name }}", "{{  name}}", "{{name  }}"} {
		if got := Render(template, fields); got != "Ana" {
			t.Fatalf("Render(%q): expected %q, got %q", template, "Ana", got)
		}
	}
}

func TestRender_ListFieldMultipleLines(t *testing.T) {
	got := Render("{{interests}}", FieldMap{"interests": "a\n- b\n \nc"})
	want := "<ul><li>a</li><li>b</li><li>c</li></ul>"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_ListFieldSingleLine(t *testing.T) {
	got := Render("{{interests}}", FieldMap{"interests": "solo"})
	if got != "<p>solo</p>" {
		t.Fatalf("expected paragraph, got %q", got)
	}
}

func TestRender_ListFieldBlankValue(t *testing.T) {
	got := Render("{{tasks}}", FieldMap{"tasks": "  \n \n"})
	if got != "<ul></ul>" {
		t.Fatalf("expected empty list, got %q", got)
	}
}

func TestRender_ListFieldStripsSingleMarker(t *testing.T) {
	got := Render("{{trips}}", FieldMap{"trips": "- - nested\n- plain"})
	want := "<ul><li>- nested</li><li>plain</li></ul>"
	if got != want {
		t.Fatalf("expected one marker stripped, got %q", got)
	}
}

func TestRender_PlainFieldNewlines(t *testing.T) {
	got := Render("{{status}}", FieldMap{"status": "x\ny"})
	if got != "x<br>y" {
		t.Fatalf("expected line breaks, got %q", got)
	}
}

func TestRender_PlainFieldNoEscaping(t *testing.T) {
	got := Render("{{futurePlans}}", FieldMap{"futurePlans": `<b>bold</b>`})
	if got != "<b>bold</b>" {
		t.Fatalf("expected verbatim markup, got %q", got)
	}
}

func TestRender_NullValueRendersEmpty(t *testing.T) {
	got := Render("[{{status}}]", FieldMap{"status": nil})
	if got != "[]" {
		t.Fatalf("expected empty substitution, got %q", got)
	}
}

func TestRender_NumericValue(t *testing.T) {
	got := Render("{{age}}", FieldMap{"age": float64(12)})
	if got != "12" {
		t.Fatalf("expected %q, got %q", "12", got)
	}
}

func TestRender_NonTokenTextUntouched(t *testing.T) {
	template := "<div>{ not a token }} {{ }} {{bad name}}</div>"
	if got := Render(template, FieldMap{"name": "Ana"}); got != template {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
