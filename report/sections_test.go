package report

import (
	"context"
	"testing"
)

// fakeDocument records removals without a real rendering surface.
type fakeDocument struct {
	removed []string
	evals   []string
	height  float64
}

func (d *fakeDocument) RemoveByID(ctx context.Context, id string) error {
	_ = ctx
	d.removed = append(d.removed, id)
	return nil
}

func (d *fakeDocument) Evaluate(ctx context.Context, script string, out any) error {
	_ = ctx
	d.evals = append(d.evals, script)
	if v, ok := out.(*float64); ok {
		*v = d.height
	}
	return nil
}

func (d *fakeDocument) wasRemoved(id string) bool {
	for _, got := range d.removed {
		if got == id {
			return true
		}
	}
	return false
}

func allPreviousFields(value any) FieldMap {
	fields := FieldMap{}
	for _, name := range previousPeriodFields {
		fields[name] = value
	}
	return fields
}

func TestSectionsToRemove_ChartKeptWhenAllZero(t *testing.T) {
	ids := SectionsToRemove(allPreviousFields("0"), Options{})
	for _, id := range ids {
		if id == ElementChartContainer {
			t.Fatalf("chart should be kept when all previous fields are %q", "0")
		}
	}
}

func TestSectionsToRemove_ChartRemovedWhenAnyBlank(t *testing.T) {
	for _, blank := range []any{nil, "   "} {
		for _, name := range previousPeriodFields {
			fields := allPreviousFields("0")
			fields[name] = blank
			doc := &fakeDocument{}
			if err := PruneSections(context.Background(), doc, fields, Options{}); err != nil {
				t.Fatalf("prune: %v", err)
			}
			if !doc.wasRemoved(ElementChartContainer) {
				t.Fatalf("chart should be removed when %s is %v", name, blank)
			}
		}
	}

	// Absent key counts as blank too.
	fields := allPreviousFields("0")
	delete(fields, "previousTrips")
	doc := &fakeDocument{}
	if err := PruneSections(context.Background(), doc, fields, Options{}); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if !doc.wasRemoved(ElementChartContainer) {
		t.Fatalf("chart should be removed when a previous field is missing")
	}
}

func TestSectionsToRemove_TeamClusterAllOrNothing(t *testing.T) {
	fields := allPreviousFields("1")
	fields["team"] = " "
	fields["position"] = "captain"
	fields["feadback"] = "great"

	doc := &fakeDocument{}
	if err := PruneSections(context.Background(), doc, fields, Options{}); err != nil {
		t.Fatalf("prune: %v", err)
	}

	for _, id := range []string{ElementTeam, ElementPosition, ElementDivider, ElementFeedback} {
		if !doc.wasRemoved(id) {
			t.Fatalf("expected %s removed with blank team", id)
		}
	}
}

func TestSectionsToRemove_TeamPresentKeepsCluster(t *testing.T) {
	fields := FieldMap{"team": "alpha"}
	ids := SectionsToRemove(fields, Options{})
	for _, id := range ids {
		switch id {
		case ElementTeam, ElementPosition, ElementDivider, ElementFeedback:
			t.Fatalf("cluster element %s should survive with a non-blank team", id)
		}
	}
}

func TestSectionsToRemove_AcademyDefaultRule(t *testing.T) {
	fields := FieldMap{"leadershipAcademy": nil, "storyText": "a story"}
	ids := SectionsToRemove(fields, Options{})
	found := false
	for _, id := range ids {
		if id == ElementAcademy {
			found = true
		}
	}
	if !found {
		t.Fatalf("default rule removes academy on blank leadershipAcademy alone")
	}
}

func TestSectionsToRemove_AcademyKeptByStoryVariant(t *testing.T) {
	opts := Options{AcademyKeptByStory: true}

	kept := SectionsToRemove(FieldMap{"leadershipAcademy": nil, "storyText": "a story"}, opts)
	for _, id := range kept {
		if id == ElementAcademy {
			t.Fatalf("variant keeps academy when storyText is non-blank")
		}
	}

	removed := SectionsToRemove(FieldMap{"leadershipAcademy": nil, "storyText": "  "}, opts)
	found := false
	for _, id := range removed {
		if id == ElementAcademy {
			found = true
		}
	}
	if !found {
		t.Fatalf("variant removes academy when both fields are blank")
	}
}

func TestSectionsToRemove_StoryAndLink(t *testing.T) {
	ids := SectionsToRemove(FieldMap{"storyText": " ", "storyLink": nil}, Options{})

	foundStory, foundLink := false, false
	for _, id := range ids {
		if id == ElementStory {
			foundStory = true
		}
		if id == ElementStoryLink {
			foundLink = true
		}
	}
	if !foundStory || !foundLink {
		t.Fatalf("expected story and story-link removed, got %v", ids)
	}
}

func TestPageSizeForContent(t *testing.T) {
	short := PageSizeForContent(100)
	if short.HeightMM != A4HeightMM {
		t.Fatalf("short content should clamp to A4 height, got %f", short.HeightMM)
	}
	if short.WidthMM != A4WidthMM {
		t.Fatalf("width should stay A4, got %f", short.WidthMM)
	}

	tall := PageSizeForContent(2000)
	want := 2000 * PixelToMM
	if diff := tall.HeightMM - want; diff > 0.0001 || diff < -0.0001 {
		t.Fatalf("expected height %f, got %f", want, tall.HeightMM)
	}
}

func TestContentHeight(t *testing.T) {
	doc := &fakeDocument{height: 1234}
	got, err := ContentHeight(context.Background(), doc)
	if err != nil {
		t.Fatalf("content height: %v", err)
	}
	if got != 1234 {
		t.Fatalf("expected 1234, got %f", got)
	}
}

func TestRasterizeCanvases_EvaluatesScript(t *testing.T) {
	doc := &fakeDocument{}
	if err := RasterizeCanvases(context.Background(), doc); err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if len(doc.evals) != 1 {
		t.Fatalf("expected one script evaluation, got %d", len(doc.evals))
	}
}
