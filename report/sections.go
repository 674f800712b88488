package report

import "context"

// Element ids of the optional sections in the rendered document.
const (
	ElementAcademy        = "academy"
	ElementStory          = "story"
	ElementStoryLink      = "story-link"
	ElementTeam           = "team"
	ElementPosition       = "position"
	ElementDivider        = "divider"
	ElementFeedback       = "feedback"
	ElementChartContainer = "chart-container"
)

// Options selects between the deployed pruning variants.
type Options struct {
	// AcademyKeptByStory keeps the academy section when storyText is
	// non-blank even if leadershipAcademy is blank. The default rule
	// removes the section on a blank leadershipAcademy alone.
	AcademyKeptByStory bool
}

// PruneSections removes optional sections whose backing fields are blank.
// Removal happens in-place on the live document and is not reversible;
// sections already absent from the template are skipped silently.
func PruneSections(ctx context.Context, doc Document, fields FieldMap, opts Options) error {
	if doc == nil {
		return NewError(KindInternal, "document is nil", nil)
	}
	for _, id := range SectionsToRemove(fields, opts) {
		if err := doc.RemoveByID(ctx, id); err != nil {
			return NewError(KindRendering, "section removal failed", err)
		}
	}
	return nil
}

// SectionsToRemove computes the element ids to prune for a field map.
// Pure; the live-document mutation stays in PruneSections.
func SectionsToRemove(fields FieldMap, opts Options) []string {
	ids := make([]string, 0, 8)

	removeAcademy := fields.BlankField("leadershipAcademy")
	if opts.AcademyKeptByStory {
		removeAcademy = removeAcademy && fields.BlankField("storyText")
	}
	if removeAcademy {
		ids = append(ids, ElementAcademy)
	}

	if fields.BlankField("storyText") {
		ids = append(ids, ElementStory)
	}

	// The team cluster goes all-or-nothing: a blank team also takes the
	// position, divider, and feedback elements with it.
	if fields.BlankField("team") {
		ids = append(ids, ElementTeam, ElementPosition, ElementDivider, ElementFeedback)
	}

	if fields.BlankField("storyLink") {
		ids = append(ids, ElementStoryLink)
	}

	for _, name := range previousPeriodFields {
		if fields.BlankField(name) {
			ids = append(ids, ElementChartContainer)
			break
		}
	}

	return ids
}
