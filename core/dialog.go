package core

// DialogAction is the outcome of a batch filter editing dialog.
type DialogAction int

const (
	DialogCancel DialogAction = iota
	DialogApply
	DialogClear
)

func (a DialogAction) String() string {
	switch a {
	case DialogApply:
		return "apply"
	case DialogClear:
		return "clear"
	default:
		return "cancel"
	}
}

type (
	// DialogRequest is what a filter dialog is opened with.
	DialogRequest struct {
		Filters []FilterDescriptor
		State   FilterState
	}

	// DialogResult is what a filter dialog hands back when it closes.
	// Filters is only read for DialogApply and replaces every column filter.
	DialogResult struct {
		Action  DialogAction
		Filters map[string]any
	}
)
