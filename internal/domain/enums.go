package domain

// Layer is the workflow stage of an item.
type Layer string

const (
	LayerCapture Layer = "capture"
	LayerProcess Layer = "process"
	LayerCommit  Layer = "commit"
)

func (l Layer) String() string { return string(l) }

func (l Layer) IsValid() bool {
	switch l {
	case LayerCapture, LayerProcess, LayerCommit:
		return true
	}
	return false
}

// AttachmentKind is the media type of an attachment.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentAudio AttachmentKind = "audio"
)

func (k AttachmentKind) String() string { return string(k) }

func (k AttachmentKind) IsValid() bool {
	switch k {
	case AttachmentImage, AttachmentAudio:
		return true
	}
	return false
}

// ViewMode is how a board renders its items.
type ViewMode string

const (
	ViewModeGrid    ViewMode = "grid"
	ViewModeCompact ViewMode = "compact"
	ViewModeKanban  ViewMode = "kanban"
)

func (m ViewMode) String() string { return string(m) }

func (m ViewMode) IsValid() bool {
	switch m {
	case ViewModeGrid, ViewModeCompact, ViewModeKanban:
		return true
	}
	return false
}
