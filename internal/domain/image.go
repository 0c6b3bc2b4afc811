package domain

// Image is an acquired image bound to the reference it was downloaded from.
// Metadata fields are best-effort and stay zero when the bytes could not be inspected.
type Image struct {
	Reference   ImageReference `json:"reference"`
	Index       int            `json:"index"`
	Data        []byte         `json:"-"`
	Format      string         `json:"format,omitempty"`
	ContentType string         `json:"content_type,omitempty"`
	Width       int            `json:"width,omitempty"`
	Height      int            `json:"height,omitempty"`
	Size        int            `json:"size"`
}

// GallerySnapshot is a point-in-time copy of a gallery's navigation state.
type GallerySnapshot struct {
	Cursor     int              `json:"cursor"`
	References []ImageReference `json:"references"`
}

// Len returns the number of remembered references.
func (s GallerySnapshot) Len() int {
	return len(s.References)
}
