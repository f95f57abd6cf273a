package scene

// ViewerKind names a viewer flavour
type ViewerKind string

const (
	ViewerPrimary ViewerKind = "primary"
	ViewerAvatar  ViewerKind = "avatar"
)

// Viewer is a Renderer bound to the scenes of one viewer flavour. Both flavours share the
// apply logic and differ only in what they mount
type Viewer struct {
	*Renderer
	Kind ViewerKind
}

// NewPrimaryViewer mounts the product model
func NewPrimaryViewer(product *Scene) *Viewer {
	return &Viewer{Renderer: NewRenderer(product), Kind: ViewerPrimary}
}

// NewAvatarViewer mounts the avatar and, when present, the skinned product model. Its
// identifiers are the union of both
func NewAvatarViewer(avatar, skinnedProduct *Scene) *Viewer {
	return &Viewer{Renderer: NewRenderer(avatar, skinnedProduct), Kind: ViewerAvatar}
}

// ParseViewerKind defaults to the primary viewer
func ParseViewerKind(s string) ViewerKind {
	if ViewerKind(s) == ViewerAvatar {
		return ViewerAvatar
	}
	return ViewerPrimary
}
