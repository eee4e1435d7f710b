package domain

type (
	BoardId       = string
	CategoryId    = string
	ContentItemId = string
	LikeId        = string

	// Identity is the per-installation opaque token used as an ownership key.
	Identity = string
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#3b82f6"

// DefaultColors is the palette offered when creating categories.
var DefaultColors = []string{
	"#3b82f6", // blue
	"#10b981", // green
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#06b6d4", // cyan
	"#f97316", // orange
	"#84cc16", // lime
	"#ec4899", // pink
	"#6b7280", // gray
}
