package messages

// Builder messages for the default configuration builder.
const (
	BuilderMergeFmt          = "merge values: %w"
	BuilderLoaderNameEmpty   = "loader name is required"
	BuilderPluginNameEmpty   = "plugin name is required"
	BuilderPluginKindFmt     = "plugin %q: kind is required"
	BuilderRenderFmt         = "render artifact: %w"
	BuilderDiffBeforeLabel   = "before"
	BuilderDiffAfterLabel    = "after"
	BuilderDiffRenderSideFmt = "render %s artifact: %w"
)
