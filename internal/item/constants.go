package item

// ==================== Configuration Files ====================

// Item configuration file names and extensions
const (
	// ConfigFileName is the name of the items configuration file
	ConfigFileName = "items.yaml"

	// ItemsSchemaPath is the JSON schema, relative to the module root, every items file must satisfy
	ItemsSchemaPath = "configs/schemas/items.schema.json"

	ExtJSON = ".json"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read items config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse items config: %w"
	ErrMsgUnsupportedFormat    = "unsupported items file extension"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil        = "config is nil"
	ErrMsgNoItemsDefined   = "no items defined"
	ErrFmtItemAtIndexEmpty = "%w: item at index %d has empty name"
	ErrFmtItemInvalidType  = "%w: item '%s' has unknown type %q"
	ErrFmtItemInvalidID    = "%w: item '%s' has non-positive id %d"
	ErrFmtItemDuplicateKey = "%w: %s ('%s' and '%s')"
	ErrFmtSchemaValidation = "%s does not match the items schema: %v"
)

// ==================== Log Messages ====================

const (
	LogMsgCatalogLoaded = "Item catalog loaded"
)
