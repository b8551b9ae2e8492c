package config

// DatabaseFileExt is the extension of artifact database files.
const DatabaseFileExt = ".db"

// DefaultDatabase is used when neither the --db flag nor the
// environment override is given.
const DefaultDatabase = "artifacts" + DatabaseFileExt

// DatabaseEnvVar overrides the default artifact database path.
const DatabaseEnvVar = "TYPESPEC_DB"

// Attribute names as they appear in source modules.
const (
	TypeAttr              = "type"
	OpaqueAttr            = "opaque"
	SpecAttr              = "spec"
	CallbackAttr          = "callback"
	MacroCallbackAttr     = "macrocallback"
	OptionalCallbacksAttr = "optional_callbacks"
)
