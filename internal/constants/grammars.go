package constants

// Grammar scope identifiers, as used by editor grammars for each document type
const (
	ScopeNLF   = "source.nlf"
	ScopeJSON  = "source.json"
	ScopeJSON5 = "source.json5"
	ScopeNSIS  = "source.nsis"

	// Anything we do not recognise
	ScopePlainText = "text.plain"
)

// ExtensionScopes maps lowercase file extensions (without the dot) to grammar scopes
var ExtensionScopes = map[string]string{
	"nlf":   ScopeNLF,
	"json":  ScopeJSON,
	"json5": ScopeJSON5,
	"nsi":   ScopeNSIS,
	"nsh":   ScopeNSIS,
}

// ScopeForExtension returns the grammar scope for a file extension
func ScopeForExtension(ext string) string {
	if scope, ok := ExtensionScopes[ext]; ok {
		return scope
	}
	return ScopePlainText
}
