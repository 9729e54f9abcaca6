package mutate

import (
	"path/filepath"
	"strings"
)

// Language identifies the comment syntax family of a source file.
type Language string

const (
	LangPython  Language = "python"
	LangSQL     Language = "sql"
	LangCpp     Language = "cpp"
	LangKotlin  Language = "kotlin"
	LangSwift   Language = "swift"
	LangUnknown Language = "unknown"
)

// extensionLanguages is the fixed set of file extensions the mutator touches.
var extensionLanguages = map[string]Language{
	".py":    LangPython,
	".sql":   LangSQL,
	".cpp":   LangCpp,
	".hpp":   LangCpp,
	".cxx":   LangCpp,
	".h":     LangCpp,
	".kt":    LangKotlin,
	".kts":   LangKotlin,
	".swift": LangSwift,
}

var commentMarkers = map[Language]string{
	LangPython:  "#",
	LangSQL:     "--",
	LangCpp:     "//",
	LangKotlin:  "//",
	LangSwift:   "//",
	LangUnknown: "#",
}

// commentPhrases gives the inserted comment a plausible, language-appropriate body.
var commentPhrases = map[Language]string{
	LangPython:  "Refactored function for better performance",
	LangSQL:     "Optimized query for faster response",
	LangCpp:     "Improved memory management in loop",
	LangKotlin:  "Enhanced null-safety check",
	LangSwift:   "Updated UI component initialization",
	LangUnknown: "General update",
}

// DetectLanguage maps a file path to its language by extension.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LangUnknown
}

// CommentMarker returns the single-line comment marker for a language.
func CommentMarker(lang Language) string {
	if marker, ok := commentMarkers[lang]; ok {
		return marker
	}
	return commentMarkers[LangUnknown]
}

// IsSupported reports whether the mutator may touch the given file.
func IsSupported(path string) bool {
	_, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]
	return ok
}
