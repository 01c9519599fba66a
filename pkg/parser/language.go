package parser

import (
	"path/filepath"
	"strings"
)

// Language represents a grammar the converter can parse with.
type Language int

const (
	// LanguageTypeScript represents TypeScript (.ts, .tsx files)
	LanguageTypeScript Language = iota
	// LanguageJavaScript represents JavaScript (.js, .jsx files)
	LanguageJavaScript
	// LanguageUnknown represents an unsupported language
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage detects the language from a file path.
// Returns LanguageUnknown if the file extension is not recognized.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// IsTSXFile checks if a file path represents a TSX file.
func IsTSXFile(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".tsx")
}

// IsConvertible reports whether a file is legacy JavaScript that the
// converter renames to .tsx.
func IsConvertible(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".js", ".jsx":
		return true
	}
	return false
}

// TSXPath returns filePath with its .js/.jsx extension replaced by .tsx.
// Paths with any other extension are returned unchanged.
func TSXPath(filePath string) string {
	if !IsConvertible(filePath) {
		return filePath
	}
	return strings.TrimSuffix(filePath, filepath.Ext(filePath)) + ".tsx"
}

// SupportedLanguages returns a list of all supported languages.
func SupportedLanguages() []Language {
	return []Language{
		LanguageTypeScript,
		LanguageJavaScript,
	}
}
