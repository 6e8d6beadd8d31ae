package domain

import "strings"

// Language is the tag attached to a snippet, either declared by the
// caller or guessed by the detector.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangUnknown    Language = "unknown"
)

// ParseLanguage normalizes a caller-supplied language string.
// Unrecognized values map to LangUnknown rather than erroring, so the
// pipeline can still report them as unsupported.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python", "py":
		return LangPython
	case "javascript", "js":
		return LangJavaScript
	case "java":
		return LangJava
	case "c":
		return LangC
	case "cpp", "c++":
		return LangCPP
	default:
		return LangUnknown
	}
}

// languageExtensions maps file extensions to language tags for batch mode.
var languageExtensions = map[string]Language{
	".py":   LangPython,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".java": LangJava,
	".c":    LangC,
	".h":    LangC,
	".cpp":  LangCPP,
	".cc":   LangCPP,
	".cxx":  LangCPP,
	".hpp":  LangCPP,
}

// LanguageForPath maps a file path to a language tag by extension.
// The second return value reports whether the extension is recognized.
func LanguageForPath(path string) (Language, bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return LangUnknown, false
	}
	lang, ok := languageExtensions[strings.ToLower(path[i:])]
	return lang, ok
}

// Extension returns the file extension used when writing a snippet of
// this language to disk, without the leading dot.
func (l Language) Extension() string {
	switch l {
	case LangPython:
		return "py"
	case LangJavaScript:
		return "js"
	case LangJava:
		return "java"
	case LangC:
		return "c"
	case LangCPP:
		return "cpp"
	default:
		return "txt"
	}
}
