package convert

import "strings"

// languageAttrs are scanned, in order, when class names yield no
// language for a fenced code block.
var languageAttrs = []string{
	"data-lang",
	"data-language",
	"data-codetag",
	"syntax",
	"data-programming-language",
	"type",
}

// knownLanguages is the fixed table of language names recognized on code
// blocks.
var knownLanguages = map[string]bool{
	"apl": true, "asm": true, "assembly": true, "bash": true,
	"c": true, "c#": true, "c++": true, "clojure": true,
	"cobol": true, "cpp": true, "csharp": true, "css": true,
	"d": true, "dart": true, "elixir": true, "elm": true,
	"erlang": true, "f#": true, "fish": true, "fortran": true,
	"fsharp": true, "go": true, "groovy": true, "guile": true,
	"haskell": true, "html": true, "java": true, "javascript": true,
	"js": true, "julia": true, "kotlin": true, "less": true,
	"lisp": true, "lua": true, "matlab": true, "objectivec": true,
	"objective-c": true, "ocaml": true, "perl": true, "php": true,
	"powershell": true, "python": true, "python2": true, "python3": true,
	"r": true, "racket": true, "raku": true, "ruby": true,
	"rust": true, "sass": true, "scala": true, "scheme": true,
	"sgml": true, "sh": true, "shell": true, "sql": true,
	"swift": true, "typescript": true, "ts": true, "vba": true,
	"xml": true, "zsh": true,
}

// inferLanguage guesses the language of a fenced code block from the
// current tag. Class names win: a "language-" prefix is taken verbatim,
// a bare known language name is taken as-is. Otherwise a fixed list of
// attributes is scanned for a known language.
func (r *run) inferLanguage() string {
	for _, class := range r.sc.ClassList() {
		class = strings.ToLower(class)
		if lang, ok := strings.CutPrefix(class, "language-"); ok {
			return cleanLanguage(lang)
		}
		if knownLanguages[class] {
			return class
		}
	}
	for _, attr := range languageAttrs {
		if v, ok := r.sc.Attr(attr); ok {
			v = strings.ToLower(strings.TrimSpace(v))
			if knownLanguages[v] {
				return v
			}
		}
	}
	return ""
}

// cleanLanguage rejects values that would corrupt the fence line.
func cleanLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if strings.ContainsAny(lang, "`\n") {
		return ""
	}
	return lang
}
