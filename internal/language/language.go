// Package language defines the fixed roster of guessable languages.
package language

import (
	"math/rand"
)

// Tag identifies one language from the roster.
type Tag int

// The roster: the top survey languages, matching what GitHub's linguist
// reports for gists and code search.
const (
	Assembly Tag = iota
	Shell
	C
	CSharp
	CPlusPlus
	CSS
	Dart
	Dockerfile
	Go
	Groovy
	HTML
	Java
	JavaScript
	Kotlin
	Lua
	PHP
	PowerShell
	Python
	R
	Ruby
	Rust
	SQL
	Swift
	TypeScript
)

type info struct {
	name     string
	linguist string
	exts     []string
}

// Indexed by Tag. Extensions are case-sensitive and include the leading dot.
var infos = [...]info{
	Assembly:   {"Assembly", "Assembly", []string{".asm", ".s", ".S"}},
	Shell:      {"Shell", "Shell", []string{".sh", ".bash", ".zsh"}},
	C:          {"C", "C", []string{".c", ".h"}},
	CSharp:     {"C#", "C#", []string{".cs"}},
	CPlusPlus:  {"C++", "C++", []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"}},
	CSS:        {"CSS", "CSS", []string{".css"}},
	Dart:       {"Dart", "Dart", []string{".dart"}},
	Dockerfile: {"Dockerfile", "Dockerfile", []string{".dockerfile"}},
	Go:         {"Go", "Go", []string{".go"}},
	Groovy:     {"Groovy", "Groovy", []string{".groovy", ".gvy"}},
	HTML:       {"HTML", "HTML", []string{".html", ".htm"}},
	Java:       {"Java", "Java", []string{".java"}},
	JavaScript: {"JavaScript", "JavaScript", []string{".js", ".mjs", ".cjs", ".jsx"}},
	Kotlin:     {"Kotlin", "Kotlin", []string{".kt", ".kts"}},
	Lua:        {"Lua", "Lua", []string{".lua"}},
	PHP:        {"PHP", "PHP", []string{".php"}},
	PowerShell: {"PowerShell", "PowerShell", []string{".ps1", ".psm1"}},
	Python:     {"Python", "Python", []string{".py", ".pyw"}},
	R:          {"R", "R", []string{".r", ".R"}},
	Ruby:       {"Ruby", "Ruby", []string{".rb", ".rake"}},
	Rust:       {"Rust", "Rust", []string{".rs"}},
	SQL:        {"SQL", "SQL", []string{".sql"}},
	Swift:      {"Swift", "Swift", []string{".swift"}},
	TypeScript: {"TypeScript", "TypeScript", []string{".ts", ".tsx"}},
}

// All lists every roster tag in declaration order.
var All = func() []Tag {
	tags := make([]Tag, len(infos))
	for i := range infos {
		tags[i] = Tag(i)
	}
	return tags
}()

func (t Tag) String() string {
	if t < 0 || int(t) >= len(infos) {
		return "unknown"
	}
	return infos[t].name
}

// Linguist returns the identifier GitHub uses for this language.
func (t Tag) Linguist() string {
	return infos[t].linguist
}

// Exts returns the file extensions recognized for this language.
func (t Tag) Exts() []string {
	return infos[t].exts
}

// FromLinguist resolves a linguist identifier, as reported by the GitHub
// API, to a roster tag.
func FromLinguist(name string) (Tag, bool) {
	for i, in := range infos {
		if in.linguist == name {
			return Tag(i), true
		}
	}
	return 0, false
}

// FromExt resolves a file extension (with leading dot) to a roster tag.
// Matching is case-sensitive: ".r" and ".R" are both R, but ".RS" is nothing.
func FromExt(ext string) (Tag, bool) {
	for i, in := range infos {
		for _, e := range in.exts {
			if e == ext {
				return Tag(i), true
			}
		}
	}
	return 0, false
}

// Random picks one roster tag uniformly.
func Random(rng *rand.Rand) Tag {
	return All[rng.Intn(len(All))]
}

// Options returns the full roster as the guess list for a round, either in
// declaration order or shuffled once per call.
func Options(rng *rand.Rand, randomize bool) []Tag {
	opts := make([]Tag, len(All))
	copy(opts, All)
	if randomize {
		rng.Shuffle(len(opts), func(i, j int) {
			opts[i], opts[j] = opts[j], opts[i]
		})
	}
	return opts
}
