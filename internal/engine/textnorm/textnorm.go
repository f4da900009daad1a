// internal/engine/textnorm/textnorm.go

// Package textnorm normalizes free text into comparable token sets for
// skill and interest matching. All functions are pure and never fail on
// malformed input: empty or garbage text yields an empty result.
package textnorm

import "strings"

// defaultSynonyms folds common abbreviations onto a canonical token.
// The table is fixed at process start; it is never mutated at runtime.
var defaultSynonyms = map[string]string{
	"js":      "javascript",
	"ts":      "typescript",
	"py":      "python",
	"cpp":     "cplusplus",
	"cc":      "cplusplus",
	"react":   "reactjs",
	"angular": "angularjs",
	"vue":     "vuejs",
	"node":    "nodejs",
	"express": "expressjs",
	"mongo":   "mongodb",
	"sql":     "database",
	"nosql":   "database",
	"ml":      "machinelearning",
	"ai":      "artificialintelligence",
	"dl":      "deeplearning",
	"cv":      "computervision",
	"nlp":     "naturallanguageprocessing",
	"rest":    "restapi",
	"k8s":     "kubernetes",
	"aws":     "amazonwebservices",
	"azure":   "microsoftazure",
	"gcp":     "googlecloudplatform",
}

// stopwords are dropped during tag extraction. Kept deliberately small:
// requirement strings are comma-separated skill lists, not prose.
var stopwords = map[string]struct{}{
	"and": {}, "or": {}, "with": {}, "for": {},
	"to": {}, "in": {}, "on": {}, "of": {},
}

// Normalize lowercases text, removes punctuation, collapses whitespace
// and trims. Punctuation is removed rather than replaced so compound
// names keep their shape: "Node.js" normalizes to "nodejs". Idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
		default:
			// punctuation and symbols vanish
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize splits normalized text on whitespace, dropping empty tokens.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// Singularize strips a trailing "s" from simple plurals. Very short
// tokens are left alone so acronyms like "css" survive.
func Singularize(token string) string {
	if len(token) > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") {
		return token[:len(token)-1]
	}
	return token
}

// Extractor turns free text into a deduplicated tag set. The zero-cost
// default extractor uses the built-in synonym table; NewExtractor merges
// deployment-specific additions on top of it once, at construction.
type Extractor struct {
	synonyms map[string]string
}

// NewExtractor builds an Extractor whose synonym table is the default
// table extended by extra. Extras win on key collisions with the
// built-ins, and values should be single normalized tokens: a
// multi-word value becomes one space-containing tag, which containment
// matching tolerates but exact lookups will not. The merged table is
// immutable afterwards.
func NewExtractor(extra map[string]string) *Extractor {
	if len(extra) == 0 {
		return &Extractor{synonyms: defaultSynonyms}
	}
	merged := make(map[string]string, len(defaultSynonyms)+len(extra))
	for k, v := range defaultSynonyms {
		merged[k] = v
	}
	for k, v := range extra {
		merged[Normalize(k)] = Normalize(v)
	}
	return &Extractor{synonyms: merged}
}

// ApplySynonyms maps each token through the synonym table; unmapped
// tokens pass through unchanged.
func (e *Extractor) ApplySynonyms(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if mapped, ok := e.synonyms[tok]; ok {
			out[i] = mapped
		} else {
			out[i] = tok
		}
	}
	return out
}

// ExtractTags runs the full pipeline: tokenize, map synonyms,
// singularize, drop stop-words, deduplicate. First-seen order is
// preserved so repeated calls yield identical slices.
func (e *Extractor) ExtractTags(text string) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	tokens = e.ApplySynonyms(tokens)

	seen := make(map[string]struct{}, len(tokens))
	tags := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = Singularize(tok)
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tags = append(tags, tok)
	}
	return tags
}

// NormalizeTerms normalizes each raw term (a skill or interest string)
// without tokenizing it apart. Empty results are dropped.
func (e *Extractor) NormalizeTerms(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// ExpandTerms runs each raw term through the same token pipeline as
// ExtractTags (synonyms, plural folding) and rejoins multi-word terms
// with spaces. Matching must see both sides through the same folds:
// a skill "sql" has to line up with a requirement tag folded to
// "database".
func (e *Extractor) ExpandTerms(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		tokens := e.ApplySynonyms(Tokenize(t))
		for i, tok := range tokens {
			tokens[i] = Singularize(tok)
		}
		if len(tokens) == 0 {
			continue
		}
		out = append(out, strings.Join(tokens, " "))
	}
	return out
}
