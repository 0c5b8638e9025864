package eval

import (
	"math"
	"regexp"
	"slices"
	"strings"
)

const maxOrder = 4

// substitution is one rewrite step of the Treebank tokenizer.
type substitution struct {
	re   *regexp.Regexp
	repl string
}

func rules(repl string, patterns ...string) []substitution {
	out := make([]substitution, len(patterns))
	for i, p := range patterns {
		out[i] = substitution{re: regexp.MustCompile(p), repl: repl}
	}
	return out
}

// Penn Treebank tokenization as done by NLTK's TreebankWordTokenizer, in
// application order. Text is padded with spaces before the ending quote
// rules run.
var (
	startingQuotes = []substitution{
		{regexp.MustCompile(`^"`), "``"},
		{regexp.MustCompile("(``)"), " ${1} "},
		{regexp.MustCompile(`([ (\[{<])("|'{2})`), "${1} `` "},
	}

	punctuation = []substitution{
		{regexp.MustCompile(`([:,])([^\p{Nd}])`), " ${1} ${2}"},
		{regexp.MustCompile(`([:,])$`), " ${1} "},
		{regexp.MustCompile(`\.\.\.`), " ... "},
		{regexp.MustCompile(`[;@#$%&]`), " ${0} "},
		{regexp.MustCompile(`([^.])(\.)([\])}>"']*)\s*$`), "${1} ${2}${3} "},
		{regexp.MustCompile(`[?!]`), " ${0} "},
		{regexp.MustCompile(`([^'])' `), "${1} ' "},
	}

	parensBrackets = substitution{regexp.MustCompile(`[\]\[(){}<>]`), " ${0} "}

	doubleDashes = substitution{regexp.MustCompile(`--`), " -- "}

	endingQuotes = []substitution{
		{regexp.MustCompile(`''`), " '' "},
		{regexp.MustCompile(`"`), " '' "},
		{regexp.MustCompile(`([^' ])('[sS]|'[mM]|'[dD]|') `), "${1} ${2} "},
		{regexp.MustCompile(`([^' ])('ll|'LL|'re|'RE|'ve|'VE|n't|N'T) `), "${1} ${2} "},
	}

	contractions = slices.Concat(
		rules(" ${1} ${2} ",
			`(?i)\b(can)(not)\b`,
			`(?i)\b(d)('ye)\b`,
			`(?i)\b(gim)(me)\b`,
			`(?i)\b(gon)(na)\b`,
			`(?i)\b(got)(ta)\b`,
			`(?i)\b(lem)(me)\b`,
			`(?i)\b(more)('n)\b`,
		),
		// "wanna" splits only before whitespace; RE2 has no lookahead, so
		// the whitespace is matched and put back.
		rules(" ${1} ${2} ${3}", `(?i)\b(wan)(na)(\s)`),
		rules(" ${1} ${2} ",
			`(?i) ('t)(is)\b`,
			`(?i) ('t)(was)\b`,
		),
	)
)

func apply(text string, subs ...substitution) string {
	for _, s := range subs {
		text = s.re.ReplaceAllString(text, s.repl)
	}
	return text
}

// Tokenize splits text into BLEU tokens with the Penn Treebank rules. A
// period is split off only at the end of the text, and contractions are
// split ("don't" becomes "do", "n't").
func Tokenize(text string) []string {
	text = apply(text, startingQuotes...)
	text = apply(text, punctuation...)
	text = apply(text, parensBrackets, doubleDashes)
	text = apply(" "+text+" ", endingQuotes...)
	text = apply(text, contractions...)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// CorpusBLEU computes BLEU-4 with uniform weights over a corpus with one
// reference per hypothesis. N-gram counts are pooled over the corpus before
// the precisions are taken. Without smoothing, a corpus with no matching
// n-gram of some order scores 0.
func CorpusBLEU(references, hypotheses [][]string) float64 {
	var matches, totals [maxOrder]int
	hypLen, refLen := 0, 0

	for i, hyp := range hypotheses {
		var ref []string
		if i < len(references) {
			ref = references[i]
		}
		hypLen += len(hyp)
		refLen += len(ref)

		for n := 1; n <= maxOrder; n++ {
			hypCounts := ngrams(hyp, n)
			refCounts := ngrams(ref, n)
			for gram, count := range hypCounts {
				matches[n-1] += min(count, refCounts[gram])
				totals[n-1] += count
			}
		}
	}

	if hypLen == 0 {
		return 0
	}

	logSum := 0.0
	for n := 0; n < maxOrder; n++ {
		if matches[n] == 0 {
			return 0
		}
		logSum += math.Log(float64(matches[n]) / float64(totals[n]))
	}

	return brevityPenalty(refLen, hypLen) * math.Exp(logSum/maxOrder)
}

func brevityPenalty(refLen, hypLen int) float64 {
	if hypLen > refLen {
		return 1
	}
	return math.Exp(1 - float64(refLen)/float64(hypLen))
}

func ngrams(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], "\x00")]++
	}
	return counts
}
