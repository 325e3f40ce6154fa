// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textnorm

// Built-in stop-word lists, selected by document language when the
// configuration supplies no explicit set.

var englishStopWords = []string{
	"the", "and", "but", "for", "nor", "not", "with", "from", "into",
	"was", "are", "were", "been", "have", "has", "had", "does", "did",
	"will", "would", "should", "could", "may", "might", "must", "can",
	"this", "that", "these", "those", "you", "she", "they", "them",
	"what", "which", "who", "whom", "when", "where", "why", "how",
	"all", "each", "more", "most", "other", "some", "such", "than",
	"then", "there", "their", "its", "his", "her", "our", "out", "about",
	"also", "between", "both", "during", "upon", "within", "without",
}

var slovakStopWords = []string{
	"aby", "ako", "ale", "alebo", "ani", "avšak", "bol", "bola", "boli",
	"bolo", "byť", "časti", "ešte", "iba", "ich", "inej", "iné", "iný",
	"jeho", "jej", "kde", "kým", "ktorá", "ktoré", "ktorí", "ktorý",
	"lebo", "len", "mať", "medzi", "môže", "nad", "najmä", "než", "nie",
	"niektoré", "pod", "podľa", "potom", "pre", "pred", "pri", "nich",
	"síce", "svoje", "tak", "takže", "tam", "teda", "tejto", "tento",
	"tieto", "tiež", "tom", "tomto", "toto", "túto", "tých", "týchto",
	"však", "všetky", "zo", "čo", "či", "ďalšie", "keď",
}

// StopWords returns the built-in stop-word list for a language tag.
// Slovak documents get both lists: scholarly Slovak text routinely mixes
// in English terminology.
func StopWords(language string) []string {
	if language == "sk" {
		out := make([]string, 0, len(slovakStopWords)+len(englishStopWords))
		out = append(out, slovakStopWords...)
		return append(out, englishStopWords...)
	}
	return englishStopWords
}
