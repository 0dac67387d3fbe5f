// Package grapheme splits text into user-perceived characters.
package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster and the number of runes it spans. Document
// positions count runes, so Runes is the cluster's width in positions.
type Cluster struct {
	Text  string
	Runes int
}

// Clusters returns the grapheme clusters of text in order.
func Clusters(text string) []Cluster {
	if text == "" {
		return nil
	}
	var out []Cluster
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, Cluster{Text: g.Str(), Runes: len(g.Runes())})
	}
	return out
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool { return all(cluster, unicode.IsSpace) }

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool { return all(cluster, unicode.IsPunct) }

// IsWord reports whether cluster belongs to a word: it is neither
// whitespace nor punctuation.
func IsWord(cluster string) bool {
	return cluster != "" && !IsSpace(cluster) && !IsPunct(cluster)
}

func all(cluster string, pred func(rune) bool) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !pred(r) {
			return false
		}
	}
	return true
}
