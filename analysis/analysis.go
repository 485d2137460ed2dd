// Package analysis implements two classical ciphertext measurements:
// the index of coincidence and the Kasiski examination. Both operate
// on the 26-letter alphabet and ignore everything else, which is how
// classical ciphertexts were written down.
//
// The index of coincidence is the probability that two letters drawn
// from the text match; English prose sits near 0.067, uniform noise at
// 1/26. The Kasiski examination finds repeated substrings and the
// distances between them; for a Vigenere ciphertext those distances
// are multiples of the key length.
package analysis

// Normalize uppercases s and strips every byte outside A-Z.
func Normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			out = append(out, ch)
		case ch >= 'a' && ch <= 'z':
			out = append(out, ch-'a'+'A')
		}
	}
	return string(out)
}

// IndexOfCoincidence computes the index of coincidence of the letters
// in text, case-insensitively. Texts with fewer than two letters have
// no letter pairs and score 0.
func IndexOfCoincidence(text string) float64 {
	var freq [26]int
	n := 0
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			freq[ch-'A']++
			n++
		case ch >= 'a' && ch <= 'z':
			freq[ch-'a']++
			n++
		}
	}
	if n < 2 {
		return 0
	}

	sum := 0
	for _, f := range freq {
		sum += f * (f - 1)
	}
	return float64(sum) / float64(n*(n-1))
}

// Repeat describes one substring that occurs more than once in the
// normalized text.
type Repeat struct {
	// Word is the repeated substring, normalized.
	Word string
	// Count is how many times Word occurs.
	Count int
	// Positions are the offsets of each occurrence in the normalized
	// text, ascending.
	Positions []int
	// Distances are the gaps between successive occurrences.
	Distances []int
	// GCD is the greatest common divisor of Distances.
	GCD int
}

// Kasiski finds every substring of at least minLength letters that
// occurs more than once in text. Lengths are explored in ascending
// order up to half the text; the search stops at the first length with
// no repeats, since longer repeats contain shorter ones. Within one
// length, repeats are reported in order of first occurrence.
func Kasiski(text string, minLength int) []Repeat {
	s := Normalize(text)
	if minLength < 1 {
		minLength = 1
	}

	var out []Repeat
	for k := minLength; k <= len(s)/2; k++ {
		counts := make(map[string]int)
		var order []string
		for i := 0; i+k <= len(s); i++ {
			v := s[i : i+k]
			if counts[v] == 0 {
				order = append(order, v)
			}
			counts[v]++
		}

		any := false
		for _, v := range order {
			if counts[v] > 1 {
				any = true
				out = append(out, newRepeat(s, v, counts[v]))
			}
		}
		if !any {
			break
		}
	}
	return out
}

func newRepeat(s, word string, count int) Repeat {
	r := Repeat{Word: word, Count: count}
	k := len(word)
	for i := 0; i+k <= len(s); i++ {
		if s[i:i+k] == word {
			r.Positions = append(r.Positions, i)
		}
	}
	for i := 1; i < len(r.Positions); i++ {
		d := r.Positions[i] - r.Positions[i-1]
		r.Distances = append(r.Distances, d)
		if r.GCD == 0 {
			r.GCD = d
		} else {
			r.GCD = gcd(r.GCD, d)
		}
	}
	return r
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// KeyLengthCandidate is one possible key length with the number of
// repeat distances it divides.
type KeyLengthCandidate struct {
	Length int
	Votes  int
}

// KeyLengths tallies, for every candidate length 2..max, how many
// repeat distances it divides, and returns the candidates ordered by
// votes descending, then by length ascending. The true key length of a
// polyalphabetic cipher tends to collect the most votes.
func KeyLengths(repeats []Repeat, max int) []KeyLengthCandidate {
	if max < 2 {
		return nil
	}
	votes := make([]int, max+1)
	for _, r := range repeats {
		for _, d := range r.Distances {
			for l := 2; l <= max; l++ {
				if d%l == 0 {
					votes[l]++
				}
			}
		}
	}

	var out []KeyLengthCandidate
	for l := 2; l <= max; l++ {
		if votes[l] > 0 {
			out = append(out, KeyLengthCandidate{Length: l, Votes: votes[l]})
		}
	}
	// Stable by construction: built in ascending length order, so a
	// simple insertion sort by votes keeps ties ascending.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Votes > out[j-1].Votes; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
