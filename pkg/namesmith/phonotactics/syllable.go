package phonotactics

// Syllabify splits a segment into syllables using onset-maximization.
//
// Nuclei are vowels or listed vowel digraphs. Consonants between two
// nuclei are split so that the longest legal onset goes to the following
// syllable and the remainder becomes the preceding syllable's coda.
// Leading consonants join the first syllable, trailing consonants the
// last. Segments of length <= 1, or with no vowel at all, come back as
// a single syllable. The concatenation of the result always equals the
// input segment.
func Syllabify(segment string) []string {
	if len(segment) <= 1 {
		return []string{segment}
	}

	type span struct{ start, end int }
	var nuclei []span
	for i := 0; i < len(segment); {
		if !IsVowel(segment[i]) {
			i++
			continue
		}
		start := i
		for i+1 < len(segment) && IsVowel(segment[i+1]) && ValidVowelPair(segment[i:i+2]) {
			i++
		}
		nuclei = append(nuclei, span{start, i + 1})
		i++
	}

	if len(nuclei) == 0 {
		return []string{segment}
	}

	syllables := make([]string, 0, len(nuclei))
	for ni, nuc := range nuclei {
		var onset string
		if ni == 0 {
			onset = segment[:nuc.start]
		} else {
			cluster := segment[nuclei[ni-1].end:nuc.start]

			// Onset-maximization: longest suffix of the cluster that is
			// itself a legal onset goes with this syllable.
			split := len(cluster)
			for k := 0; k <= len(cluster); k++ {
				candidate := cluster[k:]
				if len(candidate) == 0 || ValidOnset(candidate) {
					split = k
					break
				}
			}

			syllables[len(syllables)-1] += cluster[:split]
			onset = cluster[split:]
		}
		syllables = append(syllables, onset+segment[nuc.start:nuc.end])
	}

	syllables[len(syllables)-1] += segment[nuclei[len(nuclei)-1].end:]
	return syllables
}
