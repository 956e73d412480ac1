package domain

import "fmt"

// Category indices, per domain. Unknown is always the last index.
const (
	LowCVR Category = iota
	AverageCVR
	HighCVR
	UnknownCVR
)

const (
	PrefixCase Category = iota
	SuffixCase
	NoCase
	UnknownCase
)

const (
	ObjectVerbOOV Category = iota
	VerbObjectOOV
	UnknownOOV
)

const (
	GenitiveNounOGN Category = iota
	NounGenitiveOGN
	UnknownOGN
)

const (
	AdjectiveNounOAN Category = iota
	NounAdjectiveOAN
	UnknownOAN
)

var all = [Count]*Domain{
	newDomain(ConsonantVowelRatio, "Consonant-Vowel Ratio", "3A", "CVR",
		[]string{"LowCVR", "AverageCVR", "HighCVR", "UnknownCVR"},
		map[string]Category{"9": LowCVR, "10": LowCVR, "11": AverageCVR, "12": HighCVR, "13": HighCVR}),
	newDomain(Case, "Case Marking", "51A", "Case",
		[]string{"PrefixCase", "SuffixCase", "NoCase", "UnknownCase"},
		map[string]Category{"255": PrefixCase, "260": PrefixCase, "254": SuffixCase, "259": SuffixCase, "262": NoCase}),
	newDomain(ObjectVerb, "Object-Verb Order", "83A", "OOV",
		[]string{"ObjectVerbOOV", "VerbObjectOOV", "UnknownOOV"},
		map[string]Category{"393": ObjectVerbOOV, "394": VerbObjectOOV}),
	newDomain(GenitiveNoun, "Genitive-Noun Order", "86A", "OGN",
		[]string{"GenitiveNounOGN", "NounGenitiveOGN", "UnknownOGN"},
		map[string]Category{"407": GenitiveNounOGN, "408": NounGenitiveOGN}),
	newDomain(AdjectiveNoun, "Adjective-Noun Order", "87A", "OAN",
		[]string{"AdjectiveNounOAN", "NounAdjectiveOAN", "UnknownOAN"},
		map[string]Category{"410": AdjectiveNounOAN, "411": NounAdjectiveOAN}),
}

// All returns the five domains in column order.
func All() []*Domain {
	return all[:]
}

// Get returns the domain with the given ID. It panics on an out-of-range ID.
func Get(id ID) *Domain {
	return all[id]
}

// InputWidth is the summed arity of all domains (17).
func InputWidth() int {
	n := 0
	for _, d := range all {
		n += d.Arity()
	}
	return n
}

// OutputWidth is the summed collapsed arity of all domains (12).
func OutputWidth() int {
	n := 0
	for _, d := range all {
		n += d.Arity() - 1
	}
	return n
}

// String returns the domain name for id.
func (id ID) String() string {
	if id < 0 || int(id) >= Count {
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return all[id].name
}
