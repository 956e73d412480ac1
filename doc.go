// Package typology builds a supervised-learning dataset of language
// typology features from WALS value tables.
//
// # Quick Start
//
//	gen, err := typology.New(wals.Embedded(), typology.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := gen.Write(ctx, "out")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d languages, %d complete\n", res.Dataset.Languages, len(res.Dataset.Profiles))
//
// # Pipeline
//
// The five feature tables (consonant-vowel ratio, case marking, object-verb,
// genitive-noun and adjective-noun order) are parsed and merged into one
// draft per language, keyed by the last three characters of the value
// identifier. Codes that map to a domain's unknown category clear that
// feature. Languages missing any feature are dropped; the rest are shuffled
// and split 67.8% / 8.1% / 24.1% into train, validation and test.
//
// Each subset is written as one text file: a header describing 17 input and
// 12 output columns, then six rows per language. The first row observes every
// feature; each following row hides one feature on the input side only, so a
// model learns to infer a held-out feature from the others.
//
// # Reproducibility
//
// Shuffling is unseeded by default. WithSeed makes output byte-identical
// across runs over the same tables.
package typology
