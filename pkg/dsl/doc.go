/*
Package dsl provides a fluent Go builder for slide decks.

It produces the same untyped trees a YAML deck decodes to, so decks can be
generated in code, used as test fixtures or served through a memory loader
without any files.

Example usage:

	deck := dsl.New("Capitals")

	deck.Slide().
		Heading("Capitals").
		Radio("Capital of France?", "Paris", "Rome").Score(2).Correct("Paris")

	deck.Slide().
		Box(0.5, 0.25).
		Checkbox("Pick the primes", "2", "4", "5").Correct("2", "5")

	editor, err := easel.FromLoader(ctx, deck.Loader())
*/
package dsl
