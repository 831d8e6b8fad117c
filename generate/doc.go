// Package generate builds reproducible random transportation instances for
// tests, benchmarks and the command line.
//
// Every quantity and cost is integral, so totals compare exactly and the
// optimum of a generated instance is an integer.
//
// Determinism is explicit: the same seed and options always produce the same
// instance. Seed 0 selects a fixed default seed.
//
// Example:
//
//	d, err := generate.Random(5, 7,
//	    generate.WithSeed(42),
//	    generate.WithImbalance(-10), // demand exceeds supply by 10
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := d.Problem()
package generate
