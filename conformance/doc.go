// Package conformance checks a backend.NumericBackend against the behavioral
// contract of the densekit kernels: literal results, algebraic properties
// (round trips, symmetry, involution, A·A⁻¹ = I) and the error taxonomy.
//
// A Runner executes independent checks concurrently and reports one Finding
// per check. When configured WithAgainst, it additionally cross-checks every
// kernel against a second backend on the same random inputs.
//
//	rep, err := conformance.New(conformance.WithAgainst(backend.NewReference())).
//		Run(ctx, backend.NewGonum())
//	if err != nil {
//		return err
//	}
//	if !rep.OK() {
//		for _, f := range rep.Failed() {
//			fmt.Println(f.Name, f.Detail)
//		}
//	}
package conformance
