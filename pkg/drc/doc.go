// Package drc provides the design rule check framework: providers, their
// registry, the violation reporter with per-kind limits, and the engine that
// drives a check run.
//
// # Architecture
//
//  1. Providers (pkg/drc/providers/...): implement [Provider] and report
//     violations through a [Pass].
//  2. Registry: an explicit [Registry] object the host fills at startup.
//     There is no global registry and no init() registration.
//  3. Engine: snapshots the board, creates a fresh pass per run and runs
//     every enabled provider.
//
// # Registering Providers
//
//	reg := drc.NewRegistry()
//	providers.RegisterAll(reg)
//
//	engine := drc.NewEngine(reg, drc.Config{
//		ErrorLimits: map[drc.ErrorCode]int{drc.CodeOverlappingFootprints: 10},
//		Logger:      logger,
//	})
//	result, err := engine.Run(ctx, b)
//
// # Error Limits
//
// Every call site asks [Pass.IsErrorLimitExceeded] before it builds a
// violation, and [Pass.Report] answers with a [LoopControl] telling the
// provider whether to keep going. A limit of zero means unlimited. Kinds
// whose severity is [SeverityIgnore] count as exceeded and are never built.
//
// # Writing a Provider
//
//	type myProvider struct{}
//
//	func (myProvider) Name() string        { return "my_check" }
//	func (myProvider) Description() string { return "Tests something" }
//	func (myProvider) MatchingConstraints() []drc.ConstraintType { return nil }
//
//	func (myProvider) Run(ctx context.Context, pass *drc.Pass) bool {
//		for _, fp := range pass.Footprints() {
//			if pass.IsErrorLimitExceeded(drc.CodeMissingCourtyard) {
//				break
//			}
//			v := pass.Create(drc.CodeMissingCourtyard)
//			v.SetItems(fp)
//			pass.Report(v, fp.Position)
//		}
//		return true
//	}
package drc
