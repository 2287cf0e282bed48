// Package domain contains the testbench model for yaaade: components, power
// domains, library includes, simulation directives and the results of a run.
//
// The domain is simulator- and persistence-agnostic: it does not depend on YAML
// parsing, subprocesses, or the filesystem. Backend syntax differences are
// resolved through a Dialect; infra/adapters map into/from these types.
package domain
