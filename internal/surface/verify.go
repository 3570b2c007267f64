package surface

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var errNilModule = errors.New("loader returned no module")

// Result is the outcome of one descriptor check. Err is nil on success.
type Result struct {
	Descriptor Descriptor
	Symbol     *Symbol
	Err        error
}

func (r Result) Passed() bool { return r.Err == nil }

// Report collects the results for one module. When the module failed to
// load, LoadErr is set and every result carries that same error.
type Report struct {
	Module  string
	Loader  string
	Results []Result
	LoadErr *ModuleLoadError
}

// Passed reports whether the module loaded and every check succeeded.
func (r *Report) Passed() bool {
	if r.LoadErr != nil {
		return false
	}
	for _, res := range r.Results {
		if !res.Passed() {
			return false
		}
	}
	return true
}

// Counts returns the number of passing and failing checks.
func (r *Report) Counts() (passed, failed int) {
	for _, res := range r.Results {
		if res.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Errors returns one error per distinct failure. A load failure is returned
// once rather than once per descriptor.
func (r *Report) Errors() []error {
	if r.LoadErr != nil {
		return []error{r.LoadErr}
	}
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errs
}

// Verifier runs descriptor checks against modules produced by a Loader.
type Verifier struct {
	loader Loader
	log    *zerolog.Logger
}

func NewVerifier(loader Loader, log *zerolog.Logger) *Verifier {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Verifier{loader: loader, log: log}
}

// Verify loads ref once and checks every descriptor against it. A failing
// descriptor does not stop evaluation of the others.
func (v *Verifier) Verify(ctx context.Context, ref string, descs []Descriptor) *Report {
	report := &Report{
		Module:  ref,
		Loader:  v.loader.Name(),
		Results: make([]Result, 0, len(descs)),
	}

	mod, err := v.loader.Load(ctx, ref)
	if err == nil && mod == nil {
		err = errNilModule
	}
	if err != nil {
		report.LoadErr = &ModuleLoadError{Module: ref, Err: err}
		v.log.Error().Str("module", ref).Str("loader", report.Loader).Err(err).Msg("module load failed")
		for _, d := range descs {
			report.Results = append(report.Results, Result{Descriptor: d, Err: report.LoadErr})
		}
		return report
	}

	for _, d := range descs {
		res := Check(mod, d)
		if res.Err != nil {
			v.log.Warn().Str("module", ref).Str("symbol", d.Name).Err(res.Err).Msg("check failed")
		} else {
			v.log.Debug().Str("module", ref).Str("symbol", d.Name).Str("kind", d.Kind.String()).Msg("check passed")
		}
		report.Results = append(report.Results, res)
	}
	v.log.Info().Str("module", ref).Bool("passed", report.Passed()).Int("checks", len(descs)).Msg("verified")
	return report
}

// Check evaluates a single descriptor against mod. It has no side effects,
// so repeated calls against an unchanged module return the same result.
func Check(mod Module, d Descriptor) Result {
	res := Result{Descriptor: d}
	if mod == nil {
		res.Err = &ModuleLoadError{Err: errNilModule}
		return res
	}

	sym, ok := mod.Resolve(d.Name)
	if !ok {
		res.Err = &MissingSymbolError{Module: mod.Path(), Name: d.Name}
		return res
	}
	res.Symbol = &sym

	if d.Kind == KindFunction && !sym.Invocable {
		res.Err = &NotInvocableError{Module: mod.Path(), Name: d.Name, Type: sym.Type}
		return res
	}

	if d.Predicate != nil && !d.Predicate.Apply(sym) {
		typ := sym.Type
		if sym.Decl == "type" {
			typ = "type " + typ
		}
		res.Err = &PredicateFailedError{
			Module:    mod.Path(),
			Name:      d.Name,
			Predicate: d.Predicate.Name,
			Type:      typ,
		}
	}
	return res
}

// Job is one module to verify as part of VerifyAll.
type Job struct {
	Ref         string
	Loader      Loader
	Descriptors []Descriptor
}

// VerifyAll verifies jobs concurrently, at most limit at a time (no limit
// when limit <= 0). Reports are returned in job order. The only error is the
// context's.
func VerifyAll(ctx context.Context, jobs []Job, limit int, log *zerolog.Logger) ([]*Report, error) {
	reports := make([]*Report, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = NewVerifier(job.Loader, log).Verify(ctx, job.Ref, job.Descriptors)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
