// Package jobgate implements the submit-time hook policy a cluster workload
// manager invokes on every job submission and job modification. The policy
// runs a fixed chain of mutators over the job descriptor and reports success
// back to the host; the host's own scheduler takes over from there.
package jobgate

import (
	"fmt"

	log "github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/hpcops/jobgate/jobgate/structs"
)

// admissionController is the common surface of mutators and validators.
type admissionController interface {
	Name() string
}

// jobMutator may rewrite fields of the descriptor before it reaches the
// host's scheduler.
type jobMutator interface {
	admissionController
	Mutate(*structs.JobDescriptor) (out *structs.JobDescriptor, warnings []error, err error)
}

// jobValidator inspects the mutated descriptor and may emit warnings. In
// this hook no validator blocks a submission; the host contract is that the
// hook always succeeds.
type jobValidator interface {
	admissionController
	Validate(*structs.JobDescriptor) (warnings []error, err error)
}

// SubmitHook is the contract the host looks up: one method per lifecycle
// point it calls.
type SubmitHook interface {
	OnSubmit(job *structs.JobDescriptor, partitions []*structs.Partition, submitUID uint32) structs.Status
	OnModify(update *structs.JobUpdate, job *structs.JobDescriptor, partitions []*structs.Partition, modifyUID uint32) structs.Status
}

// Policy runs the configured mutator chain at submission time and is a
// deliberate no-op at modification time. It holds no state between calls.
type Policy struct {
	logger     log.Logger
	mutators   []jobMutator
	validators []jobValidator
}

// Config selects which rules the policy applies and how the mail rule fills
// in missing addresses.
type Config struct {
	// MailDomain is appended to the submitter's user name when the job
	// requests no notification address.
	MailDomain string

	// DefaultMail toggles the mail substitution rule.
	DefaultMail bool

	// ExclusiveOnZeroMem toggles forcing exclusive node access for jobs
	// that request no per-node memory minimum.
	ExclusiveOnZeroMem bool
}

// DefaultConfig returns the rule set the hook ships with.
func DefaultConfig() *Config {
	return &Config{
		MailDomain:         "example.edu",
		DefaultMail:        true,
		ExclusiveOnZeroMem: true,
	}
}

// NewPolicy builds a policy with the rule chain selected by config. The
// chain order is fixed: mail substitution first, then exclusivity.
func NewPolicy(config *Config, logger log.Logger) *Policy {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}

	p := &Policy{
		logger: logger.Named("policy"),
	}
	if config.DefaultMail {
		p.mutators = append(p.mutators, jobMailDefaulter{domain: config.MailDomain})
	}
	if config.ExclusiveOnZeroMem {
		p.mutators = append(p.mutators, jobExclusiveMemory{})
	}
	return p
}

// OnSubmit applies the mutator chain to job in place and reports success.
// Rules only ever fill in absent values, so re-running the chain over an
// already-mutated descriptor changes nothing.
func (p *Policy) OnSubmit(job *structs.JobDescriptor, partitions []*structs.Partition, submitUID uint32) structs.Status {
	if job == nil {
		return structs.StatusSuccess
	}

	out, warnings, err := p.applyMutators(job)
	if err != nil {
		// The host contract has no failure path; a broken custom mutator
		// is logged and the descriptor is left as the last good pass
		// produced it.
		p.logger.Error("job mutator failed, accepting job unmodified further",
			"user", job.UserName, "uid", submitUID, "error", err)
		return structs.StatusSuccess
	}
	*job = *out

	if w := p.applyValidators(job); w != nil {
		warnings = append(warnings, w.Errors...)
	}
	for _, w := range warnings {
		p.logger.Warn("job admission warning", "user", job.UserName, "uid", submitUID, "warning", w)
	}
	return structs.StatusSuccess
}

// OnModify performs no mutation and reports success unconditionally. It
// exists because the host requires both lifecycle hooks to resolve.
func (p *Policy) OnModify(update *structs.JobUpdate, job *structs.JobDescriptor, partitions []*structs.Partition, modifyUID uint32) structs.Status {
	return structs.StatusSuccess
}

func (p *Policy) applyMutators(job *structs.JobDescriptor) (_ *structs.JobDescriptor, warnings []error, err error) {
	var w []error
	for _, mutator := range p.mutators {
		job, w, err = mutator.Mutate(job)
		p.logger.Trace("job mutate results", "mutator", mutator.Name(), "warnings", w, "error", err)
		if err != nil {
			return nil, nil, fmt.Errorf("error in job mutator %s: %v", mutator.Name(), err)
		}
		warnings = append(warnings, w...)
	}
	return job, warnings, nil
}

func (p *Policy) applyValidators(origJob *structs.JobDescriptor) *multierror.Error {
	// ensure validators cannot mutate the job
	job := origJob.Copy()

	var warnings *multierror.Error
	for _, validator := range p.validators {
		w, err := validator.Validate(job)
		p.logger.Trace("job validate results", "validator", validator.Name(), "warnings", w, "error", err)
		if err != nil {
			warnings = multierror.Append(warnings, err)
		}
		for _, warning := range w {
			warnings = multierror.Append(warnings, warning)
		}
	}
	return warnings
}
