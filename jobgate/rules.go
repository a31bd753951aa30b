package jobgate

import (
	"fmt"

	"github.com/hpcops/jobgate/helper/pointer"
	"github.com/hpcops/jobgate/jobgate/structs"
)

// jobMailDefaulter fills in the notification address for jobs that did not
// request one, using the submitter's user name at the site mail domain.
type jobMailDefaulter struct {
	domain string
}

func (jobMailDefaulter) Name() string {
	return "default-mail"
}

func (m jobMailDefaulter) Mutate(job *structs.JobDescriptor) (*structs.JobDescriptor, []error, error) {
	if job.MailUserSet() {
		return job, nil, nil
	}
	job.MailUser = pointer.Of(fmt.Sprintf("%s@%s", job.UserName, m.domain))
	return job, nil, nil
}

// jobExclusiveMemory forces exclusive node access for jobs that request no
// per-node memory minimum. A job with no memory floor cannot be co-scheduled
// safely, so it gets whole nodes.
type jobExclusiveMemory struct{}

func (jobExclusiveMemory) Name() string {
	return "exclusive-memory"
}

func (jobExclusiveMemory) Mutate(job *structs.JobDescriptor) (*structs.JobDescriptor, []error, error) {
	if job.MinMemPerNodeMB != 0 {
		return job, nil, nil
	}
	job.Shared = structs.JobSharedExclusive
	return job, nil, nil
}
