// Package structs contains the records exchanged between the host workload
// manager and the submit-time hooks. The host owns every record: it builds a
// fresh descriptor per submission or modification event, hands it to the hook
// for in-place mutation, and discards it once the call returns.
package structs

import (
	"fmt"

	"github.com/hpcops/jobgate/helper/pointer"
)

// Status is the code a hook hands back to the host. The host treats anything
// other than StatusSuccess as a submission failure, but no rule in this
// package ever produces one.
type Status int

const (
	StatusSuccess Status = 0
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return fmt.Sprintf("error(%d)", int(s))
}

// Values for JobDescriptor.Shared. The host encodes node sharing as a small
// integer; hooks only ever write JobSharedExclusive.
const (
	// JobSharedNone means the submitter expressed no sharing preference.
	JobSharedNone uint16 = 0

	// JobSharedOK means the job tolerates co-scheduling on its nodes.
	JobSharedOK uint16 = 1

	// JobSharedExclusive grants the job sole use of each allocated node.
	JobSharedExclusive uint16 = 2
)

// JobDescriptor describes one job submission request. Fields not interpreted
// by any hook rule are carried so the host sees them back unmodified.
//
// MailUser is a pointer because the host distinguishes "not requested" from
// an explicit address; nil and the empty string both count as unset.
type JobDescriptor struct {
	JobID    uint64  `json:"job_id,omitempty"`
	Name     string  `json:"name,omitempty"`
	UserName string  `json:"user_name"`
	Account  string  `json:"account,omitempty"`
	MailUser *string `json:"mail_user,omitempty"`

	Partition     string `json:"partition,omitempty"`
	CPUsPerTask   uint16 `json:"cpus_per_task,omitempty"`
	TimeLimitMins uint32 `json:"time_limit,omitempty"`

	// MinMemPerNodeMB is the smallest amount of memory, in megabytes, the
	// job will accept on each node. Zero means the submitter asked for no
	// particular amount.
	MinMemPerNodeMB uint64 `json:"min_mem_per_node"`

	// Shared is one of the JobShared* values above.
	Shared uint16 `json:"shared"`

	Comment string `json:"comment,omitempty"`
}

// Copy returns a deep copy of the descriptor.
func (j *JobDescriptor) Copy() *JobDescriptor {
	if j == nil {
		return nil
	}
	nj := *j
	nj.MailUser = pointer.Copy(j.MailUser)
	return &nj
}

// Equal returns true if the two descriptors carry the same values.
func (j *JobDescriptor) Equal(o *JobDescriptor) bool {
	if j == nil || o == nil {
		return j == o
	}
	if j.MailUser != nil || o.MailUser != nil {
		if j.MailUser == nil || o.MailUser == nil || *j.MailUser != *o.MailUser {
			return false
		}
	}
	nj, no := *j, *o
	nj.MailUser = nil
	no.MailUser = nil
	return nj == no
}

// MailUserSet returns true if the submitter supplied a mail address.
func (j *JobDescriptor) MailUserSet() bool {
	return j.MailUser != nil && *j.MailUser != ""
}

// Partition is a named pool of nodes with a shared scheduling policy. The
// host passes its partition table to every hook call; the table is read-only
// context and outlives no call.
type Partition struct {
	Name               string `json:"name"`
	Nodes              uint32 `json:"nodes,omitempty"`
	Default            bool   `json:"default,omitempty"`
	MaxMemPerNodeMB    uint64 `json:"max_mem_per_node,omitempty"`
	DefMemPerNodeMB    uint64 `json:"def_mem_per_node,omitempty"`
	MaxTimeLimitMins   uint32 `json:"max_time,omitempty"`
	AllowExclusiveUse  bool   `json:"allow_exclusive,omitempty"`
	AllowSharedScaling bool   `json:"allow_shared,omitempty"`
}

// JobUpdate is the sparse update record the host passes at
// job-modification time. Unset pointers mean "leave the field alone".
type JobUpdate struct {
	JobID           uint64  `json:"job_id"`
	MailUser        *string `json:"mail_user,omitempty"`
	MinMemPerNodeMB *uint64 `json:"min_mem_per_node,omitempty"`
	Shared          *uint16 `json:"shared,omitempty"`
	TimeLimitMins   *uint32 `json:"time_limit,omitempty"`
	Comment         *string `json:"comment,omitempty"`
}

// Copy returns a deep copy of the update record.
func (r *JobUpdate) Copy() *JobUpdate {
	if r == nil {
		return nil
	}
	nr := *r
	nr.MailUser = pointer.Copy(r.MailUser)
	nr.MinMemPerNodeMB = pointer.Copy(r.MinMemPerNodeMB)
	nr.Shared = pointer.Copy(r.Shared)
	nr.TimeLimitMins = pointer.Copy(r.TimeLimitMins)
	nr.Comment = pointer.Copy(r.Comment)
	return &nr
}

// Equal returns true if the two update records carry the same values.
func (r *JobUpdate) Equal(o *JobUpdate) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.JobID == o.JobID &&
		pointer.Eq(r.MailUser, o.MailUser) &&
		pointer.Eq(r.MinMemPerNodeMB, o.MinMemPerNodeMB) &&
		pointer.Eq(r.Shared, o.Shared) &&
		pointer.Eq(r.TimeLimitMins, o.TimeLimitMins) &&
		pointer.Eq(r.Comment, o.Comment)
}
