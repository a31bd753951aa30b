package structs

import (
	"testing"

	"github.com/shoenig/test/must"

	"github.com/hpcops/jobgate/ci"
	"github.com/hpcops/jobgate/helper/pointer"
)

func TestJobDescriptor_Copy(t *testing.T) {
	ci.Parallel(t)

	job := &JobDescriptor{
		JobID:           9,
		UserName:        "alice",
		MailUser:        pointer.Of("alice@example.edu"),
		MinMemPerNodeMB: 2048,
		Shared:          JobSharedOK,
	}

	c := job.Copy()
	must.Equal(t, job, c)
	must.True(t, job != c)

	// mutating the copy must not reach the original
	*c.MailUser = "other@example.edu"
	must.Eq(t, "alice@example.edu", *job.MailUser)

	var nilJob *JobDescriptor
	must.Nil(t, nilJob.Copy())
}

func TestJobDescriptor_Equal(t *testing.T) {
	ci.Parallel(t)

	a := &JobDescriptor{UserName: "alice", MailUser: pointer.Of("a@b")}
	b := a.Copy()
	must.True(t, a.Equal(b))

	b.MailUser = nil
	must.False(t, a.Equal(b))

	b = a.Copy()
	b.Shared = JobSharedExclusive
	must.False(t, a.Equal(b))

	var nilJob *JobDescriptor
	must.False(t, a.Equal(nilJob))
	must.True(t, nilJob.Equal(nil))
}

func TestJobDescriptor_MailUserSet(t *testing.T) {
	ci.Parallel(t)

	job := &JobDescriptor{}
	must.False(t, job.MailUserSet())

	job.MailUser = pointer.Of("")
	must.False(t, job.MailUserSet())

	job.MailUser = pointer.Of("alice@example.edu")
	must.True(t, job.MailUserSet())
}

func TestJobUpdate_Copy(t *testing.T) {
	ci.Parallel(t)

	update := &JobUpdate{
		JobID:           4,
		MailUser:        pointer.Of("x@y"),
		MinMemPerNodeMB: pointer.Of(uint64(1024)),
		Shared:          pointer.Of(JobSharedOK),
		TimeLimitMins:   pointer.Of(uint32(30)),
		Comment:         pointer.Of("resize"),
	}

	c := update.Copy()
	must.Equal(t, update, c)

	*c.MinMemPerNodeMB = 0
	must.Eq(t, uint64(1024), *update.MinMemPerNodeMB)
}

func TestStatus_String(t *testing.T) {
	ci.Parallel(t)

	must.Eq(t, "success", StatusSuccess.String())
	must.Eq(t, "error(3)", Status(3).String())
}
