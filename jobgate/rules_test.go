package jobgate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpcops/jobgate/ci"
	"github.com/hpcops/jobgate/helper/pointer"
	"github.com/hpcops/jobgate/jobgate/structs"
)

func Test_jobMailDefaulter_Mutate(t *testing.T) {
	ci.Parallel(t)

	testCases := []struct {
		inputJob          *structs.JobDescriptor
		expectedOutputJob *structs.JobDescriptor
		name              string
	}{
		{
			inputJob: &structs.JobDescriptor{
				UserName: "alice",
			},
			expectedOutputJob: &structs.JobDescriptor{
				UserName: "alice",
				MailUser: pointer.Of("alice@example.edu"),
			},
			name: "absent mail user gets the default",
		},
		{
			inputJob: &structs.JobDescriptor{
				UserName: "alice",
				MailUser: pointer.Of(""),
			},
			expectedOutputJob: &structs.JobDescriptor{
				UserName: "alice",
				MailUser: pointer.Of("alice@example.edu"),
			},
			name: "empty mail user gets the default",
		},
		{
			inputJob: &structs.JobDescriptor{
				UserName: "bob",
				MailUser: pointer.Of("bob@corp.com"),
			},
			expectedOutputJob: &structs.JobDescriptor{
				UserName: "bob",
				MailUser: pointer.Of("bob@corp.com"),
			},
			name: "existing mail user is untouched",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			impl := jobMailDefaulter{domain: "example.edu"}
			actualJob, actualWarnings, actualError := impl.Mutate(tc.inputJob)
			require.Equal(t, tc.expectedOutputJob, actualJob)
			require.Nil(t, actualWarnings)
			require.NoError(t, actualError)
		})
	}
}

func Test_jobExclusiveMemory_Mutate(t *testing.T) {
	ci.Parallel(t)

	testCases := []struct {
		inputJob          *structs.JobDescriptor
		expectedOutputJob *structs.JobDescriptor
		name              string
	}{
		{
			inputJob: &structs.JobDescriptor{
				UserName:        "alice",
				MinMemPerNodeMB: 0,
				Shared:          structs.JobSharedNone,
			},
			expectedOutputJob: &structs.JobDescriptor{
				UserName:        "alice",
				MinMemPerNodeMB: 0,
				Shared:          structs.JobSharedExclusive,
			},
			name: "zero memory forces exclusive",
		},
		{
			inputJob: &structs.JobDescriptor{
				UserName:        "alice",
				MinMemPerNodeMB: 0,
				Shared:          structs.JobSharedOK,
			},
			expectedOutputJob: &structs.JobDescriptor{
				UserName:        "alice",
				MinMemPerNodeMB: 0,
				Shared:          structs.JobSharedExclusive,
			},
			name: "zero memory overrides a shared request",
		},
		{
			inputJob: &structs.JobDescriptor{
				UserName:        "alice",
				MinMemPerNodeMB: 4096,
				Shared:          structs.JobSharedOK,
			},
			expectedOutputJob: &structs.JobDescriptor{
				UserName:        "alice",
				MinMemPerNodeMB: 4096,
				Shared:          structs.JobSharedOK,
			},
			name: "memory request leaves sharing alone",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			impl := jobExclusiveMemory{}
			actualJob, actualWarnings, actualError := impl.Mutate(tc.inputJob)
			require.Equal(t, tc.expectedOutputJob, actualJob)
			require.Nil(t, actualWarnings)
			require.NoError(t, actualError)
		})
	}
}
