package api

import "github.com/hpcops/jobgate/jobgate/structs"

// Jobs is used to access the job hook endpoints.
type Jobs struct {
	client *Client
}

// Jobs returns a handle on the job hook endpoints.
func (c *Client) Jobs() *Jobs {
	return &Jobs{client: c}
}

// Submit runs the submission hook over the given descriptor and returns the
// mutated job.
func (j *Jobs) Submit(req *structs.JobSubmitRequest) (*structs.JobSubmitResponse, error) {
	var resp structs.JobSubmitResponse
	if err := j.client.post("/v1/job/submit", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modify runs the modification hook. The update record is echoed back
// untouched.
func (j *Jobs) Modify(req *structs.JobModifyRequest) (*structs.JobModifyResponse, error) {
	var resp structs.JobModifyResponse
	if err := j.client.post("/v1/job/modify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
