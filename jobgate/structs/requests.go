package structs

// JobSubmitRequest is the body of a submit hook call from the host.
type JobSubmitRequest struct {
	Job        *JobDescriptor `json:"job"`
	Partitions []*Partition   `json:"partitions"`
	SubmitUID  uint32         `json:"submit_uid"`
}

// JobSubmitResponse returns the mutated descriptor and the hook status.
// Status is always StatusSuccess.
type JobSubmitResponse struct {
	EvalID string         `json:"eval_id"`
	Job    *JobDescriptor `json:"job"`
	Status Status         `json:"status"`
}

// JobModifyRequest is the body of a modify hook call from the host. Job is
// the existing job record the update applies to.
type JobModifyRequest struct {
	Update     *JobUpdate     `json:"update"`
	Job        *JobDescriptor `json:"job"`
	Partitions []*Partition   `json:"partitions"`
	ModifyUID  uint32         `json:"modify_uid"`
}

// JobModifyResponse echoes the update record back untouched.
type JobModifyResponse struct {
	EvalID string     `json:"eval_id"`
	Update *JobUpdate `json:"update"`
	Status Status     `json:"status"`
}
