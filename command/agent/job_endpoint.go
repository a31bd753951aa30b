package agent

import (
	"net/http"

	uuid "github.com/hashicorp/go-uuid"

	"github.com/hpcops/jobgate/jobgate/structs"
)

func (s *HTTPServer) JobSubmitRequest(resp http.ResponseWriter, req *http.Request) (interface{}, error) {
	if req.Method != http.MethodPost && req.Method != http.MethodPut {
		return nil, CodedError(405, ErrInvalidMethod)
	}

	var args structs.JobSubmitRequest
	if err := decodeBody(req, &args); err != nil {
		return nil, CodedError(400, err.Error())
	}
	if args.Job == nil {
		return nil, CodedError(400, "missing job descriptor")
	}

	evalID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	status := s.agent.Policy().OnSubmit(args.Job, args.Partitions, args.SubmitUID)
	s.logger.Debug("job submit evaluated",
		"eval_id", evalID, "user", args.Job.UserName, "uid", args.SubmitUID, "status", status)

	return &structs.JobSubmitResponse{
		EvalID: evalID,
		Job:    args.Job,
		Status: status,
	}, nil
}

func (s *HTTPServer) JobModifyRequest(resp http.ResponseWriter, req *http.Request) (interface{}, error) {
	if req.Method != http.MethodPost && req.Method != http.MethodPut {
		return nil, CodedError(405, ErrInvalidMethod)
	}

	var args structs.JobModifyRequest
	if err := decodeBody(req, &args); err != nil {
		return nil, CodedError(400, err.Error())
	}
	if args.Update == nil {
		return nil, CodedError(400, "missing job update")
	}

	evalID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	status := s.agent.Policy().OnModify(args.Update, args.Job, args.Partitions, args.ModifyUID)
	s.logger.Debug("job modify evaluated",
		"eval_id", evalID, "job_id", args.Update.JobID, "uid", args.ModifyUID, "status", status)

	return &structs.JobModifyResponse{
		EvalID: evalID,
		Update: args.Update,
		Status: status,
	}, nil
}
