package inference

import "fmt"

// TaskKind selects the contract used for an inference request.
type TaskKind string

const (
	TaskResumeAnalysis   TaskKind = "RESUME_ANALYSIS"
	TaskRoadmap          TaskKind = "ROADMAP"
	TaskSearchParams     TaskKind = "SEARCH_PARAMS"
	TaskLinkedInOptimize TaskKind = "LINKEDIN_OPTIMIZE"
	TaskCodeGenerate     TaskKind = "CODE_GENERATE"
	TaskCodeReview       TaskKind = "CODE_REVIEW"
)

// AllTasks lists every kind with a registered contract.
var AllTasks = []TaskKind{
	TaskResumeAnalysis,
	TaskRoadmap,
	TaskSearchParams,
	TaskLinkedInOptimize,
	TaskCodeGenerate,
	TaskCodeReview,
}

// Context parameter keys understood by the prompt templates.
const (
	ParamTargetRole = "target_role"
	ParamJobTitle   = "job_title"
	ParamLocation   = "location"
	ParamLanguage   = "language"
)

// TaskRequest is built once per invocation and never mutated.
type TaskRequest struct {
	Kind    TaskKind
	Subject string
	params  map[string]string
}

// NewTaskRequest copies params so later changes by the caller are not observed.
func NewTaskRequest(kind TaskKind, subject string, params map[string]string) TaskRequest {
	cp := make(map[string]string, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return TaskRequest{Kind: kind, Subject: subject, params: cp}
}

// Param returns the named context parameter or def when absent or blank.
func (r TaskRequest) Param(key, def string) string {
	if v, ok := r.params[key]; ok && v != "" {
		return v
	}
	return def
}

func (r TaskRequest) String() string {
	return fmt.Sprintf("%s(%d chars)", r.Kind, len(r.Subject))
}
