package inference

import (
	"fmt"
	"strings"
)

// ── Prompt templates ─────────────────────────────────

const resumeAnalysisPrompt = `You are a strict ATS scanner. Analyze this resume for the role "%s".

RESUME:
%s

Rules:
- Identify exactly 5 keywords the resume is missing for this role.
- Score strictly on a 0-100 integer scale.
- Tip "type" is either "good" or "improve".

Respond with ONLY a JSON object:
{
  "companyName": "Most recent company",
  "jobTitle": "Detected role",
  "overallScore": 0,
  "summary": "Two sentence summary.",
  "headPoints": ["Strength 1", "Strength 2", "Strength 3"],
  "missingKeywords": ["Key1", "Key2", "Key3", "Key4", "Key5"],
  "ATS": {"score": 0, "tips": [{"type": "improve", "tip": "advice"}]},
  "content": {"score": 0, "tips": [{"type": "good", "tip": "advice"}]},
  "structure": {"score": 0, "tips": [{"type": "improve", "tip": "advice"}]},
  "skills": {"score": 0, "tips": [{"type": "improve", "tip": "advice"}]},
  "toneAndStyle": {"score": 0, "tips": [{"type": "good", "tip": "advice"}]}
}`

const roadmapPrompt = `You are a senior career coach for the %s job market. Build a %d-step roadmap for a "%s".

Resume context:
%s

Rules:
- Steps 1-3 cover technical skills in demand locally.
- Step 4 covers salary expectations in local currency.
- Step 5 covers the job search itself (job boards, recruiters).
- Every "description" is exactly 3 sentences. No long paragraphs.

Respond with ONLY a JSON object:
{
  "roadmap": [
    {"step": "Phase 1: Title", "description": "Three sentences.", "resources": ["Resource 1"]}
  ]
}`

const searchParamsPrompt = `Extract the target "job_title" from this resume header:
"%s"

Rules:
- Default "location" to "%s".
- If no job title is present, use "%s".

Respond with ONLY a JSON object: {"job_title": "...", "location": "..."}`

const linkedInPrompt = `Optimize a LinkedIn profile for the person described by this resume:

%s

Respond with ONLY a JSON object:
{
  "headlines": ["Headline 1", "Headline 2", "Headline 3"],
  "about": "100 word professional summary",
  "skills": ["Skill 1", "Skill 2"]
}`

const codeGeneratePrompt = `Act as a technical interviewer.
Generate ONE medium-level %s coding interview problem.

Rules:
1. Output ONLY the problem description.
2. Do NOT include solution code.
3. Use Markdown formatting.

FORMAT:
## [Problem Title]

**Difficulty**: Medium

**Description**:
[Problem description]

**Example Input**:
...
**Example Output**:
...`

const codeReviewPrompt = `You are a senior software engineer reviewing a candidate's solution.

USER CODE:
%s

Rules:
1. Rating: give a strict score from 0 to 100.
2. Bugs: list logic errors and missed edge cases.
3. Solution: provide the corrected, optimized code.

Respond in Markdown:
## Rating: [Score]/100

### Bugs & Issues:
- [Issue]

### Optimized Solution:
` + "```" + `
[Code]
` + "```"

// Defaults applied when a request carries no context parameter.
const (
	DefaultTargetRole = "Software Engineer"
	DefaultLocation   = "India"
	DefaultLanguage   = "JavaScript"
)

func buildResumeAnalysisPrompt(req TaskRequest) string {
	return fmt.Sprintf(resumeAnalysisPrompt, req.Param(ParamTargetRole, DefaultTargetRole), req.Subject)
}

func buildRoadmapPrompt(req TaskRequest) string {
	return fmt.Sprintf(roadmapPrompt,
		req.Param(ParamLocation, DefaultLocation),
		RoadmapSteps,
		req.Param(ParamJobTitle, DefaultTargetRole),
		req.Subject,
	)
}

func buildSearchParamsPrompt(req TaskRequest) string {
	header := strings.ReplaceAll(req.Subject, "\n", " ")
	return fmt.Sprintf(searchParamsPrompt, header, DefaultLocation, DefaultTargetRole)
}

func buildLinkedInPrompt(req TaskRequest) string {
	return fmt.Sprintf(linkedInPrompt, req.Subject)
}

func buildCodeGeneratePrompt(req TaskRequest) string {
	return fmt.Sprintf(codeGeneratePrompt, req.Param(ParamLanguage, DefaultLanguage))
}

func buildCodeReviewPrompt(req TaskRequest) string {
	return fmt.Sprintf(codeReviewPrompt, req.Subject)
}
