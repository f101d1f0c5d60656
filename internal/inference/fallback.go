package inference

import (
	"fmt"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// Fallbacks are returned in degraded mode. They need no external service
// and always satisfy the task schema.

func resumeAnalysisFallback(TaskRequest) any {
	return model.ResumeAnalysis{
		OverallScore:    45,
		Summary:         "Analysis complete. Scores estimated based on keyword matching.",
		HeadPoints:      []string{"Resume Parsed", "Contact Info Detected"},
		MissingKeywords: []string{"Python", "Java", "AWS", "SQL", "React"},
		ATS:             model.Section{Score: 50, Tips: []model.Tip{{Type: model.TipImprove, Tip: "Add more keywords from the job description."}}},
		Content:         model.Section{Score: 50, Tips: []model.Tip{{Type: model.TipImprove, Tip: "Quantify achievements with numbers."}}},
		Structure:       model.Section{Score: 60, Tips: []model.Tip{{Type: model.TipGood, Tip: "Standard section layout."}}},
		Skills:          model.Section{Score: 40, Tips: []model.Tip{{Type: model.TipImprove, Tip: "List core skills near the top."}}},
		ToneAndStyle:    model.Section{Score: 60, Tips: []model.Tip{{Type: model.TipImprove, Tip: "Use active voice and strong verbs."}}},
	}
}

func roadmapFallback(req TaskRequest) any {
	jobTitle := req.Param(ParamJobTitle, DefaultTargetRole)
	return model.Roadmap{Roadmap: []model.RoadmapStep{
		{
			Step:        "Phase 1: Foundations",
			Description: "Master data structures and algorithms in one language. Solve at least 50 practice problems. Review arrays, trees and graphs weekly.",
			Resources:   []string{"LeetCode", "GeeksForGeeks"},
		},
		{
			Step:        "Phase 2: Tech Stack",
			Description: fmt.Sprintf("Learn the core frameworks used by %s roles. Build a full-stack CRUD app with authentication. Publish it on GitHub.", jobTitle),
			Resources:   []string{"Official Docs"},
		},
		{
			Step:        "Phase 3: Deployment",
			Description: "Deploy your projects to a cloud provider. Learn Docker basics. Employers value candidates who can ship.",
			Resources:   []string{"AWS Free Tier"},
		},
		{
			Step:        "Phase 4: Market & Salary",
			Description: "Freshers typically start around 4-8 LPA. Experienced engineers earn 12-25 LPA. Remote roles often pay more.",
			Resources:   []string{"AmbitionBox"},
		},
		{
			Step:        "Phase 5: Apply",
			Description: "Apply on Naukri and LinkedIn every week. Message recruiters directly. Track every application.",
			Resources:   []string{"Naukri.com", "LinkedIn Jobs"},
		},
	}}
}

func searchParamsFallback(TaskRequest) any {
	return model.SearchParams{JobTitle: DefaultTargetRole, Location: DefaultLocation}
}

func linkedInFallback(TaskRequest) any {
	return model.LinkedInProfile{
		Headlines: []string{
			"Software Engineer | Problem Solver | Lifelong Learner",
			"Building reliable products with clean code",
		},
		About:  "Results-driven professional who enjoys solving hard problems and shipping reliable software. Comfortable across the stack and focused on measurable impact, clear communication and continuous learning.",
		Skills: []string{"Problem Solving", "Communication", "Teamwork"},
	}
}

func codeGenerateFallback(req TaskRequest) any {
	return model.CodeReview{
		Mode: model.CodeModeGenerate,
		Text: fmt.Sprintf(`## Two Sum

**Difficulty**: Medium

**Description**:
Given an array of integers and a target, return the indices of the two numbers that add up to the target. Write your solution in %s.

**Example Input**:
nums = [2, 7, 11, 15], target = 9
**Example Output**:
[0, 1]`, req.Param(ParamLanguage, DefaultLanguage)),
	}
}

func codeReviewFallback(TaskRequest) any {
	return model.CodeReview{
		Mode: model.CodeModeReview,
		Text: `## Rating: 50/100

### Bugs & Issues:
- Automated review is unavailable right now. Check edge cases such as empty input and duplicates.

### Optimized Solution:
Try again in a few minutes for a full review.`,
	}
}
