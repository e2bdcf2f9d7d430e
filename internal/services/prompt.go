package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildFeedbackPrompt creates the resume review prompt. Both inputs are
// embedded verbatim.
func (pb *PromptBuilder) BuildFeedbackPrompt(resume, jobDescription string) string {
	return fmt.Sprintf(`You are an expert career coach and resume reviewer. Your task is to analyze a resume against a job description.

Here is the user's resume:
--- RESUME ---
%s
--- END RESUME ---

Here is the job description:
--- JOB DESCRIPTION ---
%s
--- END JOB DESCRIPTION ---

Please provide the following analysis in clear, easy-to-read markdown format:
1. **Overall Match Score:** Give a percentage score (e.g., 85%%) representing how well the resume matches the job description and briefly explain your reasoning.
2. **Missing Keywords:** Identify crucial keywords and skills from the job description that are missing from the resume.
3. **Suggested Bullet Points:** Rewrite 2-3 bullet points from the user's resume to better align with the language and requirements of the job description.`,
		resume, jobDescription)
}
