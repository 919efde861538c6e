package ai

import "fmt"

// DefaultSystemPrompt is the system-level instruction for scoring calls.
const DefaultSystemPrompt = `You are an experienced technical recruiter who evaluates resumes against job descriptions. Your principles are:

- Score only from evidence present in the resume; never assume unstated skills or experience
- Be consistent: the same resume and job description must always produce the same assessment
- Keep analysis concrete and tied to the job requirements
- Respond with the exact JSON structure requested, and nothing else`

// scorePromptTemplate is the deterministic user prompt. It embeds the
// candidate name, job description and resume text, states the scoring
// weights explicitly, and pins down the output contract so the validator has
// a fixed key set to work against.
const scorePromptTemplate = `Evaluate the following candidate's resume against the job description.

**Candidate:** %s

**Job Description:**
-----
%s
-----

**Resume:**
-----
%s
-----

**Scoring instructions:**
Score each category from 0 to 100. The overall score is computed as:
overall = skills * 0.5 + experience * 0.3 + education * 0.2

**Output contract:**
Respond with ONLY a single JSON object, no surrounding prose and no markdown fences, using exactly these keys:
{
  "candidate_name": string,
  "skills_score": integer 0-100,
  "experience_score": integer 0-100,
  "education_score": integer 0-100,
  "overall_score": number,
  "skills_analysis": string,
  "experience_analysis": string,
  "education_analysis": string,
  "fit_assessment": string,
  "strengths": [3 strings],
  "weaknesses": [3 strings],
  "recommendation": string containing one of "Strong Yes", "Yes", "Conditional Yes", "Maybe", "No",
  "interview_questions": [6 to 8 strings]
}`

// BuildScorePrompt renders the scoring prompt for one candidate.
func BuildScorePrompt(candidateName, jobDescription, resumeText string) string {
	return fmt.Sprintf(scorePromptTemplate, candidateName, jobDescription, resumeText)
}
