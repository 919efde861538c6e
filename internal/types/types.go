package types

// Sentinel values substituted for missing or invalid data. Downstream
// renderers key off these exact strings.
const (
	UnknownCandidate    = "Unknown Candidate"
	AnalysisUnavailable = "Analysis not available"
)

// Candidate pairs a resume's extracted text with the filename it came from.
type Candidate struct {
	Filename   string `json:"filename"`
	ResumeText string `json:"resumeText"`
}

// EvaluationRecord is the validated result of scoring one resume against a
// job description. Every field is always populated after validation:
// consumers can rely on exactly 3 strengths, 3 weaknesses, 8 interview
// questions, sub-scores in [0,100] and a recommendation containing one of
// the decision tokens.
type EvaluationRecord struct {
	CandidateName      string   `json:"candidate_name"`
	SkillsScore        int      `json:"skills_score"`
	ExperienceScore    int      `json:"experience_score"`
	EducationScore     int      `json:"education_score"`
	OverallScore       float64  `json:"overall_score"`
	SkillsAnalysis     string   `json:"skills_analysis"`
	ExperienceAnalysis string   `json:"experience_analysis"`
	EducationAnalysis  string   `json:"education_analysis"`
	FitAssessment      string   `json:"fit_assessment"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Recommendation     string   `json:"recommendation"`
	InterviewQuestions []string `json:"interview_questions"`
}

// ProgressUpdate reports batch progress after each candidate completes.
type ProgressUpdate struct {
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Candidate string `json:"candidate"`
}

// ProgressFunc is invoked by the batch coordinator after each candidate.
type ProgressFunc func(ProgressUpdate)
