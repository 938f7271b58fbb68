package openai

import (
	"strings"

	"screener-backend/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const systemPrompt = `You are an expert HR professional and recruiter with 15+ years of experience screening job applicants.

Your task is to evaluate job applicants based on their resume, cover letter, and academic transcript. You should assess:

1. **Resume Quality** (0-100):
   - Relevant work experience and internships
   - Skills alignment with typical entry-level professional roles
   - Leadership and extracurricular activities
   - Professionalism and presentation
   - Clear career progression or growth

2. **Cover Letter Quality** (0-100):
   - Writing quality and professionalism
   - Genuine interest and enthusiasm
   - Company research and fit
   - Clear communication skills
   - Specific examples and achievements

3. **Academic Transcript** (0-100):
   - GPA (consider 3.5+ as strong, 3.0-3.5 as good, below 3.0 as concern)
   - Relevant coursework for business/professional roles
   - Consistency of performance
   - Academic rigor and challenging courses
   - Upward or stable trend in grades

4. **Overall Assessment**:
   - Synthesize all factors into an overall score (0-100), weighting resume roughly 40%, cover letter 30%, transcript 30%
   - Identify key strengths and weaknesses
   - Provide clear reasoning for your decision
   - Recommend whether this candidate should be interviewed
   - Assess your confidence level (high/medium/low)

Be thorough, fair, and objective. Consider that this is for entry-level positions targeting recent undergraduates.

You MUST respond in valid JSON format with this exact structure:
{
  "overall_score": <number 0-100>,
  "resume_score": <number 0-100 or null>,
  "cover_letter_score": <number 0-100 or null>,
  "transcript_score": <number 0-100 or null>,
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "weaknesses": ["weakness 1", "weakness 2"],
  "reasoning": "detailed explanation of scoring decision",
  "recommended_for_interview": <true or false>,
  "confidence_level": "high" | "medium" | "low"
}`

// BuildPrompt creates the chat messages for a screening request. Document
// texts are truncated to their per-class character budgets here so every
// caller sees the same calibration.
func BuildPrompt(input llm.Input) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(input)},
	}
}

func buildUserPrompt(input llm.Input) string {
	var b strings.Builder
	b.WriteString("Please evaluate this job applicant:\n")

	if strings.TrimSpace(input.Position) != "" {
		b.WriteString("**POSITION APPLIED FOR:**\n")
		b.WriteString(input.Position)
		b.WriteString("\n\n")
	}

	writeSection(&b, "RESUME", input.ResumeText, llm.MaxResumeChars)
	writeSection(&b, "COVER LETTER", input.CoverLetterText, llm.MaxCoverLetterChars)
	writeSection(&b, "TRANSCRIPT", input.TranscriptText, llm.MaxTranscriptChars)

	b.WriteString("Provide a comprehensive evaluation in the JSON format specified in the system prompt.")
	return b.String()
}

func writeSection(b *strings.Builder, label, text string, limit int) {
	if strings.TrimSpace(text) == "" {
		b.WriteString("**" + label + ":** Not provided\n\n")
		return
	}
	b.WriteString("**" + label + ":**\n")
	b.WriteString(llm.Truncate(text, limit))
	b.WriteString("\n\n")
}
