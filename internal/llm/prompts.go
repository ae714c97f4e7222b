package llm

import (
	"fmt"
	"strings"
)

// 职位描述解析的系统提示词
const SystemJobParse = `You are an expert job description analyzer. Your task is to extract structured information from job postings.

Always respond with valid JSON only, no other text. Use this exact structure:
{
    "job_title": "string",
    "company": "string or null if not mentioned",
    "location": "string or null",
    "remote_policy": "remote | hybrid | onsite | not_specified",
    "experience_years": {
        "min": number or null,
        "max": number or null
    },
    "salary_range": {
        "min": number or null,
        "max": number or null,
        "currency": "string or null"
    },
    "required_skills": [
        {
            "skill": "string",
            "importance": "must_have | preferred",
            "category": "technical | soft | domain"
        }
    ],
    "education": {
        "degree_level": "high_school | bachelors | masters | phd | not_specified",
        "fields": ["string"],
        "required": boolean
    },
    "responsibilities": ["string"],
    "benefits": ["string"],
    "keywords": ["string - important terms that should appear in a resume"],
    "red_flags": ["string - any concerning aspects of the job"],
    "summary": "2-3 sentence summary of ideal candidate"
}`

// 简历解析的系统提示词
const SystemResumeParse = `You are an expert resume analyzer. Your task is to extract structured information from resumes.

Always respond with valid JSON only, no other text. Use this exact structure:
{
    "name": "string",
    "email": "string or null",
    "phone": "string or null",
    "location": "string or null",
    "linkedin": "string or null",
    "summary": "string - professional summary if present",
    "total_experience_years": number,
    "skills": [
        {
            "skill": "string",
            "proficiency": "beginner | intermediate | advanced | expert",
            "category": "technical | soft | domain"
        }
    ],
    "experience": [
        {
            "company": "string",
            "title": "string",
            "start_date": "string",
            "end_date": "string or 'Present'",
            "duration_months": number,
            "responsibilities": ["string"],
            "achievements": ["string - quantified achievements with numbers"],
            "skills_used": ["string"]
        }
    ],
    "education": [
        {
            "institution": "string",
            "degree": "string",
            "field": "string",
            "graduation_year": number or null,
            "gpa": number or null
        }
    ],
    "certifications": ["string"],
    "keywords": ["string - important terms present in resume"]
}`

// 简历与职位匹配分析的系统提示词
const SystemMatch = `You are an expert ATS (Applicant Tracking System) analyst and career coach. Your job is to help candidates pass automated screening AND impress human recruiters in their 6-10 second initial scan.

CRITICAL CONTEXT:
- 70-75% of resumes are filtered out by ATS before a human sees them
- ATS systems score resumes based on keyword matches to job descriptions
- Recruiters spend only 6-10 seconds on initial review
- Mirroring the EXACT language from job postings dramatically improves match rates

Always respond with valid JSON only, no other text. Use this exact structure:
{
    "overall_match_score": number (0-100),
    "ats_optimization": {
        "estimated_ats_score": number (0-100, how likely to pass ATS screening),
        "keyword_match_rate": number (percentage of job keywords found in resume),
        "critical_missing_keywords": ["string - MUST-HAVE keywords from job that are missing"],
        "keyword_variations_needed": [
            {
                "job_uses": "string - exact phrase from job posting",
                "resume_has": "string - what resume says instead (or 'missing')",
                "recommendation": "string - use exact job phrase"
            }
        ],
        "ats_warnings": ["string - format issues that may cause ATS problems"]
    },
    "recruiter_scan": {
        "first_impression": "string - what stands out in 6 seconds",
        "immediate_strengths": ["string - things that immediately signal 'strong fit'"],
        "immediate_concerns": ["string - red flags visible in quick scan"],
        "headline_suggestion": "string - a powerful 1-line summary for top of resume"
    },
    "recommendation": "strong_match | good_match | needs_work | not_recommended",
    "matching_skills": [
        {
            "skill": "string",
            "job_requirement": "must_have | preferred",
            "resume_evidence": "string - where this appears in resume",
            "keyword_match": "exact | partial | implied"
        }
    ],
    "missing_skills": [
        {
            "skill": "string",
            "importance": "must_have | preferred",
            "suggestion": "string - specific way to add this to resume",
            "where_to_add": "string - which section/bullet to modify"
        }
    ],
    "experience_match": {
        "meets_requirements": boolean,
        "years_required": number or null,
        "years_candidate_has": number,
        "relevant_roles": ["string - job titles that are relevant"],
        "experience_gap_strategy": "string - how to address any gaps"
    },
    "education_match": {
        "meets_requirements": boolean,
        "notes": "string"
    },
    "keyword_analysis": {
        "total_job_keywords": number,
        "keywords_found": number,
        "match_percentage": number,
        "present_keywords": ["string - job keywords found in resume (exact matches)"],
        "partial_matches": ["string - similar terms that should be made exact"],
        "missing_keywords": ["string - important keywords to add"],
        "keyword_density_issues": ["string - keywords that should appear more often"]
    },
    "bullet_point_rewrites": [
        {
            "original": "string - current bullet point from resume",
            "rewritten": "string - improved version with job keywords and metrics",
            "keywords_added": ["string - which job keywords this adds"],
            "priority": "high | medium | low"
        }
    ],
    "resume_improvements": [
        {
            "section": "string",
            "current": "string - what's there now (brief)",
            "suggestion": "string - specific improvement with exact wording",
            "impact": "string - why this matters for ATS/recruiter",
            "priority": "high | medium | low"
        }
    ],
    "talking_points": ["string - strengths to emphasize in cover letter/interview"],
    "concerns": ["string - potential objections employer might have"],
    "quick_wins": [
        {
            "action": "string - specific 1-minute fix",
            "impact": "high | medium",
            "example": "string - exact before/after text"
        }
    ],
    "ats_pass_likelihood": {
        "score": "number 0-100",
        "verdict": "likely_pass | borderline | likely_fail",
        "reasoning": "string - why this score"
    },
    "application_strategy": {
        "match_level": "string - honest assessment of fit",
        "should_apply": boolean,
        "application_tips": ["string - specific advice for this application"],
        "networking_angle": "string - how to find a referral or connection"
    },
    "summary": "3-4 sentence overall assessment focusing on ATS likelihood and key actions"
}

IMPORTANT GUIDELINES:
1. For keyword_variations_needed, find cases where the resume uses different terminology than the job posting
2. For bullet_point_rewrites, provide 2-4 specific rewrites with EXACT before/after text
3. For quick_wins, identify 3-5 changes that take <1 minute but significantly improve ATS match
4. For ats_pass_likelihood, be realistic: most unoptimized resumes score 30-50%
5. Be brutally specific - vague advice like "add more keywords" doesn't help
6. Include EXACT phrases from the job posting that should appear in the resume

The estimated_ats_score should reflect realistic keyword matching:
- 0-30%: Missing most critical keywords, likely auto-rejected
- 31-50%: Some matches but key terms missing, borderline
- 51-70%: Good keyword coverage, likely passes ATS
- 71-85%: Strong match, high chance of human review
- 86-100%: Excellent match, optimized for this specific role`

// 面试问题生成的系统提示词
const SystemInterviewQuestions = `You are an experienced hiring manager and interview coach. Generate likely interview questions for a candidate.

Return valid JSON only - a list of question objects:
[
    {
        "question": "string",
        "type": "behavioral | technical | situational | background",
        "why_asked": "string - why interviewer asks this",
        "answer_tips": "string - how candidate should approach this",
        "relevant_experience": "string or null - specific resume item to reference"
    }
]

Generate 10 questions covering different types.`

// 简历改写的系统提示词
const SystemResumeRewrite = `You are an expert resume writer. Your task is to rewrite a resume to better match a specific job posting.

Rules:
- Keep the same person's real experience and education - DO NOT invent new jobs or degrees
- Reword bullet points to better highlight relevant skills
- Add keywords naturally where they fit the person's actual experience
- Improve the summary/objective to target this specific role
- Reorganize sections to put most relevant experience first
- Use strong action verbs and quantify achievements where possible
- Keep the format clean and professional
- Output ONLY the resume text, no commentary

The goal is to present the same person's real background in the best possible light for THIS specific job.`

// 求职信语气说明
var coverLetterTones = map[string]string{
	"professional":   "Confident and direct. Shows authority without arrogance.",
	"enthusiastic":   "Energetic but focused. Passionate yet professional.",
	"conversational": "Warm and personable. Professional with personality.",
}

// SystemCoverLetter 构造求职信生成的系统提示词
func SystemCoverLetter(tone string) string {
	instruction, ok := coverLetterTones[tone]
	if !ok {
		instruction = coverLetterTones["professional"]
	}

	return fmt.Sprintf(`You are an expert cover letter writer using the PROBLEM-SOLUTION format -
the highest-performing cover letter approach based on analysis of 80+ hiring studies.

=== THE PROBLEM-SOLUTION FORMAT (3 paragraphs, 150-250 words TOTAL) ===

**PARAGRAPH 1 - HOOK + THEIR PROBLEM (2-3 sentences)**
- Open with company-specific detail (product, challenge, growth, news)
- Identify a problem or need implicit in the job posting
- Position yourself as the solution in ONE sentence
- NEVER: "I am writing to apply..." or "I am excited about..."

**PARAGRAPH 2 - YOUR SOLUTION + PROOF (3-4 sentences)**
- State how you solve their problem
- ONE achievement using STAR method with NUMBERS
- Use EXACT terminology from job posting
- Make the connection explicit ("Your need for X aligns directly with my experience...")

**PARAGRAPH 3 - CLOSE (2-3 sentences)**
- Brief reference to company mission/values (specific, not generic)
- Confident request for conversation
- End with "Sincerely," and name

=== CRITICAL RULES ===
1. 150-250 WORDS MAXIMUM - shorter is better, every word must earn its place
2. PROBLEM-SOLUTION: What do they need? -> How do you solve it? -> Proof you've done it
3. MIRROR EXACT PHRASES from job posting (ATS scans cover letters too)
4. ONE achievement with NUMBERS - quality over quantity
5. NO CLICHES: team player, passionate, excited, hard worker, dynamic, go-getter
6. NO BEGGING: confident, not desperate
7. COMPANY-SPECIFIC: If you could send this to any company, it's too generic

=== TONE ===
%s

=== OUTPUT ===
Write ONLY the cover letter. Start directly with paragraph 1. No headers or explanations.
End with:
Sincerely,
[Full Name]`, instruction)
}

// BuildJobParsePrompt 构造职位描述解析的用户消息
func BuildJobParsePrompt(jobText string) string {
	return fmt.Sprintf(`Analyze this job description and extract all relevant information:

---
%s
---

Return only valid JSON.`, jobText)
}

// BuildResumeParsePrompt 构造简历解析的用户消息
func BuildResumeParsePrompt(resumeText string) string {
	return fmt.Sprintf(`Analyze this resume and extract all relevant information:

---
%s
---

Return only valid JSON.`, resumeText)
}

// BuildMatchPrompt 构造匹配分析的用户消息
// jobJSON和resumeJSON为已解析数据的JSON文本
func BuildMatchPrompt(jobJSON, resumeJSON string) string {
	return fmt.Sprintf(`Analyze this resume against this job posting for ATS optimization and recruiter appeal:

JOB POSTING:
%s

CANDIDATE RESUME:
%s

Provide comprehensive analysis focusing on:
1. Will this pass ATS screening? Calculate exact keyword match percentage
2. What will a recruiter notice in their 6-second scan?
3. Specific bullet point rewrites with EXACT before/after text
4. 3-5 QUICK WINS: specific 1-minute changes that boost ATS score
5. Honest assessment: is this a strong, weak, or borderline match?

Return only valid JSON.`, jobJSON, resumeJSON)
}

// CoverLetterInput 求职信生成所需的候选人与职位信息
type CoverLetterInput struct {
	JobTitle         string   // 职位名称
	Company          string   // 公司名称
	RequiredSkills   []string // 职位关键要求
	Responsibilities []string // 主要职责
	CandidateName    string   // 候选人姓名
	CurrentTitle     string   // 当前职位
	CurrentCompany   string   // 当前公司
	ExperienceYears  string   // 工作年限
	KeyAchievement   string   // 关键成就
	RelevantSkills   []string // 相关技能
	MissingKeywords  []string // 需要补充的关键词
}

// BuildCoverLetterPrompt 构造求职信生成的用户消息
func BuildCoverLetterPrompt(in CoverLetterInput) string {
	company := in.Company
	if company == "" {
		company = "the company"
	}
	title := in.JobTitle
	if title == "" {
		title = "Position"
	}
	name := in.CandidateName
	if name == "" {
		name = "Candidate"
	}
	years := in.ExperienceYears
	if years == "" {
		years = "Several"
	}
	achievement := in.KeyAchievement
	if achievement == "" {
		achievement = "Strong track record of delivery"
	}

	requirements := bulletList(in.RequiredSkills, "See job description")
	responsibilities := bulletList(in.Responsibilities, "See job description")
	skills := strings.Join(in.RelevantSkills, ", ")
	if skills == "" {
		skills = "See resume"
	}
	missing := strings.Join(in.MissingKeywords, ", ")
	if missing == "" {
		missing = "Use job posting terminology"
	}

	return fmt.Sprintf(`Write a PROBLEM-SOLUTION cover letter (150-250 words) for this application:

=== TARGET JOB ===
Position: %s
Company: %s

Key Requirements (USE THESE EXACT PHRASES):
%s

Main Responsibilities:
%s

=== CANDIDATE ===
Name: %s
Current Role: %s at %s
Experience: %s years

Key Achievement (use STAR format with numbers):
%s

Relevant Skills: %s

MISSING KEYWORDS TO INCORPORATE:
%s

=== TASK ===
Write a 150-250 word cover letter using the Problem-Solution format:
1. What problem does %s face? (hint: look at responsibilities)
2. How do you solve it? (connect your experience directly)
3. Prove it with ONE numbered achievement

End with:
Sincerely,
%s

Write the cover letter now (150-250 words):`,
		title, company, requirements, responsibilities,
		name, valueOr(in.CurrentTitle, "Professional"), valueOr(in.CurrentCompany, "Previous Company"),
		years, achievement, skills, missing, company, name)
}

// InterviewInput 面试问题生成所需的信息
type InterviewInput struct {
	JobTitle        string   // 职位名称
	Company         string   // 公司名称
	RequiredSkills  []string // 职位关键技能
	CurrentTitle    string   // 候选人当前职位
	ExperienceYears float64  // 候选人工作年限
	CandidateSkills []string // 候选人技能
}

// BuildInterviewPrompt 构造面试问题生成的用户消息
func BuildInterviewPrompt(in InterviewInput) string {
	return fmt.Sprintf(`Generate interview questions for:

JOB: %s at %s
Key Skills Required: %s

CANDIDATE:
Current Role: %s
Years Experience: %g
Key Skills: %s

Return only the JSON array.`,
		valueOr(in.JobTitle, "Position"), valueOr(in.Company, "Company"),
		strings.Join(in.RequiredSkills, ", "),
		valueOr(in.CurrentTitle, "N/A"), in.ExperienceYears,
		strings.Join(in.CandidateSkills, ", "))
}

// BuildResumeRewritePrompt 构造简历改写的用户消息
func BuildResumeRewritePrompt(resumeText, jobText string, improvements, keywords []string) string {
	improvementsText := "None selected"
	if len(improvements) > 0 {
		var b strings.Builder
		for i, imp := range improvements {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- " + imp)
		}
		improvementsText = b.String()
	}
	keywordsText := "None selected"
	if len(keywords) > 0 {
		keywordsText = strings.Join(keywords, ", ")
	}

	return fmt.Sprintf(`Rewrite this resume to better match the job posting.

ORIGINAL RESUME:
%s

JOB POSTING:
%s

IMPROVEMENTS TO INCORPORATE:
%s

KEYWORDS TO INCLUDE (where they naturally fit):
%s

Generate the improved resume now. Output only the resume text.`,
		resumeText, jobText, improvementsText, keywordsText)
}

// CleanJSONResponse 清理模型返回文本里的markdown代码块标记
// 模型偶尔会把JSON包在代码块里
func CleanJSONResponse(s string) string {
	cleaned := strings.TrimSpace(s)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	}
	if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[3:]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-3]
	}
	return strings.TrimSpace(cleaned)
}

// bulletList 把条目列表渲染为项目符号文本
func bulletList(items []string, fallback string) string {
	if len(items) == 0 {
		return "- " + fallback
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + item)
	}
	return b.String()
}

// valueOr 返回非空值，为空时返回默认值
func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
