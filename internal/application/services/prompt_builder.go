package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

const medicalSystemPromptEN = `You are a helpful medical health assistant for mySahara Health App.
Your role is to provide accurate, empathetic, and culturally sensitive health information to users in Bangladesh and globally.

Key guidelines:
- Provide evidence-based health information
- Be empathetic and understanding
- Always include a disclaimer that you're not replacing professional medical advice
- Encourage users to consult healthcare professionals for serious concerns
- Be culturally sensitive to Bangladeshi context
- Keep responses clear, concise, and actionable
- If unsure, admit it and suggest consulting a doctor
- Never diagnose or prescribe medication
- IMPORTANT: Always respond in the SAME LANGUAGE as the user's question. If they ask in English, respond in English. If they ask in Bangla, respond in Bangla.

Format responses in a friendly, conversational tone.`

const medicalSystemPromptBN = `আপনি mySahara হেলথ অ্যাপের একজন সহায়ক চিকিৎসা স্বাস্থ্য সহায়ক।
আপনার ভূমিকা হল বাংলাদেশ এবং বিশ্বব্যাপী ব্যবহারকারীদের সঠিক, সহানুভূতিশীল এবং সাংস্কৃতিকভাবে সংবেদনশীল স্বাস্থ্য তথ্য প্রদান করা।

মূল নির্দেশিকা:
- প্রমাণ-ভিত্তিক স্বাস্থ্য তথ্য প্রদান করুন
- সহানুভূতিশীল এবং বোধগম্য হন
- সবসময় একটি দাবিত্যাগ অন্তর্ভুক্ত করুন যে আপনি পেশাদার চিকিৎসা পরামর্শ প্রতিস্থাপন করছেন না
- গুরুতর সমস্যার জন্য ব্যবহারকারীদের স্বাস্থ্যসেবা পেশাদারদের সাথে পরামর্শ করতে উৎসাহিত করুন
- বাংলাদেশী প্রসঙ্গে সাংস্কৃতিকভাবে সংবেদনশীল হন
- প্রতিক্রিয়া স্পষ্ট, সংক্ষিপ্ত এবং কার্যকর রাখুন
- অনিশ্চিত হলে স্বীকার করুন এবং ডাক্তারের পরামর্শ নেওয়ার পরামর্শ দিন
- কখনই রোগ নির্ণয় বা ওষুধ নির্ধারণ করবেন না
- গুরুত্বপূর্ণ: সবসময় ব্যবহারকারীর প্রশ্নের মতো একই ভাষায় উত্তর দিন। তারা ইংরেজিতে জিজ্ঞাসা করলে ইংরেজিতে উত্তর দিন। তারা বাংলায় জিজ্ঞাসা করলে বাংলায় উত্তর দিন।

বন্ধুত্বপূর্ণ, কথোপকথনমূলক সুরে প্রতিক্রিয়া ফরম্যাট করুন।`

const languageDirectiveEN = "\n\nIMPORTANT: The user's message is in English. You MUST respond in English only."
const languageDirectiveBN = "\n\nগুরুত্বপূর্ণ: ব্যবহারকারীর বার্তা বাংলায়। আপনাকে অবশ্যই শুধুমাত্র বাংলায় উত্তর দিতে হবে।"

// PromptBuilder assembles system instructions and user payloads for every
// chat-backed use case. Pure construction, no side effects.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// SystemPrompt returns the locale-specific system instruction with the
// same-language directive appended, plus an optional context block rendered
// from caller-supplied fields. Context keys are sorted so identical inputs
// produce identical prompts.
func (b *PromptBuilder) SystemPrompt(locale string, medicalMode bool, context map[string]string) string {
	var sb strings.Builder

	if !medicalMode {
		sb.WriteString("You are a helpful AI assistant.")
	} else if locale == "bn" {
		sb.WriteString(medicalSystemPromptBN)
	} else {
		sb.WriteString(medicalSystemPromptEN)
	}

	if locale == "bn" {
		sb.WriteString(languageDirectiveBN)
	} else {
		sb.WriteString(languageDirectiveEN)
	}

	if len(context) > 0 {
		sb.WriteString("\n\nAdditional Context:\n")
		keys := make([]string, 0, len(context))
		for k := range context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", k, context[k]))
		}
	}

	return sb.String()
}

// SymptomContext is the closed field set for the symptom-analysis prompt.
type SymptomContext struct {
	Symptoms           []string
	Duration           string
	Severity           string
	Age                int
	Gender             string
	ExistingConditions []string
	Medications        []string
}

// SymptomAnalysisPrompt renders the symptom-analysis user payload.
func (b *PromptBuilder) SymptomAnalysisPrompt(sc SymptomContext) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following symptoms and provide health insights:\n\n")
	sb.WriteString("Symptoms: " + strings.Join(sc.Symptoms, ", "))

	if sc.Duration != "" {
		sb.WriteString("\nDuration: " + sc.Duration)
	}
	if sc.Severity != "" {
		sb.WriteString("\nSeverity: " + sc.Severity)
	}

	var extra []string
	if sc.Age > 0 {
		extra = append(extra, fmt.Sprintf("- age: %d", sc.Age))
	}
	if sc.Gender != "" {
		extra = append(extra, "- gender: "+sc.Gender)
	}
	if len(sc.ExistingConditions) > 0 {
		extra = append(extra, "- existing_conditions: "+strings.Join(sc.ExistingConditions, ", "))
	}
	if len(sc.Medications) > 0 {
		extra = append(extra, "- current_medications: "+strings.Join(sc.Medications, ", "))
	}
	if len(extra) > 0 {
		sb.WriteString("\n\nAdditional Information:\n")
		sb.WriteString(strings.Join(extra, "\n"))
	}

	sb.WriteString(`

Please provide:
1. Possible conditions (with probability if possible)
2. Risk level assessment (low/medium/high)
3. Recommendations for care
4. Whether urgent medical attention is needed

Remember to include appropriate medical disclaimers.`)

	return sb.String()
}

// HealthTipsPrompt renders the health-tips user payload.
func (b *PromptBuilder) HealthTipsPrompt(category string, personalized bool, profile map[string]string) string {
	var sb strings.Builder
	sb.WriteString("Provide 5 helpful health tips")
	if category != "" {
		sb.WriteString(" about " + category)
	}
	if personalized && len(profile) > 0 {
		sb.WriteString("\n\nPersonalize for:\n")
		keys := make([]string, 0, len(profile))
		for k := range profile {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", k, profile[k]))
		}
	}
	sb.WriteString("\n\nFormat as numbered list with brief explanations.")
	return sb.String()
}

// PredictionContext is the closed field set for the risk-prediction prompt.
type PredictionContext struct {
	HealthMetrics    map[string]string
	MedicalHistory   []string
	LifestyleFactors map[string]string
}

// RiskPredictionPrompt renders the risk-prediction user payload.
func (b *PromptBuilder) RiskPredictionPrompt(pc PredictionContext) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following health data and predict potential health risks:\n\nHealth Metrics:\n")
	sb.WriteString(renderKV(pc.HealthMetrics))

	if len(pc.MedicalHistory) > 0 {
		sb.WriteString("\n\nMedical History: " + strings.Join(pc.MedicalHistory, ", "))
	}
	if len(pc.LifestyleFactors) > 0 {
		sb.WriteString("\n\nLifestyle Factors:\n")
		sb.WriteString(renderKV(pc.LifestyleFactors))
	}

	sb.WriteString(`

Please provide:
1. Potential health risks (with probability estimates)
2. Risk factors identified
3. Preventive measures and recommendations
4. Timeline for potential conditions

Include appropriate disclaimers about limitations of AI predictions.`)

	return sb.String()
}

// NutritionPlanPrompt renders the JSON-only planner payload. The output
// format directives here match the decoder in the nutrition service.
func (b *PromptBuilder) NutritionPlanPrompt(req entities.PlanRequest) string {
	dietary := req.DietaryPreferences
	if dietary == "" {
		dietary = "None"
	}
	foods := req.AvailableLocalFoods
	if foods == "" {
		foods = "Standard Bangladeshi foods like rice, lentils (dal), fish, chicken, seasonal vegetables, and fruits."
	}

	return fmt.Sprintf(`Act as an expert AI Nutritionist and Fitness Coach specializing in Bangladeshi cuisine and locally available foods. Based on the user's data, create a comprehensive, personalized, and safe 7-day plan.

The user's details are:
- Age: %d
- Gender: %s
- Height: %.0f cm
- Weight: %.0f kg
- Activity Level: %s
- Primary Goal: %s
- Dietary Preferences: %s
- Locally Available Foods: %s

Your task is to generate a structured JSON response with the following keys: 'nutrition_plan', 'supplement_plan', 'exercise_plan', and 'disclaimer'.

1.  **nutrition_plan**:
    -   `+"`daily_calories`"+`: Estimated daily calorie target.
    -   `+"`macronutrients`"+`: A dictionary with `+"`protein_g`, `carbs_g`, and `fat_g`"+`.
    -   `+"`daily_plans`"+`: A list of 7 dictionaries, one for each day of the week. Each daily plan should contain:
        -   `+"`day`"+`: The name of the day (e.g., "Monday").
        -   `+"`meals`"+`: A list of 3-4 meals for that day. Each meal should be a dictionary with `+"`meal`"+` (e.g., Breakfast), `+"`food`"+` (suggest specific dishes with portion sizes, e.g., '1 cup rice, 100g fish curry'), `+"`calories`"+`, and `+"`alternatives`"+` (suggest a different meal option).

2.  **supplement_plan**:
    -   `+"`recommendations`"+`: A list of dictionaries, each with `+"`supplement`, `dosage`, and `reason`"+`. Only recommend common, safe supplements if they align with the user's goal. If no supplements are needed, provide an empty list.

3.  **exercise_plan**:
    -   `+"`weekly_schedule`"+`: A list of 7 dictionaries, one for each day of the week. Each daily plan should contain:
        -   `+"`day`"+`: The name of the day (e.g., "Monday").
        -   `+"`activity`"+`: A short description of the workout (e.g., "Upper Body Strength").
        -   `+"`duration_minutes`"+`: The total duration of the workout.
        -   `+"`exercises`"+`: A list of specific exercises for that day (e.g., ["Push-ups", "Dumbbell Rows", "Overhead Press"]).
    -   `+"`progression_advice`"+`: A short paragraph on how the user can progressively increase the difficulty of their workouts over time.

4.  **disclaimer**: Include the following text verbatim: "%s"

Provide ONLY the JSON response. Do not include any other text or markdown formatting.`,
		req.Age, req.Gender, req.HeightCm, req.WeightKg, req.ActivityLevel, req.Goal, dietary, foods, entities.PlanDisclaimer)
}

// FamilyInsightPrompt renders the family-insight user payload.
func (b *PromptBuilder) FamilyInsightPrompt(members []entities.FamilyMember, focusAreas []string) string {
	conditions := uniqueConditions(members)
	conditionsList := "None"
	if len(conditions) > 0 {
		conditionsList = strings.Join(conditions, ", ")
	}
	if len(focusAreas) == 0 {
		focusAreas = []string{"general"}
	}

	return fmt.Sprintf(`As a family health advisor, analyze this family's health profile:

Family Members: %d
Chronic Conditions in Family: %s

Focus Areas: %s

Please provide:
1. Key health insights for the family
2. Personalized recommendations for managing existing conditions
3. Preventive care suggestions
4. Lifestyle modifications that benefit the whole family
5. Warning signs to watch for

Keep recommendations practical, family-friendly, and culturally sensitive.`,
		len(members), conditionsList, strings.Join(focusAreas, ", "))
}

// ReportSummaryPrompt renders the family-report summary payload.
func (b *PromptBuilder) ReportSummaryPrompt(members []entities.FamilyMember, metrics entities.FamilyMetrics) string {
	lines := make([]string, 0, len(members))
	for _, m := range members {
		conditions := "No chronic conditions"
		if len(m.ChronicDiseases) > 0 {
			conditions = strings.Join(m.ChronicDiseases, ", ")
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s", m.Name, m.Relationship, conditions))
	}

	return fmt.Sprintf(`Generate a professional health report summary for this family:

Family Overview:
%s

Statistics:
- Total Members: %d
- Members with Conditions: %d
- Unique Conditions: %d

Provide a concise, professional summary (2-3 paragraphs) suitable for:
- Sharing with healthcare providers
- Family health planning
- Insurance purposes

Include key health patterns and overall family health status.`,
		strings.Join(lines, "\n"), metrics.TotalMembers, metrics.MembersWithConditions, metrics.UniqueConditions)
}

// TranslationPrompt renders the translation payload.
func (b *PromptBuilder) TranslationPrompt(message, sourceLanguage, targetLanguage string) string {
	return fmt.Sprintf("Translate the following %s text to %s. Only provide the translation, nothing else:\n\n%s",
		sourceLanguage, targetLanguage, message)
}

// TermExplanationPrompt renders the medical-term explanation payload.
func (b *PromptBuilder) TermExplanationPrompt(term string, simple bool) string {
	if simple {
		return fmt.Sprintf("Explain the medical term '%s' in simple, easy-to-understand language that a non-medical person can understand.", term)
	}
	return fmt.Sprintf("Explain the medical term '%s' in detail.", term)
}

func renderKV(data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, data[k]))
	}
	return strings.Join(lines, "\n")
}

// uniqueConditions collects distinct chronic diseases across members,
// preserving first-seen order.
func uniqueConditions(members []entities.FamilyMember) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range members {
		for _, d := range m.ChronicDiseases {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}
