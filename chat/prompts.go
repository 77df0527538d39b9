package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vitalis-inc/vitalis-api/schema"
)

const persona = `You are Vitalis, a helpful, empathetic, and professional medical AI assistant.
Your goal is to answer the user's questions about health, medicine, or their medical reports.

Important Rules:
1. KEEP RESPONSES VERY SHORT AND CONCISE. Aim for 2-3 sentences maximum.
2. Be direct and instant. Do not waffle.
3. Avoid medical jargon where possible, or explain it simply.
4. ALWAYS remind the user that you are an AI and they should consult a doctor for definitive medical advice.
5. ONLY answer questions about health, wellness, medicine, or the user's own records. Politely refuse anything else.`

// BuildPreamble assembles the system preamble for one completion
// request: persona and topic policy, the active display language, the
// signed-in user's profile, and the most recent analysis context. It is
// rebuilt from scratch on every turn; no session handle survives
// between turns.
func BuildPreamble(lang string, user *schema.UserProfile, result *schema.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(persona)

	if lang != "" {
		fmt.Fprintf(&b, "\n\nLANGUAGE: Write every reply in the language with BCP-47 tag %q. "+
			"Refusals of off-topic requests must also be phrased in that language.", lang)
	}

	if user != nil {
		fmt.Fprintf(&b, "\n\nUSER: You are talking to %s.", user.Name)
		if user.Sex != "" && user.Sex != schema.SexUndisclosed {
			fmt.Fprintf(&b, " Sex: %s.", user.Sex)
		}
		if len(user.HealthHistory) > 0 {
			fmt.Fprintf(&b, " Known health history: %s.", strings.Join(user.HealthHistory, ", "))
		}
	}

	if result != nil {
		findings, _ := json.Marshal(result.Findings)
		fmt.Fprintf(&b, "\n\nCONTEXT: The user has uploaded a medical report or image. Here is the analysis of that input:\n"+
			"Summary: %s\nFindings: %s\nResearch: %s\n\n"+
			"Use this context to answer specific questions about their results. "+
			"If they ask about a specific value, refer to the findings provided above.",
			result.Summary, findings, result.ResearchContext)
	}

	return b.String()
}
