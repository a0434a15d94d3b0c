package topics

import "strings"

// juicinessKeyword carries one viral keyword and its point value.
type juicinessKeyword struct {
	Word  string
	Score int
}

// juicinessKeywords tiers viral keywords by severity. Three tier-1 hits put a
// headline at 90+ on their own.
var juicinessKeywords = []juicinessKeyword{
	// Tier 1: life threatening (30 points each)
	{"EXPLOSION", 30}, {"BOMB", 30}, {"TERRORIST", 30}, {"SHOOTING", 30},
	{"DEADLY", 30}, {"DEATH", 30}, {"KILLED", 30}, {"SUICIDE", 30},
	{"COLLAPSE", 30}, {"VIRUS", 30}, {"PANDEMIC", 30}, {"OUTBREAK", 30},
	{"RAPE", 30}, {"MURDER", 30}, {"KIDNAP", 30}, {"HOSTAGE", 30}, {"HOSPITALIZED", 30},

	// Tier 2: high urgency / crime (15 points each)
	{"BREAKING", 15}, {"URGENT", 15}, {"WARNING", 15}, {"ALERT", 15},
	{"EMERGENCY", 15}, {"LOCKDOWN", 15}, {"EVACUATE", 15}, {"ARRESTED", 15},
	{"STOLEN", 15}, {"HACKED", 15}, {"SCAM", 15}, {"LEAKED", 15},
	{"BANKRUPT", 15}, {"RIGGED", 15}, {"CORRUPTION", 15}, {"SCANDAL", 15}, {"COVERUP", 15},

	// Tier 3: academic and admin triggers (10 points each)
	{"BANNED", 10}, {"SUSPENDED", 10}, {"EXPELLED", 10}, {"FIRED", 10},
	{"CANCELLED", 10}, {"INCREASE", 10}, {"HIKE", 10}, {"CUT", 10},
	{"OFFICIAL", 10}, {"POLICE", 10}, {"MINISTRY", 10}, {"VC", 10},
	{"FREE", 10}, {"CASH", 10}, {"MONEY", 10}, {"GRANT", 10}, {"CLAIM", 10}, {"LINK", 10},

	// Tier 4: context fillers (5 points each)
	{"STUDENT", 5}, {"CAMPUS", 5}, {"HOSTEL", 5}, {"EXAM", 5},
	{"RESULT", 5}, {"WIFI", 5}, {"SYSTEM", 5}, {"BUS", 5},
	{"MADANI", 5}, {"PTPTN", 5},
}

// AnalyzeJuiciness scores a headline's virality from 0 to 100 based on viral
// keyword density, exclamation marks (max +15) and shouting all-caps words
// (max +20). Empty input gets the neutral 50; any non-empty input scores at
// least 10.
func AnalyzeJuiciness(contextText string) int {
	if contextText == "" {
		return 50
	}

	textUpper := strings.ToUpper(contextText)
	score := 0

	for _, kw := range juicinessKeywords {
		if strings.Contains(textUpper, kw.Word) {
			score += kw.Score
		}
	}

	exclamations := strings.Count(textUpper, "!")
	score += min(15, exclamations*5)

	allCaps := 0
	for _, w := range strings.Fields(contextText) {
		if len(w) > 3 && w == strings.ToUpper(w) && w != strings.ToLower(w) {
			allCaps++
		}
	}
	score += min(20, allCaps*5)

	return max(10, min(100, score))
}

// InferTopic matches a headline against the topic catalogue and returns the
// best topic, its weight and its category. An exact topic phrase wins
// immediately; otherwise two or more words from a topic name are enough.
// Unmatched text falls back to a general rumor of weight 1.0.
func InferTopic(contextText string) (topic string, weight float64, category string) {
	if contextText == "" {
		return "General Rumor", 1.0, CategoryUncategorized
	}

	textLower := strings.ToLower(contextText)
	bestTopic := "General Rumor"
	bestWeight := 1.0

	for _, t := range Topics {
		if strings.Contains(textLower, strings.ToLower(t.Name)) {
			bestTopic = t.Name
			bestWeight = t.Weight
			break
		}

		matchCount := 0
		for _, word := range strings.Fields(strings.ToLower(t.Name)) {
			if strings.Contains(textLower, word) {
				matchCount++
			}
		}
		if matchCount >= 2 {
			bestTopic = t.Name
			bestWeight = t.Weight
		}
	}

	return bestTopic, bestWeight, CategoryOf(bestTopic)
}
