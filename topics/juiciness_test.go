package topics

import "testing"

// Test case for AnalyzeJuiciness baselines
func TestAnalyzeJuicinessBaselines(t *testing.T) {
	if got := AnalyzeJuiciness(""); got != 50 {
		t.Errorf("Expected neutral 50 for empty text, got %d", got)
	}
	if got := AnalyzeJuiciness("just another quiet afternoon"); got != 10 {
		t.Errorf("Expected floor 10 for bland text, got %d", got)
	}
}

// Test case for keyword scoring
func TestAnalyzeJuicinessKeywords(t *testing.T) {
	if got := AnalyzeJuiciness("explosion"); got != 30 {
		t.Errorf("Expected 30 for a tier-1 keyword, got %d", got)
	}

	// two tier-3 keywords plus capped exclamation marks
	if got := AnalyzeJuiciness("free cash now!!!"); got != 35 {
		t.Errorf("Expected 35, got %d", got)
	}

	// shouting adds per all-caps word
	if got := AnalyzeJuiciness("URGENT WARNING students beware"); got != 45 {
		t.Errorf("Expected 45, got %d", got)
	}
}

// Test case for the score clamp at 100
func TestAnalyzeJuicinessClamp(t *testing.T) {
	if got := AnalyzeJuiciness("deadly explosion virus outbreak murder"); got != 100 {
		t.Errorf("Expected clamp at 100, got %d", got)
	}
}

// Test case for exact topic inference
func TestInferTopicExact(t *testing.T) {
	topic, weight, category := InferTopic("students worried about the tuition fee hike leak")
	if topic != "Tuition Fee Hike Leak" {
		t.Errorf("Expected exact topic match, got %q", topic)
	}
	if weight != 1.5 {
		t.Errorf("Expected weight 1.5, got %v", weight)
	}
	if category != CategoryCampusRumors {
		t.Errorf("Expected category %q, got %q", CategoryCampusRumors, category)
	}
}

// Test case for partial topic inference on reordered words
func TestInferTopicPartial(t *testing.T) {
	topic, weight, category := InferTopic("fake timetable for the exam circulating")
	if topic != "Fake Exam Timetable" {
		t.Errorf("Expected partial topic match, got %q", topic)
	}
	if weight != 1.4 {
		t.Errorf("Expected weight 1.4, got %v", weight)
	}
	if category != CategoryCampusRumors {
		t.Errorf("Expected category %q, got %q", CategoryCampusRumors, category)
	}
}

// Test case for the inference fallback
func TestInferTopicFallback(t *testing.T) {
	topic, weight, category := InferTopic("completely unrelated gibberish")
	if topic != "General Rumor" || weight != 1.0 || category != CategoryUncategorized {
		t.Errorf("Expected the general fallback, got %q/%v/%q", topic, weight, category)
	}

	topic, weight, category = InferTopic("")
	if topic != "General Rumor" || weight != 1.0 || category != CategoryUncategorized {
		t.Errorf("Expected the general fallback for empty text, got %q/%v/%q", topic, weight, category)
	}
}

// Test case for category lookups
func TestCategoryOf(t *testing.T) {
	if got := CategoryOf("Financial Scam"); got != CategoryFinancialScams {
		t.Errorf("Expected %q, got %q", CategoryFinancialScams, got)
	}
	if got := CategoryOf("Campus Virus Leak"); got != CategoryHealthScare {
		t.Errorf("Expected %q, got %q", CategoryHealthScare, got)
	}
	if got := CategoryOf("No Such Topic"); got != CategoryUncategorized {
		t.Errorf("Expected %q, got %q", CategoryUncategorized, got)
	}
}

// Test case for the category to primary trait mapping
func TestPrimaryTrait(t *testing.T) {
	cases := map[string]string{
		CategoryCybersecurity:  "trust_level",
		CategoryCampusRumors:   "confirmation_bias",
		CategoryFinancialScams: "critical_thinking",
		CategoryHealthScare:    "emotional_susceptibility",
		CategoryUncategorized:  "",
		"":                     "",
	}
	for category, want := range cases {
		if got := PrimaryTrait(category); got != want {
			t.Errorf("PrimaryTrait(%q): expected %q, got %q", category, want, got)
		}
	}
}
