// Package topics holds the topic catalogue and the text heuristics that turn
// a news headline into the two scalar inputs the simulation engines consume:
// a topic weight and a juiciness factor.
package topics

// Topic is a known news topic with its inherent believability weight.
// Higher weight means inherently more believable/viral.
type Topic struct {
	Name   string
	Weight float64
}

// Topics is the catalogue in a fixed order so inference is deterministic.
var Topics = []Topic{
	// Cybersecurity & tech (high technical fear)
	{"Ransomware Alert", 1.0},
	{"Data Breach", 1.1},
	{"Zero-day Exploit", 1.2},
	{"Emergency VPN Update", 1.1},
	{"Email Server Compromise", 1.2},
	{"AI Surveillance Ethics", 1.1},
	{"5G Radiation Leak", 1.4},
	{"Deepfake Voice Scam", 1.3},

	// Campus & university life (high local relevance)
	{"University Database Hacked", 1.3},
	{"Fake Scholarship Scam", 1.4},
	{"Lecturer Scandal", 1.3},
	{"WiFi Surveillance Rumor", 1.1},
	{"Fake Exam Timetable", 1.4},
	{"Student Aid Sabotage", 1.2},
	{"Tuition Fee Hike Leak", 1.5},
	{"Hostel Eviction Notice", 1.4},
	{"Campus Bus Strike", 1.2},

	// Health & safety (high emotional fear)
	{"Campus Virus Leak", 1.5},
	{"Cafeteria Food Poisoning", 1.4},
	{"New Pandemic Variant", 1.3},
	{"Toxic Water Supply", 1.4},
	{"Free Vaccine Side Effects", 1.2},
	{"Mental Health Crisis Coverup", 1.3},

	// Financial & scams (high greed/desperation)
	{"Financial Scam", 1.0},
	{"PTPTN Loan Waiver", 1.5},
	{"Crypto Investment Scheme", 1.1},
	{"E-Wallet Hack Warning", 1.3},
	{"Free Laptop Grant", 1.4},

	// Social & political (high polarization)
	{"Student Council Rigging", 1.3},
	{"Protest Organization", 1.2},
	{"Dress Code Crackdown", 1.3},
	{"Religious Society Ban", 1.4},
}

// Category names.
const (
	CategoryCybersecurity  = "Cybersecurity"
	CategoryCampusRumors   = "Campus Rumors"
	CategoryFinancialScams = "Financial Scams"
	CategoryHealthScare    = "Health Scare"
	CategoryUncategorized  = "Uncategorized"
)

// CategoryTopics groups topics into scenario categories, again in a fixed
// order.
var CategoryTopics = []struct {
	Category string
	Topics   []string
}{
	{CategoryCybersecurity, []string{
		"Ransomware Alert", "Data Breach", "Zero-day Exploit",
		"Emergency VPN Update", "Email Server Compromise", "Deepfake Voice Scam",
	}},
	{CategoryCampusRumors, []string{
		"Lecturer Scandal", "WiFi Surveillance Rumor", "Fake Exam Timetable",
		"Tuition Fee Hike Leak", "Hostel Eviction Notice", "Campus Bus Strike",
		"Student Council Rigging", "Dress Code Crackdown",
	}},
	{CategoryFinancialScams, []string{
		"Financial Scam", "Fake Scholarship Scam", "Student Aid Sabotage",
		"PTPTN Loan Waiver", "Crypto Investment Scheme", "Free Laptop Grant",
	}},
	{CategoryHealthScare, []string{
		"Campus Virus Leak", "Cafeteria Food Poisoning", "New Pandemic Variant",
		"Toxic Water Supply", "5G Radiation Leak", "Free Vaccine Side Effects",
	}},
}

// PrimaryTrait maps a category to the agent trait that makes agents most
// vulnerable to it. The belief equation boosts that trait's weight.
func PrimaryTrait(category string) string {
	switch category {
	case CategoryCybersecurity:
		return "trust_level" // relies on trusting the "system admin"
	case CategoryCampusRumors:
		return "confirmation_bias" // relies on pre-existing bias against authority
	case CategoryFinancialScams:
		return "critical_thinking" // greed overrides scrutiny
	case CategoryHealthScare:
		return "emotional_susceptibility" // pure fear and panic
	default:
		return ""
	}
}

// CategoryOf returns the category a topic belongs to.
func CategoryOf(topic string) string {
	for _, ct := range CategoryTopics {
		for _, t := range ct.Topics {
			if t == topic {
				return ct.Category
			}
		}
	}
	return CategoryUncategorized
}
