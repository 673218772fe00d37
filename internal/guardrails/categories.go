package guardrails

// Category is the closed set of safety-policy labels a blocking decision
// can carry. Keeping it a dedicated type gets us exhaustive switches on the
// category-to-message and category-to-metric mappings.
type Category int

const (
	CategoryPersonalData Category = iota
	CategoryFinancialAdvice
	CategoryLegalAdvice
	CategoryToxicity
	CategoryFraud
	CategoryOffTopic
)

func (c Category) String() string {
	switch c {
	case CategoryPersonalData:
		return "PersonalData"
	case CategoryFinancialAdvice:
		return "FinancialAdvice"
	case CategoryLegalAdvice:
		return "LegalAdvice"
	case CategoryToxicity:
		return "Toxicity"
	case CategoryFraud:
		return "Fraud"
	case CategoryOffTopic:
		return "OffTopic"
	default:
		return "Unknown"
	}
}

// MetricName is the canonical lowercase name used for violation counters and
// the guardrail_triggered response field.
func (c Category) MetricName() string {
	switch c {
	case CategoryPersonalData:
		return "personal_data"
	case CategoryFinancialAdvice:
		return "financial_advice"
	case CategoryLegalAdvice:
		return "legal_advice"
	case CategoryToxicity:
		return "toxicity"
	case CategoryFraud:
		return "fraud"
	case CategoryOffTopic:
		return "off_topic"
	default:
		return "unknown"
	}
}

// Violation attaches the matched text or trigger description to a category.
type Violation struct {
	Category Category
	Detail   string
}

// Decision is the outcome of evaluating one piece of text.
// Blocked == false implies Violation is nil and SafeMessage is empty.
// Blocked == true implies SafeMessage is non-empty: every blocking path must
// supply user-facing text.
type Decision struct {
	Blocked     bool
	Violation   *Violation
	SafeMessage string
}

func blocked(category Category, detail string, safeMessage string) Decision {
	return Decision{
		Blocked:     true,
		Violation:   &Violation{Category: category, Detail: detail},
		SafeMessage: safeMessage,
	}
}
