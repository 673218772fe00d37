package guardrails

// Default rule tables. The engine compiles these once at construction and
// never mutates them afterwards.

var defaultPersonalDataPatterns = []string{
	// SSN patterns
	`\b\d{3}-?\d{2}-?\d{4}\b`,
	// Phone numbers
	`\b\(?(\d{3})\)?[-.\s]?(\d{3})[-.\s]?(\d{4})\b`,
	// Email addresses
	`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`,
	// Credit card patterns (simplified)
	`\b(?:\d{4}[-\s]?){3}\d{4}\b`,
	// Account numbers (8+ digits)
	`\b\d{8,}\b`,
	// Addresses (basic pattern)
	`\b\d+\s+[\w\s]+(?:street|st|avenue|ave|road|rd|lane|ln|drive|dr|boulevard|blvd|way|court|ct|place|pl)\b`,
}

var defaultFinancialAdviceKeywords = []string{
	"should i invest", "investment advice", "what should i do with my money",
	"financial planning", "retirement advice", "tax advice", "should i buy",
	"should i sell", "portfolio recommendation", "investment strategy",
	"financial recommendation", "money advice", "wealth management",
	"asset allocation", "risk tolerance", "investment options",
}

var defaultLegalAdviceKeywords = []string{
	"legal advice", "what does the law say", "is this legal", "can i sue",
	"lawsuit", "attorney", "lawyer", "legal interpretation", "contract law",
	"my rights", "legal obligation", "violation of law", "court",
	"litigation", "legal action", "legal consequences", "compliance",
}

var defaultToxicPatterns = []string{
	// Profanity and abuse (basic patterns - extend as needed)
	`(?i)\b(fuck|shit|damn|bitch|asshole|idiot|stupid|moron)\b`,
	// Threats
	`(?i)\b(kill|hurt|harm|destroy|attack)\s+(you|aven)`,
	// Harassment
	`(?i)\b(hate|despise|loathe)\s+(you|this|aven)`,
}

var defaultFraudKeywords = []string{
	"i am an aven employee", "i work for aven", "this is aven calling",
	"verify your account", "confirm your password", "account suspended",
	"urgent security alert", "click this link", "wire transfer",
	"send money", "gift cards", "bitcoin", "cryptocurrency payment",
	"internal aven information", "company secrets", "employee access",
}

var defaultOffTopicKeywords = []string{
	"politics", "election", "president", "democrat", "republican",
	"dating", "relationship", "marriage", "divorce", "sex",
	"religion", "god", "jesus", "islam", "buddhism", "christianity",
	"weather", "sports", "movie", "celebrity", "entertainment",
	"cooking", "recipe", "travel", "vacation", "health advice",
	"medical advice", "diagnosis", "medication", "treatment",
}

// Assertive phrasing that signals the answer itself is giving financial
// advice. Distinct from the input keyword set: an answer asserting advice is
// a different risk signal than a question asking for it.
var outputFinancialAdviceIndicators = []string{
	"you should invest", "i recommend", "you should buy", "you should sell",
	"my advice is", "i suggest you", "the best option for you",
}

// Static per-category safe messages for blocked input.
const (
	msgInputPersonalData = "For your security, please don't share personal information in this chat. " +
		"Contact our secure customer service at support@aven.com or call our customer service line for account-specific inquiries."
	msgInputFinancialAdvice = "I can provide general information about Aven's products, but for personalized financial advice, " +
		"please speak with a qualified Aven representative at support@aven.com or call our customer service line."
	msgInputLegalAdvice = "I cannot provide legal advice. For legal questions related to Aven's products or services, " +
		"please consult with a qualified attorney or contact Aven's legal team through support@aven.com."
	msgInputToxicity = "I'm here to help with questions about Aven's products and services. " +
		"Let's keep our conversation professional and focused on how I can assist you."
	msgInputFraud = "Aven employees will never ask for sensitive information through this chat. " +
		"If you believe this is a legitimate Aven communication, please verify by calling our official customer service line."
	msgInputOffTopic = "I'm designed to help with questions about Aven's products and services. " +
		"For other topics, you might want to try a general-purpose AI assistant. How can I help you with Aven today?"
)

// Safe messages for blocked output.
const (
	msgOutputPersonalData = "I apologize, but I cannot provide that information. " +
		"For security reasons, please contact support@aven.com for assistance with account-specific matters."
	msgOutputFinancialAdvice = "I can provide general information about Aven's products, but for personalized financial advice, " +
		"please speak with a qualified Aven representative at support@aven.com."
)
