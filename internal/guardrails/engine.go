package guardrails

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Validator decides whether text violates the content-safety policy.
// Implementations must be safe for unsynchronized concurrent use so a
// stricter or model-backed classifier can be swapped in later without
// touching the orchestrator.
type Validator interface {
	EvaluateInput(text string) Decision
	EvaluateOutput(text string) Decision
}

// Extensions adds deployment-specific keywords on top of the built-in rule
// tables. Loaded from configs/guardrails.yaml when present.
type Extensions struct {
	FinancialAdviceKeywords []string `yaml:"financial_advice_keywords"`
	LegalAdviceKeywords     []string `yaml:"legal_advice_keywords"`
	FraudKeywords           []string `yaml:"fraud_keywords"`
	OffTopicKeywords        []string `yaml:"off_topic_keywords"`
}

// Engine is a deterministic pattern/keyword classifier. Rule tables are
// built once here and treated as immutable, so a single Engine is shared
// read-only across all concurrent requests.
type Engine struct {
	personalDataPatterns    []*regexp.Regexp
	financialAdviceKeywords []string
	legalAdviceKeywords     []string
	toxicPatterns           []*regexp.Regexp
	fraudKeywords           []string
	offTopicKeywords        []string
}

func NewEngine(ext Extensions) (*Engine, error) {
	personalDataPatterns, err := compilePatterns(defaultPersonalDataPatterns)
	if err != nil {
		return nil, err
	}

	toxicPatterns, err := compilePatterns(defaultToxicPatterns)
	if err != nil {
		return nil, err
	}

	return &Engine{
		personalDataPatterns:    personalDataPatterns,
		financialAdviceKeywords: mergeKeywords(defaultFinancialAdviceKeywords, ext.FinancialAdviceKeywords),
		legalAdviceKeywords:     mergeKeywords(defaultLegalAdviceKeywords, ext.LegalAdviceKeywords),
		toxicPatterns:           toxicPatterns,
		fraudKeywords:           mergeKeywords(defaultFraudKeywords, ext.FraudKeywords),
		offTopicKeywords:        mergeKeywords(defaultOffTopicKeywords, ext.OffTopicKeywords),
	}, nil
}

// EvaluateInput checks a user question before any retrieval or generation
// cost is spent. First match wins: later rules are not evaluated once one
// fires.
func (e *Engine) EvaluateInput(text string) Decision {
	inputLower := strings.ToLower(text)

	if detail, ok := matchPatterns(e.personalDataPatterns, text); ok {
		log.Warn().Str("match", detail).Msg("Personal data detected in input")
		return blocked(CategoryPersonalData, "Personal data pattern detected: "+detail, msgInputPersonalData)
	}

	if containsKeyword(inputLower, e.financialAdviceKeywords) {
		return blocked(CategoryFinancialAdvice, "Financial advice request detected", msgInputFinancialAdvice)
	}

	if containsKeyword(inputLower, e.legalAdviceKeywords) {
		return blocked(CategoryLegalAdvice, "Legal advice request detected", msgInputLegalAdvice)
	}

	if detail, ok := matchPatterns(e.toxicPatterns, text); ok {
		log.Warn().Str("match", detail).Msg("Toxic content detected in input")
		return blocked(CategoryToxicity, "Toxic content detected: "+detail, msgInputToxicity)
	}

	if containsKeyword(inputLower, e.fraudKeywords) {
		log.Warn().Msg("Potential fraud attempt detected in input")
		return blocked(CategoryFraud, "Potential fraud attempt detected", msgInputFraud)
	}

	if containsKeyword(inputLower, e.offTopicKeywords) {
		return blocked(CategoryOffTopic, "Off-topic request detected", msgInputOffTopic)
	}

	return Decision{}
}

// EvaluateOutput re-checks generated text: the model can surface sensitive
// data present in retrieved context even when the question was benign, and
// an answer asserting advice is a risk of its own.
func (e *Engine) EvaluateOutput(text string) Decision {
	if detail, ok := matchPatterns(e.personalDataPatterns, text); ok {
		log.Warn().Str("match", detail).Msg("Personal data detected in output")
		return blocked(CategoryPersonalData, "Personal data pattern detected: "+detail, msgOutputPersonalData)
	}

	outputLower := strings.ToLower(text)
	if containsKeyword(outputLower, outputFinancialAdviceIndicators) {
		return blocked(CategoryFinancialAdvice, "Output contains financial advice", msgOutputFinancialAdvice)
	}

	return Decision{}
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile guardrail pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func mergeKeywords(defaults []string, extra []string) []string {
	merged := make([]string, 0, len(defaults)+len(extra))
	for _, kw := range defaults {
		merged = append(merged, strings.ToLower(kw))
	}
	for _, kw := range extra {
		merged = append(merged, strings.ToLower(kw))
	}
	return merged
}

func matchPatterns(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, pattern := range patterns {
		if match := pattern.FindString(text); match != "" {
			return match, true
		}
	}
	return "", false
}

// containsKeyword is plain substring containment on the lowercased text, not
// token-boundary aware. Short keywords can match inside unrelated words;
// that matches the intended behavior of the rule set.
func containsKeyword(textLower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			return true
		}
	}
	return false
}
