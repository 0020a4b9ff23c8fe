package analytics

import "strings"

const (
	lengthTargetWords   = 50.0
	depthTargetWords    = 100.0
	genericShortChars   = 100
	tooShortWords       = 30
	unbalancedMinWords  = 20
	actionVerbPoints    = 15.0
	actionVerbPointsCap = 40.0
)

// AnalyzeComment scores a single written comment on depth, specificity and
// actionability using keyword heuristics. Pure function; persistence of the
// result is the service's concern.
func AnalyzeComment(text string) CommentAnalysis {
	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))
	sentenceCount := countSentences(text)

	evidence := containsAny(lower, evidenceKeywords)
	examples := containsAny(lower, examplePhrases)
	forward := containsAny(lower, forwardLookingKeywords)
	balanced := containsAny(lower, positiveToneKeywords) && containsAny(lower, developmentToneKeywords)

	analysis := CommentAnalysis{
		WordCount:        wordCount,
		SentenceCount:    sentenceCount,
		EvidencePresent:  evidence,
		ExamplesPresent:  examples,
		ForwardLooking:   forward,
		BalancedFeedback: balanced,
		Issues:           []CommentIssue{},
		Suggestions:      []string{},
		Confidence:       EngineConfidence,
	}

	analysis.LengthScore = round2(min(100, float64(wordCount)/lengthTargetWords*100))
	analysis.DepthScore = round2(depthScore(wordCount, sentenceCount, evidence, examples))
	analysis.SpecificityScore = round2(specificityScore(lower, len(text), evidence, examples))
	analysis.ActionabilityScore = round2(actionabilityScore(lower, forward))
	analysis.OverallScore = round2(
		analysis.LengthScore*weightLength +
			analysis.DepthScore*weightDepth +
			analysis.SpecificityScore*weightSpecificity +
			analysis.ActionabilityScore*weightActionability)

	for _, issue := range detectIssues(analysis) {
		analysis.Issues = append(analysis.Issues, CommentIssue{Type: issue, Description: issueDescriptions[issue]})
		analysis.Suggestions = append(analysis.Suggestions, issueSuggestions[issue])
	}
	return analysis
}

// AnalyzeCommentBatch runs the single-comment analysis over every comment a
// manager wrote and aggregates the sub-scores. The aggregate feeds the
// scorecard builder.
func AnalyzeCommentBatch(comments []CommentRecord) CommentBatchMetrics {
	metrics := CommentBatchMetrics{CommentsAnalyzed: len(comments)}
	if len(comments) == 0 {
		return metrics
	}

	var length, depth, specificity, actionability, overall float64
	for _, comment := range comments {
		analysis := AnalyzeComment(comment.Text)
		length += analysis.LengthScore
		depth += analysis.DepthScore
		specificity += analysis.SpecificityScore
		actionability += analysis.ActionabilityScore
		overall += analysis.OverallScore
		if analysis.EvidencePresent {
			metrics.WithEvidence++
		}
		if analysis.ExamplesPresent {
			metrics.WithExamples++
		}
	}

	n := float64(len(comments))
	metrics.AvgLengthScore = round2(length / n)
	metrics.AvgDepthScore = round2(depth / n)
	metrics.AvgSpecificityScore = round2(specificity / n)
	metrics.AvgActionabilityScore = round2(actionability / n)
	metrics.AvgOverallScore = round2(overall / n)
	return metrics
}

func depthScore(wordCount, sentenceCount int, evidence, examples bool) float64 {
	score := float64(wordCount) / depthTargetWords * 40
	score += min(20, float64(sentenceCount)*10)
	if evidence {
		score += 20
	}
	if examples {
		score += 20
	}
	return min(100, score)
}

func specificityScore(lower string, chars int, evidence, examples bool) float64 {
	score := 50.0
	if containsAny(lower, genericPhrases) && chars < genericShortChars {
		score = 20.0
	}
	if examples {
		score += 25
	}
	if evidence {
		score += 25
	}
	return min(100, score)
}

func actionabilityScore(lower string, forward bool) float64 {
	score := 20.0
	if forward {
		score = 60.0
	}
	verbs := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			verbs++
		}
	}
	score += min(actionVerbPointsCap, float64(verbs)*actionVerbPoints)
	return min(100, score)
}

func detectIssues(analysis CommentAnalysis) []string {
	var issues []string
	if analysis.WordCount < tooShortWords {
		issues = append(issues, IssueTooShort)
	}
	if !analysis.EvidencePresent {
		issues = append(issues, IssueNoEvidence)
	}
	if !analysis.ForwardLooking {
		issues = append(issues, IssueNotDevelopmental)
	}
	if !analysis.BalancedFeedback && analysis.WordCount > unbalancedMinWords {
		issues = append(issues, IssueUnbalanced)
	}
	return issues
}

func countSentences(text string) int {
	count := 0
	for _, chunk := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(chunk) != "" {
			count++
		}
	}
	return count
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
