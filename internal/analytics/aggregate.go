package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/391rajan/Quiz/internal/models"
)

// Classification thresholds. A topic averaging below WeakTopicThreshold is
// weak, at or above StrongTopicThreshold is strong, and anything in between
// is neither.
const (
	WeakTopicThreshold   = 60.0
	StrongTopicThreshold = 80.0
)

const emptyStateMessage = "No quiz attempts yet. Start taking quizzes to see your performance!"

// topicStat holds running totals for one topic while folding attempts.
type topicStat struct {
	totalScore     int
	totalQuestions int
	attemptsCount  int
	incorrectCount int
}

// subTopicStat holds running correct/total counts for one subtopic. The
// parent topic is recorded on first sight so weak-topic breakdowns can be
// scoped to their topic.
type subTopicStat struct {
	correct     int
	total       int
	parentTopic string
}

// BuildAnalytics folds a user's attempts into the full analytics payload.
// Orphaned attempts (quiz deleted since the attempt) are silently excluded
// from every aggregate. Pure function of its input; calling it twice on the
// same attempts yields identical output.
func BuildAnalytics(attempts []models.AttemptWithTopic) models.AnalyticsResponse {
	if len(attempts) == 0 {
		return models.AnalyticsResponse{
			Message:      emptyStateMessage,
			Analytics:    map[string]models.TopicSummary{},
			WeakTopics:   []models.WeakTopic{},
			StrongTopics: []models.StrongTopic{},
			QuizHistory:  []models.HistoryEntry{},
		}
	}

	topicStats, overallCorrect, overallTotal := aggregateTopics(attempts)
	subStats := aggregateSubTopics(attempts)
	summary, weak, strong := classify(topicStats, subStats)

	percentage := 0.0
	if overallTotal > 0 {
		percentage = round2(float64(overallCorrect) / float64(overallTotal) * 100)
	}

	return models.AnalyticsResponse{
		Analytics:    summary,
		WeakTopics:   weak,
		StrongTopics: strong,
		QuizHistory:  projectHistory(attempts),
		OverallScore: models.OverallScore{
			TotalScore:     overallCorrect,
			TotalQuestions: overallTotal,
			Percentage:     percentage,
		},
	}
}

// aggregateTopics folds attempts into per-topic running totals plus the two
// overall scalars. Orphaned attempts contribute to neither.
func aggregateTopics(attempts []models.AttemptWithTopic) (map[string]topicStat, int, int) {
	stats := make(map[string]topicStat)
	overallCorrect := 0
	overallTotal := 0

	for _, a := range attempts {
		if a.Orphaned() {
			continue
		}
		topic := *a.Topic

		stat := stats[topic]
		stat.totalScore += a.Score
		stat.totalQuestions += a.TotalQuestions
		stat.attemptsCount++
		stat.incorrectCount += a.TotalQuestions - a.Score
		stats[topic] = stat

		overallCorrect += a.Score
		overallTotal += a.TotalQuestions
	}

	return stats, overallCorrect, overallTotal
}

// aggregateSubTopics folds per-question answer records into per-subtopic
// correct/total counts. Answers without a subtopic label are ignored.
func aggregateSubTopics(attempts []models.AttemptWithTopic) map[string]subTopicStat {
	stats := make(map[string]subTopicStat)

	for _, a := range attempts {
		if a.Orphaned() {
			continue
		}
		topic := *a.Topic

		for _, ans := range a.Answers {
			if ans.SubTopic == "" {
				continue
			}
			stat, seen := stats[ans.SubTopic]
			if !seen {
				stat.parentTopic = topic
			}
			stat.total++
			if ans.IsCorrect {
				stat.correct++
			}
			stats[ans.SubTopic] = stat
		}
	}

	return stats
}

// classify buckets topics into weak and strong using the fixed thresholds.
// Topics are processed in lexical order so output is deterministic.
func classify(topicStats map[string]topicStat, subStats map[string]subTopicStat) (map[string]models.TopicSummary, []models.WeakTopic, []models.StrongTopic) {
	summary := make(map[string]models.TopicSummary, len(topicStats))
	weak := []models.WeakTopic{}
	strong := []models.StrongTopic{}

	for _, topic := range sortedKeys(topicStats) {
		stat := topicStats[topic]
		avg := float64(stat.totalScore) / float64(stat.totalQuestions) * 100

		summary[topic] = models.TopicSummary{
			AverageScore:     round2(avg),
			Attempts:         stat.attemptsCount,
			IncorrectAnswers: stat.incorrectCount,
		}

		switch {
		case avg < WeakTopicThreshold:
			weak = append(weak, models.WeakTopic{
				Topic:        topic,
				AverageScore: round2(avg),
				SubTopics:    weakSubTopics(topic, subStats),
				Reason: fmt.Sprintf(
					"You scored an average of %.2f%% on this topic, with %d incorrect answers over %d attempts. Focus on this area!",
					avg, stat.incorrectCount, stat.attemptsCount),
			})
		case avg >= StrongTopicThreshold:
			strong = append(strong, models.StrongTopic{
				Topic:        topic,
				AverageScore: round2(avg),
				Message: fmt.Sprintf(
					"Excellent! You scored an average of %.2f%% on this topic. Keep up the great work!",
					avg),
			})
		}
	}

	return summary, weak, strong
}

// weakSubTopics returns the subtopics of a weak topic whose own average is
// also below the weak threshold, in lexical order.
func weakSubTopics(topic string, subStats map[string]subTopicStat) []models.SubTopicBreakdown {
	var breakdown []models.SubTopicBreakdown

	for _, sub := range sortedKeys(subStats) {
		stat := subStats[sub]
		if stat.parentTopic != topic || stat.total == 0 {
			continue
		}
		avg := float64(stat.correct) / float64(stat.total) * 100
		if avg < WeakTopicThreshold {
			breakdown = append(breakdown, models.SubTopicBreakdown{
				SubTopic:     sub,
				AverageScore: round2(avg),
				Correct:      stat.correct,
				Total:        stat.total,
			})
		}
	}

	return breakdown
}

// projectHistory maps non-orphaned attempts to compact summaries sorted most
// recent first.
func projectHistory(attempts []models.AttemptWithTopic) []models.HistoryEntry {
	history := []models.HistoryEntry{}

	for _, a := range attempts {
		if a.Orphaned() {
			continue
		}
		history = append(history, models.HistoryEntry{
			ID:             a.ID,
			QuizID:         a.QuizID,
			Topic:          *a.Topic,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			DateTaken:      a.DateTaken,
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].DateTaken.After(history[j].DateTaken)
	})

	return history
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
