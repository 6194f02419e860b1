package quizzes

import "github.com/391rajan/Quiz/internal/models"

// GradeSubmission scores a set of submitted answers against the quiz's
// questions. Every question receives exactly one AnswerRecord: questions with
// no submitted answer are recorded as incorrect with a nil UserAnswer.
// Submitted answers for question IDs not on the quiz are ignored. Each record
// carries the question's subTopic so attempts stay meaningful after the quiz
// is deleted.
func GradeSubmission(questions []models.Question, submitted []models.SubmittedAnswer) (int, []models.AnswerRecord) {
	answerByQuestion := make(map[int64]string, len(submitted))
	for _, sa := range submitted {
		answerByQuestion[sa.QuestionID] = sa.Answer
	}

	score := 0
	records := make([]models.AnswerRecord, 0, len(questions))

	for _, q := range questions {
		record := models.AnswerRecord{
			QuestionID: q.ID,
			SubTopic:   q.SubTopic,
		}

		if answer, ok := answerByQuestion[q.ID]; ok {
			answerCopy := answer
			record.UserAnswer = &answerCopy
			record.IsCorrect = answer == q.CorrectAnswer
		}

		if record.IsCorrect {
			score++
		}
		records = append(records, record)
	}

	return score, records
}
