package nlp

import (
	"errors"
	"math"
)

// ErrNoExamples is returned when a model is trained on no usable questions.
var ErrNoExamples = errors.New("dataset has no usable questions")

// RetrievalModel answers a message with the answer of the most similar
// training question, using cosine similarity over bag-of-words counts.
type RetrievalModel struct {
	questions []string
	answers   []string
	vectors   []termVector
	vocab     map[string]struct{}
}

type termVector struct {
	counts map[string]float64
	norm   float64
}

// Match is the outcome of a retrieval.
type Match struct {
	Answer   string
	Question string
	Score    float64
}

// TrainRetrievalModel builds a model from parallel question and answer slices.
// Blank questions are skipped; a blank answer falls back to its question.
func TrainRetrievalModel(questions, answers []string) (*RetrievalModel, error) {
	m := &RetrievalModel{vocab: map[string]struct{}{}}

	for i, q := range questions {
		vec := vectorize(q)
		if vec.norm == 0 {
			continue
		}

		answer := q
		if i < len(answers) && answers[i] != "" {
			answer = answers[i]
		}

		m.questions = append(m.questions, q)
		m.answers = append(m.answers, answer)
		m.vectors = append(m.vectors, vec)
		for term := range vec.counts {
			m.vocab[term] = struct{}{}
		}
	}

	if len(m.questions) == 0 {
		return nil, ErrNoExamples
	}
	return m, nil
}

// Examples returns the number of training questions.
func (m *RetrievalModel) Examples() int {
	return len(m.questions)
}

// Vocabulary returns the number of distinct training terms.
func (m *RetrievalModel) Vocabulary() int {
	return len(m.vocab)
}

// Answer returns the best match for message. Ties go to the earliest question,
// so a message sharing no words with any question gets the first answer.
func (m *RetrievalModel) Answer(message string) Match {
	query := vectorize(message)

	best, bestScore := 0, -1.0
	for i, vec := range m.vectors {
		if score := cosine(query, vec); score > bestScore {
			best, bestScore = i, score
		}
	}

	return Match{
		Answer:   m.answers[best],
		Question: m.questions[best],
		Score:    bestScore,
	}
}

// Accuracy returns the percentage of training questions whose own answer is
// retrieved, rounded to two decimals.
func (m *RetrievalModel) Accuracy() float64 {
	correct := 0
	for i, q := range m.questions {
		if m.Answer(q).Answer == m.answers[i] {
			correct++
		}
	}
	pct := 100 * float64(correct) / float64(len(m.questions))
	return math.Round(pct*100) / 100
}

func vectorize(text string) termVector {
	counts := map[string]float64{}
	for _, w := range Words(text) {
		counts[w]++
	}

	var sum float64
	for _, c := range counts {
		sum += c * c
	}
	return termVector{counts: counts, norm: math.Sqrt(sum)}
}

func cosine(a, b termVector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}
	if len(a.counts) > len(b.counts) {
		a, b = b, a
	}

	var dot float64
	for term, c := range a.counts {
		dot += c * b.counts[term]
	}
	return dot / (a.norm * b.norm)
}
