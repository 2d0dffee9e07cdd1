// Package catalog holds the fixed ordered list of interview questions a new
// session draws from. The list is read-only and consumed only at creation.
package catalog

// DefaultQuestionCount is used when the client does not ask for a specific
// number of questions.
const DefaultQuestionCount = 3

var questions = []string{
	"Tell me about yourself and your background.",
	"Why are you interested in this role?",
	"Describe a challenging project you worked on and how you handled it.",
	"Tell me about a time you disagreed with a teammate. What did you do?",
	"What is a technical decision you made that you later regretted?",
	"How do you prioritize when everything feels urgent?",
	"Describe a time you received difficult feedback. How did you respond?",
	"What accomplishment are you most proud of, and why?",
	"Where do you want to grow in the next few years?",
	"Why should we hire you over other candidates?",
}

// Len returns the catalog size.
func Len() int { return len(questions) }

// Slice returns a copy of the first n questions, with n clamped to
// [1, Len()]. Out-of-range requests are silently clamped, never rejected.
func Slice(n int) []string {
	if n < 1 {
		n = 1
	}
	if n > len(questions) {
		n = len(questions)
	}
	out := make([]string, n)
	copy(out, questions[:n])
	return out
}
