package content

import "vocab-progress-service/internal/domain"

// BuiltinWords is the bundled vocabulary pool. It doubles as the seed data
// for the postgres words table and as the default in-memory catalog.
func BuiltinWords() []domain.Word {
	return []domain.Word{
		{Text: "apple", Meaning: "a round fruit with firm, white flesh and a green or red skin", Example: "She ate an apple with her lunch."},
		{Text: "run", Meaning: "to move along faster than walking, taking quick steps", Example: "They run every morning before work."},
		{Text: "book", Meaning: "a set of printed pages fastened together inside a cover", Example: "He borrowed a book from the library."},
		{Text: "happy", Meaning: "feeling or showing pleasure or contentment", Example: "The children were happy with their gifts."},
		{Text: "dog", Meaning: "a domesticated animal kept as a pet or for guarding", Example: "The dog barked at the mail carrier."},
		{Text: "challenge", Meaning: "a task or situation that tests someone's abilities", Example: "Learning a new language is a real challenge."},
		{Text: "improve", Meaning: "to become or make something better", Example: "Daily practice helps you improve quickly."},
		{Text: "travel", Meaning: "to go from one place to another, especially over a distance", Example: "They travel abroad every summer."},
		{Text: "meticulous", Meaning: "showing great attention to detail; very careful and precise", Example: "She kept meticulous notes during the lecture."},
		{Text: "ubiquitous", Meaning: "present, appearing, or found everywhere", Example: "Smartphones have become ubiquitous."},
		{Text: "candid", Meaning: "truthful and straightforward; frank", Example: "He gave a candid answer about his mistakes."},
	}
}

type grammarItem struct {
	prompt  string
	options []string
	answer  string
}

func builtinGrammar() []grammarItem {
	return []grammarItem{
		{
			prompt:  "She ___ to school every day.",
			options: []string{"go", "goes", "going", "gone"},
			answer:  "goes",
		},
		{
			prompt:  "They ___ dinner when the phone rang.",
			options: []string{"have", "were having", "has had", "having"},
			answer:  "were having",
		},
		{
			prompt:  "I have lived here ___ 2010.",
			options: []string{"for", "since", "during", "from"},
			answer:  "since",
		},
		{
			prompt:  "If it rains tomorrow, we ___ at home.",
			options: []string{"stayed", "will stay", "would stay", "staying"},
			answer:  "will stay",
		},
		{
			prompt:  "This is the ___ movie I have ever seen.",
			options: []string{"good", "better", "best", "well"},
			answer:  "best",
		},
		{
			prompt:  "The report must ___ by Friday.",
			options: []string{"finish", "be finished", "finished", "be finishing"},
			answer:  "be finished",
		},
	}
}
