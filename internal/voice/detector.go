// Package voice распознает просьбу о помощи в расшифровке голосового сообщения.
package voice

import "strings"

// DefaultVocabulary - слова и фразы, указывающие на ДТП или экстренную ситуацию
var DefaultVocabulary = []string{
	"accident", "help", "emergency", "crash", "injury", "collision", "hit",
	"ambulance", "hospital", "injured", "hurt", "bleeding", "pain", "trapped",
	"call police", "call ambulance", "need help", "save me", "rescue", "urgent",
	"critical", "dying", "unconscious",
}

// Detector ищет вхождение любого термина словаря без учета регистра.
// Это намеренно грубый фильтр с высокой полнотой, а не классификатор.
type Detector struct {
	terms []string
}

func NewDetector(vocabulary []string) *Detector {
	terms := make([]string, 0, len(vocabulary))
	for _, term := range vocabulary {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return &Detector{terms: terms}
}

// Detect возвращает true, если в расшифровке есть хотя бы один термин
func (d *Detector) Detect(transcript string) bool {
	if strings.TrimSpace(transcript) == "" {
		return false
	}
	text := strings.ToLower(transcript)
	for _, term := range d.terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

var defaultDetector = NewDetector(DefaultVocabulary)

// Detect проверяет расшифровку по словарю по умолчанию
func Detect(transcript string) bool {
	return defaultDetector.Detect(transcript)
}
