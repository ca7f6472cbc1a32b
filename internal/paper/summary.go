package paper

import "strings"

// Summary is the fixed-shape structured output produced by the
// generative model. JSON tags match the schema declared to the endpoint.
type Summary struct {
	IsSurvey                   bool   `json:"is_survey"`
	Overview                   string `json:"overview"`
	ResearchQuestion           string `json:"research_question"`
	TaskCategory               string `json:"task_category"`
	TaskWords                  string `json:"task_as_words"`
	ComparisonWithRelatedWorks string `json:"comparison_with_related_works"`
	ProposedMethod             string `json:"proposed_method"`
	Datasets                   string `json:"datasets"`
	DomainWords                string `json:"domain_as_words"`
	Experiments                string `json:"experiments"`
	Analysis                   string `json:"analysis"`
	Contributions              string `json:"contributions"`
	FutureWorks                string `json:"future_works"`
}

// TaskList splits TaskWords into individual task names.
func (s *Summary) TaskList() []string {
	return splitWords(s.TaskWords)
}

// DomainList splits DomainWords into individual domain names.
func (s *Summary) DomainList() []string {
	return splitWords(s.DomainWords)
}

// splitWords splits on an ASCII comma or a full-width comma. The model
// uses either depending on the language it answered in. A string with
// neither delimiter becomes a single-element list.
func splitWords(words string) []string {
	switch {
	case strings.Contains(words, ","):
		return strings.Split(words, ",")
	case strings.Contains(words, "、"):
		return strings.Split(words, "、")
	default:
		return []string{words}
	}
}
