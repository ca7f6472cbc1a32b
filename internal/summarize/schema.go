package summarize

import "github.com/paperbatch/paperbatch/internal/openai"

// Declaration order doubles as the schema's required-array order so
// request bodies are byte-stable across runs.
var summaryFields = []struct {
	Name string
	Prop openai.SchemaProperty
}{
	{"is_survey", openai.SchemaProperty{
		Type:        "boolean",
		Description: "Whether this paper is a survey paper, as true/false.",
	}},
	{"overview", openai.SchemaProperty{
		Type:        "string",
		Description: "An overview of this paper in about 3 sentences.",
	}},
	{"research_question", openai.SchemaProperty{
		Type:        "string",
		Description: "The research question of this paper, including its background and relation to prior work. Describe in detail in about 4 sentences.",
	}},
	{"task_category", openai.SchemaProperty{
		Type:        "string",
		Description: "The task category of this paper. For natural language processing, examples include machine reading comprehension, machine translation, and text classification.",
	}},
	{"task_as_words", openai.SchemaProperty{
		Type:        "string",
		Description: "The task category of this paper as comma-separated words.",
	}},
	{"comparison_with_related_works", openai.SchemaProperty{
		Type:        "string",
		Description: "The novelty of this paper compared with related work, citing prior studies where possible. Describe in detail in about 4 sentences.",
	}},
	{"proposed_method", openai.SchemaProperty{
		Type:        "string",
		Description: "The details of the method used in this paper, explained step by step. Describe in detail in about 4 sentences.",
	}},
	{"datasets", openai.SchemaProperty{
		Type:        "string",
		Description: "The datasets used in this paper, as a list.",
	}},
	{"domain_as_words", openai.SchemaProperty{
		Type:        "string",
		Description: "The domain targeted by this paper's experiments, as comma-separated words.",
	}},
	{"experiments", openai.SchemaProperty{
		Type:        "string",
		Description: "The experimental setup and results, in detail. Describe in about 4 sentences.",
	}},
	{"analysis", openai.SchemaProperty{
		Type:        "string",
		Description: "The analysis of the experimental results. Describe in detail in about 4 sentences.",
	}},
	{"contributions", openai.SchemaProperty{
		Type:        "string",
		Description: "The contributions of this paper, as a list.",
	}},
	{"future_works", openai.SchemaProperty{
		Type:        "string",
		Description: "Open problems and directions for future research. Describe in about 3 sentences.",
	}},
}

// summarySchema declares the structured-output schema for a paper
// summary. Field instructions ride along as property descriptions so
// the model sees them next to each field.
func summarySchema() openai.Schema {
	props := make(map[string]openai.SchemaProperty, len(summaryFields))
	required := make([]string, 0, len(summaryFields))
	for _, f := range summaryFields {
		props[f.Name] = f.Prop
		required = append(required, f.Name)
	}

	return openai.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}
