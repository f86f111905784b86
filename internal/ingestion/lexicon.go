package ingestion

import "strings"

// skillLexicon is the vocabulary the heuristic parser recognizes. Canonical
// names are lowercase and match the skill names used across the rest of the
// system; aliases cover the spellings postings actually use.
var skillLexicon = []lexiconEntry{
	{canonical: "go", aliases: []string{"golang"}},
	{canonical: "python"},
	{canonical: "java"},
	{canonical: "javascript", aliases: []string{"js"}},
	{canonical: "typescript", aliases: []string{"ts"}},
	{canonical: "c++", aliases: []string{"cpp"}},
	{canonical: "c#", aliases: []string{"csharp", ".net"}},
	{canonical: "ruby", aliases: []string{"ruby on rails"}},
	{canonical: "rust"},
	{canonical: "scala"},
	{canonical: "kotlin"},
	{canonical: "swift"},
	{canonical: "php"},
	{canonical: "sql"},
	{canonical: "react", aliases: []string{"react.js", "reactjs"}},
	{canonical: "angular", aliases: []string{"angularjs"}},
	{canonical: "vue", aliases: []string{"vue.js", "vuejs"}},
	{canonical: "node.js", aliases: []string{"nodejs", "node"}},
	{canonical: "next.js", aliases: []string{"nextjs"}},
	{canonical: "django"},
	{canonical: "flask"},
	{canonical: "spring", aliases: []string{"spring boot"}},
	{canonical: "rails"},
	{canonical: "express", aliases: []string{"express.js"}},
	{canonical: "graphql"},
	{canonical: "grpc"},
	{canonical: "rest api", aliases: []string{"rest apis", "restful"}},
	{canonical: "postgresql", aliases: []string{"postgres"}},
	{canonical: "mysql"},
	{canonical: "mongodb", aliases: []string{"mongo"}},
	{canonical: "redis"},
	{canonical: "elasticsearch"},
	{canonical: "cassandra"},
	{canonical: "dynamodb"},
	{canonical: "sqlite"},
	{canonical: "kafka"},
	{canonical: "rabbitmq"},
	{canonical: "spark", aliases: []string{"apache spark", "pyspark"}},
	{canonical: "hadoop"},
	{canonical: "airflow"},
	{canonical: "docker"},
	{canonical: "kubernetes", aliases: []string{"k8s"}},
	{canonical: "terraform"},
	{canonical: "ansible"},
	{canonical: "jenkins"},
	{canonical: "git"},
	{canonical: "ci/cd", aliases: []string{"cicd", "continuous integration"}},
	{canonical: "aws", aliases: []string{"amazon web services"}},
	{canonical: "gcp", aliases: []string{"google cloud"}},
	{canonical: "azure"},
	{canonical: "linux"},
	{canonical: "tensorflow"},
	{canonical: "pytorch"},
	{canonical: "scikit-learn", aliases: []string{"sklearn"}},
	{canonical: "pandas"},
	{canonical: "numpy"},
	{canonical: "keras"},
	{canonical: "xgboost"},
	{canonical: "tableau"},
	{canonical: "power bi"},
	{canonical: "jupyter"},
	{canonical: "machine learning", aliases: []string{"ml"}},
	{canonical: "deep learning"},
	{canonical: "nlp", aliases: []string{"natural language processing"}},
	{canonical: "microservices"},
	{canonical: "distributed systems"},
	{canonical: "agile"},
	{canonical: "scrum"},
}

// KnownSkills returns the lexicon skills mentioned anywhere in text, as
// canonical names in lexicon order.
func KnownSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, entry := range skillLexicon {
		if lexiconMatch(lower, entry) {
			found = append(found, entry.canonical)
		}
	}
	return found
}
