package catalog

// Course describes one catalog entry exposed to the recommendation tool.
type Course struct {
	Code    string   `json:"code"`
	Title   string   `json:"title"`
	Level   string   `json:"level"` // "UG" or "PG"
	Credits int      `json:"credits"`
	Type    string   `json:"type"` // "core" or "elective"
	Tags    []string `json:"tags,omitempty"`
}

// Aliases maps free-form interest phrasings to catalog categories.
func Aliases() map[string]string {
	return map[string]string{
		"ml":                      "data science",
		"machine learning":        "data science",
		"datascience":             "data science",
		"data-science":            "data science",
		"data science":            "data science",
		"ai":                      "artificial intelligence",
		"artificial-intelligence": "artificial intelligence",
		"artificial intelligence": "artificial intelligence",
		"web dev":                 "web",
		"web development":         "web",
		"cloud computing":         "cloud",
		"cybersec":                "cybersecurity",
		"security":                "cybersecurity",
		"analytics":               "business analytics",
		"ba":                      "business analytics",
		"data engineering":        "data engineering",
	}
}

// Seed provides the mocked course catalog backing the recommendation tool.
func Seed() map[string][]Course {
	return map[string][]Course{
		"data science": {
			{Code: "DS101", Title: "Intro to Data Science", Level: "UG", Credits: 3, Type: "core", Tags: []string{"python", "basics"}},
			{Code: "DS201", Title: "Statistics for ML", Level: "UG", Credits: 3, Type: "core", Tags: []string{"stats", "probability"}},
			{Code: "DS230", Title: "Data Visualization", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"viz", "tableau"}},
			{Code: "DS310", Title: "Machine Learning", Level: "UG", Credits: 4, Type: "core", Tags: []string{"ml", "supervised"}},
			{Code: "DS330", Title: "Applied NLP", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"nlp"}},
			{Code: "DS420", Title: "Deep Learning", Level: "PG", Credits: 4, Type: "core", Tags: []string{"dl", "neural nets"}},
			{Code: "DS430", Title: "MLOps Foundations", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"mlops", "devops"}},
			{Code: "DS450", Title: "Responsible & Ethical AI", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"ethics"}},
		},
		"artificial intelligence": {
			{Code: "AI210", Title: "Foundations of AI", Level: "UG", Credits: 3, Type: "core", Tags: []string{"search", "logic"}},
			{Code: "AI320", Title: "Probabilistic Graphical Models", Level: "PG", Credits: 4, Type: "elective", Tags: []string{"pgm", "bayes"}},
			{Code: "AI410", Title: "Reinforcement Learning", Level: "PG", Credits: 4, Type: "elective", Tags: []string{"rl"}},
			{Code: "AI430", Title: "Generative Models", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"diffusion", "vae", "gan"}},
			{Code: "AI440", Title: "AI Safety & Policy", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"safety"}},
		},
		"web": {
			{Code: "CS120", Title: "Web Dev Basics", Level: "UG", Credits: 3, Type: "core", Tags: []string{"html", "css", "js"}},
			{Code: "CS220", Title: "APIs & Microservices", Level: "UG", Credits: 3, Type: "core", Tags: []string{"rest", "microservices"}},
			{Code: "CS330", Title: "Full-Stack Engineering", Level: "UG", Credits: 4, Type: "elective", Tags: []string{"backend", "postgres"}},
			{Code: "CS340", Title: "Frontend Engineering", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"react"}},
			{Code: "CS360", Title: "DevOps for Web", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"ci/cd", "docker"}},
		},
		"cloud": {
			{Code: "CL200", Title: "Cloud Fundamentals", Level: "UG", Credits: 3, Type: "core", Tags: []string{"iaas", "paas", "saas"}},
			{Code: "CL310", Title: "AWS Services & Architecture", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"aws"}},
			{Code: "CL320", Title: "Azure Cloud Engineer", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"azure"}},
			{Code: "CL350", Title: "Cloud Solution Design", Level: "PG", Credits: 4, Type: "core", Tags: []string{"architecture"}},
			{Code: "CL410", Title: "Cloud Security", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"security"}},
		},
		"cybersecurity": {
			{Code: "CY110", Title: "Cybersecurity Basics", Level: "UG", Credits: 3, Type: "core", Tags: []string{"cia triad"}},
			{Code: "CY210", Title: "Network Security", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"tcp/ip", "firewalls"}},
			{Code: "CY320", Title: "Application Security", Level: "PG", Credits: 3, Type: "core", Tags: []string{"owasp", "sast", "dast"}},
			{Code: "CY330", Title: "Ethical Hacking", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"pentest"}},
			{Code: "CY410", Title: "Cloud Security Practices", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"iam", "kms"}},
		},
		"data engineering": {
			{Code: "DE200", Title: "Data Warehousing", Level: "UG", Credits: 3, Type: "core", Tags: []string{"dimensional", "etl"}},
			{Code: "DE310", Title: "Big Data Systems", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"hadoop", "spark"}},
			{Code: "DE320", Title: "Spark Programming", Level: "PG", Credits: 4, Type: "core", Tags: []string{"spark", "pyspark"}},
			{Code: "DE330", Title: "Data Pipelines & Orchestration", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"airflow"}},
			{Code: "DE410", Title: "Streaming Systems", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"kafka", "flink"}},
		},
		"business analytics": {
			{Code: "BA200", Title: "Intro to Business Analytics", Level: "UG", Credits: 3, Type: "core", Tags: []string{"analytics"}},
			{Code: "BA310", Title: "SQL for Analytics", Level: "UG", Credits: 3, Type: "core", Tags: []string{"sql"}},
			{Code: "BA320", Title: "Data Visualization with Tableau", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"tableau"}},
			{Code: "BA325", Title: "Information Visualization & Storytelling", Level: "UG", Credits: 3, Type: "elective", Tags: []string{"viz", "d3"}},
			{Code: "BA330", Title: "Forecasting & Time Series", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"arima", "ets"}},
			{Code: "BA410", Title: "Experimentation & A/B Testing", Level: "PG", Credits: 3, Type: "elective", Tags: []string{"causal", "abtest"}},
		},
	}
}
