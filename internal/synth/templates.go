package synth

// Role identifiers with built-in generation templates.
const (
	RoleSoftwareEngineer = "software_engineer"
	RoleDataScientist    = "data_scientist"
	RoleMarketingManager = "marketing_manager"
)

// Roles returns the supported role identifiers in a stable order.
func Roles() []string {
	return []string{RoleSoftwareEngineer, RoleDataScientist, RoleMarketingManager}
}

// skillCategory keeps template skills grouped under a stable category
// name. Categories are held in a slice so generation order does not
// depend on map iteration.
type skillCategory struct {
	name   string
	skills []string
}

type roleTemplate struct {
	skillCategories  []skillCategory
	responsibilities []string
	projectNames     []string
	certifications   []string
	requirements     []string
}

// category returns the named skill list, or the fallback when the role
// template has no such category.
func (t roleTemplate) category(name string, fallback []string) []string {
	for _, c := range t.skillCategories {
		if c.name == name {
			return c.skills
		}
	}
	return fallback
}

// allSkills flattens every category in declaration order.
func (t roleTemplate) allSkills() []string {
	var out []string
	for _, c := range t.skillCategories {
		out = append(out, c.skills...)
	}
	return out
}

var roleTemplates = map[string]roleTemplate{
	RoleSoftwareEngineer: {
		skillCategories: []skillCategory{
			{name: "programming", skills: []string{"Python", "JavaScript", "Java", "C++", "Go", "Rust"}},
			{name: "frameworks", skills: []string{"React", "Angular", "Vue", "Django", "Flask", "Spring", "Node.js"}},
			{name: "databases", skills: []string{"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch"}},
			{name: "tools", skills: []string{"Git", "Docker", "Kubernetes", "Jenkins", "AWS", "Azure"}},
		},
		responsibilities: []string{
			"Developed and maintained web applications using {framework}",
			"Implemented RESTful APIs with {programming} and {database}",
			"Collaborated with cross-functional teams on feature development",
			"Optimized application performance and reduced load times by {percentage}%",
			"Led code reviews and mentored junior developers",
			"Deployed applications using {deployment_tool}",
		},
		projectNames: []string{
			"E-commerce Platform",
			"Real-time Chat Application",
			"Task Management System",
			"Data Analytics Dashboard",
			"Mobile App Backend",
		},
		certifications: []string{
			"AWS Certified Developer",
			"Google Cloud Professional",
			"Certified Kubernetes Administrator",
		},
		requirements: []string{
			"Proficiency in modern programming languages",
			"Experience with version control systems",
			"Understanding of software development lifecycle",
		},
	},
	RoleDataScientist: {
		skillCategories: []skillCategory{
			{name: "programming", skills: []string{"Python", "R", "SQL", "Scala", "Julia"}},
			{name: "ml_frameworks", skills: []string{"scikit-learn", "TensorFlow", "PyTorch", "Keras", "XGBoost"}},
			{name: "visualization", skills: []string{"Matplotlib", "Seaborn", "Plotly", "Tableau", "Power BI"}},
			{name: "tools", skills: []string{"Jupyter", "Git", "Docker", "Airflow", "Spark", "Hadoop"}},
		},
		responsibilities: []string{
			"Built machine learning models to predict {outcome} with {accuracy}% accuracy",
			"Analyzed large datasets using {tool} and identified key insights",
			"Created data pipelines for automated {process}",
			"Collaborated with stakeholders to define business requirements",
			"Presented findings to executive leadership",
			"Optimized model performance and reduced inference time by {percentage}%",
		},
		projectNames: []string{
			"Customer Churn Prediction Model",
			"Recommendation System",
			"Fraud Detection Pipeline",
			"Sales Forecasting Model",
			"NLP Sentiment Analysis Tool",
		},
		certifications: []string{
			"AWS Machine Learning Specialty",
			"Google Cloud ML Engineer",
			"Microsoft Azure AI Engineer",
		},
		requirements: []string{
			"Strong statistical and mathematical background",
			"Experience with machine learning frameworks",
			"Proficiency in data visualization tools",
		},
	},
	RoleMarketingManager: {
		skillCategories: []skillCategory{
			{name: "digital_marketing", skills: []string{"SEO", "SEM", "Social Media", "Email Marketing", "Content Marketing"}},
			{name: "analytics", skills: []string{"Google Analytics", "Facebook Ads", "HubSpot", "Salesforce"}},
			{name: "design", skills: []string{"Photoshop", "Canva", "Figma", "Adobe Creative Suite"}},
			{name: "tools", skills: []string{"CRM", "Marketing Automation", "A/B Testing", "Campaign Management"}},
		},
		responsibilities: []string{
			"Developed and executed marketing campaigns that increased {metric} by {percentage}%",
			"Managed social media presence across {platforms} with {followers}K+ followers",
			"Optimized SEO strategy resulting in {percentage}% increase in organic traffic",
			"Led cross-functional teams to launch {number} successful product campaigns",
			"Analyzed campaign performance and provided actionable insights",
			"Managed marketing budget of ${budget}K+",
		},
		projectNames: []string{
			"Brand Awareness Campaign",
			"Product Launch Strategy",
			"Customer Acquisition Program",
			"Content Marketing Initiative",
			"Influencer Partnership Program",
		},
		certifications: []string{
			"Google Ads Certified",
			"HubSpot Content Marketing",
			"Facebook Blueprint",
		},
		requirements: []string{
			"Experience with digital marketing platforms",
			"Strong understanding of marketing analytics",
			"Creative thinking and brand management skills",
		},
	},
}

// templateFor resolves a role template, falling back to the software
// engineer template for unknown roles.
func templateFor(role string) roleTemplate {
	if t, ok := roleTemplates[role]; ok {
		return t
	}
	return roleTemplates[RoleSoftwareEngineer]
}

var companyNames = []string{
	"TechCorp Solutions", "DataVision Inc", "CloudTech Systems", "InnovateLab",
	"NextGen Software", "DigitalEdge", "SmartAnalytics", "FutureTech",
	"CodeCraft Studios", "DataFlow Technologies", "CloudNine Solutions",
	"TechPioneer", "IntelliSoft", "CyberTech", "QuantumLeap",
}

var (
	firstNames = []string{"John", "Jane", "Mike", "Sarah", "David", "Lisa", "Chris", "Emma", "Ryan", "Anna"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor"}

	candidateLocations = []string{"San Francisco, CA", "New York, NY", "Seattle, WA", "Austin, TX", "Boston, MA"}
	jobLocations       = []string{"San Francisco, CA", "New York, NY", "Seattle, WA", "Austin, TX", "Remote"}

	institutions = []string{"University of California", "Stanford University", "MIT", "Carnegie Mellon", "Georgia Tech"}
	majors       = []string{"Computer Science", "Data Science", "Software Engineering", "Information Systems"}
	coreCourses  = []string{"Algorithms", "Database Systems", "Software Engineering", "Machine Learning"}

	extraLanguages = []string{"Spanish", "French", "German", "Mandarin"}
	interestPool   = []string{"Machine Learning", "Open Source", "Startups", "AI Ethics"}

	preferredQualifications = []string{
		"Master's degree preferred",
		"Experience in startup/fast-paced environment",
		"Previous leadership or mentoring experience",
		"Industry certifications",
	}

	standardBenefits = []string{"Health insurance", "401k", "PTO", "Remote work options"}
)
