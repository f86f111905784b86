package ingestion

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shashank8104/resume-intelligence/internal/features"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

// postingSection labels the regions a posting is usually divided into.
type postingSection int

const (
	secPreamble postingSection = iota
	secRequirements
	secResponsibilities
	secPreferred
	secBenefits
	secAbout
)

// sectionHeadings maps heading phrases to sections. Order matters:
// "preferred qualifications" must win over the bare "qualifications".
var sectionHeadings = []struct {
	section postingSection
	phrases []string
}{
	{secPreferred, []string{"nice to have", "preferred", "bonus points", "bonus"}},
	{secRequirements, []string{"requirements", "qualifications", "what you'll need", "what you will need", "what we're looking for", "who you are", "must have", "minimum"}},
	{secResponsibilities, []string{"responsibilities", "what you'll do", "what you will do", "your role", "the role", "duties", "day to day", "day-to-day"}},
	{secBenefits, []string{"benefits", "perks", "what we offer", "compensation"}},
	{secAbout, []string{"about us", "about the company", "about the team", "who we are", "our company", "our mission"}},
}

var titleKeywords = []string{
	"engineer", "developer", "scientist", "analyst", "manager",
	"designer", "architect", "consultant", "specialist", "lead",
	"administrator", "researcher", "director",
}

var (
	labelRe  = regexp.MustCompile(`(?im)^(?:job title|position|role)\s*[:\-]\s*(.+)$`)
	cityRe   = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*,\s*[A-Z]{2})\b`)
	salaryRe = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})+|\d+)(k|K)?\s*(?:-|–|—|to)\s*\$?\s?(\d{1,3}(?:,\d{3})+|\d+)(k|K)?`)

	companyLabelRe = regexp.MustCompile(`(?im)^company\s*[:\-]\s*(.+)$`)
	companyVerbRe  = regexp.MustCompile(`(?m)^([A-Z][\w&.\-]*(?: [A-Z][\w&.\-]*){0,3}) (?:is hiring|is seeking|is looking for|builds|helps)`)
	aboutHeadRe    = regexp.MustCompile(`(?im)^#*\s*about ([A-Z][\w&.\-]*(?: [A-Z][\w&.\-]*){0,3})\s*$`)
	atCompanyRe    = regexp.MustCompile(`\b[Aa]t ([A-Z][\w&.\-]*(?: [A-Z][\w&.\-]*){0,3})\b`)

	locationLabelRe = regexp.MustCompile(`(?im)^location\s*[:\-]\s*(.+)$`)
)

// ParsePosting extracts a structured job description from cleaned posting
// text without calling a model. Every extraction is best effort; postings
// too sparse to yield required fields fail validation upstream.
func ParsePosting(text string) *types.JobDescription {
	lines := strings.Split(text, "\n")
	sections := splitSections(lines)

	job := &types.JobDescription{}
	job.Title = detectTitle(lines)
	job.Company = detectCompany(text)
	job.Location = detectLocation(text)
	job.JobType = detectJobType(text)

	job.Requirements = sectionItems(sections[secRequirements])
	if len(job.Requirements) == 0 {
		job.Requirements = fallbackRequirements(lines)
	}
	job.Responsibilities = sectionItems(sections[secResponsibilities])
	if len(job.Responsibilities) == 0 {
		job.Responsibilities = fallbackResponsibilities(text)
	}
	job.PreferredQualifications = sectionItems(sections[secPreferred])
	job.Benefits = sectionItems(sections[secBenefits])

	job.ExperienceLevel = detectLevel(job.Title, strings.Join(job.Requirements, "\n"))
	job.RequiredSkills, job.PreferredSkills = scanSkills(sections, text)
	job.SalaryRange = detectSalary(text)
	job.Description = buildDescription(sections[secPreamble], sections[secAbout], text)

	return job
}

// splitSections walks the posting line by line, assigning each line to the
// section opened by the most recent heading.
func splitSections(lines []string) map[postingSection][]string {
	sections := make(map[postingSection][]string)
	current := secPreamble
	for _, line := range lines {
		if sec, ok := classifyHeading(line); ok {
			current = sec
			continue
		}
		if strings.TrimSpace(line) != "" {
			sections[current] = append(sections[current], line)
		}
	}
	return sections
}

// classifyHeading reports whether a line opens a known section. Headings
// are short lines, often marked with # or a trailing colon.
func classifyHeading(line string) (postingSection, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 || isBulletLine(line) {
		return secPreamble, false
	}

	normalized := strings.ToLower(strings.TrimRight(strings.TrimLeft(trimmed, "# "), ":"))
	if len(strings.Fields(normalized)) > 6 {
		return secPreamble, false
	}

	for _, h := range sectionHeadings {
		for _, phrase := range h.phrases {
			if strings.Contains(normalized, phrase) {
				return h.section, true
			}
		}
	}
	// "About <Company>" headings name the company directly.
	if normalized == "about" || strings.HasPrefix(normalized, "about ") {
		return secAbout, true
	}
	return secPreamble, false
}

// sectionItems turns a section's lines into list entries: bullets become
// one entry each, and a prose-only section contributes its lines.
func sectionItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		if isBulletLine(line) {
			item := strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(line, " \t"), "- "))
			if item != "" {
				items = append(items, item)
			}
		}
	}
	if len(items) > 0 {
		return items
	}
	for _, line := range lines {
		if entry := strings.TrimSpace(line); entry != "" {
			items = append(items, entry)
		}
	}
	return items
}

func detectTitle(lines []string) string {
	if m := labelRe.FindStringSubmatch(strings.Join(lines, "\n")); m != nil {
		return strings.TrimSpace(m[1])
	}

	var first string
	for _, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if trimmed == "" {
			continue
		}
		if first == "" {
			first = trimmed
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range titleKeywords {
			if strings.Contains(lower, kw) && len(trimmed) <= 80 {
				// "Senior Engineer at Acme" carries the company, not the title.
				if idx := strings.Index(lower, " at "); idx > 0 {
					return strings.TrimSpace(trimmed[:idx])
				}
				return trimmed
			}
		}
	}

	if len(first) > 80 {
		return strings.TrimSpace(first[:80])
	}
	return first
}

func detectCompany(text string) string {
	if m := companyLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	// A sentence like "Acme Logistics is hiring" names the company in full,
	// so it outranks an "About Acme" heading.
	if m := companyVerbRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := aboutHeadRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		switch strings.ToLower(candidate) {
		case "us", "you", "the role", "the team", "the company":
		default:
			return candidate
		}
	}
	if m := atCompanyRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Unknown"
}

func detectLocation(text string) string {
	if m := locationLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := cityRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.Contains(strings.ToLower(text), "remote") {
		return "Remote"
	}
	return "Unspecified"
}

// detectJobType scans for employment-arrangement keywords. Remote wins only
// when no other arrangement is named, since most remote postings are still
// full-time roles.
func detectJobType(text string) types.JobType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "internship") || strings.Contains(lower, "intern "):
		return types.JobTypeInternship
	case strings.Contains(lower, "part-time") || strings.Contains(lower, "part time"):
		return types.JobTypePartTime
	case strings.Contains(lower, "contractor") || strings.Contains(lower, "contract position") || strings.Contains(lower, "contract role") || strings.Contains(lower, "freelance"):
		return types.JobTypeContract
	case strings.Contains(lower, "full-time") || strings.Contains(lower, "full time") || strings.Contains(lower, "permanent"):
		return types.JobTypeFullTime
	case strings.Contains(lower, "remote"):
		return types.JobTypeRemote
	}
	return types.JobTypeFullTime
}

// detectLevel reads seniority from the title first, then from an explicit
// years-of-experience demand in the requirements.
func detectLevel(title, requirementsText string) types.JobLevel {
	lowerTitle := strings.ToLower(title)
	switch {
	case containsAny(lowerTitle, "director", "vp ", "vice president", "head of", "chief"):
		return types.LevelExecutive
	case containsAny(lowerTitle, "staff", "principal", "lead"):
		return types.LevelLead
	case containsAny(lowerTitle, "senior", "sr."):
		return types.LevelSenior
	case containsAny(lowerTitle, "junior", "entry", "graduate", "intern"):
		return types.LevelEntry
	}

	if years, ok := features.RequiredYears(strings.ToLower(requirementsText)); ok {
		switch {
		case years >= 8:
			return types.LevelLead
		case years >= 5:
			return types.LevelSenior
		case years >= 2:
			return types.LevelMid
		default:
			return types.LevelEntry
		}
	}
	return types.LevelMid
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// scanSkills matches the skill lexicon against the posting. Skills named
// only in the preferred section are preferred; everything else found in the
// posting counts as required.
func scanSkills(sections map[postingSection][]string, text string) (required, preferred []string) {
	preferredText := strings.ToLower(strings.Join(sections[secPreferred], "\n"))
	requiredText := strings.ToLower(strings.Join(sections[secRequirements], "\n"))
	fullText := strings.ToLower(text)

	for _, entry := range skillLexicon {
		inPreferred := lexiconMatch(preferredText, entry)
		inRequired := lexiconMatch(requiredText, entry)
		inPosting := lexiconMatch(fullText, entry)

		switch {
		case inRequired, inPosting && !inPreferred:
			required = append(required, entry.canonical)
		case inPreferred:
			preferred = append(preferred, entry.canonical)
		}
	}
	return required, preferred
}

type lexiconEntry struct {
	canonical string
	aliases   []string
}

func lexiconMatch(text string, entry lexiconEntry) bool {
	if containsToken(text, entry.canonical) {
		return true
	}
	for _, alias := range entry.aliases {
		if containsToken(text, alias) {
			return true
		}
	}
	return false
}

// containsToken reports whether token occurs in text bounded by
// non-identifier characters. A plain substring check would match "go"
// inside "google"; \b fails on tokens like "c++", hence the manual scan.
func containsToken(text, token string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], token)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(token)
		beforeOK := idx == 0 || !isTokenRune(rune(text[idx-1]))
		afterOK := end == len(text) || !isTokenRune(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
}

func detectSalary(text string) *types.SalaryRange {
	m := salaryRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	lo := parseAmount(m[1], m[2] != "")
	hi := parseAmount(m[3], m[4] != "")
	if lo > hi {
		lo, hi = hi, lo
	}
	// Four-digit figures without a k suffix are hourly or monthly rates,
	// not an annual band.
	if lo < 10000 {
		return nil
	}
	return &types.SalaryRange{Min: lo, Max: hi}
}

func parseAmount(digits string, thousands bool) int {
	n := 0
	for _, ch := range digits {
		if ch >= '0' && ch <= '9' {
			n = n*10 + int(ch-'0')
		}
	}
	if thousands {
		n *= 1000
	}
	return n
}

const descriptionLimit = 600

// buildDescription prefers the preamble paragraph, then the about section,
// then the raw text head.
func buildDescription(preamble, about []string, text string) string {
	fromLines := func(lines []string) string {
		var kept []string
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if isBulletLine(line) || strings.HasPrefix(trimmed, "#") || isLabelLine(trimmed) {
				continue
			}
			kept = append(kept, trimmed)
		}
		return strings.TrimSpace(strings.Join(kept, " "))
	}

	desc := fromLines(preamble)
	if desc == "" {
		desc = fromLines(about)
	}
	if desc == "" {
		desc = strings.TrimSpace(innerSpaceRe.ReplaceAllString(text, " "))
	}
	if len(desc) > descriptionLimit {
		cut := desc[:descriptionLimit]
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
		desc = cut
	}
	return desc
}

// isLabelLine reports whether a line is a "Label: value" field rather than
// running prose.
func isLabelLine(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && strings.HasSuffix(fields[0], ":")
}

// fallbackRequirements collects requirement-flavored sentences when a
// posting has no recognizable requirements section.
func fallbackRequirements(lines []string) []string {
	var reqs []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		if containsAny(lower, "experience", "years", "degree", "proficien", "knowledge of", "familiarity") {
			entry := strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(line, " \t"), "- "))
			if entry != "" {
				reqs = append(reqs, entry)
			}
		}
		if len(reqs) == 5 {
			break
		}
	}
	return reqs
}

// fallbackResponsibilities mines "you will" sentences from prose postings.
func fallbackResponsibilities(text string) []string {
	var resps []string
	for _, sentence := range strings.Split(text, ".") {
		lower := strings.ToLower(sentence)
		if containsAny(lower, "you will", "you'll", "responsible for") {
			if entry := strings.TrimSpace(innerSpaceRe.ReplaceAllString(sentence, " ")); entry != "" {
				resps = append(resps, entry+".")
			}
		}
		if len(resps) == 5 {
			break
		}
	}
	return resps
}
