package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"jobly/internal/models"
)

const maxDescriptionLen = 600

const (
	// maxMessageLen is Telegram's limit for a single text message.
	maxMessageLen = 4096
	// maxCompanyJobs caps the job lines embedded in a company card.
	maxCompanyJobs = 30
	maxJobTitleLen = 80
)

func FormatWelcomeMessage(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(`👋 Hi, *%s*\!

I list the companies and jobs on Jobly\.

*Commands:*
/companies \- browse companies
/jobs \- browse jobs
/help \- filters and examples`, EscapeMarkdown(name))
}

func FormatHelpMessage() string {
	return `*📖 Help*

*Companies*
/companies \- all companies by name
/companies search\=net min\_employees\=50 max\_employees\=500
/company _handle_ \- one company and its jobs

*Jobs*
/jobs \- newest jobs first
/jobs search\=engineer min\_salary\=100000 max\_salary\=200000 min\_equity\=0\.01
/job _id_ \- one job and its company

Filters are optional and can be combined\. Search is a case\-insensitive substring match\.`
}

// FormatCompanyList renders one page of a company listing. companies is the
// page slice; total is the size of the whole listing.
func FormatCompanyList(companies []models.CompanySummary, total, page, pages int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🏢 *Companies found:* %d\n", total))
	writePageLine(&sb, page, pages)

	for _, c := range companies {
		sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(c.Name)))
		sb.WriteString(fmt.Sprintf("   /company %s\n", EscapeMarkdown(c.Handle)))
	}

	return sb.String()
}

func FormatJobList(jobs []models.JobSummary, total, page, pages int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("💼 *Jobs found:* %d\n", total))
	writePageLine(&sb, page, pages)

	for _, j := range jobs {
		sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(j.Title)))
		sb.WriteString(fmt.Sprintf("   🏢 %s · /job %d\n", EscapeMarkdown(j.CompanyHandle), j.ID))
	}

	return sb.String()
}

func writePageLine(sb *strings.Builder, page, pages int) {
	if pages > 1 {
		sb.WriteString(fmt.Sprintf("_Page %d of %d_\n", page+1, pages))
	}
	sb.WriteString("\n")
}

func FormatCompany(d *models.CompanyDetail) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(d.Name)))
	sb.WriteString(fmt.Sprintf("_%s_\n\n", EscapeMarkdown(d.Handle)))

	if d.NumEmployees != nil {
		sb.WriteString(fmt.Sprintf("👥 *Employees:* %d\n", *d.NumEmployees))
	}
	if d.Description != nil && *d.Description != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", EscapeMarkdown(TruncateString(*d.Description, maxDescriptionLen))))
	}
	if d.LogoURL != nil && *d.LogoURL != "" {
		sb.WriteString(fmt.Sprintf("\n🔗 [Logo](%s)\n", escapeLinkURL(*d.LogoURL)))
	}

	if len(d.Jobs) == 0 {
		sb.WriteString("\n_No open jobs_")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("\n*Jobs \\(%d\\):*\n", len(d.Jobs)))

	// Room for the trailing "more" line.
	budget := maxMessageLen - utf8.RuneCountInString(sb.String()) - 64
	shown := 0
	for _, j := range d.Jobs {
		if shown == maxCompanyJobs {
			break
		}
		line := fmt.Sprintf("• %s \\- %s · /job %d\n",
			EscapeMarkdown(TruncateString(j.Title, maxJobTitleLen)),
			EscapeMarkdown(FormatSalary(j.Salary)),
			j.ID,
		)
		if budget -= utf8.RuneCountInString(line); budget < 0 {
			break
		}
		sb.WriteString(line)
		shown++
	}

	if rest := len(d.Jobs) - shown; rest > 0 {
		sb.WriteString(fmt.Sprintf("…and %d more, see /jobs\n", rest))
	}

	return sb.String()
}

func FormatJob(d *models.JobDetail) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n\n", EscapeMarkdown(d.Title)))
	sb.WriteString(fmt.Sprintf("💰 *Salary:* %s\n", EscapeMarkdown(FormatSalary(d.Salary))))
	sb.WriteString(fmt.Sprintf("📈 *Equity:* %s\n", EscapeMarkdown(FormatEquity(d.Equity))))

	company := d.CompanyHandle
	if d.Company != nil {
		company = d.Company.Name
	}
	sb.WriteString(fmt.Sprintf("🏢 *Company:* %s · /company %s\n",
		EscapeMarkdown(company),
		EscapeMarkdown(d.CompanyHandle),
	))

	if !d.DatePosted.IsZero() {
		sb.WriteString(fmt.Sprintf("📅 *Posted:* %s\n", EscapeMarkdown(d.DatePosted.Format("2006-01-02"))))
	}

	return sb.String()
}

func FormatSalary(salary *float64) string {
	if salary == nil {
		return "not specified"
	}
	return strconv.FormatFloat(*salary, 'f', -1, 64)
}

// FormatEquity renders a 0..1 fraction as a percentage.
func FormatEquity(equity *float64) string {
	if equity == nil {
		return "none"
	}
	pct := math.Round(*equity*10000) / 100
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

func FormatNoResultsMessage(resource string) string {
	return fmt.Sprintf(`😔 *No %s found*

Try a wider filter or see /help`, EscapeMarkdown(resource))
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

// inside (...) of an inline link only ) and \ need escaping
func escapeLinkURL(u string) string {
	return strings.NewReplacer("\\", "\\\\", ")", "\\)").Replace(u)
}

// TruncateString shortens s to at most maxLen runes.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
