package menu

import (
	"bufio"
	"context"
	"fmt"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"io"
	"strings"
)

const (
	unspecified = "unspecified"
	unavailable = "unavailable"
)

type queryService interface {
	CompaniesAndVacanciesCount(ctx context.Context) []models.CompanyVacancies
	AllVacancies(ctx context.Context) []models.VacancyView
	AverageSalary(ctx context.Context) (float64, bool)
	VacanciesWithHigherSalary(ctx context.Context) []models.VacancyView
	VacanciesByKeyword(ctx context.Context, keyword string) []models.VacancyView
}

type Menu struct {
	queries queryService
	in      *bufio.Scanner
	out     io.Writer
}

func New(queries queryService, in io.Reader, out io.Writer) *Menu {
	return &Menu{queries: queries, in: bufio.NewScanner(in), out: out}
}

// Run prints the menu and answers choices until "0", end of input or ctx cancellation.
func (m *Menu) Run(ctx context.Context) {
	for ctx.Err() == nil {
		m.printOptions()

		choice, ok := m.prompt("Enter action number: ")
		if !ok {
			m.println()
			return
		}

		switch choice {
		case "1":
			m.companies(ctx)
		case "2":
			m.vacancies("All vacancies:", m.queries.AllVacancies(ctx))
		case "3":
			m.averageSalary(ctx)
		case "4":
			m.vacancies("Vacancies with salary above average:", m.queries.VacanciesWithHigherSalary(ctx))
		case "5":
			keyword, ok := m.prompt("Enter keyword to search: ")
			if !ok {
				m.println()
				return
			}
			m.vacancies(fmt.Sprintf("Vacancies with keyword %q:", keyword), m.queries.VacanciesByKeyword(ctx, keyword))
		case "0":
			m.println("Bye.")
			return
		default:
			m.println("Invalid choice, please select an action from the menu.")
		}
	}
}

func (m *Menu) printOptions() {
	m.println()
	m.println("Choose an action:")
	m.println("1 - Companies and vacancy counts")
	m.println("2 - All vacancies")
	m.println("3 - Average salary")
	m.println("4 - Vacancies with salary above average")
	m.println("5 - Search vacancies by keyword")
	m.println("0 - Exit")
}

func (m *Menu) prompt(text string) (string, bool) {
	_, _ = fmt.Fprint(m.out, text)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) companies(ctx context.Context) {
	m.println()
	m.println("Companies and vacancy counts:")
	for _, company := range m.queries.CompaniesAndVacanciesCount(ctx) {
		m.println(fmt.Sprintf("%s: %d vacancies", company.Name, company.Count))
	}
}

func (m *Menu) averageSalary(ctx context.Context) {
	text := unavailable
	if avg, ok := m.queries.AverageSalary(ctx); ok {
		text = fmt.Sprintf("%.2f", avg)
	}
	m.println()
	m.println("Average salary: " + text)
}

func (m *Menu) vacancies(title string, vacancies []models.VacancyView) {
	m.println()
	m.println(title)
	if len(vacancies) == 0 {
		m.println("nothing found")
		return
	}
	for _, vacancy := range vacancies {
		m.println(fmt.Sprintf("Company: %s, Vacancy: %s, Salary: %s, Link: %s",
			vacancy.Company, vacancy.Title, FormatSalary(vacancy.SalaryMin, vacancy.SalaryMax), vacancy.URL))
	}
}

func (m *Menu) println(lines ...string) {
	_, _ = fmt.Fprintln(m.out, strings.Join(lines, ""))
}

// FormatSalary renders the salary bounds, each of which may be absent.
func FormatSalary(lower, upper *int) string {
	switch {
	case lower != nil && upper != nil:
		return fmt.Sprintf("%d-%d", *lower, *upper)
	case lower != nil:
		return fmt.Sprintf("from %d", *lower)
	case upper != nil:
		return fmt.Sprintf("up to %d", *upper)
	default:
		return unspecified
	}
}
