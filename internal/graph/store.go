package graph

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dut-ailab/advisor-go/internal/metrics"
)

// certificateKeywords are the certificate property names recognized in a
// question, checked case-insensitively. TOEIC is the default when no
// certificate is named.
var certificateKeywords = []string{
	"TOEIC", "IELTS", "TOEFL_iBT", "TOEFL_ITP", "Cambridge", "chung_chi",
	"JLPT", "NAT_TEST", "TOP_J", "DELF_va_DALF", "TCF",
}

// DefaultCertificate is assumed when the question names no certificate.
const DefaultCertificate = "TOEIC"

// CertRequirement is one program's requirement for a single certificate.
type CertRequirement struct {
	Program    string  `json:"chuong_trinh"`
	Language   string  `json:"ngon_ngu"`
	CertValues []any   `json:"cert"`
	Score      float64 `json:"score"`
}

// CoursePair is a directed relation between two courses of one program.
type CoursePair struct {
	First         string   `json:"hoc_phan_1"`
	Relation      string   `json:"quan_he"`
	Second        string   `json:"hoc_phan_2"`
	PrereqsFirst  []string `json:"tien_quyet_hp1,omitempty"`
	PrereqsSecond []string `json:"tien_quyet_hp2,omitempty"`
}

// CourseEntry is one course inside a semester group.
type CourseEntry struct {
	Name     string `json:"ten"`
	Category string `json:"loai"`
	Credits  any    `json:"so_tin_chi"`
}

// SemesterGroup is the courses of one semester, in display order.
type SemesterGroup struct {
	Semester string        `json:"hoc_ky"`
	Courses  []CourseEntry `json:"hoc_phan"`
}

// ProgramDetail is one program with its courses grouped by semester.
type ProgramDetail struct {
	Name        string          `json:"ten_chuong_trinh"`
	Code        string          `json:"ma_chuong_trinh"`
	Department  string          `json:"ten_khoa"`
	Credits     any             `json:"so_tin_chi"`
	Description string          `json:"noi_dung"`
	Semesters   []SemesterGroup `json:"hoc_ky"`
	Totals      map[string]int  `json:"thong_ke"`
	Score       float64         `json:"score"`
}

// CoursePairs is the prerequisite or corequisite structure of one program.
type CoursePairs struct {
	Program string       `json:"ctdt"`
	Pairs   []CoursePair `json:"quan_he_hoc_phan"`
}

// Store exposes the curriculum queries the chat handlers need.
type Store struct {
	q       Querier
	metrics *metrics.Metrics
}

// NewStore builds a Store over any Querier. metrics may be nil.
func NewStore(q Querier, m *metrics.Metrics) *Store {
	return &Store{q: q, metrics: m}
}

func (s *Store) run(ctx context.Context, name, cypher string, params map[string]any) ([]Record, error) {
	start := time.Now()
	records, err := s.q.RunQuery(ctx, cypher, params)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordGraphQuery(name, status, time.Since(start).Seconds())

	return records, err
}

// GraduationAll returns the graduation conditions of every program.
func (s *Store) GraduationAll(ctx context.Context) ([]Record, error) {
	return s.run(ctx, "graduation_all", queryGraduationAll, nil)
}

// GraduationByProgram returns the graduation conditions of the best-matching
// program, or an empty slice when nothing matches.
func (s *Store) GraduationByProgram(ctx context.Context, program string) ([]Record, error) {
	return s.run(ctx, "graduation_by_program", queryGraduationByProgram, map[string]any{"program": program})
}

// LanguageAll returns the language exit requirements of every program.
func (s *Store) LanguageAll(ctx context.Context) ([]Record, error) {
	return s.run(ctx, "language_all", queryLanguageAll, nil)
}

// LanguageByProgram returns the language requirements of one program.
func (s *Store) LanguageByProgram(ctx context.Context, program string) ([]Record, error) {
	return s.run(ctx, "language_by_program", queryLanguageByProgram, map[string]any{"program": program})
}

// DetectCertificate finds the certificate a question asks about.
func DetectCertificate(question string) string {
	lower := strings.ToLower(question)
	for _, cert := range certificateKeywords {
		if strings.Contains(lower, strings.ToLower(cert)) {
			return cert
		}
	}
	return DefaultCertificate
}

// LanguageScore searches the language nodes with the question text and keeps
// only the values of the certificate the question asks about. It returns the
// filtered rows and the detected certificate name.
func (s *Store) LanguageScore(ctx context.Context, question string) ([]CertRequirement, string, error) {
	cert := DetectCertificate(question)

	records, err := s.run(ctx, "language_score", queryLanguageScore, map[string]any{"query": question})
	if err != nil {
		return nil, cert, err
	}

	var out []CertRequirement
	for _, rec := range records {
		info, ok := rec["thong_tin"].(map[string]any)
		if !ok || info == nil {
			continue
		}

		values, ok := info[cert].([]any)
		if !ok || len(values) == 0 {
			continue
		}

		// drop nils and duplicates
		seen := make(map[any]bool)
		var certValues []any
		for _, v := range values {
			if v == nil || seen[v] {
				continue
			}
			seen[v] = true
			certValues = append(certValues, v)
		}
		if len(certValues) == 0 {
			continue
		}

		out = append(out, CertRequirement{
			Program:    asString(rec["thuoc_chuong_trinh"]),
			Language:   asString(rec["lang_type"]),
			CertValues: certValues,
			Score:      asFloat(rec["score"]),
		})
	}

	return out, cert, nil
}

// Framework returns the language proficiency framework rows.
func (s *Store) Framework(ctx context.Context) ([]Record, error) {
	return s.run(ctx, "framework", queryFramework, nil)
}

// categoryOrder fixes the display order when one course carries several
// categories. Project courses come first.
var categoryOrder = []string{
	"HocPhanDoAn",
	"HocPhanDaiCuong",
	"HocPhanTienQuyet",
	"HocPhanSongHanh",
	"HocPhanKeTiep",
	"HocPhanTuDo",
}

var categoryLabel = map[string]string{
	"HocPhanDoAn":      "Học Phần Đồ Án",
	"HocPhanDaiCuong":  "Học Phần Đại Cương",
	"HocPhanTienQuyet": "Học Phần Tiên Quyết",
	"HocPhanSongHanh":  "Học Phần Song Hành",
	"HocPhanKeTiep":    "Học Phần Kế Tiếp",
	"HocPhanTuDo":      "Học Phần Tự Do",
}

var categoryTotalKey = map[string]string{
	"HocPhanDaiCuong":  "tong_dc",
	"HocPhanSongHanh":  "tong_sh",
	"HocPhanTuDo":      "tong_td",
	"HocPhanKeTiep":    "tong_kt",
	"HocPhanTienQuyet": "tong_tq",
	"HocPhanDoAn":      "tong_da",
}

var semesterNumRe = regexp.MustCompile(`(\d+)`)

func semesterKey(name string) int {
	m := semesterNumRe.FindStringSubmatch(name)
	if m == nil {
		return 9999
	}
	n := 0
	for _, c := range m[1] {
		n = n*10 + int(c-'0')
	}
	return n
}

// ProgramDetail returns the best-matching program with its courses grouped
// by semester. One course listed in several categories becomes one entry
// whose category joins the labels. Returns nil when nothing matches.
func (s *Store) ProgramDetail(ctx context.Context, program string) (*ProgramDetail, error) {
	records, err := s.run(ctx, "program_detail", queryProgramDetail, map[string]any{"program": program})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]

	type grouped struct {
		name       string
		credits    any
		semester   string
		categories map[string]bool
	}
	groups := make(map[[2]string]*grouped)

	collect := func(key string) {
		list, _ := rec[key].([]any)
		for _, item := range list {
			course, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name := strings.TrimSpace(asString(course["ten"]))
			if name == "" {
				continue
			}
			semester := asString(course["hoc_ky"])
			if semester == "" {
				semester = "Không rõ học kỳ"
			}
			gk := [2]string{name, semester}
			g, ok := groups[gk]
			if !ok {
				g = &grouped{name: name, semester: semester, categories: make(map[string]bool)}
				groups[gk] = g
			}
			if cat := asString(course["loai"]); cat != "" {
				g.categories[cat] = true
			}
			if g.credits == nil && course["so_tin_chi"] != nil {
				g.credits = course["so_tin_chi"]
			}
		}
	}
	for _, key := range []string{
		"hoc_phan_dai_cuong", "hoc_phan_song_hanh", "hoc_phan_tu_do",
		"hoc_phan_ke_tiep", "hoc_phan_tien_quyet", "hoc_phan_do_an",
	} {
		collect(key)
	}

	totals := make(map[string]int)
	for _, code := range categoryOrder {
		totals[categoryTotalKey[code]] = 0
	}

	bySemester := make(map[string][]CourseEntry)
	for _, g := range groups {
		var labels []string
		for _, code := range categoryOrder {
			if g.categories[code] {
				labels = append(labels, categoryLabel[code])
				totals[categoryTotalKey[code]]++
			}
		}
		category := "Không rõ loại"
		if len(labels) > 0 {
			category = strings.Join(labels, " - ")
		}
		bySemester[g.semester] = append(bySemester[g.semester], CourseEntry{
			Name:     g.name,
			Category: category,
			Credits:  g.credits,
		})
	}

	semesters := make([]string, 0, len(bySemester))
	for name := range bySemester {
		semesters = append(semesters, name)
	}
	sort.Slice(semesters, func(i, j int) bool {
		ki, kj := semesterKey(semesters[i]), semesterKey(semesters[j])
		if ki != kj {
			return ki < kj
		}
		return semesters[i] < semesters[j]
	})

	detail := &ProgramDetail{
		Name:        asString(rec["ten_chuong_trinh"]),
		Code:        asString(rec["ma_chuong_trinh"]),
		Department:  asString(rec["ten_khoa"]),
		Credits:     rec["so_tin_chi"],
		Description: asString(rec["noi_dung"]),
		Totals:      totals,
		Score:       asFloat(rec["score"]),
	}
	for _, name := range semesters {
		courses := bySemester[name]
		sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })
		detail.Semesters = append(detail.Semesters, SemesterGroup{Semester: name, Courses: courses})
	}

	return detail, nil
}

// ProgramList lists every program with code and credit total.
func (s *Store) ProgramList(ctx context.Context) ([]Record, error) {
	return s.run(ctx, "program_list", queryProgramList, nil)
}

// Prerequisites returns the deduplicated prerequisite pairs of one program.
// Returns nil when the program has none or does not match.
func (s *Store) Prerequisites(ctx context.Context, program string) (*CoursePairs, error) {
	records, err := s.run(ctx, "prerequisites", queryPrerequisites, map[string]any{"program": program})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	out := &CoursePairs{Program: asString(records[0]["ten_ctdt"])}
	seen := make(map[[2]string]bool)
	for _, rec := range records {
		first := strings.TrimSpace(asString(rec["hp1"]))
		second := strings.TrimSpace(asString(rec["hp2"]))
		if first == "" || second == "" {
			continue
		}
		key := [2]string{first, second}
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Pairs = append(out.Pairs, CoursePair{
			First:    first,
			Relation: "là học phần tiên quyết của",
			Second:   second,
		})
	}
	return out, nil
}

// Corequisites returns the deduplicated corequisite pairs of one program,
// with the prerequisites of each side. Returns nil when nothing matches.
func (s *Store) Corequisites(ctx context.Context, program string) (*CoursePairs, error) {
	records, err := s.run(ctx, "corequisites", queryCorequisites, map[string]any{"program": program})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	out := &CoursePairs{Program: asString(records[0]["ten_ctdt"])}
	seen := make(map[[2]string]bool)
	for _, rec := range records {
		first := strings.TrimSpace(asString(rec["hp1"]))
		second := strings.TrimSpace(asString(rec["hp2"]))
		if first == "" || second == "" {
			continue
		}
		key := [2]string{first, second}
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Pairs = append(out.Pairs, CoursePair{
			First:         first,
			Relation:      "là học phần song hành với",
			Second:        second,
			PrereqsFirst:  stringList(rec["tien_quyet_hp1"]),
			PrereqsSecond: stringList(rec["tien_quyet_hp2"]),
		})
	}
	return out, nil
}

// EntityCatalog returns every course, program and semester name in the graph.
func (s *Store) EntityCatalog(ctx context.Context) ([]string, error) {
	records, err := s.run(ctx, "entity_catalog", queryEntityCatalog, nil)
	if err != nil {
		return nil, err
	}
	return nameColumn(records), nil
}

// ProgramNames returns only the program names.
func (s *Store) ProgramNames(ctx context.Context) ([]string, error) {
	records, err := s.run(ctx, "program_names", queryProgramNames, nil)
	if err != nil {
		return nil, err
	}
	return nameColumn(records), nil
}

// ResolveProgram maps free text to the best-matching program name, or an
// empty string when the index has no match.
func (s *Store) ResolveProgram(ctx context.Context, text string) (string, error) {
	records, err := s.run(ctx, "resolve_program", queryResolveProgram, map[string]any{"q": text})
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}
	return asString(records[0]["ten"]), nil
}

func nameColumn(records []Record) []string {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		if name := strings.TrimSpace(asString(rec["name"])); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func stringList(v any) []string {
	list, _ := v.([]any)
	var out []string
	for _, item := range list {
		if s := strings.TrimSpace(asString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
