package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dut-ailab/advisor-go/internal/graph"
)

// asJSON renders data for prompt embedding. Falls back to %v so a marshal
// failure never breaks an answer.
func asJSON(data any) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(b)
}

func langDisplayName(langType string) string {
	switch langType {
	case "TiengAnh":
		return "Tiếng Anh"
	case "TiengNhat":
		return "Tiếng Nhật"
	case "TiengPhap":
		return "Tiếng Pháp"
	case "TiengTrung":
		return "Tiếng Trung"
	default:
		return langType
	}
}

// recordList pulls a list of nested maps out of a record field.
func recordList(rec graph.Record, key string) []map[string]any {
	items, _ := rec[key].([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func infoMap(item map[string]any) map[string]any {
	m, _ := item["thong_tin_ngoai_ngu"].(map[string]any)
	return m
}

// infoLine joins the non-empty certificate fields, keys sorted so output is
// stable across runs.
func infoLine(info map[string]any) string {
	keys := make([]string, 0, len(info))
	for k, v := range info {
		if v == nil || fmt.Sprintf("%v", v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, info[k]))
	}
	return strings.Join(parts, ", ")
}

func buildLangText(items []map[string]any) string {
	var b strings.Builder
	for _, item := range items {
		if line := infoLine(infoMap(item)); line != "" {
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}
	return b.String()
}

func filterByLang(items []map[string]any, langType string) []map[string]any {
	var out []map[string]any
	for _, item := range items {
		if lt, _ := item["lang_type"].(string); lt == langType {
			out = append(out, item)
		}
	}
	return out
}

// formatGraduationGeneral builds the campus-wide graduation conditions
// block: decision number, common conditions, language standard per track,
// then only the programs that carry extra conditions of their own.
func formatGraduationGeneral(records []graph.Record) string {
	var decision, common string
	for _, rec := range records {
		if decision == "" {
			if v, _ := rec["Quyet_dinh"].(string); v != "" {
				decision = v
			}
		}
		if common == "" {
			if v, _ := rec["dieu_kien_chung"].(string); v != "" {
				common = v
			}
		}
	}

	// First entry wins per (track, language) so duplicates across programs
	// collapse into one campus-wide standard.
	trackLangs := map[string]map[string]map[string]any{}
	trackOrder := []string{"Cử nhân", "Kỹ sư"}
	langOrder := map[string][]string{}
	for _, rec := range records {
		for _, item := range recordList(rec, "ngoai_ngu_list") {
			track, _ := item["he"].(string)
			lang, _ := item["lang_type"].(string)
			info := infoMap(item)
			if track == "" || len(info) == 0 {
				continue
			}
			if trackLangs[track] == nil {
				trackLangs[track] = map[string]map[string]any{}
			}
			if _, seen := trackLangs[track][lang]; !seen {
				trackLangs[track][lang] = info
				langOrder[track] = append(langOrder[track], lang)
			}
		}
	}

	type extra struct{ name, condition string }
	var extras []extra
	for _, rec := range records {
		cond, _ := rec["dieu_kien_rieng"].(string)
		if cond == "" || strings.EqualFold(cond, "không có yêu cầu riêng.") {
			continue
		}
		name, _ := rec["ten_chuong_trinh"].(string)
		extras = append(extras, extra{name: name, condition: cond})
	}

	var b strings.Builder
	b.WriteString("🎓 **Điều kiện tốt nghiệp chung tại Đại học Bách Khoa**\n\n")
	if decision != "" {
		fmt.Fprintf(&b, "**Căn cứ theo:** %s\n\n", decision)
	}
	b.WriteString("### 1. Điều kiện chung:\n")
	b.WriteString(common + "\n\n")
	b.WriteString("### 2. Chuẩn ngoại ngữ đầu ra:\n\n")

	for _, track := range trackOrder {
		langs, ok := trackLangs[track]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "**Hệ %s:**\n", track)
		for _, lang := range langOrder[track] {
			fmt.Fprintf(&b, "- %s:\n", langDisplayName(lang))
			info := langs[lang]
			keys := make([]string, 0, len(info))
			for k, v := range info {
				if v == nil || fmt.Sprintf("%v", v) == "" {
					continue
				}
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, "   • %s: %v\n", k, info[k])
			}
		}
		b.WriteString("\n")
	}

	if len(extras) > 0 {
		b.WriteString("### 3. Các chương trình có điều kiện riêng:\n\n")
		for _, e := range extras {
			fmt.Fprintf(&b, "- **%s**: %s\n", e.name, e.condition)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// formatLanguageGeneral collapses every program's output language standard
// into one campus-wide view. Both tracks list English only; programs whose
// name marks a Japanese or French curriculum get their own section.
func formatLanguageGeneral(records []graph.Record) string {
	var bachelor, engineer []map[string]any
	special := map[string][]map[string]any{}
	var specialOrder []string

	for _, rec := range records {
		name, _ := rec["ten_chuong_trinh"].(string)
		bachelorItems := recordList(rec, "chuan_ngoai_ngu_cu_nhan")
		engineerItems := recordList(rec, "chuan_ngoai_ngu_ky_su")

		bachelor = append(bachelor, filterByLang(bachelorItems, "TiengAnh")...)
		engineer = append(engineer, filterByLang(engineerItems, "TiengAnh")...)

		var own []map[string]any
		if strings.Contains(name, "Nhật") {
			own = filterByLang(bachelorItems, "TiengNhat")
		}
		if strings.Contains(name, "PFIEV") || strings.Contains(name, "Pháp") {
			own = filterByLang(bachelorItems, "TiengPhap")
		}
		if len(own) > 0 {
			if _, seen := special[name]; !seen {
				specialOrder = append(specialOrder, name)
			}
			special[name] = own
		}
	}

	var b strings.Builder
	b.WriteString("Chuẩn ngoại ngữ đầu ra:\n\n")
	b.WriteString("Hệ Cử nhân:\n\nTiếng Anh:\n")
	b.WriteString(buildLangText(bachelor))
	b.WriteString("\nHệ Kỹ sư:\n\nTiếng Anh:\n")
	b.WriteString(buildLangText(engineer))
	b.WriteString("\nCác chương trình có ngoại ngữ riêng:\n\n")
	for _, name := range specialOrder {
		fmt.Fprintf(&b, "%s:\n", name)
		b.WriteString(buildLangText(special[name]))
		b.WriteString("\n")
	}
	return b.String()
}

// formatLanguageProgram is the single-program variant.
func formatLanguageProgram(rec graph.Record) string {
	name, _ := rec["ten_chuong_trinh"].(string)
	bachelorItems := recordList(rec, "chuan_ngoai_ngu_cu_nhan")
	engineerItems := recordList(rec, "chuan_ngoai_ngu_ky_su")

	bachelorEN := buildLangText(filterByLang(bachelorItems, "TiengAnh"))
	engineerEN := buildLangText(filterByLang(engineerItems, "TiengAnh"))

	var own []map[string]any
	if strings.Contains(name, "Nhật") {
		own = filterByLang(bachelorItems, "TiengNhat")
	}
	if strings.Contains(name, "PFIEV") || strings.Contains(name, "Pháp") {
		own = filterByLang(bachelorItems, "TiengPhap")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Chuẩn ngoại ngữ đầu ra của chương trình %s:\n\n", name)
	b.WriteString("Hệ Cử nhân:\n\nTiếng Anh:\n")
	if bachelorEN == "" {
		b.WriteString("• Chưa có dữ liệu\n")
	} else {
		b.WriteString(bachelorEN)
	}
	b.WriteString("\nHệ Kỹ sư:\n\nTiếng Anh:\n")
	if engineerEN == "" {
		b.WriteString("• Chưa có dữ liệu\n")
	} else {
		b.WriteString(engineerEN)
	}
	if len(own) > 0 {
		b.WriteString("\nNgoại ngữ riêng của chương trình:\n")
		b.WriteString(buildLangText(own))
	}
	return b.String()
}
