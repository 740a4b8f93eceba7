package nlu

import (
	"fmt"
	"strings"
)

// classificationPrompt enumerates every label with its description and asks
// for the bare label back. Sent with temperature 0; the response is still
// matched defensively in matchIntentLabel.
func classificationPrompt(question string) string {
	var b strings.Builder
	b.WriteString("Phân loại intent câu hỏi học vụ vào 1 trong các intent sau:\n\n")
	for _, intent := range AllIntents {
		fmt.Fprintf(&b, "%s: %s\n", intent, intentDescriptions[intent])
	}
	b.WriteString("\nChỉ trả về đúng mã intent.\n\n")
	fmt.Fprintf(&b, "Câu hỏi: \"%s\"\n", question)
	return b.String()
}

// extractionPrompt embeds the full entity catalog and demands a single JSON
// object. The disambiguation rules are stated in the prompt because program
// and course catalogs overlap lexically; extractLLM re-checks them anyway.
func extractionPrompt(catalog []string, question string) string {
	var b strings.Builder
	b.WriteString("Bạn là hệ thống trích xuất thực thể.\n\n")
	b.WriteString("Danh sách thực thể:\n")
	for _, name := range catalog {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	fmt.Fprintf(&b, "\nCâu hỏi:\n\"%s\"\n\n", question)
	b.WriteString("Quy tắc:\n")
	b.WriteString("- Chỉ chọn tên có trong danh sách thực thể.\n")
	b.WriteString("- Mỗi tên chỉ được gán cho đúng một trường.\n")
	b.WriteString("- Tên trùng với một chương trình đào tạo KHÔNG được đặt vào course_name.\n\n")
	b.WriteString("Trả về JSON đúng định dạng, KHÔNG markdown:\n\n")
	b.WriteString("{\n")
	b.WriteString("\"program_name\": \"... hoặc null\",\n")
	b.WriteString("\"course_name\": \"... hoặc null\",\n")
	b.WriteString("\"semester_name\": \"... hoặc null\"\n")
	b.WriteString("}\n")
	return b.String()
}
