package nlu

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			input:    "  Điều Kiện Tốt Nghiệp LÀ GÌ?  ",
			expected: "điều kiện tốt nghiệp là gì?",
		},
		{
			name:     "chuan dau ra becomes dieu kien tot nghiep",
			input:    "chuẩn đầu ra của ngành cơ khí",
			expected: "điều kiện tốt nghiệp của ngành cơ khí",
		},
		{
			name:     "ra truong can gi becomes dieu kien tot nghiep",
			input:    "ra trường cần gì vậy",
			expected: "điều kiện tốt nghiệp vậy",
		},
		{
			name:     "yeu cau tot nghiep becomes dieu kien tot nghiep",
			input:    "yêu cầu tốt nghiệp gồm những gì",
			expected: "điều kiện tốt nghiệp gồm những gì",
		},
		{
			name:     "language standard question collapses to canonical form",
			input:    "Chuẩn ngoại ngữ đầu ra của ngành Công nghệ thông tin?",
			expected: "chuẩn ngoại ngữ đầu ra là gì",
		},
		{
			name:     "canonical form is preserved",
			input:    "chuẩn ngoại ngữ đầu ra là gì",
			expected: "chuẩn ngoại ngữ đầu ra là gì",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "unrelated question passes through",
			input:    "học phần Giải tích 1 có tiên quyết không",
			expected: "học phần giải tích 1 có tiên quyết không",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"chuẩn đầu ra của ngành cơ khí",
		"Chuẩn ngoại ngữ đầu ra của CNTT",
		"điều kiện tốt nghiệp là gì",
		"một câu hỏi bất kỳ",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
