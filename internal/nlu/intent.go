package nlu

import (
	"context"
	"strings"
	"time"

	"github.com/dut-ailab/advisor-go/internal/llm"
	"github.com/dut-ailab/advisor-go/internal/logger"
	"github.com/dut-ailab/advisor-go/internal/metrics"
)

// Intent identifies one question category. The values are the wire labels
// the classification model is asked to echo back.
type Intent string

const (
	IntentGraduationGeneral Intent = "hoi_dieu_kien_tot_nghiep_chung"
	IntentGraduationProgram Intent = "hoi_dieu_kien_tot_nghiep_ctdt"
	IntentLanguageGeneral   Intent = "hoi_chuan_ngoai_ngu_dau_ra_chung"
	IntentLanguageProgram   Intent = "chuan_ngoai_ngu_ctdt"
	IntentLanguageScore     Intent = "hoi_chuan_ngoai_ngu_muc_diem"
	IntentLanguageFramework Intent = "hoi_khung_nang_luc_ngoai_ngu"
	IntentProgramInfo       Intent = "hoi_thong_tin_ctdt"
	IntentProgramList       Intent = "hoi_danh_sach_ctdt"
	IntentPrerequisite      Intent = "hoi_tien_quyet_hoc_phan_ctdt"
	IntentCorequisite       Intent = "hoi_hoc_phan_song_hanh_ctdt"
)

// DefaultIntent is returned when neither the keyword rules nor the model
// recognize the question. Classification never fails.
const DefaultIntent = IntentGraduationGeneral

// AllIntents is the fixed label order used by the classification prompt and
// by response matching.
var AllIntents = []Intent{
	IntentGraduationGeneral,
	IntentGraduationProgram,
	IntentLanguageGeneral,
	IntentLanguageProgram,
	IntentLanguageScore,
	IntentLanguageFramework,
	IntentProgramInfo,
	IntentProgramList,
	IntentPrerequisite,
	IntentCorequisite,
}

var intentDescriptions = map[Intent]string{
	IntentGraduationGeneral: "Hỏi về điều kiện tốt nghiệp chung của toàn trường (không nêu chương trình cụ thể).",
	IntentGraduationProgram: "Hỏi về điều kiện tốt nghiệp hoặc chuẩn đầu ra của một chương trình đào tạo cụ thể.",
	IntentLanguageGeneral:   "Hỏi về chuẩn ngoại ngữ đầu ra chung của toàn trường (không nêu chương trình cụ thể).",
	IntentLanguageProgram:   "Hỏi về chuẩn ngoại ngữ đầu ra của 1 CTĐT cụ thể (có tên CTĐT).",
	IntentLanguageScore:     "Hỏi về mức điểm ngoại ngữ (IELTS, TOEIC, JLPT...) để tốt nghiệp.",
	IntentLanguageFramework: "Hỏi về khung năng lực ngoại ngữ 6 bậc Việt Nam (CEFR Việt Nam).",
	IntentProgramInfo:       "Hỏi về thông tin của một chương trình đào tạo (tên, khoa, tín chỉ, học phần, học kỳ...).",
	IntentProgramList:       "Hỏi danh sách tất cả các chương trình đào tạo.",
	IntentPrerequisite:      "Hỏi về quan hệ tiên quyết của một học phần trong một CTĐT.",
	IntentCorequisite:       "Hỏi về quan hệ song hành của một học phần trong một CTĐT.",
}

// Keyword rule tables, evaluated in order against the normalized question.
// Narrower rules come first: "chuẩn ngoại ngữ đầu ra" contains "chuẩn ngoại
// ngữ", so reordering these would shadow the framework and score rules.
var (
	frameworkKeywords = []string{"khung năng lực", "khung 6 bậc", "các bậc ngoại ngữ"}

	certificateNames = []string{
		"ielts", "toeic", "toefl", "jlpt",
		"cambridge", "nat test", "top j", "delf", "tcf",
	}

	quantityCues = []string{"bao nhiêu", "mức", "điểm"}
)

// Classifier assigns one of the ten intents to a question. Keyword rules
// run first; the language model absorbs the long tail of phrasings; a fixed
// default absorbs everything else.
type Classifier struct {
	completer llm.Completer
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// NewClassifier builds a classifier. completer may be nil, in which case
// questions the rules miss go straight to the default intent.
func NewClassifier(completer llm.Completer, log *logger.Logger, m *metrics.Metrics) *Classifier {
	return &Classifier{completer: completer, logger: log, metrics: m}
}

// Classify maps a question to an intent. The keyword rules look at the
// normalized question; the model fallback sees the original one, because
// normalization deliberately destroys program names.
func (c *Classifier) Classify(ctx context.Context, normalized, original string) Intent {
	start := time.Now()

	if intent, ok := classifyByRules(normalized); ok {
		c.metrics.RecordClassification(string(intent), "rule", time.Since(start).Seconds())
		return intent
	}

	if intent, ok := c.classifyByModel(ctx, original); ok {
		c.metrics.RecordClassification(string(intent), "llm", time.Since(start).Seconds())
		return intent
	}

	c.metrics.RecordClassification(string(DefaultIntent), "default", time.Since(start).Seconds())
	return DefaultIntent
}

func classifyByRules(normalized string) (Intent, bool) {
	q := strings.ToLower(normalized)

	if containsAny(q, frameworkKeywords) {
		return IntentLanguageFramework, true
	}
	if containsAny(q, certificateNames) && containsAny(q, quantityCues) {
		return IntentLanguageScore, true
	}
	if strings.Contains(q, "điều kiện tốt nghiệp") {
		if strings.Contains(q, "của") {
			return IntentGraduationProgram, true
		}
		return IntentGraduationGeneral, true
	}
	if strings.Contains(q, "chuẩn ngoại ngữ") {
		if strings.Contains(q, "của") {
			return IntentLanguageProgram, true
		}
		return IntentLanguageGeneral, true
	}
	return "", false
}

func (c *Classifier) classifyByModel(ctx context.Context, question string) (Intent, bool) {
	if c.completer == nil {
		return "", false
	}

	response, err := c.completer.Complete(ctx, classificationPrompt(question), 0)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("intent classification fallback failed")
		}
		return "", false
	}

	intent, ok := matchIntentLabel(response)
	if !ok && c.logger != nil {
		c.logger.WithField("response", response).Warn("classification response carries no known label")
	}
	return intent, ok
}

// matchIntentLabel returns the first known label contained in the response.
// Containment instead of equality tolerates models that wrap the label in
// prose or punctuation.
func matchIntentLabel(response string) (Intent, bool) {
	text := strings.ToLower(response)
	for _, intent := range AllIntents {
		if strings.Contains(text, string(intent)) {
			return intent, true
		}
	}
	return "", false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
