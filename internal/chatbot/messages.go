package chatbot

// User-facing fallback messages, one per intent family. These are returned
// verbatim instead of invoking the renderer, so the model never gets a
// chance to hallucinate content for facts the graph does not hold.
const (
	msgProgramUnresolved = "Xin lỗi, mình chưa xác định được chương trình đào tạo bạn muốn hỏi. Bạn vui lòng nêu rõ tên chương trình nhé."

	msgNoGraduationData        = "Hiện chưa có dữ liệu điều kiện tốt nghiệp trong hệ thống."
	msgNoGraduationForProgram  = "Xin lỗi, tôi không tìm thấy thông tin về điều kiện tốt nghiệp của chương trình này."
	msgNoLanguageData          = "Hiện tại tôi chưa tìm thấy thông tin chuẩn ngoại ngữ đầu ra trong hệ thống."
	msgNoLanguageForProgram    = "Xin lỗi, tôi không tìm thấy thông tin về chuẩn ngoại ngữ đầu ra của chương trình này."
	msgNoScoreData             = "Mình không tìm thấy thông tin về mức điểm/chứng chỉ ngoại ngữ phù hợp cho câu hỏi này."
	msgNoFrameworkData         = "Mình không tìm thấy thông tin về khung năng lực ngoại ngữ."
	msgNoProgramInfo           = "Xin lỗi, tôi không tìm thấy thông tin về chương trình đào tạo này."
	msgNoProgramList           = "Xin lỗi, tôi không tìm thấy danh sách chương trình đào tạo nào."
	msgNoPrerequisiteRelations = "Mình không tìm thấy quan hệ tiên quyết nào phù hợp với câu hỏi của bạn. Có thể tên học phần hoặc chương trình đào tạo chưa chính xác."
	msgNoCorequisiteRelations  = "Mình không tìm thấy quan hệ học phần song hành phù hợp với câu hỏi của bạn. Có thể tên học phần hoặc chương trình đào tạo chưa chính xác."
)
