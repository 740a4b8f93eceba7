package graph

import (
	"context"
	"errors"
	"testing"
)

// fakeQuerier returns canned rows keyed by a substring of the cypher text.
type fakeQuerier struct {
	records []Record
	err     error
	gotText string
	gotArgs map[string]any
}

func (f *fakeQuerier) RunQuery(_ context.Context, cypher string, params map[string]any) ([]Record, error) {
	f.gotText = cypher
	f.gotArgs = params
	return f.records, f.err
}

func TestDetectCertificate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		question string
		want     string
	}{
		{"ielts bao nhiêu thì tốt nghiệp", "IELTS"},
		{"toeic 450 đủ chưa", "TOEIC"},
		{"jlpt mức mấy", "JLPT"},
		{"điểm tcf cần đạt", "TCF"},
		{"chuẩn đầu ra ngoại ngữ", "TOEIC"}, // default
	}

	for _, tt := range tests {
		if got := DetectCertificate(tt.question); got != tt.want {
			t.Errorf("DetectCertificate(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestLanguageScore_FiltersToCertificate(t *testing.T) {
	t.Parallel()

	fake := &fakeQuerier{records: []Record{
		{
			"thuoc_chuong_trinh": "Công nghệ thông tin",
			"lang_type":          "TiengAnh",
			"score":              2.5,
			"thong_tin": map[string]any{
				"TOEIC": []any{int64(450), nil, int64(450), int64(600)},
				"IELTS": []any{5.0},
			},
		},
		{
			// no info for the asked certificate, row dropped
			"thuoc_chuong_trinh": "Kỹ thuật cơ khí",
			"lang_type":          "TiengNhat",
			"score":              1.0,
			"thong_tin": map[string]any{
				"JLPT": []any{"N3"},
			},
		},
		{
			"thuoc_chuong_trinh": "Kỹ thuật điện",
			"lang_type":          "TiengAnh",
			"score":              0.8,
			"thong_tin":          nil,
		},
	}}
	store := NewStore(fake, nil)

	rows, cert, err := store.LanguageScore(context.Background(), "toeic bao nhiêu thì ra trường")
	if err != nil {
		t.Fatalf("LanguageScore() error = %v", err)
	}
	if cert != "TOEIC" {
		t.Errorf("cert = %q, want TOEIC", cert)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Program != "Công nghệ thông tin" {
		t.Errorf("Program = %q", rows[0].Program)
	}
	// nils dropped, duplicates collapsed
	if len(rows[0].CertValues) != 2 {
		t.Errorf("CertValues = %v, want 2 distinct values", rows[0].CertValues)
	}
}

func TestProgramDetail_GroupsCoursesBySemester(t *testing.T) {
	t.Parallel()

	fake := &fakeQuerier{records: []Record{{
		"ten_chuong_trinh": "Công nghệ thông tin",
		"ma_chuong_trinh":  "106",
		"ten_khoa":         "Khoa CNTT",
		"so_tin_chi":       int64(150),
		"noi_dung":         "Mô tả",
		"score":            3.2,
		"hoc_phan_dai_cuong": []any{
			map[string]any{"loai": "HocPhanDaiCuong", "ten": "Giải tích 1", "so_tin_chi": int64(3), "hoc_ky": "Học kỳ 1"},
			map[string]any{"loai": "HocPhanDaiCuong", "ten": "Vật lý", "so_tin_chi": int64(2), "hoc_ky": "Học kỳ 2"},
		},
		"hoc_phan_tien_quyet": []any{
			// same course and semester as above, categories must merge
			map[string]any{"loai": "HocPhanTienQuyet", "ten": "Giải tích 1", "so_tin_chi": int64(3), "hoc_ky": "Học kỳ 1"},
		},
		"hoc_phan_song_hanh": []any{},
		"hoc_phan_tu_do":     []any{},
		"hoc_phan_ke_tiep":   []any{},
		"hoc_phan_do_an": []any{
			map[string]any{"loai": "HocPhanDoAn", "ten": "PBL 1", "so_tin_chi": int64(2), "hoc_ky": "Học kỳ 2"},
		},
	}}}
	store := NewStore(fake, nil)

	detail, err := store.ProgramDetail(context.Background(), "công nghệ thông tin")
	if err != nil {
		t.Fatalf("ProgramDetail() error = %v", err)
	}
	if detail == nil {
		t.Fatal("ProgramDetail() = nil")
	}
	if detail.Name != "Công nghệ thông tin" || detail.Code != "106" {
		t.Errorf("header = %q/%q", detail.Name, detail.Code)
	}

	if len(detail.Semesters) != 2 {
		t.Fatalf("got %d semesters, want 2", len(detail.Semesters))
	}
	if detail.Semesters[0].Semester != "Học kỳ 1" {
		t.Errorf("first semester = %q, want Học kỳ 1", detail.Semesters[0].Semester)
	}

	// merged entry carries both category labels
	first := detail.Semesters[0].Courses[0]
	if first.Name != "Giải tích 1" {
		t.Fatalf("first course = %q", first.Name)
	}
	if first.Category != "Học Phần Đại Cương - Học Phần Tiên Quyết" {
		t.Errorf("Category = %q", first.Category)
	}

	if detail.Totals["tong_dc"] != 2 || detail.Totals["tong_tq"] != 1 || detail.Totals["tong_da"] != 1 {
		t.Errorf("Totals = %v", detail.Totals)
	}
}

func TestProgramDetail_NoMatch(t *testing.T) {
	t.Parallel()

	store := NewStore(&fakeQuerier{}, nil)
	detail, err := store.ProgramDetail(context.Background(), "không tồn tại")
	if err != nil {
		t.Fatalf("ProgramDetail() error = %v", err)
	}
	if detail != nil {
		t.Errorf("ProgramDetail() = %+v, want nil", detail)
	}
}

func TestPrerequisites_DeduplicatesPairs(t *testing.T) {
	t.Parallel()

	fake := &fakeQuerier{records: []Record{
		{"ten_ctdt": "CNTT", "hp1": "Giải tích 1", "hp2": "Giải tích 2"},
		{"ten_ctdt": "CNTT", "hp1": "Giải tích 1 ", "hp2": " Giải tích 2"},
		{"ten_ctdt": "CNTT", "hp1": "", "hp2": "Giải tích 2"},
	}}
	store := NewStore(fake, nil)

	got, err := store.Prerequisites(context.Background(), "cntt")
	if err != nil {
		t.Fatalf("Prerequisites() error = %v", err)
	}
	if got.Program != "CNTT" {
		t.Errorf("Program = %q", got.Program)
	}
	if len(got.Pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(got.Pairs))
	}
	if got.Pairs[0].Relation != "là học phần tiên quyết của" {
		t.Errorf("Relation = %q", got.Pairs[0].Relation)
	}
}

func TestCorequisites_CarriesPrerequisiteLists(t *testing.T) {
	t.Parallel()

	fake := &fakeQuerier{records: []Record{
		{
			"ten_ctdt":       "CNTT",
			"hp1":            "Lập trình C",
			"hp2":            "Thực hành C",
			"tien_quyet_hp1": []any{"Nhập môn", nil, ""},
			"tien_quyet_hp2": []any{},
		},
	}}
	store := NewStore(fake, nil)

	got, err := store.Corequisites(context.Background(), "cntt")
	if err != nil {
		t.Fatalf("Corequisites() error = %v", err)
	}
	if len(got.Pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(got.Pairs))
	}
	pair := got.Pairs[0]
	if len(pair.PrereqsFirst) != 1 || pair.PrereqsFirst[0] != "Nhập môn" {
		t.Errorf("PrereqsFirst = %v", pair.PrereqsFirst)
	}
	if len(pair.PrereqsSecond) != 0 {
		t.Errorf("PrereqsSecond = %v", pair.PrereqsSecond)
	}
}

func TestEntityCatalog_SkipsEmptyNames(t *testing.T) {
	t.Parallel()

	fake := &fakeQuerier{records: []Record{
		{"name": "Giải tích 1"},
		{"name": ""},
		{"name": nil},
		{"name": "Công nghệ thông tin"},
	}}
	store := NewStore(fake, nil)

	names, err := store.EntityCatalog(context.Background())
	if err != nil {
		t.Fatalf("EntityCatalog() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("names = %v, want 2 entries", names)
	}
}

func TestStore_PropagatesQueryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	store := NewStore(&fakeQuerier{err: boom}, nil)

	if _, err := store.GraduationAll(context.Background()); !errors.Is(err, boom) {
		t.Errorf("GraduationAll() error = %v, want wrapped %v", err, boom)
	}
	if _, _, err := store.LanguageScore(context.Background(), "toeic"); !errors.Is(err, boom) {
		t.Errorf("LanguageScore() error = %v", err)
	}
}

func TestResolveProgram(t *testing.T) {
	t.Parallel()

	fake := &fakeQuerier{records: []Record{{"ten": "Công nghệ thông tin", "score": 2.0}}}
	store := NewStore(fake, nil)

	got, err := store.ResolveProgram(context.Background(), "cntt")
	if err != nil {
		t.Fatalf("ResolveProgram() error = %v", err)
	}
	if got != "Công nghệ thông tin" {
		t.Errorf("ResolveProgram() = %q", got)
	}
	if fake.gotArgs["q"] != "cntt" {
		t.Errorf("query param = %v", fake.gotArgs)
	}
}
