package graph

// Cypher texts for the curriculum graph. Every query is parameterized; user
// text only ever travels through $-parameters. Node labels and property names
// follow the Vietnamese schema of the knowledge graph
// (ChuongTrinhDaoTao = degree program, HocPhan* = course categories,
// NgoaiNgu/Tieng* = foreign-language requirement nodes, HocKy = semester).

// queryGraduationAll lists graduation conditions for every program, with the
// attached foreign-language requirements.
const queryGraduationAll = `
CALL db.index.fulltext.queryNodes('ChuongTrinhDaoTao_full_text', '*')
YIELD node AS ctdt, score

OPTIONAL MATCH (dk:DieuKienTotNghiep)-[r:ĐOI_VOI]->(ctdt)

OPTIONAL MATCH (ctdt)-[rel:CO_CHUAN_NGOAI_NGU_DAU_RA_LA|CO_CHUAN_NGOAI_NGU_DAU_RA_TOI_THIEU_LA]->(lang)
WHERE lang IS NOT NULL

WITH ctdt, dk, r, score,
    collect({
        he: rel.he,
        lang_type: HEAD(labels(lang)),
        thong_tin_ngoai_ngu: CASE HEAD(labels(lang))
            WHEN 'TiengAnh' THEN {
                bac: lang.bac,
                Cambridge: lang.Cambridge,
                chung_chi: lang.chung_chi,
                IELTS: lang.IELTS,
                TOEFL_iBT: lang.TOEFL_iBT,
                TOEFL_ITP: lang.TOEFL_ITP,
                TOEIC: lang.TOEIC
            }
            WHEN 'TiengNhat' THEN {
                bac: lang.bac,
                chung_chi: lang.chung_chi,
                JLPT: lang.JLPT,
                NAT_TEST: lang.NAT_TEST,
                TOP_J: lang.TOP_J
            }
            WHEN 'TiengPhap' THEN {
                bac: lang.bac,
                chung_chi: lang.chung_chi,
                DELF_va_DALF: lang.DELF_va_DALF,
                TCF: lang.TCF
            }
            ELSE NULL
        END
    }) AS ngoai_ngu_list

RETURN
    ctdt.ten_chuong_trinh AS ten_chuong_trinh,
    dk.dieu_kien_chung AS dieu_kien_chung,
    coalesce(r.dieu_kien_rieng, 'Không có yêu cầu riêng.') AS dieu_kien_rieng,
    [x IN ngoai_ngu_list WHERE x.lang_type IS NOT NULL] AS ngoai_ngu_list,
    score
ORDER BY score DESC, ten_chuong_trinh`

// queryGraduationByProgram returns the graduation conditions of the single
// best-matching program, split by degree track (bachelor / engineer).
const queryGraduationByProgram = `
CALL db.index.fulltext.queryNodes('ChuongTrinhDaoTao_full_text', $program)
YIELD node AS ctdt, score
WHERE toLower(ctdt.ten_chuong_trinh) CONTAINS toLower($program)

OPTIONAL MATCH (dk:DieuKienTotNghiep)-[r:ĐOI_VOI]->(ctdt)

OPTIONAL MATCH (ctdt)-[rel:CO_CHUAN_NGOAI_NGU_DAU_RA_LA]->(lang)

WITH ctdt, dk, r, score,
    collect({
        he: rel.he,
        lang_type: HEAD(labels(lang)),
        thong_tin_ngoai_ngu: CASE HEAD(labels(lang))
            WHEN 'TiengAnh' THEN {
                bac: lang.bac,
                Cambridge: lang.Cambridge,
                chung_chi: lang.chung_chi,
                IELTS: lang.IELTS,
                TOEFL_iBT: lang.TOEFL_iBT,
                TOEFL_ITP: lang.TOEFL_ITP,
                TOEIC: lang.TOEIC
            }
            WHEN 'TiengNhat' THEN {
                bac: lang.bac,
                chung_chi: lang.chung_chi,
                JLPT: lang.JLPT,
                NAT_TEST: lang.NAT_TEST,
                TOP_J: lang.TOP_J
            }
            WHEN 'TiengPhap' THEN {
                bac: lang.bac,
                chung_chi: lang.chung_chi,
                DELF_va_DALF: lang.DELF_va_DALF,
                TCF: lang.TCF
            }
            ELSE NULL
        END
    }) AS ngoai_ngu_list

RETURN
    ctdt.ten_chuong_trinh AS ten_chuong_trinh,
    dk.dieu_kien_chung AS dieu_kien_chung,
    coalesce(r.dieu_kien_rieng, 'Không có yêu cầu riêng.') AS dieu_kien_rieng,
    [x IN ngoai_ngu_list WHERE x.he = 'Cử nhân'] AS chuan_ngoai_ngu_cu_nhan,
    [x IN ngoai_ngu_list WHERE x.he = 'Kỹ sư'] AS chuan_ngoai_ngu_ky_su,
    score
ORDER BY score DESC
LIMIT 1`

// queryLanguageAll lists the foreign-language exit requirements of every
// program, split by degree track.
const queryLanguageAll = `
MATCH (ctdt:ChuongTrinhDaoTao)

OPTIONAL MATCH (ctdt)-[rel:CO_CHUAN_NGOAI_NGU_DAU_RA_LA|CO_CHUAN_NGOAI_NGU_DAU_RA_TOI_THIEU_LA]->(lang)
WHERE lang IS NOT NULL

WITH ctdt,
    collect({
        he: rel.he,
        lang_type: HEAD(labels(lang)),
        thong_tin_ngoai_ngu: CASE HEAD(labels(lang))
            WHEN 'TiengAnh' THEN {
                bac: lang.bac,
                Cambridge: lang.Cambridge,
                chung_chi: lang.chung_chi,
                IELTS: lang.IELTS,
                TOEFL_iBT: lang.TOEFL_iBT,
                TOEFL_ITP: lang.TOEFL_ITP,
                TOEIC: lang.TOEIC
            }
            WHEN 'TiengNhat' THEN {
                bac: lang.bac,
                chung_chi: lang.chung_chi,
                JLPT: lang.JLPT,
                NAT_TEST: lang.NAT_TEST,
                TOP_J: lang.TOP_J
            }
            WHEN 'TiengPhap' THEN {
                bac: lang.bac,
                chung_chi: lang.chung_chi,
                DELF_va_DALF: lang.DELF_va_DALF,
                TCF: lang.TCF
            }
            ELSE NULL
        END
    }) AS ngoai_ngu_list

RETURN
    ctdt.ten_chuong_trinh AS ten_chuong_trinh,
    [x IN ngoai_ngu_list WHERE x.lang_type IS NOT NULL AND x.he = 'Cử nhân'] AS chuan_ngoai_ngu_cu_nhan,
    [x IN ngoai_ngu_list WHERE x.lang_type IS NOT NULL AND x.he = 'Kỹ sư'] AS chuan_ngoai_ngu_ky_su
ORDER BY ten_chuong_trinh`

// queryLanguageByProgram returns the language requirements of the single
// best-matching program.
const queryLanguageByProgram = `
CALL db.index.fulltext.queryNodes('ChuongTrinhDaoTao_full_text', $program)
YIELD node AS ctdt, score
WHERE toLower(ctdt.ten_chuong_trinh) CONTAINS toLower($program)

OPTIONAL MATCH (ctdt)-[rel:CO_CHUAN_NGOAI_NGU_DAU_RA_LA|CO_CHUAN_NGOAI_NGU_DAU_RA_TOI_THIEU_LA]->(lang)

WITH ctdt, score,
    collect({
        he: rel.he,
        lang_type: HEAD(labels(lang)),
        thong_tin_ngoai_ngu: CASE HEAD(labels(lang))
            WHEN 'TiengAnh' THEN {
                bac: lang.bac,
                Cambridge: lang.Cambridge,
                chung_chi: lang.chung_chi,
                IELTS: lang.IELTS,
                TOEFL_iBT: lang.TOEFL_iBT,
                TOEFL_ITP: lang.TOEFL_ITP,
                TOEIC: lang.TOEIC
            }
            WHEN 'TiengNhat' THEN {
                bac: lang.bac,
                chung_chi: lang.chung_chi,
                JLPT: lang.JLPT,
                NAT_TEST: lang.NAT_TEST,
                TOP_J: lang.TOP_J
            }
            WHEN 'TiengPhap' THEN {
                bac: lang.bac,
                chung_chi: lang.chung_chi,
                DELF_va_DALF: lang.DELF_va_DALF,
                TCF: lang.TCF
            }
            ELSE NULL
        END
    }) AS ngoai_ngu_list

RETURN
    ctdt.ten_chuong_trinh AS ten_chuong_trinh,
    [x IN ngoai_ngu_list WHERE x.he = 'Cử nhân' AND x.lang_type IS NOT NULL] AS chuan_ngoai_ngu_cu_nhan,
    [x IN ngoai_ngu_list WHERE x.he = 'Kỹ sư' AND x.lang_type IS NOT NULL] AS chuan_ngoai_ngu_ky_su,
    score
ORDER BY score DESC
LIMIT 1`

// queryLanguageScore runs a fulltext search over the language nodes and
// returns, per program and degree track, the grouped certificate values.
// Certificate filtering happens in Go.
const queryLanguageScore = `
CALL db.index.fulltext.queryNodes('NgoaiNgu_fulltext', $query)
YIELD node AS lang, score

OPTIONAL MATCH (ctdt:ChuongTrinhDaoTao)
    -[rel:CO_CHUAN_NGOAI_NGU_DAU_RA_LA|CO_CHUAN_NGOAI_NGU_DAU_RA_TOI_THIEU_LA]->(lang)

WITH lang, ctdt, rel, score,
    HEAD(labels(lang)) AS lang_type,
    ctdt.ten_chuong_trinh AS thuoc_chuong_trinh,
    rel.he AS he
WHERE thuoc_chuong_trinh IS NOT NULL

WITH thuoc_chuong_trinh, he, score, lang_type, COLLECT(lang) AS langs

WITH thuoc_chuong_trinh, he, score, lang_type,
    CASE lang_type
        WHEN 'TiengAnh' THEN {
            bac: [l IN langs | l.bac],
            Cambridge: [l IN langs | l.Cambridge],
            chung_chi: [l IN langs | l.chung_chi],
            IELTS: [l IN langs | l.IELTS],
            TOEFL_iBT: [l IN langs | l.TOEFL_iBT],
            TOEFL_ITP: [l IN langs | l.TOEFL_ITP],
            TOEIC: [l IN langs | l.TOEIC]
        }
        WHEN 'TiengNhat' THEN {
            bac: [l IN langs | l.bac],
            chung_chi: [l IN langs | l.chung_chi],
            JLPT: [l IN langs | l.JLPT],
            NAT_TEST: [l IN langs | l.NAT_TEST],
            TOP_J: [l IN langs | l.TOP_J]
        }
        WHEN 'TiengPhap' THEN {
            bac: [l IN langs | l.bac],
            chung_chi: [l IN langs | l.chung_chi],
            DELF_va_DALF: [l IN langs | l.DELF_va_DALF],
            TCF: [l IN langs | l.TCF]
        }
        ELSE NULL
    END AS thong_tin

RETURN
    thuoc_chuong_trinh,
    he,
    score,
    lang_type,
    thong_tin
ORDER BY score DESC`

// queryFramework returns the national foreign-language proficiency framework
// with its per-language level tables.
const queryFramework = `
CALL db.index.fulltext.queryNodes('ft_khung_nang_luc', 'khung năng lực ngoại ngữ')
YIELD node AS khung, score
OPTIONAL MATCH (khung)-[:BAO_GOM]->(lang)
WITH khung, score, collect(lang) AS langs

UNWIND langs AS l
WITH khung, score, HEAD(labels(l)) AS lang_type, l
WITH khung, score, lang_type, collect(l) AS group_langs

WITH khung, score, collect(
    CASE lang_type
        WHEN 'TiengAnh' THEN {
            lang_type: lang_type,
            thong_tin: {
                bac: [x IN group_langs | x.bac],
                Cambridge: [x IN group_langs | x.Cambridge],
                chung_chi: [x IN group_langs | x.chung_chi],
                IELTS: [x IN group_langs | x.IELTS],
                TOEFL_iBT: [x IN group_langs | x.TOEFL_iBT],
                TOEFL_ITP: [x IN group_langs | x.TOEFL_ITP],
                TOEIC: [x IN group_langs | x.TOEIC]
            }
        }
        WHEN 'TiengNhat' THEN {
            lang_type: lang_type,
            thong_tin: {
                bac: [x IN group_langs | x.bac],
                chung_chi: [x IN group_langs | x.chung_chi],
                JLPT: [x IN group_langs | x.JLPT],
                NAT_TEST: [x IN group_langs | x.NAT_TEST],
                TOP_J: [x IN group_langs | x.TOP_J]
            }
        }
        WHEN 'TiengPhap' THEN {
            lang_type: lang_type,
            thong_tin: {
                bac: [x IN group_langs | x.bac],
                chung_chi: [x IN group_langs | x.chung_chi],
                DELF_va_DALF: [x IN group_langs | x.DELF_va_DALF],
                TCF: [x IN group_langs | x.TCF]
            }
        }
        WHEN 'TiengTrung' THEN {
            lang_type: lang_type,
            thong_tin: {
                bac: [x IN group_langs | x.bac],
                chung_chi: [x IN group_langs | x.chung_chi],
                HSK: [x IN group_langs | x.HSK],
                TOCFL: [x IN group_langs | x.TOCFL]
            }
        }
        ELSE {
            lang_type: lang_type,
            thong_tin: {
                bac: [x IN group_langs | x.bac],
                chung_chi: [x IN group_langs | x.chung_chi]
            }
        }
    END
) AS cac_ngon_ngu

RETURN {
    khung: {khai_niem: khung.khai_niem},
    cac_ngon_ngu: [nn IN cac_ngon_ngu WHERE nn IS NOT NULL],
    score: score
} AS info
ORDER BY score DESC`

// queryProgramDetail returns one program with its department, description and
// every course grouped by category and semester.
const queryProgramDetail = `
CALL db.index.fulltext.queryNodes('ChuongTrinhDaoTao_full_text', $program)
YIELD node AS ctdt, score
WHERE toLower(ctdt.ten_chuong_trinh) CONTAINS toLower($program)

OPTIONAL MATCH (ctdt)-[:THUOC]->(k:Khoa)

OPTIONAL MATCH (hpdc:HocPhanDaiCuong)-[:THUOC]->(ctdt)
OPTIONAL MATCH (hpdc)-[:SE_HOC_TRONG]->(hky_dc:HocKy)
WITH ctdt, k, score,
    collect(DISTINCT {
        loai: 'HocPhanDaiCuong',
        ten: hpdc.ten_mon,
        so_tin_chi: hpdc.so_tin_chi,
        hoc_ky: hky_dc.ten_hoc_ky
    }) AS ds_dc

OPTIONAL MATCH (hpsh:HocPhanSongHanh)-[:THUOC]->(ctdt)
OPTIONAL MATCH (hpsh)-[:SE_HOC_TRONG]->(hky_sh:HocKy)
WITH ctdt, k, score, ds_dc,
    collect(DISTINCT {
        loai: 'HocPhanSongHanh',
        ten: hpsh.ten_mon,
        so_tin_chi: hpsh.so_tin_chi,
        hoc_ky: hky_sh.ten_hoc_ky
    }) AS ds_sh

OPTIONAL MATCH (hptd:HocPhanTuDo)-[:THUOC]->(ctdt)
OPTIONAL MATCH (hptd)-[:SE_HOC_TRONG]->(hky_td:HocKy)
WITH ctdt, k, score, ds_dc, ds_sh,
    collect(DISTINCT {
        loai: 'HocPhanTuDo',
        ten: hptd.ten_mon,
        so_tin_chi: hptd.so_tin_chi,
        hoc_ky: hky_td.ten_hoc_ky
    }) AS ds_td

OPTIONAL MATCH (hpkt:HocPhanKeTiep)-[:THUOC]->(ctdt)
OPTIONAL MATCH (hpkt)-[:SE_HOC_TRONG]->(hky_kt:HocKy)
WITH ctdt, k, score, ds_dc, ds_sh, ds_td,
    collect(DISTINCT {
        loai: 'HocPhanKeTiep',
        ten: hpkt.ten_mon,
        so_tin_chi: hpkt.so_tin_chi,
        hoc_ky: hky_kt.ten_hoc_ky
    }) AS ds_kt

OPTIONAL MATCH (hptq:HocPhanTienQuyet)-[:THUOC]->(ctdt)
OPTIONAL MATCH (hptq)-[:SE_HOC_TRONG]->(hky_tq:HocKy)
WITH ctdt, k, score, ds_dc, ds_sh, ds_td, ds_kt,
    collect(DISTINCT {
        loai: 'HocPhanTienQuyet',
        ten: hptq.ten_mon,
        so_tin_chi: hptq.so_tin_chi,
        hoc_ky: hky_tq.ten_hoc_ky
    }) AS ds_tq

OPTIONAL MATCH (hpdo)-[:THUOC]->(ctdt)
WHERE hpdo.ten_mon IS NOT NULL AND toUpper(hpdo.ten_mon) CONTAINS 'PBL'
OPTIONAL MATCH (hpdo)-[:SE_HOC_TRONG]->(hky_do:HocKy)
WITH ctdt, k, score, ds_dc, ds_sh, ds_td, ds_kt, ds_tq,
    collect(DISTINCT {
        loai: 'HocPhanDoAn',
        ten: hpdo.ten_mon,
        so_tin_chi: hpdo.so_tin_chi,
        hoc_ky: hky_do.ten_hoc_ky
    }) AS ds_da

RETURN
    ctdt.ten_chuong_trinh AS ten_chuong_trinh,
    coalesce(ctdt.ma_chuong_trinh, '') AS ma_chuong_trinh,
    ctdt.noi_dung AS noi_dung,
    ctdt.tong_so_tin_chi_yeu_cau AS so_tin_chi,
    k.ten_khoa AS ten_khoa,
    ds_dc AS hoc_phan_dai_cuong,
    ds_sh AS hoc_phan_song_hanh,
    ds_td AS hoc_phan_tu_do,
    ds_kt AS hoc_phan_ke_tiep,
    ds_tq AS hoc_phan_tien_quyet,
    ds_da AS hoc_phan_do_an,
    score
ORDER BY score DESC, ten_chuong_trinh
LIMIT 1`

// queryProgramList lists every program with its code and credit total.
const queryProgramList = `
MATCH (ct:ChuongTrinhDaoTao)
RETURN
    ct.ten_chuong_trinh AS ten_chuong_trinh,
    ct.ma_chuong_trinh AS ma_chuong_trinh,
    ct.tong_so_tin_chi_yeu_cau AS tong_so_tin_chi`

// queryPrerequisites returns every prerequisite edge inside one program.
const queryPrerequisites = `
CALL db.index.fulltext.queryNodes('ChuongTrinhDaoTao_full_text', $program)
YIELD node AS ctdt, score
WHERE toLower(ctdt.ten_chuong_trinh) CONTAINS toLower($program)

MATCH (hp1)-[:THUOC]->(ctdt)
MATCH (hp1)-[:LA_HOC_PHAN_TIEN_QUYET_CUA]->(hp2)
MATCH (hp2)-[:THUOC]->(ctdt)

RETURN DISTINCT
    ctdt.ten_chuong_trinh AS ten_ctdt,
    hp1.ten_mon AS hp1,
    hp2.ten_mon AS hp2
ORDER BY hp1, hp2`

// queryCorequisites returns every corequisite pair inside one program,
// together with the prerequisites of both courses.
const queryCorequisites = `
CALL db.index.fulltext.queryNodes('ChuongTrinhDaoTao_full_text', $program)
YIELD node AS ctdt
WHERE toLower(ctdt.ten_chuong_trinh) CONTAINS toLower($program)

MATCH (hp1)-[:THUOC]->(ctdt)
MATCH (hp1)-[:LA_HOC_PHAN_SONG_HANH_VOI]->(hp2)
MATCH (hp2)-[:THUOC]->(ctdt)

OPTIONAL MATCH (hp1)-[:LA_HOC_PHAN_TIEN_QUYET_CUA]->(hp3)
OPTIONAL MATCH (hp2)-[:LA_HOC_PHAN_TIEN_QUYET_CUA]->(hp4)

WITH DISTINCT
    ctdt, hp1, hp2,
    collect(DISTINCT hp3.ten_mon) AS tien_quyet_hp1,
    collect(DISTINCT hp4.ten_mon) AS tien_quyet_hp2

RETURN
    ctdt.ten_chuong_trinh AS ten_ctdt,
    hp1.ten_mon AS hp1,
    hp2.ten_mon AS hp2,
    tien_quyet_hp1,
    tien_quyet_hp2
ORDER BY hp1, hp2`

// queryEntityCatalog collects every course, program and semester name known
// to the graph. The extractor hands this list to the LLM prompt and to the
// fuzzy name index.
const queryEntityCatalog = `
MATCH (c:HocPhanTienQuyet) RETURN c.ten_mon AS name
UNION
MATCH (c:HocPhanDaiCuong) RETURN c.ten_mon AS name
UNION
MATCH (c:HocPhanKeTiep) RETURN c.ten_mon AS name
UNION
MATCH (c:HocPhanSongHanh) RETURN c.ten_mon AS name
UNION
MATCH (p:ChuongTrinhDaoTao) RETURN p.ten_chuong_trinh AS name
UNION
MATCH (s:HocKy) RETURN s.ten_hoc_ky AS name`

// queryProgramNames lists only the program names, for disambiguating course
// names from program names.
const queryProgramNames = `
MATCH (p:ChuongTrinhDaoTao)
RETURN p.ten_chuong_trinh AS name
ORDER BY name`

// queryResolveProgram maps free text to the best-matching program name.
const queryResolveProgram = `
CALL db.index.fulltext.queryNodes('ChuongTrinhDaoTao_full_text', $q)
YIELD node, score
RETURN node.ten_chuong_trinh AS ten, score
ORDER BY score DESC
LIMIT 1`
