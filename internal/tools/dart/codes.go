package dart

// Report and event lookups accept a Korean code name and resolve it to the
// OpenDART API endpoint serving that disclosure. The tables are static; an
// unknown name is rejected before any network call.

var reportEndpoints = map[string]string{
	"증자":          "irdsSttus",
	"배당":          "alotMatter",
	"자기주식":        "tesstkAcqsDspsSttus",
	"최대주주":        "hyslrSttus",
	"최대주주변동":      "hyslrChgSttus",
	"소액주주":        "mrhlSttus",
	"임원":          "exctvSttus",
	"직원":          "empSttus",
	"임원개인보수":      "hmvAuditIndvdlBySttus",
	"임원전체보수":      "hmvAuditAllSttus",
	"개인별보수":       "indvdlByPay",
	"타법인출자":       "otrCprInvstmntSttus",
	"주식총수":        "stockTotqySttus",
	"회계감사":        "accnutAdtorNmNdAdtOpinion",
	"감사용역":        "adtServcCnclsSttus",
	"회계감사용역계약":    "accnutAdtorNonAdtServcCnclsSttus",
	"사외이사":        "outcmpnyDrctrNdChangeSttus",
	"신종자본증권미상환":   "newCaplScritsNrdmpBlce",
	"조건부자본증권미상환":  "cndlCaplScritsNrdmpBlce",
	"미등기임원보수":     "unrstExctvMendngSttus",
	"회사채미상환":      "cprndNrdmpBlce",
	"단기사채미상환":     "srtpdPsndbtNrdmpBlce",
	"기업어음미상환":     "entrprsBillScritsNrdmpBlce",
	"채무증권발행":      "detScritsIsuAcmslt",
	"사모자금사용":      "prvsrpCptalUseDtls",
	"공모자금사용":      "pssrpCptalUseDtls",
	"임원전체보수승인":    "drctrAdtAllMendngSttusGmtsckConfmAmount",
	"임원전체보수유형":    "drctrAdtAllMendngSttusMendngPymntamtTyCl",
}

var eventEndpoints = map[string]string{
	"부도발생":          "dfOcr",
	"영업정지":          "bsnSp",
	"회생절차":          "ctrcvsBgrq",
	"해산사유":          "dsRsOcr",
	"유상증자":          "piicDecsn",
	"무상증자":          "fricDecsn",
	"유무상증자":         "pifricDecsn",
	"감자":            "crDecsn",
	"관리절차개시":        "bnkMngtPcbg",
	"소송":            "lwstLg",
	"해외상장결정":        "ovLstDecsn",
	"해외상장폐지결정":      "ovDlstDecsn",
	"해외상장":          "ovLst",
	"해외상장폐지":        "ovDlst",
	"전환사채발행":        "cvbdIsDecsn",
	"신주인수권부사채발행":    "bdwtIsDecsn",
	"교환사채발행":        "exbdIsDecsn",
	"관리절차중단":        "bnkMngtPcsp",
	"조건부자본증권발행":     "wdCocobdIsDecsn",
	"자산양수도":         "astInhtrfEtcPtbkOpt",
	"타법인증권양도":       "otcprStkInvscrTrfDecsn",
	"유형자산양도":        "tgastTrfDecsn",
	"유형자산양수":        "tgastInhDecsn",
	"타법인증권양수":       "otcprStkInvscrInhDecsn",
	"영업양도":          "bsnTrfDecsn",
	"영업양수":          "bsnInhDecsn",
	"자기주식취득신탁계약해지":  "tsstkAqTrctrCcDecsn",
	"자기주식취득신탁계약체결":  "tsstkAqTrctrCnsDecsn",
	"자기주식처분":        "tsstkDpDecsn",
	"자기주식취득":        "tsstkAqDecsn",
	"주식교환":          "stkExtrDecsn",
	"회사분할합병":        "cmpDvmgDecsn",
	"회사분할":          "cmpDvDecsn",
	"회사합병":          "cmpMgDecsn",
	"사채권양수":         "stkrtbdInhDecsn",
	"사채권양도결정":       "stkrtbdTrfDecsn",
}
