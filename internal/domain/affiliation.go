package domain

// Affiliation is the institutional or party origin of a bill.
type Affiliation string

const (
	Executive    Affiliation = "行政院"
	Judicial     Affiliation = "司法院"
	KMT          Affiliation = "中國國民黨"
	DPP          Affiliation = "民主進步黨"
	TPP          Affiliation = "台灣民眾黨"
	PartyUnknown             = "未知黨派"
	PartyNone                = "無黨籍"
)

// Affiliations lists the closed set of comparison groups in display order.
var Affiliations = []Affiliation{Executive, Judicial, DPP, KMT, TPP}

// ParseAffiliation resolves a label to a known affiliation.
func ParseAffiliation(label string) (Affiliation, bool) {
	for _, a := range Affiliations {
		if string(a) == label {
			return a, true
		}
	}
	return "", false
}

// Institutional reports whether the affiliation is a branch of government
// rather than a party.
func (a Affiliation) Institutional() bool {
	return a == Executive || a == Judicial
}

// Display sentinels.
const (
	NoneText        = "無"
	MissingArticle  = "此版本無相關條文"
	UntitledArticle = "條文"
	UnknownBill     = "未知法案"
	NoColumn        = "--"
)
