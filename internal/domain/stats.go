package domain

import (
	"fmt"
	"sort"
)

// MonthRef identifies one monthly data file.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Label formats the month the way the data source presents it.
func (m MonthRef) Label() string {
	return fmt.Sprintf("%d年%02d月", m.Year, m.Month)
}

// Before orders months chronologically.
func (m MonthRef) Before(other MonthRef) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// SortMonthsNewestFirst orders months newest first in place.
func SortMonthsNewestFirst(months []MonthRef) {
	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})
}

// MonthEntry is the wire shape of /api/available-months.
type MonthEntry struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

// PartyStats summarizes party participation over a bill pool.
type PartyStats struct {
	TotalBills                   int            `json:"total_bills"`
	PartyCounts                  map[string]int `json:"party_counts"`
	IndependentParticipationRate float64        `json:"independent_participation_rate"`
}

// Progress classes.
const (
	ProgressFirstReading  = "一讀"
	ProgressCommittee     = "委員會審議"
	ProgressSecondReading = "二讀"
	ProgressThirdReading  = "三讀"
	ProgressOther         = "其他"
)

// ProgressClasses lists progress buckets in display order.
var ProgressClasses = []string{
	ProgressFirstReading,
	ProgressCommittee,
	ProgressSecondReading,
	ProgressThirdReading,
	ProgressOther,
}

// CategoryDefinitions maps short category codes to their full labels.
var CategoryDefinitions = map[string]string{
	"食":  "食(飲食/農產)",
	"衣":  "衣(日常用品)",
	"住":  "住(居住)",
	"行":  "行(交通)",
	"育":  "育(教育/文化/兒少)",
	"樂":  "樂(娛樂)",
	"醫":  "醫(醫療/健康/藥品)",
	"工":  "工(工作/勞務)",
	"商":  "商(商業/金融/資本)",
	"科":  "科(科學/科技)",
	"罰":  "罰(刑罰/處罰)",
	"外":  "外(外交/國際)",
	"防":  "防(國防)",
	"政":  "政(政府/權力分立)",
	"其他": "其他重要議題",
}
