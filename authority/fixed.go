package authority

import (
	"fmt"
	"time"

	"github.com/miku/marc2ld/dateutil"
)

// fixedMinLength covers positions 00-31, the last one we read.
const fixedMinLength = 32

// Fixed holds the fixed length data elements of field 008. Single character
// codes are kept as strings, "|" meaning no attempt to code.
//
// See: http://www.loc.gov/marc/authority/concise/ad008.html
type Fixed struct {
	Entered               time.Time `json:"entered"`                // 00-05
	GeographicSubdivision string    `json:"geographic_subdivision"` // 06
	RomanizationScheme    string    `json:"romanization_scheme"`    // 07
	Languages             []string  `json:"languages,omitempty"`    // 08
	Kind                  string    `json:"kind"`                   // 09
	Rules                 string    `json:"rules"`                  // 10
	HeadingSystem         string    `json:"heading_system"`         // 11
	SeriesType            string    `json:"series_type"`            // 12
	SeriesNumbered        string    `json:"series_numbered"`        // 13
	MainEntry             bool      `json:"main_entry"`             // 14, heading usable as 1XX/7XX
	SubjectEntry          bool      `json:"subject_entry"`          // 15, usable as 6XX
	SeriesEntry           bool      `json:"series_entry"`           // 16, usable as 4XX/8XX
	SubjectSubdivision    string    `json:"subject_subdivision"`    // 17
	GovernmentAgency      string    `json:"government_agency"`      // 28
	ReferenceEvaluation   string    `json:"reference_evaluation"`   // 29
	RecordAvailable       bool      `json:"record_available"`       // 31
	Err                   error     `json:"-"`
}

// descriptiveRules maps 008/10.
var descriptiveRules = map[byte]string{
	'a': "EARLIER",
	'b': "AACR1",
	'c': "AACR2",
	'd': "AACR2 compatible",
	'z': "OTHER",
	'n': "N/A",
}

func (e *Extractor) parse008() Fixed {
	f, ok := e.first("008")
	if !ok {
		return Fixed{Err: &FieldError{Tag: "008", Absent: true}}
	}
	return ParseFixed(f.Value)
}

// ParseFixed parses the value of an authority 008 field.
func ParseFixed(v string) Fixed {
	if len(v) < fixedMinLength {
		return Fixed{Err: &FieldError{
			Tag:    "008",
			Reason: fmt.Sprintf("got %d characters, want at least %d", len(v), fixedMinLength),
		}}
	}
	entered, err := dateutil.ParseEntered(v[0:6])
	if err != nil {
		return Fixed{Err: &FieldError{Tag: "008", Reason: err.Error()}}
	}
	var languages []string
	switch v[8] {
	case 'b':
		languages = []string{"English", "French"}
	case 'e':
		languages = []string{"English"}
	case 'f':
		languages = []string{"French"}
	}
	return Fixed{
		Entered:               entered,
		GeographicSubdivision: v[6:7],
		RomanizationScheme:    v[7:8],
		Languages:             languages,
		Kind:                  v[9:10],
		Rules:                 descriptiveRules[v[10]],
		HeadingSystem:         v[11:12],
		SeriesType:            v[12:13],
		SeriesNumbered:        v[13:14],
		MainEntry:             v[14] == 'a',
		SubjectEntry:          v[15] == 'a',
		SeriesEntry:           v[16] == 'a',
		SubjectSubdivision:    v[17:18],
		GovernmentAgency:      v[28:29],
		ReferenceEvaluation:   v[29:30],
		RecordAvailable:       v[31] == 'a',
	}
}
