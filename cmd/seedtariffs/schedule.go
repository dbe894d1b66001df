package main

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"tradeflow/internal/hscode"
)

// rateEntry is one schedule line ready for insertion. An invalid rate is written
// as NULL.
type rateEntry struct {
	code        string
	description string
	mfn         decimal.NullDecimal
	usmca       decimal.NullDecimal
}

// rateKind classifies a raw duty cell.
type rateKind int

const (
	rateBlank rateKind = iota
	rateFree
	rateAdValorem
	rateOther
)

// adValorem matches a plain percentage such as "6.5%" or "25 %".
var adValorem = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*%$`)

// usmcaProgram matches the USMCA special program indicator inside the
// parenthesised program list of a special rate cell, e.g. "Free (A,AU,S,SG)".
var usmcaProgram = regexp.MustCompile(`\((?:[^)]*,\s*)?S\+?(?:\s*,[^)]*)?\)`)

// parseRate reads a duty cell. Blank cells and compound or specific duties
// (cents per kg and the like) yield an invalid rate; only "Free" yields zero.
func parseRate(cell string) (decimal.NullDecimal, rateKind) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.NullDecimal{}, rateBlank
	}
	if strings.EqualFold(s, "free") {
		return decimal.NewNullDecimal(decimal.Zero), rateFree
	}
	if m := adValorem.FindStringSubmatch(s); m != nil {
		d, err := decimal.NewFromString(m[1])
		if err != nil {
			return decimal.NullDecimal{}, rateOther
		}
		return decimal.NewNullDecimal(d), rateAdValorem
	}
	return decimal.NullDecimal{}, rateOther
}

// parseSpecial derives the USMCA rate from a special rate cell. The cell lists
// one or more "rate (programs)" groups; the group carrying program S applies.
func parseSpecial(cell string) decimal.NullDecimal {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.NullDecimal{}
	}
	for _, group := range splitSpecialGroups(s) {
		if !usmcaProgram.MatchString(group) {
			continue
		}
		head := strings.TrimSpace(group[:strings.Index(group, "(")])
		rate, _ := parseRate(head)
		return rate
	}
	return decimal.NullDecimal{}
}

// splitSpecialGroups splits "Free (A,S) 2.5% (JO)" into its rate groups.
func splitSpecialGroups(s string) []string {
	var groups []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ')' {
			groups = append(groups, strings.TrimSpace(s[start:i+1]))
			start = i + 1
		}
	}
	return groups
}

// scheduleCode canonicalizes an HTS number. Statistical suffixes beyond 8 digits
// are dropped; codes shorter than 4 digits are headings without rates and are
// rejected. 4 and 6 digit codes are kept at their own length so lookups can
// fall back to them.
func scheduleCode(cell string) (string, bool) {
	digits := hscode.Significant(cell)
	switch {
	case len(digits) >= hscode.CanonicalLength:
		return digits[:hscode.CanonicalLength], true
	case len(digits) == 4, len(digits) == 6:
		return digits, true
	default:
		return "", false
	}
}

// audit counts how rates were read so blank and zero cells can be reviewed.
type audit struct {
	rows        int
	skipped     int
	duplicates  int
	mfnFree     int
	mfnZero     int
	mfnNull     int
	mfnOther    int
	usmcaZero   int
	usmcaNull   int
	zeroMFNRows []string
}

// maxZeroSamples caps the sample of zero-rate codes printed in the audit.
const maxZeroSamples = 20

func (a *audit) record(e *rateEntry, kind rateKind) {
	a.rows++
	switch kind {
	case rateFree:
		a.mfnFree++
	case rateBlank:
		a.mfnNull++
	case rateOther:
		a.mfnNull++
		a.mfnOther++
	}
	if e.mfn.Valid && e.mfn.Decimal.IsZero() {
		a.mfnZero++
		if kind != rateFree && len(a.zeroMFNRows) < maxZeroSamples {
			a.zeroMFNRows = append(a.zeroMFNRows, e.code)
		}
	}
	if !e.usmca.Valid {
		a.usmcaNull++
	} else if e.usmca.Decimal.IsZero() {
		a.usmcaZero++
	}
}

// column names looked up in the header row, lower-cased.
var (
	codeHeaders    = []string{"hts number", "hts8", "fraccion", "hs code"}
	descHeaders    = []string{"description", "descripcion", "brief_description"}
	generalHeaders = []string{"general rate of duty", "general", "mfn_ad_val_rate", "igi"}
	specialHeaders = []string{"special rate of duty", "special"}
	usmcaHeaders   = []string{"usmca", "usmca_ad_val_rate", "t-mec", "tmec"}
)

// columns holds header positions; -1 means absent.
type columns struct {
	code, desc, general, special, usmca int
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

// locateColumns finds the header row within the first rows of a sheet.
func locateColumns(rows [][]string) (columns, int, bool) {
	limit := len(rows)
	if limit > 20 {
		limit = 20
	}
	for i := 0; i < limit; i++ {
		cols := columns{
			code:    findColumn(rows[i], codeHeaders),
			desc:    findColumn(rows[i], descHeaders),
			general: findColumn(rows[i], generalHeaders),
			special: findColumn(rows[i], specialHeaders),
			usmca:   findColumn(rows[i], usmcaHeaders),
		}
		if cols.code >= 0 && cols.general >= 0 {
			return cols, i, true
		}
	}
	return columns{}, 0, false
}

// parseRows converts sheet rows to entries, keeping the first occurrence of each
// code.
func parseRows(rows [][]string, cols columns, start int, a *audit) []rateEntry {
	seen := make(map[string]bool)
	var entries []rateEntry
	for i := start; i < len(rows); i++ {
		row := rows[i]
		code, ok := scheduleCode(cellVal(row, cols.code))
		if !ok {
			a.skipped++
			continue
		}
		if seen[code] {
			a.duplicates++
			continue
		}
		seen[code] = true

		mfn, kind := parseRate(cellVal(row, cols.general))
		var usmca decimal.NullDecimal
		if cols.usmca >= 0 {
			usmca, _ = parseRate(cellVal(row, cols.usmca))
		} else if cols.special >= 0 {
			usmca = parseSpecial(cellVal(row, cols.special))
		}

		e := rateEntry{
			code:        code,
			description: strings.TrimSpace(cellVal(row, cols.desc)),
			mfn:         mfn,
			usmca:       usmca,
		}
		a.record(&e, kind)
		entries = append(entries, e)
	}
	return entries
}

func cellVal(row []string, idx int) string {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}
