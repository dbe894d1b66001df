package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		cell      string
		wantValid bool
		want      string
		wantKind  rateKind
	}{
		{"", false, "", rateBlank},
		{"   ", false, "", rateBlank},
		{"Free", true, "0", rateFree},
		{"free", true, "0", rateFree},
		{"6.5%", true, "6.5", rateAdValorem},
		{"25 %", true, "25", rateAdValorem},
		{"0%", true, "0", rateAdValorem},
		{"2.8¢/kg + 5%", false, "", rateOther},
		{"See 9903.88.01", false, "", rateOther},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, kind := parseRate(tt.cell)
			assert.Equal(t, tt.wantKind, kind)
			require.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestParseSpecial(t *testing.T) {
	tests := []struct {
		name      string
		cell      string
		wantValid bool
		want      string
	}{
		{"free under S", "Free (A,AU,BH,CL,CO,D,E,IL,JO,KR,MA,OM,P,PA,PE,S,SG)", true, "0"},
		{"S plus", "Free (A+,S+)", true, "0"},
		{"rate group carries S", "Free (A,AU) 2.5% (S,SG)", true, "2.5"},
		{"SG is not S", "Free (A,AU,SG)", false, ""},
		{"blank", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSpecial(tt.cell)
			require.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestScheduleCode(t *testing.T) {
	tests := []struct {
		cell   string
		want   string
		wantOK bool
	}{
		{"8542.31.00", "85423100", true},
		{"8542.31.00.15", "85423100", true},
		{"8542.31", "854231", true},
		{"8542", "8542", true},
		{"85", "", false},
		{"85423", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, ok := scheduleCode(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sheet() [][]string {
	return [][]string{
		{"Harmonized Tariff Schedule"},
		{"HTS Number", "Indent", "Description", "General Rate of Duty", "Special Rate of Duty"},
		{"8542", "0", "Electronic integrated circuits:", "", ""},
		{"8542.31.00", "1", "Processors and controllers", "Free", "Free (A,S)"},
		{"8542.31.00.15", "2", "Statistical suffix", "Free", ""},
		{"7208.10.15", "1", "Hot-rolled, o'Brien grade", "", "Free (S)"},
		{"0201.10.05", "1", "Beef carcasses", "4.4¢/kg", "Free (A,S)"},
		{"9401.61.40", "1", "Seats", "0%", "Free (S)"},
		{"", "", "continuation", "", ""},
	}
}

func TestParseRows_BlankStaysNull(t *testing.T) {
	rows := sheet()
	cols, header, ok := locateColumns(rows)
	require.True(t, ok)
	assert.Equal(t, 1, header)

	var a audit
	entries := parseRows(rows, cols, header+1, &a)
	require.Len(t, entries, 5)

	byCode := make(map[string]rateEntry, len(entries))
	for _, e := range entries {
		byCode[e.code] = e
	}

	heading := byCode["8542"]
	assert.False(t, heading.mfn.Valid, "blank MFN cell must stay NULL")
	assert.False(t, heading.usmca.Valid)

	mcu := byCode["85423100"]
	require.True(t, mcu.mfn.Valid)
	assert.True(t, mcu.mfn.Decimal.IsZero())
	require.True(t, mcu.usmca.Valid)

	steel := byCode["72081015"]
	assert.False(t, steel.mfn.Valid)
	assert.True(t, steel.usmca.Valid)

	beef := byCode["02011005"]
	assert.False(t, beef.mfn.Valid, "specific duties are not ad valorem")

	assert.Equal(t, 5, a.rows)
	assert.Equal(t, 1, a.duplicates)
	assert.Equal(t, 1, a.skipped)
	assert.Equal(t, 1, a.mfnFree)
	assert.Equal(t, 2, a.mfnZero)
	assert.Equal(t, 3, a.mfnNull)
	assert.Equal(t, 1, a.mfnOther)
	assert.Equal(t, []string{"94016140"}, a.zeroMFNRows)
}

func TestWriteSeed(t *testing.T) {
	rows := sheet()
	cols, header, _ := locateColumns(rows)
	var a audit
	entries := parseRows(rows, cols, header+1, &a)

	var buf bytes.Buffer
	require.NoError(t, writeSeed(&buf, schedules["us"], "'2025-01-01'", entries))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "-- tariff_intelligence_master seed data"))
	assert.Contains(t, out, "INSERT INTO tariff_intelligence_master (hs_code, description, mfn_rate, usmca_rate, effective_date, source) VALUES")
	assert.Contains(t, out, "('8542', 'Electronic integrated circuits:', NULL, NULL, '2025-01-01', 'usitc_hts')")
	assert.Contains(t, out, "('85423100', 'Processors and controllers', 0, 0, '2025-01-01', 'usitc_hts')")
	assert.Contains(t, out, "'Hot-rolled, o''Brien grade'")
	assert.Contains(t, out, "ON CONFLICT (hs_code, effective_date) DO NOTHING;")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "COMMIT;"))
}

func TestPrintAudit(t *testing.T) {
	var buf bytes.Buffer
	printAudit(&buf, &audit{rows: 3, mfnNull: 1, zeroMFNRows: []string{"94016140"}})
	assert.Contains(t, buf.String(), "rows parsed:              3")
	assert.Contains(t, buf.String(), "zero MFN not marked Free: 94016140")
}
