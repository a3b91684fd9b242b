package fixtures

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// ParseImport reads a CSV or XLSX fixture list from a multipart form file
// and returns raw records ready for Normalize.
func ParseImport(fh *multipart.FileHeader) ([]RawMatch, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch ext {
	case ".csv":
		return parseCSV(file)
	case ".xlsx":
		// excelize needs the whole file; cap at ~10MB, plenty for a fixture list.
		b, err := io.ReadAll(io.LimitReader(file, 10<<20))
		if err != nil {
			return nil, err
		}
		return parseXLSX(b)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func parseCSV(r io.Reader) ([]RawMatch, error) {
	br := bufio.NewReader(r)
	// Peek first line to guess the delimiter, then put it back
	line, _ := br.ReadString('\n')
	rest := io.MultiReader(strings.NewReader(line), br)
	reader := csv.NewReader(rest)
	reader.FieldsPerRecord = -1
	if strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty csv")
	}
	headers := normHeaders(rows[0])
	var out []RawMatch
	for i := 1; i < len(rows); i++ {
		if len(strings.TrimSpace(strings.Join(rows[i], ""))) == 0 {
			continue
		}
		out = append(out, rowToRaw(headers, rows[i]))
	}
	return out, nil
}

func parseXLSX(b []byte) ([]RawMatch, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}
	headers := normHeaders(rows[0])
	var out []RawMatch
	for i := 1; i < len(rows); i++ {
		out = append(out, rowToRaw(headers, rows[i]))
	}
	return out, nil
}

// normalize headers: lower, keep letters/digits, fold common aliases onto
// the extraction record field names
func normHeaders(hdr []string) map[int]string {
	m := make(map[int]string, len(hdr))
	for i, h := range hdr {
		k := strings.ToLower(strings.TrimSpace(h))
		b := strings.Builder{}
		for _, r := range k {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		k = b.String()
		switch k {
		case "matchdate", "fixturedate":
			k = "date"
		case "starttime", "matchtime":
			k = "time"
		case "vs", "against", "awayteam", "opposition":
			k = "opponent"
		case "team", "ourteam":
			k = "hometeam"
		case "ground", "location", "stadium":
			k = "venue"
		case "url", "link", "scorecard":
			k = "matchurl"
		}
		m[i] = k
	}
	return m
}

func rowToRaw(h map[int]string, row []string) RawMatch {
	get := func(key string) string {
		for i, k := range h {
			if k == key && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}
	return RawMatch{
		Date:     get("date"),
		Time:     get("time"),
		HomeTeam: get("hometeam"),
		Opponent: get("opponent"),
		Venue:    get("venue"),
		MatchURL: get("matchurl"),
	}
}
