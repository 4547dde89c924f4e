package rollout

import (
    "bytes"
    "encoding/csv"
    "io"
    "os"
    "regexp"
    "strconv"
    "strings"

    "github.com/pkg/errors"
)

var (
    ErrMissingSitemapColumns = errors.New("sitemaps report missing required columns (sitemap/submitted/indexed)")
    ErrMissingStatusColumn   = errors.New("pages report missing required status/indexing column")
)

var nonKey = regexp.MustCompile(`[^a-z0-9]`)

// sniffBytes is how much of a report is inspected to pick its delimiter.
const sniffBytes = 2048

var delimiters = []rune{',', ';', '\t'}

// NormalizeKey lowercases a header and drops everything but letters and digits.
func NormalizeKey(header string) string {
    return nonKey.ReplaceAllString(strings.ToLower(header), "")
}

// SniffDelimiter picks the delimiter that splits every complete sample line
// into the same number of fields, preferring the one producing the most
// fields. It falls back to a comma.
func SniffDelimiter(sample []byte) rune {
    if len(sample) > sniffBytes {
        sample = sample[:sniffBytes]
    }
    text := strings.TrimPrefix(string(sample), "\ufeff")
    lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
    if len(lines) > 1 && len(sample) == sniffBytes {
        lines = lines[:len(lines)-1]
    }

    best, bestCount := ',', 0
    for _, d := range delimiters {
        count := -1
        consistent := true
        for _, line := range lines {
            if strings.TrimSpace(line) == "" {
                continue
            }
            n := strings.Count(line, string(d))
            if count == -1 {
                count = n
            } else if n != count {
                consistent = false
                break
            }
        }
        if consistent && count > bestCount {
            best, bestCount = d, count
        }
    }
    return best
}

// ParseCount reads an integer that may carry thousands separators.
func ParseCount(raw string) (int, error) {
    raw = strings.TrimSpace(raw)
    raw = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(raw)
    if raw == "" {
        return 0, nil
    }
    n, err := strconv.Atoi(raw)
    if err != nil {
        return 0, errors.Wrapf(err, "invalid count %q", raw)
    }
    return n, nil
}

type table struct {
    header []string
    rows   [][]string
}

// column returns the index of the first header whose normalised form
// contains any of the fragments, or -1.
func (t *table) column(fragments ...string) int {
    for i, h := range t.header {
        key := NormalizeKey(h)
        for _, f := range fragments {
            if strings.Contains(key, f) {
                return i
            }
        }
    }
    return -1
}

func (t *table) cell(row []string, i int) string {
    if i < 0 || i >= len(row) {
        return ""
    }
    return strings.TrimSpace(row[i])
}

func readTable(path string) (*table, error) {
    data, err := os.ReadFile(path)
    if err != nil {
        return nil, errors.Wrapf(err, "failed to read report %s", path)
    }
    data = bytes.TrimPrefix(data, []byte("\ufeff"))

    reader := csv.NewReader(bytes.NewReader(data))
    reader.Comma = SniffDelimiter(data)
    reader.FieldsPerRecord = -1
    reader.LazyQuotes = true

    t := &table{}
    t.header, err = reader.Read()
    if err == io.EOF {
        return t, nil
    }
    if err != nil {
        return nil, errors.Wrapf(err, "failed to read header of %s", path)
    }

    for {
        record, err := reader.Read()
        if err == io.EOF {
            break
        }
        if err != nil {
            return nil, errors.Wrapf(err, "failed to read %s", path)
        }
        t.rows = append(t.rows, record)
    }
    return t, nil
}

// SitemapStats is one row of a Search Console sitemaps export.
type SitemapStats struct {
    Sitemap   string
    Submitted int
    Indexed   int
}

// LoadSitemapsReport returns the report rows in file order. A sitemap listed
// twice keeps its first position and its last counts.
func LoadSitemapsReport(path string) ([]SitemapStats, error) {
    t, err := readTable(path)
    if err != nil {
        return nil, err
    }

    sitemapCol := t.column("sitemap")
    submittedCol := t.column("submitted")
    indexedCol := t.column("indexed")
    if sitemapCol < 0 || submittedCol < 0 || indexedCol < 0 {
        return nil, errors.Wrap(ErrMissingSitemapColumns, path)
    }

    var stats []SitemapStats
    position := make(map[string]int)
    for i, row := range t.rows {
        name := t.cell(row, sitemapCol)
        if name == "" {
            continue
        }
        submitted, err := ParseCount(t.cell(row, submittedCol))
        if err != nil {
            return nil, errors.Wrapf(err, "%s row %d", path, i+2)
        }
        indexed, err := ParseCount(t.cell(row, indexedCol))
        if err != nil {
            return nil, errors.Wrapf(err, "%s row %d", path, i+2)
        }

        s := SitemapStats{Sitemap: name, Submitted: submitted, Indexed: indexed}
        if p, ok := position[name]; ok {
            stats[p] = s
            continue
        }
        position[name] = len(stats)
        stats = append(stats, s)
    }
    return stats, nil
}

// PagesReport counts pages per indexing status.
type PagesReport struct {
    Total  int
    Counts map[string]int
}

// Matching sums the counts of every status containing fragment, ignoring case.
func (r *PagesReport) Matching(fragment string) int {
    fragment = strings.ToLower(fragment)
    total := 0
    for status, n := range r.Counts {
        if strings.Contains(strings.ToLower(status), fragment) {
            total += n
        }
    }
    return total
}

func LoadPagesReport(path string) (*PagesReport, error) {
    t, err := readTable(path)
    if err != nil {
        return nil, err
    }

    statusCol := t.column("status", "indexingstate", "indexing")
    if statusCol < 0 {
        return nil, errors.Wrap(ErrMissingStatusColumn, path)
    }

    report := &PagesReport{Counts: make(map[string]int)}
    for _, row := range t.rows {
        status := t.cell(row, statusCol)
        if status == "" {
            continue
        }
        report.Counts[status]++
        report.Total++
    }
    return report, nil
}
