package catalog

import (
    "encoding/csv"
    "io"
    "math"
    "os"
    "sort"
    "strconv"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/pkg/errors"

    "tradematch-seo/models"
)

var (
    ErrMissingColumns   = errors.New("CSV missing required columns: name, slug, city")
    ErrInvalidRow       = errors.New("invalid CSV row")
    ErrDuplicateSlug    = errors.New("duplicate location slug")
    ErrMissingMajorCity = errors.New("CSV missing required major city slugs")
    ErrLocationCount    = errors.New("location count mismatch")
)

var requiredColumns = []string{"name", "slug", "city"}

var validate = validator.New()

// LoadLocations reads and validates the locations CSV at path.
// expected > 0 enforces an exact row count.
func LoadLocations(path string, expected int) ([]models.Location, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, errors.Wrapf(err, "failed to open locations CSV %s", path)
    }
    defer f.Close()

    locations, err := ParseLocations(f)
    if err != nil {
        return nil, errors.Wrap(err, path)
    }

    if err := Validate(locations, MajorCities, expected); err != nil {
        return nil, errors.Wrap(err, path)
    }

    return locations, nil
}

// ParseLocations decodes location rows. Columns are matched by header name;
// county, population and postcode_area/postcode are optional. Slugs are used
// as written apart from surrounding whitespace.
func ParseLocations(r io.Reader) ([]models.Location, error) {
    reader := csv.NewReader(r)
    reader.FieldsPerRecord = -1
    reader.TrimLeadingSpace = true

    header, err := reader.Read()
    if err == io.EOF {
        return nil, ErrMissingColumns
    }
    if err != nil {
        return nil, errors.Wrap(err, "failed to read CSV header")
    }

    columns := make(map[string]int, len(header))
    for i, h := range header {
        if i == 0 {
            h = strings.TrimPrefix(h, "\ufeff")
        }
        columns[strings.ToLower(strings.TrimSpace(h))] = i
    }
    for _, col := range requiredColumns {
        if _, ok := columns[col]; !ok {
            return nil, ErrMissingColumns
        }
    }

    field := func(record []string, names ...string) string {
        for _, name := range names {
            i, ok := columns[name]
            if !ok || i >= len(record) {
                continue
            }
            if v := strings.TrimSpace(record[i]); v != "" {
                return v
            }
        }
        return ""
    }

    var locations []models.Location
    seen := make(map[string]bool)
    line := 1
    for {
        record, err := reader.Read()
        if err == io.EOF {
            break
        }
        line++
        if err != nil {
            return nil, errors.Wrapf(err, "failed to read CSV line %d", line)
        }

        loc := models.Location{
            Name:       field(record, "name"),
            Slug:       field(record, "slug"),
            City:       field(record, "city"),
            County:     field(record, "county"),
            Postcode:   field(record, "postcode_area", "postcode"),
            Population: ParsePopulation(field(record, "population")),
        }

        if err := validate.Struct(loc); err != nil {
            return nil, errors.Wrapf(ErrInvalidRow, "line %d: %v", line, err)
        }
        if seen[loc.Slug] {
            return nil, errors.Wrapf(ErrDuplicateSlug, "line %d: %s", line, loc.Slug)
        }
        seen[loc.Slug] = true

        locations = append(locations, loc)
    }

    return locations, nil
}

// ParsePopulation accepts integer or decimal text and truncates it. Anything
// unparseable, negative or non-finite becomes 0.
func ParsePopulation(raw string) int {
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return 0
    }
    v, err := strconv.ParseFloat(raw, 64)
    if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
        return 0
    }
    if v > math.MaxInt32 {
        return math.MaxInt32
    }
    return int(v)
}

// Validate checks catalogue-level constraints: every major city must be present
// and, when expected > 0, the row count must match exactly.
func Validate(locations []models.Location, majorCities []models.Location, expected int) error {
    present := make(map[string]bool, len(locations))
    for _, loc := range locations {
        present[loc.Slug] = true
    }

    var missing []string
    for _, city := range majorCities {
        if !present[city.Slug] {
            missing = append(missing, city.Slug)
        }
    }
    if len(missing) > 0 {
        sort.Strings(missing)
        return errors.Wrap(ErrMissingMajorCity, strings.Join(missing, ", "))
    }

    if expected > 0 && len(locations) != expected {
        return errors.Wrapf(ErrLocationCount, "expected %d, got %d", expected, len(locations))
    }

    return nil
}
