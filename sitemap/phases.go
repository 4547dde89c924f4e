package sitemap

import (
    "fmt"
    "math"
    "path/filepath"
    "time"

    "github.com/pkg/errors"

    "tradematch-seo/catalog"
    "tradematch-seo/utils"
)

const (
    Phase1TopServices = 10
    // Phase3TargetPages sizes phase 3 to roughly this many pages.
    Phase3TargetPages = 35000

    MasterIndexName = "sitemap-index-phased.xml"
)

// PhaseNames is the rollout order.
var PhaseNames = []string{"phase-1", "phase-2", "phase-3", "phase-4"}

type Phase struct {
    Name     string
    Priority float64
    URLs     []string
}

// IndexName is the per-phase sitemap index file name.
func IndexName(phase string) string {
    return "sitemap-index-" + phase + ".xml"
}

// PhasedLoc is the public URL of a file in the phased sitemap directory.
func PhasedLoc(baseURL, name string) string {
    return utils.AbsoluteURL(baseURL, "/sitemaps/phased/"+name)
}

// BuildPhases splits every generated page into the four rollout phases.
//
// Phase 1 is the homepage, the service hubs and the top services in the major
// cities. Phase 2 is the remaining services in the major cities. Phase 3 takes
// London boroughs first and then other locations until it reaches
// Phase3TargetPages. Phase 4 is everything left.
func BuildPhases(c *catalog.Catalog, baseURL string) []Phase {
    return buildPhases(c, baseURL, Phase3TargetPages)
}

func buildPhases(c *catalog.Catalog, baseURL string, phase3Pages int) []Phase {
    page := func(service, location string) string {
        return utils.AbsoluteURL(baseURL, utils.ServiceLocationURL(service, location))
    }

    majors := c.MajorCitySlugs()
    topServices := c.Services
    if len(topServices) > Phase1TopServices {
        topServices = topServices[:Phase1TopServices]
    }

    phase1 := []string{utils.AbsoluteURL(baseURL, "/")}
    for _, svc := range c.Services {
        phase1 = append(phase1, utils.AbsoluteURL(baseURL, utils.ServiceHubURL(svc.Slug)))
    }
    inPhase1 := make(map[string]bool)
    for _, svc := range topServices {
        for _, city := range c.MajorCities {
            u := page(svc.Slug, city.Slug)
            phase1 = append(phase1, u)
            inPhase1[u] = true
        }
    }

    var phase2 []string
    for _, svc := range c.Services {
        for _, city := range c.MajorCities {
            if u := page(svc.Slug, city.Slug); !inPhase1[u] {
                phase2 = append(phase2, u)
            }
        }
    }

    target := 1
    if len(c.Services) > 0 {
        target = int(math.Ceil(float64(phase3Pages) / float64(len(c.Services))))
    }
    if target < 1 {
        target = 1
    }

    var phase3Locations []string
    taken := make(map[string]bool)
    take := func(slug string) {
        if len(phase3Locations) >= target || taken[slug] || majors[slug] {
            return
        }
        taken[slug] = true
        phase3Locations = append(phase3Locations, slug)
    }
    for _, loc := range c.Locations {
        if catalog.LondonBoroughSlugs[loc.Slug] {
            take(loc.Slug)
        }
    }
    for _, loc := range c.Locations {
        take(loc.Slug)
    }

    var phase4Locations []string
    for _, loc := range c.Locations {
        if !majors[loc.Slug] && !taken[loc.Slug] {
            phase4Locations = append(phase4Locations, loc.Slug)
        }
    }

    var phase3, phase4 []string
    for _, svc := range c.Services {
        for _, slug := range phase3Locations {
            phase3 = append(phase3, page(svc.Slug, slug))
        }
        for _, slug := range phase4Locations {
            phase4 = append(phase4, page(svc.Slug, slug))
        }
    }

    return []Phase{
        {Name: PhaseNames[0], Priority: 0.9, URLs: phase1},
        {Name: PhaseNames[1], Priority: 0.9, URLs: phase2},
        {Name: PhaseNames[2], Priority: 0.7, URLs: phase3},
        {Name: PhaseNames[3], Priority: 0.5, URLs: phase4},
    }
}

// PhaseResult describes the files written for one phase.
type PhaseResult struct {
    Name  string
    URLs  int
    Files []string
    Index string
}

// Write emits phase-N-K.xml files of at most limit URLs, a per-phase index and
// the master index into dir.
func Write(dir, baseURL string, limit int, phases []Phase, now time.Time) ([]PhaseResult, error) {
    if limit < 1 {
        return nil, errors.Errorf("sitemap URL limit must be positive, got %d", limit)
    }
    today := now.Format("2006-01-02")

    var results []PhaseResult
    var indexLocs []string
    for _, phase := range phases {
        res := PhaseResult{Name: phase.Name, URLs: len(phase.URLs)}

        var locs []string
        for i, start := 1, 0; start < len(phase.URLs); i, start = i+1, start+limit {
            end := start + limit
            if end > len(phase.URLs) {
                end = len(phase.URLs)
            }

            name := fmt.Sprintf("%s-%d.xml", phase.Name, i)
            path := filepath.Join(dir, name)
            if err := WriteURLSet(path, phase.URLs[start:end], phase.Priority); err != nil {
                return results, err
            }
            res.Files = append(res.Files, path)
            locs = append(locs, PhasedLoc(baseURL, name))
        }

        res.Index = filepath.Join(dir, IndexName(phase.Name))
        if err := WriteIndex(res.Index, locs, today); err != nil {
            return results, err
        }
        indexLocs = append(indexLocs, PhasedLoc(baseURL, IndexName(phase.Name)))
        results = append(results, res)
    }

    if err := WriteIndex(filepath.Join(dir, MasterIndexName), indexLocs, today); err != nil {
        return results, err
    }
    return results, nil
}
