package linking

import (
    "sort"

    "tradematch-seo/models"
)

// MaxLinksPerPage caps the kept links across every section of a page.
const MaxLinksPerPage = 45

// EnforceBudget keeps at most budget links across sections. Contexts claim the
// budget in models.ContextPriority order; within a context the heaviest links
// win and ties keep their build order. Every priority context is present in
// the result, empty when starved.
func EnforceBudget(sections models.Sections, budget int) models.Sections {
    remaining := budget
    pruned := make(models.Sections, len(models.ContextPriority))

    for _, ctx := range models.ContextPriority {
        items := sections[ctx]
        if len(items) == 0 || remaining <= 0 {
            pruned[ctx] = []models.Link{}
            continue
        }

        sorted := make([]models.Link, len(items))
        copy(sorted, items)
        sort.SliceStable(sorted, func(i, j int) bool {
            return sorted[i].Weight > sorted[j].Weight
        })

        if len(sorted) > remaining {
            sorted = sorted[:remaining]
        }
        pruned[ctx] = sorted
        remaining -= len(sorted)
    }

    return pruned
}
